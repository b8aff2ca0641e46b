package bot

// Canned reply texts. The %s / %d verbs are filled by the dialog steps.
const (
	replyGreeting   = "Hi there! I'm PictureBot, your friendly picture assistant."
	replyHelp       = "I can search for pictures, share pictures on social media, and order prints. Try \"search pics of mountains\"."
	replyGreetAgain = "Hello again! What can I find for you?"
	replyShare      = "Great, I'll share your pictures on social media."
	replyOrder      = "I've placed your order for prints. They'll arrive in a few days."

	replyDidNotUnderstand = "I'm sorry, I didn't understand that. Try \"search pics of dogs\" or ask me for help."
	replySomethingWrong   = "Something went wrong on my end. Please try again."

	promptWhatToSearch  = "What would you like to search for?"
	promptOfferFallback = "I couldn't find anything for \"%s\" in my picture library. Would you like me to try a general image search instead? (yes/no)"

	replyEmptyQuery    = "I need something to search for. Say \"search pics of sunsets\" whenever you're ready."
	replyFoundPictures = "Here's what I found (%d pictures for \"%s\"):"

	replyFallbackFound    = "Here's what the web has for \"%s\":"
	replyFallbackEmpty    = "I'm sorry, even the web came up empty for \"%s\"."
	replyFallbackDeclined = "Okay, no problem. Let me know if you'd like to search for something else."

	replySearchTrouble     = "I'm sorry, I'm having trouble searching right now. Please try again in a moment."
	replyFallbackTrouble   = "I'm sorry, the image search isn't available right now. Please try again later."
	replyRecognizerTrouble = "I'm sorry, I'm having trouble understanding messages right now. Please try again in a moment."
)
