package model

// Canonical intent names produced by the recognizer and dispatched by the
// root dialog.
const (
	IntentGreeting       = "Greeting"
	IntentShare          = "Share"
	IntentOrder          = "Order"
	IntentHelp           = "Help"
	IntentSearchPics     = "SearchPics"
	IntentSearchPictures = "SearchPictures"
)

// FacetEntity is the single entity slot the bot cares about: the subject of
// a picture search ("search pics of mountains" -> facet "mountains").
const FacetEntity = "facet"

// IntentResult is the normalized output of intent recognition, regardless of
// whether it came from a pattern rule or the probabilistic service. It is
// produced per turn and never persisted.
type IntentResult struct {
	Name       string            `json:"name"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
}

// Facet returns the extracted facet entity, or "" when absent.
func (r *IntentResult) Facet() string {
	if r == nil || r.Entities == nil {
		return ""
	}
	return r.Entities[FacetEntity]
}

// IsSearch reports whether the intent asks for a picture search.
func (r *IntentResult) IsSearch() bool {
	if r == nil {
		return false
	}
	return r.Name == IntentSearchPics || r.Name == IntentSearchPictures
}
