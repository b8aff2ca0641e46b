package errx

import "net/http"

// WrapSearch marks a search backend failure. Callers turn these into a short
// user-visible apology; the wrapped cause never reaches the user.
func WrapSearch(err error) *Error {
	if err == nil {
		return nil
	}

	return New(err, http.StatusBadGateway, SearchErrorMessage)
}
