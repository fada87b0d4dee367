// Package resilience classifies provider failures so the embedding and chat
// wrappers can decide, in exactly one place, whether an error warrants
// failing over to the offline path.
package resilience

import "strings"

// Kind is the failure class of a primary-provider error.
type Kind int

const (
	// Other is any failure that must be propagated unchanged: bad input,
	// quota, programming errors. Masking those as offline operation would
	// hide a real production issue.
	Other Kind = iota
	// Connectivity covers network, DNS, auth and tokenizer-resource
	// failures, the classes that justify a one-way fallback latch.
	Connectivity
)

// External clients surface connectivity problems as opaque error strings, so
// message inspection is the only classification available. Keep this list in
// sync with the providers actually wired in.
var connectivityMarkers = []string{
	"api key",
	"api_key",
	"authentication",
	"unauthorized",
	"401",
	"connection",
	"network",
	"timeout",
	"failed to resolve",
	"name resolution",
	"dns",
	"no such host",
	// Tokenizer resource fetches fail before the API is ever reached.
	"tiktoken",
	"cl100k_base",
	"openaipublic.blob.core.windows.net",
}

// Classify inspects err and reports whether it looks like a connectivity or
// authorization problem. A nil error is Other.
func Classify(err error) Kind {
	if err == nil {
		return Other
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range connectivityMarkers {
		if strings.Contains(msg, marker) {
			return Connectivity
		}
	}
	return Other
}
