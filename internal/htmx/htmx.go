// Package htmx holds the request and response helpers the form needs to
// talk to htmx.
package htmx

import "net/http"

// Request headers sent by htmx.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXTarget  = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// SwapStrategy is a value for hx-swap / HX-Reswap.
type SwapStrategy string

// SwapInnerHTML replaces the target's children.
const SwapInnerHTML SwapStrategy = "innerHTML"

// IsHTMX returns true if the request originated from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Target returns the id of the element htmx will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// Reswap overrides the swap strategy for this response.
func Reswap(w http.ResponseWriter, s SwapStrategy) {
	w.Header().Set(HeaderHXReswap, string(s))
}

// Retarget swaps the response into a different element.
func Retarget(w http.ResponseWriter, selector string) {
	w.Header().Set(HeaderHXRetarget, selector)
}

// Trigger fires a client-side event once the response arrives.
func Trigger(w http.ResponseWriter, event string) {
	w.Header().Set(HeaderHXTrigger, event)
}
