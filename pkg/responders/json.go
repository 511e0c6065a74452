package responders

import (
	"encoding/json"
	"net/http"
)

// JSON encodes payload as an application/json response with the given status.
// A nil payload produces a header-only response. HTML escaping is disabled;
// these bodies are consumed as data, never embedded in markup.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	// Headers are already committed; an encode failure cannot change the status.
	_ = enc.Encode(payload)
}
