package responders

import (
	"io"
	"net/http"
)

// HTML writes a text/html response with status code and markup.
func HTML(w http.ResponseWriter, status int, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, markup)
}
