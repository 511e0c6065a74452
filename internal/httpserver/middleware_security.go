package httpserver

import (
	"net/http"

	"github.com/TunnelFront/server/internal/config"
	"github.com/TunnelFront/server/internal/metrics"
)

// securityHeadersMiddleware applies the resolved header policy to every
// response leaving the service, including 404s, panics recovered downstream,
// and anything else a handler produces.
//
// The seven policy headers are written immediately before the header block is
// flushed, so they win over values a handler set (last-writer-wins). The
// Server header is the exception: it is only filled in when the handler left
// it empty. Status code and body are never touched.
func securityHeadersMiddleware(sec config.SecurityConfig, collector *metrics.Metrics) func(http.Handler) http.Handler {
	// The header map is computed once at start-up; the policy is immutable
	// for the process lifetime.
	headers := sec.HeaderMap()
	serverValue := sec.ServerHeader

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &securityHeaderWriter{
				ResponseWriter: w,
				headers:        headers,
				serverValue:    serverValue,
				metrics:        collector,
			}
			next.ServeHTTP(sw, r)

			// A handler may return without writing anything; net/http then
			// flushes an implicit 200 after it returns. Apply the policy now
			// so that response carries it too.
			if !sw.wroteHeader {
				sw.applyPolicy()
			}
		})
	}
}

// securityHeaderWriter defers policy application to the moment the header
// block is committed, so the policy always has the last word.
type securityHeaderWriter struct {
	http.ResponseWriter
	headers     map[string]string
	serverValue string
	metrics     *metrics.Metrics
	wroteHeader bool
}

func (w *securityHeaderWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.applyPolicy()
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *securityHeaderWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush lets wrapped handlers stream; the policy is committed first.
func (w *securityHeaderWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap supports http.ResponseController.
func (w *securityHeaderWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// applyPolicy writes the policy headers into the response header map.
// A value that is not legal header-value text skips that single header
// rather than failing the response.
func (w *securityHeaderWriter) applyPolicy() {
	h := w.Header()

	for name, value := range w.headers {
		if !validHeaderValue(value) {
			w.metrics.RecordHeaderSkipped(name)
			continue
		}
		h.Set(name, value)
	}

	// Set-if-absent: a handler that advertises its own Server identity keeps it.
	if h.Get(config.HeaderServer) == "" {
		if validHeaderValue(w.serverValue) {
			h.Set(config.HeaderServer, w.serverValue)
		} else {
			w.metrics.RecordHeaderSkipped(config.HeaderServer)
		}
	}
}

// validHeaderValue reports whether v is legal HTTP field content
// (RFC 7230: visible ASCII, space, and horizontal tab).
func validHeaderValue(v string) bool {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b == '\t' {
			continue
		}
		if b < ' ' || b == 0x7f {
			return false
		}
	}
	return true
}
