package responders

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONWritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusTeapot, map[string]string{"status": "short and stout"})

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"short and stout"`) {
		t.Errorf("body = %q, missing encoded payload", rec.Body.String())
	}
}

func TestJSONNilPayloadIsHeaderOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"policy": "default-src 'self' <data>"})

	if got := rec.Body.String(); strings.Contains(got, `<`) {
		t.Errorf("body = %q, want angle brackets left unescaped", got)
	}
}

func TestHTMLWritesMarkup(t *testing.T) {
	rec := httptest.NewRecorder()
	HTML(rec, http.StatusOK, "<h1>hi</h1>")

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "<h1>hi</h1>" {
		t.Errorf("body = %q, want markup verbatim", rec.Body.String())
	}
}
