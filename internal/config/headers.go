package config

import (
	"fmt"
	"strings"
)

// Canonical names of the headers the policy always overwrites on responses.
// The Server header is intentionally absent: it is applied with set-if-absent
// semantics by the HTTP layer rather than overwrite.
const (
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderXSSProtection      = "X-XSS-Protection"
	HeaderHSTS               = "Strict-Transport-Security"
	HeaderCSP                = "Content-Security-Policy"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderPermissionsPolicy  = "Permissions-Policy"
	HeaderServer             = "Server"
)

// HSTSHeaderValue serializes the HSTS sub-policy. The value always starts
// with max-age; the includeSubDomains and preload tokens follow in that
// fixed order when their flag is set.
func (s SecurityConfig) HSTSHeaderValue() string {
	parts := []string{fmt.Sprintf("max-age=%d", s.HSTS.MaxAge)}

	if s.HSTS.IncludeSubdomains {
		parts = append(parts, "includeSubDomains")
	}
	if s.HSTS.Preload {
		parts = append(parts, "preload")
	}

	return strings.Join(parts, "; ")
}

// CSPHeaderValue serializes the CSP sub-policy as one segment per directive
// in a fixed order. The segment order and the "; " delimiter are part of the
// observable contract and must stay stable across releases.
func (s SecurityConfig) CSPHeaderValue() string {
	segments := []string{
		"default-src " + s.CSP.DefaultSrc,
		"script-src " + s.CSP.ScriptSrc,
		"style-src " + s.CSP.StyleSrc,
		"img-src " + s.CSP.ImgSrc,
		"connect-src " + s.CSP.ConnectSrc,
		"font-src " + s.CSP.FontSrc,
		"object-src " + s.CSP.ObjectSrc,
		"media-src " + s.CSP.MediaSrc,
		"frame-src " + s.CSP.FrameSrc,
		"child-src " + s.CSP.ChildSrc,
		"worker-src " + s.CSP.WorkerSrc,
		"base-uri " + s.CSP.BaseURI,
		"form-action " + s.CSP.FormAction,
	}
	return strings.Join(segments, "; ")
}

// HeaderMap returns the full canonical-name to value mapping for the seven
// headers the policy unconditionally sets on every response. Computing the
// map once and applying it in a single loop keeps the policy model and the
// wire output from drifting apart.
func (s SecurityConfig) HeaderMap() map[string]string {
	return map[string]string{
		HeaderContentTypeOptions: s.ContentTypeOptions,
		HeaderFrameOptions:       s.FrameOptions,
		HeaderXSSProtection:      s.XSSProtection,
		HeaderHSTS:               s.HSTSHeaderValue(),
		HeaderCSP:                s.CSPHeaderValue(),
		HeaderReferrerPolicy:     s.ReferrerPolicy,
		HeaderPermissionsPolicy:  s.PermissionsPolicy,
	}
}
