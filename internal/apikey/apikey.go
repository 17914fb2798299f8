// Package apikey resolves the Gemini API key used to authorize calls to
// the external generative-AI service. A key supplied with the request
// always wins over the server-wide key from the environment.
package apikey

import (
	"errors"
	"strings"
)

// Placeholder is the literal value shipped in .env templates. It is never
// treated as a usable key.
const Placeholder = "your_gemini_api_key_here"

// ErrMissing indicates no usable key resolved. Callers must fail before
// attempting any network call.
var ErrMissing = errors.New("no API key available: supply one with the request or configure GEMINI_API_KEY")

// Resolve returns the effective key: the trimmed user-supplied value if
// non-empty, otherwise the configured fallback. The fallback is assumed to
// have been placeholder-filtered at config load time, but is checked again
// here so Resolve is safe on raw values.
func Resolve(userKey, configuredKey string) (string, error) {
	if k := strings.TrimSpace(userKey); k != "" {
		return k, nil
	}
	if configuredKey != "" && configuredKey != Placeholder {
		return configuredKey, nil
	}
	return "", ErrMissing
}

// HasConfiguredKey reports whether a usable server-side key is present.
// It never reveals the key itself.
func HasConfiguredKey(configuredKey string) bool {
	return configuredKey != "" && configuredKey != Placeholder
}
