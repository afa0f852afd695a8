package model

// SessionCredential is one cookie captured by the external login step.
// The JSON field names match what the browser automation writes out.
type SessionCredential struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}
