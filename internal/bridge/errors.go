package bridge

import "encoding/json"

// Error is the structured failure every bridge entry point returns in
// place of a panic or a bare error string. Internal failures, including
// programming errors, reach the host runtime as this shape and nothing
// else.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return e.Kind + ": " + e.Message
}

// errorJSON marshals an Error; a marshal failure here would itself be a
// programming error, so it falls back to a fixed literal rather than
// risking an unmarshalable return value reaching the host.
func errorJSON(kind, message string) string {
	b, err := json.Marshal(Error{Kind: kind, Message: message})
	if err != nil {
		return `{"kind":"Internal","message":"bridge: failed to marshal error"}`
	}
	return string(b)
}

// IsError reports whether a bridge entry point's return value is a
// structured Error rather than the operation's normal JSON/DOT result. DOT
// output never parses as this shape, and every JSON result shape lacks a
// bare top-level "kind" field, so the check is unambiguous.
func IsError(output string) bool {
	var e Error
	if err := json.Unmarshal([]byte(output), &e); err != nil {
		return false
	}
	return e.Kind != "" && e.Message != ""
}
