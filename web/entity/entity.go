// Package entity defines data structures used by the web layer of the login panel.
package entity

// Msg represents a standard API response message with success status, message
// text, and optional data object.
type Msg struct {
	Success bool   `json:"success"` // Indicates if the operation was successful
	Msg     string `json:"msg"`     // Response message text
	Obj     any    `json:"obj"`     // Optional data object
}

// FieldError describes a single field-level validation failure. Signup
// validation reports every violation at once, so responses carry a list.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}
