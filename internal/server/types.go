package server

// APIResponse is the envelope of the server's own endpoints (health, 404).
// The user update endpoint keeps its own response shape.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
