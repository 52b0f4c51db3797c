package api

// UpdateData echoes the phone number and the run's status label.
type UpdateData struct {
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
}

// UpdateResponse is the business outcome of a phone update request.
type UpdateResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      *UpdateData `json:"data,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

// ErrorResponse is the body for validation, authentication, and automation
// failures. Example, when set, shows the caller a correct request shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Example any    `json:"example,omitempty"`
}

// HealthResponse is the body for the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
