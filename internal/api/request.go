package api

// PhoneUpdateRequest is the payload for updating the phone number on the
// target platform.
type PhoneUpdateRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}
