package api

import (
	"fmt"
	"strings"
)

// Validate checks that PhoneUpdateRequest has all required fields. The phone
// number itself is forwarded verbatim; the platform's own form validation is
// the authority on its format.
func (r *PhoneUpdateRequest) Validate() error {
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return fmt.Errorf("phoneNumber is required")
	}
	return nil
}
