package alleviate

import (
	"context"
	"time"
)

// Status labels reported back to API callers.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Target-platform routes and UI labels. These are external contracts owned by
// the platform, not by this service; every one of them must be re-verified
// whenever the platform ships a UI change.
const (
	loginPath    = "/login"
	trialsPath   = "/trials"
	settingsPath = "/settings"

	emailLabel        = "Email address"
	passwordLabel     = "Password"
	siteSelectLabel   = "Select Site"
	defaultSiteOption = "Default"
	saveButtonName    = "Save"
)

// Credentials carries the target-platform login pair for a single run. It is
// decoded from the request's Basic authorization header and lives only as
// long as one browser session.
type Credentials struct {
	Username string
	Password string
}

// UpdateResult is the business outcome of one phone-number update run.
// Automation faults are reported as errors, never as an UpdateResult.
type UpdateResult struct {
	Success     bool
	LoginFailed bool
	Status      string // StatusCompleted or StatusFailed; empty on login failure
	Message     string
	PhoneNumber string
	UpdatedAt   time.Time
}

// Session is one isolated automation session on the target platform.
//
// Login reports whether the platform accepted the credentials; a rejection is
// a normal negative outcome, not an error. SavePhoneNumber reports whether
// the settings save was acknowledged with a success status. Close releases
// the underlying browser resources and is safe to call more than once.
type Session interface {
	Login(ctx context.Context, creds Credentials) (bool, error)
	SavePhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	Close() error
}

// SessionLauncher launches isolated browser sessions, one per update run.
type SessionLauncher interface {
	Launch(ctx context.Context) (Session, error)
}
