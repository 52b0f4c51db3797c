package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the core runtime configuration for the service.
// It supports environment-based initialization, with sensible defaults.
type Config struct {
	ServiceName string // e.g. "alleviate-api"
	Env         string // e.g. "dev", "uat", "prod"
	LogLevel    string // "debug", "info", etc.
	Port        int    // service HTTP port

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int
	ShutdownTimeout  time.Duration

	// Target platform configuration. The platform exposes no API; everything
	// below parameterizes the browser automation against its web UI.
	TargetBaseURL string // login/settings pages hang off this origin
	Headless      bool   // headed mode is only useful for local debugging

	// Automation timeouts. These bound individual browser waits, not the
	// request as a whole.
	NavTimeout           time.Duration // page navigations
	LoginResponseTimeout time.Duration // waiting for the login network response
	LoginNavTimeout      time.Duration // waiting for the authenticated-route redirect
	SaveResponseTimeout  time.Duration // waiting for the settings-save network response
	SettleDelay          time.Duration // fixed settle before closing the session

	// MaxBrowserSessions bounds concurrent Chromium launches. The platform
	// tolerates concurrent logins; this host does not tolerate unbounded
	// browser processes.
	MaxBrowserSessions int
	// SessionSlotWait is how long a request waits for a free browser slot
	// before giving up with a saturation error.
	SessionSlotWait time.Duration
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: GetEnv("SERVICE_NAME", "alleviate-api"),
		Env:         GetEnv("ENV", "dev"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		Port:        GetEnvInt("PORT", 3000),

		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),
		ShutdownTimeout:  GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		TargetBaseURL: GetEnv("TARGET_BASE_URL", "https://app.alleviatetax.com"),
		Headless:      GetEnvBool("HEADLESS", true),

		NavTimeout:           GetEnvDuration("NAV_TIMEOUT", 30*time.Second),
		LoginResponseTimeout: GetEnvDuration("LOGIN_RESPONSE_TIMEOUT", 15*time.Second),
		LoginNavTimeout:      GetEnvDuration("LOGIN_NAV_TIMEOUT", 5*time.Second),
		SaveResponseTimeout:  GetEnvDuration("SAVE_RESPONSE_TIMEOUT", 15*time.Second),
		SettleDelay:          GetEnvDuration("SETTLE_DELAY", 2*time.Second),

		MaxBrowserSessions: GetEnvInt("MAX_BROWSER_SESSIONS", 4),
		SessionSlotWait:    GetEnvDuration("SESSION_SLOT_WAIT", 10*time.Second),
	}

	return cfg
}
