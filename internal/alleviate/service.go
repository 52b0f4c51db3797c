package alleviate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zaljabir/alleviate-api/internal/metrics"
	"github.com/zaljabir/alleviate-api/internal/rate"
	"github.com/zaljabir/alleviate-api/pkg/config"
	"github.com/zaljabir/alleviate-api/pkg/utils"
)

// ErrSessionsSaturated is returned when no browser-session slot frees up
// within the configured wait.
var ErrSessionsSaturated = errors.New("too many concurrent automation sessions")

// Metric outcome labels.
const (
	outcomeCompleted   = "completed"
	outcomeFailed      = "failed"
	outcomeLoginFailed = "login_failed"
	outcomeError       = "error"
)

// Service orchestrates phone-number update runs against the target platform:
// session acquisition, login, settings save, and cleanup.
type Service struct {
	cfg      config.Config
	logger   *zap.Logger
	launcher SessionLauncher
	gate     *rate.Gate
}

// NewService constructs a fully wired automation service.
func NewService(cfg config.Config, logger *zap.Logger, launcher SessionLauncher, gate *rate.Gate) *Service {
	return &Service{
		cfg:      cfg,
		logger:   logger,
		launcher: launcher,
		gate:     gate,
	}
}

// UpdatePhoneNumber runs one isolated browser session that logs into the
// target platform with creds and updates the phone-number field.
//
// The returned error is non-nil only for automation faults (launch failure,
// timeout, selector miss). Login rejection and save rejection are normal
// business outcomes carried in the UpdateResult. Whenever a session was
// opened it is closed exactly once, on every path.
func (s *Service) UpdatePhoneNumber(ctx context.Context, creds Credentials, phoneNumber string) (*UpdateResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := s.logger.With(
		zap.String("run_id", runID),
		zap.String("user", utils.MaskUsername(creds.Username)),
	)

	slotCtx, cancel := context.WithTimeout(ctx, s.cfg.SessionSlotWait)
	defer cancel()
	if err := s.gate.Acquire(slotCtx); err != nil {
		log.Warn("alleviate.update.saturated",
			zap.Int("in_use", s.gate.InUse()),
			zap.Int("capacity", s.gate.Capacity()))
		return nil, ErrSessionsSaturated
	}
	defer s.gate.Release()

	log.Info("alleviate.update.start")
	defer metrics.ObserveRunDuration(start)

	session, err := s.launcher.Launch(ctx)
	if err != nil {
		metrics.IncRun(outcomeError)
		return nil, fmt.Errorf("launch browser session: %w", err)
	}
	metrics.BrowserSessionsActive.Inc()
	defer func() {
		// Session ownership is explicit: this is the single release point
		// for every path below, fault or not.
		if cerr := session.Close(); cerr != nil {
			log.Warn("alleviate.session.close_failed", zap.Error(cerr))
		}
		metrics.BrowserSessionsActive.Dec()
	}()

	ok, err := session.Login(ctx, creds)
	if err != nil {
		metrics.IncRun(outcomeError)
		return nil, fmt.Errorf("login sequence: %w", err)
	}
	if !ok {
		metrics.IncRun(outcomeLoginFailed)
		log.Warn("alleviate.update.login_failed")
		return &UpdateResult{
			Success:     false,
			LoginFailed: true,
			Message:     "Login failed",
		}, nil
	}

	saved, err := session.SavePhoneNumber(ctx, phoneNumber)
	if err != nil {
		metrics.IncRun(outcomeError)
		return nil, fmt.Errorf("save phone number: %w", err)
	}
	if !saved {
		metrics.IncRun(outcomeFailed)
		log.Warn("alleviate.update.save_failed")
		return &UpdateResult{
			Success:     false,
			Status:      StatusFailed,
			Message:     "Phone number update failed",
			PhoneNumber: phoneNumber,
		}, nil
	}

	metrics.IncRun(outcomeCompleted)
	log.Info("alleviate.update.completed", zap.Duration("elapsed", time.Since(start)))
	return &UpdateResult{
		Success:     true,
		Status:      StatusCompleted,
		Message:     "Phone number updated successfully",
		PhoneNumber: phoneNumber,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}
