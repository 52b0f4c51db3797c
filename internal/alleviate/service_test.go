package alleviate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaljabir/alleviate-api/internal/rate"
	"github.com/zaljabir/alleviate-api/pkg/config"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeSession struct {
	loginFn    func(ctx context.Context, creds Credentials) (bool, error)
	saveFn     func(ctx context.Context, phoneNumber string) (bool, error)
	closeErr   error
	closeCalls int
}

func (f *fakeSession) Login(ctx context.Context, creds Credentials) (bool, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, creds)
	}
	return true, nil
}

func (f *fakeSession) SavePhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, phoneNumber)
	}
	return true, nil
}

func (f *fakeSession) Close() error {
	f.closeCalls++
	return f.closeErr
}

type fakeLauncher struct {
	launchFn func(ctx context.Context) (Session, error)
	launches int
}

func (f *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	f.launches++
	if f.launchFn != nil {
		return f.launchFn(ctx)
	}
	return &fakeSession{}, nil
}

func newTestService(launcher SessionLauncher, gate *rate.Gate) *Service {
	cfg := config.Config{SessionSlotWait: time.Second}
	if gate == nil {
		gate = rate.NewGate(4)
	}
	return NewService(cfg, zap.NewNop(), launcher, gate)
}

var testCreds = Credentials{Username: "jsmith@example.com", Password: "hunter2"}

// ─── UpdatePhoneNumber ────────────────────────────────────────────────────────

func TestUpdatePhoneNumber_Success(t *testing.T) {
	session := &fakeSession{
		loginFn: func(_ context.Context, creds Credentials) (bool, error) {
			assert.Equal(t, testCreds, creds)
			return true, nil
		},
		saveFn: func(_ context.Context, phoneNumber string) (bool, error) {
			assert.Equal(t, "+15551234567", phoneNumber)
			return true, nil
		},
	}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "+15551234567", result.PhoneNumber)
	assert.Equal(t, "Phone number updated successfully", result.Message)
	assert.WithinDuration(t, time.Now().UTC(), result.UpdatedAt, 5*time.Second)
	assert.Equal(t, 1, launcher.launches)
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_LoginRejected(t *testing.T) {
	session := &fakeSession{
		loginFn: func(_ context.Context, _ Credentials) (bool, error) { return false, nil },
		saveFn: func(_ context.Context, _ string) (bool, error) {
			t.Fatal("save must not run after a rejected login")
			return false, nil
		},
	}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.LoginFailed)
	assert.Equal(t, "Login failed", result.Message)
	assert.Empty(t, result.Status)
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_SaveRejected(t *testing.T) {
	session := &fakeSession{
		saveFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.False(t, result.LoginFailed)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Phone number update failed", result.Message)
	assert.Equal(t, "+15551234567", result.PhoneNumber)
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_LaunchFault(t *testing.T) {
	launcher := &fakeLauncher{
		launchFn: func(_ context.Context) (Session, error) {
			return nil, fmt.Errorf("chromium missing")
		},
	}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "launch browser session")
}

func TestUpdatePhoneNumber_FaultDuringLogin_ReleasesSession(t *testing.T) {
	session := &fakeSession{
		loginFn: func(_ context.Context, _ Credentials) (bool, error) {
			return false, fmt.Errorf("timeout waiting for selector")
		},
	}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "login sequence")
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_FaultDuringSave_ReleasesSession(t *testing.T) {
	session := &fakeSession{
		saveFn: func(_ context.Context, _ string) (bool, error) {
			return false, fmt.Errorf("navigation timeout")
		},
	}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "save phone number")
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_CloseErrorDoesNotMaskOutcome(t *testing.T) {
	session := &fakeSession{closeErr: fmt.Errorf("browser already gone")}
	launcher := &fakeLauncher{launchFn: func(_ context.Context) (Session, error) { return session, nil }}
	svc := newTestService(launcher, nil)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, session.closeCalls)
}

func TestUpdatePhoneNumber_GateSaturated(t *testing.T) {
	gate := rate.NewGate(1)
	require.NoError(t, gate.Acquire(context.Background())) // occupy the only slot

	launcher := &fakeLauncher{}
	cfg := config.Config{SessionSlotWait: 30 * time.Millisecond}
	svc := NewService(cfg, zap.NewNop(), launcher, gate)

	result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	assert.ErrorIs(t, err, ErrSessionsSaturated)
	assert.Nil(t, result)
	assert.Equal(t, 0, launcher.launches)
}

func TestUpdatePhoneNumber_ReleasesGateSlot(t *testing.T) {
	gate := rate.NewGate(1)
	launcher := &fakeLauncher{}
	cfg := config.Config{SessionSlotWait: time.Second}
	svc := NewService(cfg, zap.NewNop(), launcher, gate)

	_, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, 0, gate.InUse())
}

// Two identical successful calls drive two real automation runs; nothing in
// the service deduplicates them.
func TestUpdatePhoneNumber_NoDeduplication(t *testing.T) {
	launcher := &fakeLauncher{}
	svc := newTestService(launcher, nil)

	for i := 0; i < 2; i++ {
		result, err := svc.UpdatePhoneNumber(context.Background(), testCreds, "+15551234567")
		require.NoError(t, err)
		assert.True(t, result.Success)
	}
	assert.Equal(t, 2, launcher.launches)
}
