package alleviate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/zaljabir/alleviate-api/pkg/config"
	"github.com/zaljabir/alleviate-api/pkg/utils"
)

// playwrightSession drives one Chromium instance through the target
// platform's login and settings flows.
type playwrightSession struct {
	logger     *zap.Logger
	cfg        config.Config
	browser    playwright.Browser
	browserCtx playwright.BrowserContext
	page       playwright.Page
	closeOnce  sync.Once
}

// Login navigates to the platform's login page, submits the credentials, and
// reports whether the platform accepted them.
//
// The platform answers the login call with HTTP 200 even when the credentials
// are wrong, so the response status alone proves nothing on success. Real
// success is disambiguated by racing the redirect to the authenticated
// trials route against a bounded timer; Playwright cancels whichever side
// loses. This is a workaround for the platform's ambiguous login signal, not
// a pattern to reuse elsewhere.
func (s *playwrightSession) Login(_ context.Context, creds Credentials) (bool, error) {
	loginURL := s.cfg.TargetBaseURL + loginPath
	if _, err := s.page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavTimeout.Milliseconds())),
	}); err != nil {
		return false, fmt.Errorf("navigate to login page: %w", err)
	}

	if err := s.page.GetByLabel(emailLabel).Fill(creds.Username); err != nil {
		return false, fmt.Errorf("fill email field: %w", err)
	}
	if err := s.page.GetByLabel(passwordLabel).Fill(creds.Password); err != nil {
		return false, fmt.Errorf("fill password field: %w", err)
	}

	resp, err := s.page.ExpectResponse("**"+loginPath, func() error {
		return s.page.Locator(`button[type="submit"]`).Click()
	}, playwright.PageExpectResponseOptions{
		Timeout: playwright.Float(float64(s.cfg.LoginResponseTimeout.Milliseconds())),
	})
	if err != nil {
		return false, fmt.Errorf("wait for login response: %w", err)
	}

	if resp.Status() != 200 {
		s.logger.Warn("alleviate.login_rejected",
			zap.Int("status", resp.Status()),
			zap.String("user", utils.MaskUsername(creds.Username)))
		return false, nil
	}

	// 200 may still mean rejection; only the redirect to the authenticated
	// route confirms the login.
	if err := s.page.WaitForURL("**"+trialsPath, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(s.cfg.LoginNavTimeout.Milliseconds())),
	}); err != nil {
		s.logger.Warn("alleviate.login_no_redirect",
			zap.String("user", utils.MaskUsername(creds.Username)))
		return false, nil
	}

	return true, nil
}

// SavePhoneNumber opens the settings area, fills the phone-number field for
// the default site row, and submits the save. Unlike login, save success is
// validated against the actual response status.
func (s *playwrightSession) SavePhoneNumber(_ context.Context, phoneNumber string) (bool, error) {
	settingsURL := s.cfg.TargetBaseURL + settingsPath
	if _, err := s.page.Goto(settingsURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavTimeout.Milliseconds())),
	}); err != nil {
		return false, fmt.Errorf("navigate to settings page: %w", err)
	}

	field, err := s.phoneField()
	if err != nil {
		return false, err
	}
	if err := field.Fill(phoneNumber); err != nil {
		return false, fmt.Errorf("fill phone field: %w", err)
	}

	if _, err := s.page.GetByLabel(siteSelectLabel).SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{defaultSiteOption},
	}); err != nil {
		return false, fmt.Errorf("select default site: %w", err)
	}

	resp, err := s.page.ExpectResponse("**"+settingsPath+"**", func() error {
		return s.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
			Name: saveButtonName,
		}).Click()
	}, playwright.PageExpectResponseOptions{
		Timeout: playwright.Float(float64(s.cfg.SaveResponseTimeout.Milliseconds())),
	})
	if err != nil {
		return false, fmt.Errorf("wait for settings save response: %w", err)
	}

	if resp.Status() != 200 {
		s.logger.Warn("alleviate.save_rejected", zap.Int("status", resp.Status()))
		return false, nil
	}

	// The platform refreshes parts of the settings UI asynchronously after
	// the save response and exposes no completion signal for it. A bounded
	// settle delay is the only synchronization available.
	time.Sleep(s.cfg.SettleDelay)

	return true, nil
}

// Close releases page, context, and browser in order. Idempotent; cleanup
// errors are ignored so a failed teardown step never masks the run's outcome.
func (s *playwrightSession) Close() error {
	s.closeOnce.Do(func() {
		_ = s.page.Close()
		_ = s.browserCtx.Close()
		_ = s.browser.Close()
	})
	return nil
}
