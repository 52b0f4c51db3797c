package alleviate

import (
	"context"
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/zaljabir/alleviate-api/pkg/config"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720
)

// PlaywrightLauncher launches isolated Chromium sessions off a single
// Playwright driver started at boot. Sessions share nothing: each Launch
// produces its own browser process, context, and page.
type PlaywrightLauncher struct {
	logger *zap.Logger
	cfg    config.Config
	pw     *playwright.Playwright
}

// NewPlaywrightLauncher installs browser binaries if needed and starts the
// Playwright driver. Driver output is discarded so it cannot pollute the
// structured log stream.
func NewPlaywrightLauncher(logger *zap.Logger, cfg config.Config) (*PlaywrightLauncher, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	return &PlaywrightLauncher{
		logger: logger,
		cfg:    cfg,
		pw:     pw,
	}, nil
}

// Launch starts a fresh headless browser session. The caller owns the
// returned session and must Close it on every exit path.
func (l *PlaywrightLauncher) Launch(_ context.Context) (Session, error) {
	browser, err := l.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewportWidth,
			Height: viewportHeight,
		},
	})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	page.SetDefaultTimeout(float64(l.cfg.NavTimeout.Milliseconds()))

	return &playwrightSession{
		logger:     l.logger,
		cfg:        l.cfg,
		browser:    browser,
		browserCtx: browserCtx,
		page:       page,
	}, nil
}

// Shutdown stops the Playwright driver. Call once, after the HTTP server has
// drained — in-flight sessions die with the driver.
func (l *PlaywrightLauncher) Shutdown() error {
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}
