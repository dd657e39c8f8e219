package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Launcher implements Factory on top of playwright. The playwright driver is
// started once, lazily; every Open launches a dedicated browser process so
// each scrape gets a fresh fingerprint.
type Launcher struct {
	mu       sync.Mutex
	pw       *playwright.Playwright
	headless bool
	cookies  []playwright.OptionalCookie
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithHeadless toggles headless mode (default true).
func WithHeadless(headless bool) LauncherOption {
	return func(l *Launcher) { l.headless = headless }
}

// WithCookies preloads cookies into every new browser context.
func WithCookies(cookies []playwright.OptionalCookie) LauncherOption {
	return func(l *Launcher) { l.cookies = cookies }
}

func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{headless: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Launcher) driver() (*playwright.Playwright, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pw != nil {
		return l.pw, nil
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright driver: %w", err)
	}
	l.pw = pw
	return pw, nil
}

// Open launches a new browser process with a fresh context and page.
func (l *Launcher) Open(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pw, err := l.driver()
	if err != nil {
		return nil, err
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.headless),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-extensions",
			"--disable-notifications",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if len(l.cookies) > 0 {
		if err := bctx.AddCookies(l.cookies); err != nil {
			log.Printf("⚠️ Could not add cookies to context: %v", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &playwrightPage{browser: b, page: page}, nil
}

// Close stops the playwright driver. Open sessions must be closed first.
func (l *Launcher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pw == nil {
		return nil
	}
	err := l.pw.Stop()
	l.pw = nil
	return err
}

type playwrightPage struct {
	browser playwright.Browser
	page    playwright.Page
}

func (p *playwrightPage) Navigate(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if strings.Contains(err.Error(), "Timeout") {
			return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
		}
		return err
	}
	return nil
}

func (p *playwrightPage) Settle(d time.Duration) {
	time.Sleep(d)
}

func (p *playwrightPage) Evaluate(script string) (any, error) {
	return p.page.Evaluate(script)
}

func (p *playwrightPage) ClickIfVisible(selector string) bool {
	loc := p.page.Locator(selector).First()
	visible, err := loc.IsVisible()
	if err != nil || !visible {
		return false
	}
	if err := loc.ScrollIntoViewIfNeeded(); err != nil {
		return false
	}
	if err := loc.Click(playwright.LocatorClickOptions{
		Force:   playwright.Bool(true),
		Timeout: playwright.Float(2000),
	}); err != nil {
		return false
	}
	return true
}

func (p *playwrightPage) ScrollToBottom() {
	humanScroll(p.page)
}

func (p *playwrightPage) Close() error {
	if err := p.page.Close(); err != nil {
		log.Printf("⚠️ Failed to close page: %v", err)
	}
	return p.browser.Close()
}
