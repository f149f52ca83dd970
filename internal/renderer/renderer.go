// Package renderer drives a headless browser to fully render a target
// page and hand back a live document the capture loop can scroll and
// screenshot. Close the returned Document on every exit path: the handle
// owns a browser tab for the whole extraction run.
package renderer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
)

// heightExpr takes the max over six DOM size properties. No single one is
// reliable: pages with dynamically injected review lists report truncated
// heights on body.scrollHeight alone.
const heightExpr = `Math.max(
	document.body.scrollHeight, document.body.offsetHeight, document.body.clientHeight,
	document.documentElement.scrollHeight, document.documentElement.offsetHeight, document.documentElement.clientHeight
)`

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds renderer settings.
type Config struct {
	ViewportWidth  int64
	ViewportHeight int64
	UserAgent      string
	LoadTimeout    time.Duration // bound on navigate + ready + settle
	SettleDelay    time.Duration // paint time after the initial full scroll
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ViewportWidth:  1920,
		ViewportHeight: 1000,
		UserAgent:      defaultUserAgent,
		LoadTimeout:    60 * time.Second,
		SettleDelay:    2 * time.Second,
	}
}

// Document is the capability surface the pipeline needs from a rendered
// page. The chromedp-backed implementation is *Page; tests substitute
// fakes.
type Document interface {
	// Height is the full rendered document height in CSS pixels.
	Height() int64

	// Title is the document title, best effort.
	Title() string

	// ScrollTo scrolls the viewport to vertical offset y.
	ScrollTo(ctx context.Context, y int64) error

	// Screenshot captures the current viewport as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the underlying browser tab. Safe to call more
	// than once.
	Close() error
}

// Renderer opens pages in isolated browser contexts off one shared
// allocator.
type Renderer struct {
	cfg      Config
	allocCtx context.Context
	cancel   context.CancelFunc
}

// New creates a renderer with its browser allocator configured.
func New(cfg Config) (*Renderer, error) {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = def.LoadTimeout
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if cfg.ViewportWidth == 0 {
		cfg.ViewportWidth = def.ViewportWidth
	}
	if cfg.ViewportHeight == 0 {
		cfg.ViewportHeight = def.ViewportHeight
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(int(cfg.ViewportWidth), int(cfg.ViewportHeight)),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("renderer allocator created",
		"viewport_width", cfg.ViewportWidth,
		"viewport_height", cfg.ViewportHeight,
		"load_timeout", cfg.LoadTimeout)

	return &Renderer{cfg: cfg, allocCtx: allocCtx, cancel: cancel}, nil
}

// Close releases the shared browser allocator.
func (r *Renderer) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

// Open navigates to targetURL in a fresh browser context, waits for the
// document to be ready, performs the initial full scroll so lazy review
// sections render, and measures total page height. The caller owns the
// returned Document and must Close it.
func (r *Renderer) Open(ctx context.Context, targetURL string) (Document, error) {
	logger.Debug("opening page", "url", targetURL)

	browserCtx, cancelBrowser := chromedp.NewContext(r.allocCtx)

	p := &Page{
		ctx:    browserCtx,
		cancel: cancelBrowser,
	}

	// The load phase is bounded; the tab itself lives until Close.
	loadCtx, cancelLoad := context.WithTimeout(browserCtx, r.cfg.LoadTimeout)
	defer cancelLoad()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelCaller context.CancelFunc
		loadCtx, cancelCaller = context.WithDeadline(loadCtx, deadline)
		defer cancelCaller()
	}

	var height float64
	var html string

	err := chromedp.Run(loadCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.EmulateViewport(r.cfg.ViewportWidth, r.cfg.ViewportHeight),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Scroll to the bottom once so intersection-triggered lazy
		// loading fires before the height is measured.
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(r.cfg.SettleDelay),
		chromedp.Evaluate(heightExpr, &height),
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		p.Close()
		return nil, classify(targetURL, err)
	}

	p.height = int64(height)
	p.title = extractTitle(html)

	logger.Info("page rendered",
		"url", targetURL,
		"title", p.title,
		"height", p.height)

	return p, nil
}

// extractTitle pulls the document title out of the rendered HTML.
func extractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Page is a live rendered document backed by a chromedp browser context.
type Page struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	height int64
	title  string
}

// Height returns the measured full document height.
func (p *Page) Height() int64 { return p.height }

// Title returns the document title.
func (p *Page) Title() string { return p.title }

// ScrollTo scrolls the viewport to vertical offset y.
func (p *Page) ScrollTo(ctx context.Context, y int64) error {
	runCtx, cancel := p.boundedCtx(ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Evaluate(fmt.Sprintf(`window.scrollTo(0, %d)`, y), nil),
	)
	if err != nil {
		return fmt.Errorf("scrolling to %d: %w", y, err)
	}
	return nil
}

// Screenshot captures the current viewport.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	runCtx, cancel := p.boundedCtx(ctx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(runCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return buf, nil
}

// Close releases the browser tab. Idempotent.
func (p *Page) Close() error {
	p.closeOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
	return nil
}

// boundedCtx ties a browser action to both the tab's lifetime and the
// caller's deadline.
func (p *Page) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(p.ctx, deadline)
	}
	return context.WithCancel(p.ctx)
}
