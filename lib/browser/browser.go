package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	// upper bound on a single page load
	NavigationTimeout = time.Second * 30
	// upper bound on waiting for an element to appear after load
	ElementTimeout = time.Second * 10
)

// Session owns one headless browser instance. It is not safe for
// concurrent use; concurrent scrapes should each open their own
// session. Release must run on every exit path.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewSession(ctx context.Context) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelTask()
		cancelAlloc()
	}

	// an empty task list forces the browser process to start now, so
	// launch failures surface here instead of on the first navigation
	if err := chromedp.Run(taskCtx); err != nil {
		cancel()
		return nil, err
	}

	return &Session{ctx: taskCtx, cancel: cancel}, nil
}

func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Release() {
	s.cancel()
}

func (s *Session) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// NavigateForResponse loads the url and returns the main document's
// network response, so callers can check the status code.
func (s *Session) NavigateForResponse(url string, timeout time.Duration) (*network.Response, error) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.RunResponse(ctx, chromedp.Navigate(url))
}

func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Evaluate runs a script in the page and unmarshals its result into
// out, which follows chromedp.Evaluate semantics.
func (s *Session) Evaluate(script string, out any) error {
	return chromedp.Run(s.ctx, chromedp.Evaluate(script, out))
}
