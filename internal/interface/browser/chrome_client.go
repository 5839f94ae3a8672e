// Package browser provides the chromedp-backed implementation of the
// render client capability.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"farewatch-service/internal/domain/render"
	"farewatch-service/pkg/logger"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

const pollInterval = 250 * time.Millisecond

// The results surface and error banner are matched on rendered markup
// fragments. They are kept here, next to the session, so the matching
// strategy can change without touching the attempt loop.
var conditionExprs = map[render.Condition]string{
	render.CondResultsCard: `!!(document.querySelector('[role="main"] li') || document.querySelector('.pIav2d'))`,
	render.CondErrorBanner: `document.body.innerText.includes('Algo deu errado')`,
}

const visibleTextExpr = `(document.querySelector('[role="main"] li') || document.querySelector('.pIav2d') || document.body).innerText`

// ChromeClient implements render.Client using headless Chrome
type ChromeClient struct {
	logger   logger.Logger
	execPath string
}

// NewChromeClient creates a new Chrome render client. execPath may be empty
// to use the chromedp default lookup.
func NewChromeClient(log logger.Logger, execPath string) *ChromeClient {
	return &ChromeClient{
		logger:   log,
		execPath: execPath,
	}
}

// NewSession launches a browser and opens one page. The caller owns the
// session for the lifetime of a cycle and must Close it.
func (c *ChromeClient) NewSession(ctx context.Context) (render.Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(userAgent),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so acquisition failures surface here, where
	// they are cycle-fatal, instead of on the first navigation.
	if err := chromedp.Run(taskCtx); err != nil {
		taskCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	c.logger.Info("Browser session started")
	return &chromeSession{
		ctx:     taskCtx,
		logger:  c.logger,
		cancels: []context.CancelFunc{taskCancel, allocCancel},
	}, nil
}

type chromeSession struct {
	ctx       context.Context
	logger    logger.Logger
	cancels   []context.CancelFunc
	closeOnce sync.Once
}

// Navigate loads the target URL with a ceiling timeout
func (s *chromeSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timed, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(timed, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return render.ErrNavigationTimeout
		}
		return err
	}
	return nil
}

// WaitForAny polls the page until one of the requested conditions holds or
// the wait budget expires. Expiry returns CondNone with no error.
func (s *chromeSession) WaitForAny(ctx context.Context, conds []render.Condition, timeout time.Duration) (render.Condition, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for _, cond := range conds {
			expr, ok := conditionExprs[cond]
			if !ok {
				continue
			}
			var found bool
			if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &found)); err != nil {
				return render.CondNone, err
			}
			if found {
				return cond, nil
			}
		}

		if time.Now().After(deadline) {
			return render.CondNone, nil
		}

		select {
		case <-ctx.Done():
			return render.CondNone, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ReadVisibleText returns the rendered text of the results surface,
// falling back to the whole body when no card is present
func (s *chromeSession) ReadVisibleText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var text string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(visibleTextExpr, &text)); err != nil {
		return "", err
	}
	return text, nil
}

// ClickIfPresent clicks the first button whose label contains the given
// text and reports whether anything was clicked
func (s *chromeSession) ClickIfPresent(ctx context.Context, label string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	expr := fmt.Sprintf(`(() => {
		const btn = Array.from(document.querySelectorAll('button')).find(b => b.innerText.includes(%q));
		if (btn) { btn.click(); return true; }
		return false;
	})()`, label)

	var clicked bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

// Close shuts the browser down. Closing an already-closed session is not
// an error.
func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		for _, cancel := range s.cancels {
			cancel()
		}
		s.logger.Info("Browser session closed")
	})
	return nil
}
