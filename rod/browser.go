package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before it is
// replaced. Chrome's memory baseline grows with every page and never
// returns, which matters for the long-running API server.
const DefaultRecycleAfter = 75

// browser owns a headless Chrome process and replaces it after recycleAfter
// pages. It is safe for concurrent use.
type browser struct {
	mu           sync.Mutex
	rod          *rod.Browser
	launcher     *launcher.Launcher
	pages        int
	recycleAfter int
	closed       bool
}

func newBrowser(recycleAfter int) (*browser, error) {
	b := &browser{recycleAfter: recycleAfter}
	rb, l, err := launch()
	if err != nil {
		return nil, err
	}
	b.rod, b.launcher = rb, l
	return b, nil
}

// acquire returns the live browser and counts one page against it,
// launching a replacement first if the current one is used up.
// A failed relaunch keeps the old browser.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errors.New("closed")
	}

	if b.recycleAfter > 0 && b.pages >= b.recycleAfter {
		if rb, l, err := launch(); err == nil {
			_ = b.rod.Close()
			b.launcher.Kill()
			b.rod, b.launcher, b.pages = rb, l, 0
		}
	}

	b.pages++
	return b.rod, nil
}

// pid returns the launcher's process ID, or 0 once closed.
func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

// close shuts down Chrome. It is safe to call more than once.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := b.rod.Close()
	b.launcher.Kill()
	b.rod, b.launcher = nil, nil
	return err
}

// launch starts headless Chrome with flags that keep background pages from
// being throttled.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return rb, l, nil
}
