package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of fetched pages after which the browser is
// replaced by a fresh process.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process. Fetches are counted and the
// process is replaced once the count reaches the limit, which keeps memory
// growth of long batch runs bounded. Tabs opened by a Bridge are not counted.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	bin      string
	maxPages int64
	pages    atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are fetched before the browser is
// replaced. Zero or less disables recycling.
func WithMaxPages(n int64) ManagerOption {
	return func(m *BrowserManager) {
		m.maxPages = n
	}
}

// WithBin sets the Chrome executable. By default rod looks up a local
// installation and downloads one if none is found.
func WithBin(path string) ManagerOption {
	return func(m *BrowserManager) {
		m.bin = path
	}
}

// NewBrowserManager launches a headless browser. Close must be called to
// stop it.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.launch(); err != nil {
		return nil, err
	}
	return m, nil
}

// Browser returns the running browser, starting a replacement first when the
// page limit has been reached.
func (m *BrowserManager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxPages > 0 && m.pages.Load() >= m.maxPages {
		m.recycle()
	}
	return m.browser
}

// PageDone records a fetched page toward the recycling limit.
func (m *BrowserManager) PageDone() {
	m.pages.Add(1)
}

// LauncherPID returns the process ID of the launched browser, or zero when
// none is running.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}

// Close stops the browser. Subsequent calls do nothing.
func (m *BrowserManager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdown()
}

func (m *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if m.bin != "" {
		l = l.Bin(m.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (m *BrowserManager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle must be called with mu held. The old browser stays in use when a
// replacement cannot be started.
func (m *BrowserManager) recycle() {
	oldBrowser, oldLauncher := m.browser, m.launcher
	if err := m.launch(); err != nil {
		m.browser, m.launcher = oldBrowser, oldLauncher
		return
	}
	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	m.pages.Store(0)
}
