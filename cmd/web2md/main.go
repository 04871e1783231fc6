package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/web2md"
	"github.com/fwojciec/web2md/batch"
	"github.com/fwojciec/web2md/clipboard"
	"github.com/fwojciec/web2md/fs"
	"github.com/fwojciec/web2md/goldmark"
	"github.com/fwojciec/web2md/goquery"
	"github.com/fwojciec/web2md/htmltomarkdown"
	w2mhttp "github.com/fwojciec/web2md/http"
	"github.com/fwojciec/web2md/readability"
	"github.com/fwojciec/web2md/rod"
	"github.com/fwojciec/web2md/sqlite"
	wslog "github.com/fwojciec/web2md/slog"
	"github.com/fwojciec/web2md/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor WEB2MD_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stdin is read when a command's source is "-".
	Stdin io.Reader

	// Services for end-to-end testing. Nil services are created by Run.
	Documents web2md.DocumentService
	Fetcher   web2md.Fetcher
	Clipboard web2md.Clipboard
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("web2md"),
		kong.Description("Convert web pages to clean Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'web2md --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if needsHistory(cmd, cli) {
		deps.Documents = m.Documents
		if deps.Documents == nil {
			m.DB = sqlite.NewDB(cli.DB)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set WEB2MD_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
			}
			defer m.Close()
			deps.Documents = sqlite.NewDocumentService(m.DB)
		}
	}

	switch cmd {
	case "convert":
		closeFn, err := m.wireConvert(deps, cli)
		if err != nil {
			return err
		}
		defer closeFn()
	case "batch":
		closeFn, err := m.wireBatch(deps, cli)
		if err != nil {
			return err
		}
		defer closeFn()
	case "compare":
		engine, err := newEngine(cli.Compare.ConversionFlags)
		if err != nil {
			return err
		}
		deps.Converter = wslog.NewLoggingConverter(engine, deps.Logger)
		deps.Reference = wslog.NewLoggingConverter(htmltomarkdown.NewConverter(engine), deps.Logger)
		deps.Fetcher = m.fetcher(cli, deps.Logger)
	case "preview":
		deps.Renderer = goldmark.NewRenderer()
	}

	return kongCtx.Run(deps)
}

func needsHistory(cmd string, cli *CLI) bool {
	switch cmd {
	case "convert":
		return !cli.Convert.NoHistory
	case "batch":
		return cli.Batch.History && !cli.Batch.List
	case "history":
		return true
	}
	return false
}

func (m *Main) fetcher(cli *CLI, logger *slog.Logger) web2md.Fetcher {
	f := m.Fetcher
	if f == nil {
		f = w2mhttp.NewFetcher(w2mhttp.WithTimeout(cli.Timeout))
	}
	return wslog.NewLoggingFetcher(f, logger)
}

func (m *Main) wireConvert(deps *Dependencies, cli *CLI) (func(), error) {
	engine, err := newEngine(cli.Convert.ConversionFlags)
	if err != nil {
		return nil, err
	}
	deps.Converter = wslog.NewLoggingConverter(engine, deps.Logger)
	deps.Fetcher = m.fetcher(cli, deps.Logger)

	downloads := fs.NewDownloader(cli.Convert.Out)
	deps.Downloads = wslog.NewLoggingDownloadSink(downloads, deps.Logger)
	deps.DownloadPath = downloads.Path

	deps.Clipboard = m.Clipboard
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.New(clipboard.WithTerminal(clipboard.Terminal(os.Stderr)))
	}

	if !cli.Convert.Browser {
		return func() {}, nil
	}
	manager, err := rod.NewBrowserManager(rod.WithBin(cli.Chrome))
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set WEB2MD_CHROME")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	bridge := rod.NewBridge(manager, deps.Converter)
	deps.Bridge = bridge
	return func() {
		_ = bridge.Close()
		_ = manager.Close()
	}, nil
}

func (m *Main) wireBatch(deps *Dependencies, cli *CLI) (func(), error) {
	c := cli.Batch
	filter, err := web2md.CompileURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return nil, err
	}
	name, err := batchDirName(c.URL, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", web2md.ErrorMessage(err))
		return nil, err
	}
	engine, err := newEngine(c.ConversionFlags)
	if err != nil {
		return nil, err
	}
	converter := wslog.NewLoggingConverter(engine, deps.Logger)
	store := fs.NewFileStore(c.Out, name)

	fetcher, err := m.batchFetcher(deps, cli, converter)
	if err != nil {
		return nil, err
	}

	var links web2md.LinkExtractor
	if c.Follow {
		links = goquery.LinkExtractor{}
	}
	deps.Runner = &batch.Runner{
		URLs:        wslog.NewLoggingURLSource(w2mhttp.NewSitemapSource(nil, filter), deps.Logger),
		Fetcher:     fetcher,
		Converter:   converter,
		Store:       store,
		Documents:   deps.Documents,
		Links:       links,
		RateLimiter: batch.NewDomainLimiter(c.Rate),
		Filter:      filter,
		Options:     c.Options(),
		Concurrency: c.Concurrency,
		MaxPages:    c.Max,
		OnRetry: func(url string, attempt int, err error) {
			deps.Logger.Debug("retrying fetch", "url", url, "attempt", attempt, "err", err)
		},
	}
	deps.OutputDir = store.Dir()
	return func() { _ = fetcher.Close() }, nil
}

func (m *Main) batchFetcher(deps *Dependencies, cli *CLI, conv web2md.Converter) (web2md.Fetcher, error) {
	static := m.fetcher(cli, deps.Logger)
	if cli.Batch.Browser == "never" || cli.Batch.List {
		return static, nil
	}

	browser, err := rod.NewFetcher(rod.WithBin(cli.Chrome))
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set WEB2MD_CHROME")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logged := wslog.NewLoggingFetcher(browser, deps.Logger)
	if cli.Batch.Browser == "always" {
		_ = static.Close()
		return logged, nil
	}
	return &batch.AutoFetcher{
		Static:    static,
		Browser:   logged,
		Converter: conv,
		Options:   cli.Batch.Options(),
		OnDecide: func(useBrowser bool) {
			if useBrowser {
				fmt.Fprintln(deps.Stderr, "Site renders content with JavaScript, using the browser")
			}
		},
	}, nil
}

// newEngine builds the rule based converter selected by flags.
func newEngine(f ConversionFlags) (*goquery.Converter, error) {
	opts := []goquery.Option{goquery.WithSelector(f.Selector)}
	switch f.Extractor {
	case "readability":
		opts = append(opts, goquery.WithSmartExtractor(readability.NewExtractor()))
	case "trafilatura":
		opts = append(opts, goquery.WithSmartExtractor(trafilatura.NewExtractor()))
	case "", "none":
	default:
		return nil, web2md.Errorf(web2md.EINVALID, "unknown extractor %q", f.Extractor)
	}
	return goquery.NewConverter(opts...), nil
}

// batchDirName returns name, or the host of siteURL when name is empty.
func batchDirName(siteURL, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	u, err := url.Parse(siteURL)
	if err != nil || u.Hostname() == "" {
		return "", web2md.Errorf(web2md.EINVALID, "invalid site URL: %q", siteURL)
	}
	return u.Hostname(), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "web2md.db"
	}
	dir := filepath.Join(home, ".web2md")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}
