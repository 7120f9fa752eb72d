package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cassieopeanuts/scrabtopus/crawl"
	"github.com/cassieopeanuts/scrabtopus/fs"
	shttp "github.com/cassieopeanuts/scrabtopus/http"
	"github.com/cassieopeanuts/scrabtopus/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPaths are YAML files loaded before flags are applied.
	// Missing files are skipped.
	ConfigPaths []string

	// SQLite database opened for commands that need one.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{defaultConfigPath()},
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
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrabtopus"),
		kong.Description("Crawl a website and extract its pages into header-delimited sections."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"max_pages":     strconv.Itoa(crawl.DefaultMaxPages),
			"delay":         crawl.DefaultDelay.String(),
			"timeout":       shttp.DefaultFetchTimeout.String(),
			"max_body_size": strconv.Itoa(shttp.DefaultMaxBodySize),
			"user_agent":    shttp.DefaultUserAgent,
			"output":        fs.DefaultOutputPath,
			"db_path":       defaultDBPath(),
		},
		kong.DefaultEnvars("SCRABTOPUS"),
		kong.Configuration(LoadYAMLConfig, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrabtopus --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = NewLogger(stderr, cli.LogFormat, cli.Verbose)

	switch cmd, _, _ := strings.Cut(kongCtx.Command(), " "); cmd {
	case "crawl":
		if err := m.wireCrawl(deps, &cli.Crawl, cli.Verbose); err != nil {
			return err
		}
		defer m.Close()
	case "runs":
		if err := m.openDB(cli.Runs.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = sqlite.NewStore(m.DB, "")
	case "show":
		if err := m.openDB(cli.Show.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = sqlite.NewStore(m.DB, "")
	}

	return kongCtx.Run(deps)
}

// openDB opens the SQLite database at path, creating its directory.
func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set SCRABTOPUS_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}
