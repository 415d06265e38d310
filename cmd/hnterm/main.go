package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/hnterm/internal/browser"
	"github.com/pders01/hnterm/internal/config"
	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/history"
	"github.com/pders01/hnterm/internal/hnapi"
	"github.com/pders01/hnterm/internal/search"
	"github.com/pders01/hnterm/internal/storage"
	"github.com/pders01/hnterm/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

type options struct {
	configPath     string
	logLevel       string
	generateConfig bool
	version        bool
	quiet          bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "hnterm",
		Short:         "HackerNews in your terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case opts.version:
				printVersion(out)
				return nil
			case opts.generateConfig:
				return generateConfig(out, opts.configPath)
			}
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off); overrides config")
	flags.BoolVar(&opts.generateConfig, "generate-config", false, "Generate default config file")
	flags.BoolVar(&opts.version, "version", false, "Show version information")
	flags.BoolVar(&opts.quiet, "quiet", false, "Skip startup banner")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "hnterm %s\n", Version)
	fmt.Fprintln(out, "HackerNews terminal client")
	fmt.Fprintln(out, "github.com/pders01/hnterm")
}

func generateConfig(out io.Writer, path string) error {
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.GenerateDefaultConfig(path); err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	fmt.Fprintf(out, "Generated default configuration at: %s\n", path)
	return nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(level), cfg.Log.Path); err != nil {
		return err
	}
	defer debuglog.Close()

	if !opts.quiet {
		tui.ShowBanner(Version)
	}

	client, err := hnapi.NewClient(cfg.API)
	if err != nil {
		return err
	}
	searchClient, err := hnapi.NewSearchClient(cfg.API)
	if err != nil {
		return err
	}

	maxID, err := client.FetchMaxItemID(ctx)
	if err != nil {
		return fmt.Errorf("cannot reach HackerNews: %w", err)
	}
	debuglog.Infof("connected, max item id %d", maxID)

	store, err := storage.NewStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveMaxItemID(maxID); err != nil {
		debuglog.Warnf("saving max item id: %v", err)
	}
	if n, err := store.Count(); err == nil {
		debuglog.Infof("%d seen items in %s", n, cfg.Storage.Path)
	}

	seen, closeSeen := openSeenIndex(store, cfg.Storage.SearchIndex)
	defer closeSeen()

	hist, err := history.Load(cfg.Storage.HistoryPath)
	if err != nil {
		debuglog.Warnf("%v", err)
	}

	opener, err := browser.NewOpener(filepath.Dir(cfg.Path()))
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Deps{
		Config:  cfg,
		Gateway: client,
		Search:  searchClient,
		Store:   store,
		Seen:    seen,
		History: hist,
		Opener:  opener,
		Copy:    browser.CopyLink,
		Now:     time.Now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	return err
}

// openSeenIndex opens the bleve index, falling back to scanning the store.
func openSeenIndex(store *storage.Store, indexPath string) (search.Searcher, func()) {
	be, err := search.NewBleveEngine(store, indexPath)
	if err != nil {
		debuglog.Warnf("search index unavailable, using store scan: %v", err)
		return search.NewEngine(store), func() {}
	}
	return be, func() {
		if err := be.Close(); err != nil {
			debuglog.Warnf("closing search index: %v", err)
		}
	}
}
