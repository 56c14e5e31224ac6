// Command csvloader parses CSV into records, result sets, JSON, or
// normalized CSV.
//
// With -file or -text it runs once and prints the result to stdout.
// Without a source it serves the HTTP parse API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomysaman/csvloader/internal/config"
	"github.com/tomysaman/csvloader/internal/loader"
	"github.com/tomysaman/csvloader/internal/logging"
	"github.com/tomysaman/csvloader/internal/web"
)

func main() {
	var (
		file      = flag.String("file", "", "path to a CSV file")
		text      = flag.String("text", "", "inline CSV content")
		format    = flag.String("format", "", "output format: records, table, json, or csv")
		delimiter = flag.String("delimiter", "", `field delimiter: one character, or "tab"`)
		limit     = flag.Int("limit", 0, "maximum data rows; <= 0 means unlimited")
		root      = flag.String("root", "", "wrap JSON output under this root name")
		encoding  = flag.String("encoding", "", "file encoding: utf-8, latin1, windows-1251, windows-1252")
		noClean   = flag.Bool("no-cleanup", false, "keep header names as-is")
		profile   = flag.String("profile", "", "apply a named parse profile")
	)
	flag.Parse()

	// Missing .env is fine; environment variables still apply.
	godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	profiles, err := config.LoadProfiles(cfg.Profiles.Path)
	if err != nil {
		slog.Error("failed to load profiles", "path", cfg.Profiles.Path, "error", err)
		os.Exit(1)
	}

	if *file != "" || *text != "" {
		if err := runOnce(cfg, profiles, oneShotArgs{
			file:      *file,
			text:      *text,
			format:    *format,
			delimiter: *delimiter,
			limit:     *limit,
			root:      *root,
			encoding:  *encoding,
			noClean:   *noClean,
			profile:   *profile,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "csvloader: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runServer(cfg, profiles)
}

type oneShotArgs struct {
	file      string
	text      string
	format    string
	delimiter string
	limit     int
	root      string
	encoding  string
	noClean   bool
	profile   string
}

// runOnce performs a single parse and prints the shaped result.
func runOnce(cfg *config.Config, profiles *config.ProfileSet, args oneShotArgs) error {
	opts := loader.DefaultOptions()
	opts.RowLimit = cfg.Parse.DefaultRowLimit
	opts.CleanupColumns = cfg.Parse.CleanupColumns
	if d, err := loader.ParseDelimiter(cfg.Parse.DefaultDelimiter); err == nil {
		opts.Delimiter = d
	}

	if args.profile != "" {
		p, ok := profiles.Get(args.profile)
		if !ok {
			return fmt.Errorf("unknown profile %q", args.profile)
		}
		opts = p.Apply(opts)
	}

	opts.File = args.file
	opts.Text = args.text
	if args.format != "" {
		f, err := loader.ParseFormat(args.format)
		if err != nil {
			return err
		}
		opts.Format = f
	}
	if args.delimiter != "" {
		d, err := loader.ParseDelimiter(args.delimiter)
		if err != nil {
			return err
		}
		opts.Delimiter = d
	}
	if args.limit != 0 {
		opts.RowLimit = args.limit
	}
	if args.root != "" {
		opts.RootName = args.root
	}
	if args.encoding != "" {
		opts.Encoding = args.encoding
	}
	if args.noClean {
		opts.CleanupColumns = false
	}

	res, err := loader.Load(opts)
	if err != nil {
		return err
	}

	switch res.Format {
	case loader.FormatJSON:
		fmt.Println(res.JSON)
	case loader.FormatCSV:
		fmt.Print(res.CSV)
	case loader.FormatTable:
		out, err := json.MarshalIndent(res.Table, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		out, err := json.MarshalIndent(res.Records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

// runServer starts the HTTP API and blocks until shutdown.
func runServer(cfg *config.Config, profiles *config.ProfileSet) {
	srv := web.NewServer(cfg, profiles)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", cfg.Server.Addr(),
			"profiles", profiles.Len(),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
