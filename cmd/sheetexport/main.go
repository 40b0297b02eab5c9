package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"

	"sheetexport/internal/config"
	"sheetexport/internal/infrastructure"
	"sheetexport/internal/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command line flags.
type options struct {
	profile     string
	in          string
	out         string
	headerStart string
	headerEnd   string
	noBold      bool
	preview     bool
	list        bool
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("sheetexport", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.profile, "profile", "", "export profile: hooks | trades | tickers")
	fs.StringVar(&opts.in, "in", "", "input records file (.json or .parquet)")
	fs.StringVar(&opts.out, "out", "", "destination document (.xlsx, .xlsm or .csv)")
	fs.StringVar(&opts.headerStart, "header-start", "", "top-left header cell (default A1)")
	fs.StringVar(&opts.headerEnd, "header-end", "", "bottom-right header cell (default last column of row 1)")
	fs.BoolVar(&opts.noBold, "no-bold", false, "do not embolden the header row")
	fs.BoolVar(&opts.preview, "preview", false, "print the projected table instead of writing a document")
	fs.BoolVar(&opts.list, "list", false, "list the available profiles and exit")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.list {
		return opts, nil
	}
	if opts.profile == "" || opts.in == "" {
		return nil, fmt.Errorf("-profile and -in are required")
	}
	if !opts.preview && opts.out == "" {
		return nil, fmt.Errorf("-out is required unless -preview is set")
	}
	if (opts.headerStart == "") != (opts.headerEnd == "") {
		return nil, fmt.Errorf("-header-start and -header-end must be given together")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := infrastructure.NewLoggerWithWriter(stderr, &slog.HandlerOptions{Level: level})

	svc, err := services.NewExportService(cfg.Export, services.DefaultRegistry(), nil, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if opts.list {
		printProfiles(stdout, svc.Profiles())
		return 0
	}

	req := services.ExportRequest{
		Profile:     opts.profile,
		Destination: opts.out,
		HeaderStart: opts.headerStart,
		HeaderEnd:   opts.headerEnd,
		Source:      opts.in,
		Local:       true,
	}
	if opts.noBold {
		bold := false
		req.BoldHeaders = &bold
	}

	if opts.preview {
		headers, rows, err := svc.Preview(req)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		printTable(stdout, headers, rows)
		return 0
	}

	// Relative destinations are relative to the working directory here, not
	// to the configured output directory.
	if req.Destination, err = filepath.Abs(opts.out); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	result, err := svc.Export(ctx, req)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %d rows x %d columns to %s (header %s) in %dms\n",
		result.Rows, result.Columns, result.Path, result.HeaderRange, result.DurationMS)
	return 0
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()
}

func printProfiles(w io.Writer, profiles []services.ProfileInfo) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Profile", "Columns", "Description"})
	for _, p := range profiles {
		table.Append([]string{p.Name, fmt.Sprint(p.Columns), p.Description})
	}
	table.Render()
}
