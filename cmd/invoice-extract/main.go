// Command invoice-extract runs the invoice extraction pipeline over PDFs on
// disk and writes a Tally import spreadsheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/shopspring/decimal"

	"github.com/garyjia/tally-invoice-extractor/internal/application/port"
	"github.com/garyjia/tally-invoice-extractor/internal/application/service"
	"github.com/garyjia/tally-invoice-extractor/internal/config"
	"github.com/garyjia/tally-invoice-extractor/internal/export"
	"github.com/garyjia/tally-invoice-extractor/internal/infrastructure/pdftext"
	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

const version = "1.1.0"

const (
	formatXLSX = "xlsx"
	formatCSV  = "csv"
)

var errNoRecords = errors.New("no invoices could be processed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := ff.NewFlagSet("invoice-extract")
	var (
		output      = fs.String('o', "output", "tally_import.xlsx", "output file (.xlsx or .csv)")
		format      = fs.StringLong("format", "", "output format: xlsx or csv (default: from output extension)")
		engine      = fs.StringLong("engine", config.EngineFitz, "text engine: fitz or pdf")
		noFallback  = fs.BoolLong("no-fallback", "do not retry with the other text engine")
		strict      = fs.BoolLong("strict", "validate PDF structure with pdfcpu before extraction")
		workers     = fs.IntLong("workers", 0, "concurrent files (default: number of CPUs)")
		tolerance   = fs.StringLong("tolerance", "0.01", "reconciliation tolerance in rupees")
		maxSize     = fs.IntLong("max-file-size", int(utils.DefaultMaxFileSize), "per-file size limit in bytes")
		logLevel    = fs.StringLong("log-level", "warn", "log level: debug, info, warn, error")
		showVersion = fs.BoolLong("version", "show version information")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(config.EnvPrefix)); err != nil {
		fmt.Fprintf(stderr, "usage: invoice-extract [flags] <file.pdf|dir>...\n\n%s\n", ffhelp.Flags(fs))
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}

	outFormat, err := resolveFormat(*format, *output)
	if err != nil {
		return err
	}
	tol, err := decimal.NewFromString(*tolerance)
	if err != nil {
		return fmt.Errorf("invalid --tolerance %q: %w", *tolerance, err)
	}

	paths, err := collectPDFs(fs.GetArgs())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files given")
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{Level: *logLevel, OutputPath: "stderr", Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	kv := utils.NewKVLogger(logger)

	extractor, err := pdftext.New(*engine, !*noFallback, kv)
	if err != nil {
		return err
	}
	var validator port.PDFValidator
	if *strict {
		validator = pdftext.NewStructureValidator()
	}

	files, err := readFiles(paths)
	if err != nil {
		return err
	}

	batch := service.NewBatchService(extractor, validator, service.BatchConfig{
		Workers:     *workers,
		MaxFileSize: int64(*maxSize),
		Tolerance:   tol,
	}, kv)
	result := batch.ProcessBatch(ctx, files)

	for _, e := range result.Errors {
		fmt.Fprintf(stderr, "skipped %s: %s\n", e.Filename, e.Error)
	}
	for _, r := range result.Records {
		if r.Reconciliation.Mismatch() {
			fmt.Fprintf(stderr, "warning: %s (%s): %s\n", r.Filename, r.InvoiceNo, r.Reconciliation.Message)
		}
	}
	if result.Empty() {
		return errNoRecords
	}

	var body []byte
	switch outFormat {
	case formatCSV:
		body, err = export.WriteCSV(result.Records)
	default:
		body, err = export.WriteXLSX(result.Records)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", outFormat, err)
	}
	if err := os.WriteFile(*output, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}

	fmt.Fprintf(stdout, "wrote %d invoice(s) to %s (%d skipped, %d with mismatched totals)\n",
		result.Processed, *output, result.Failed, result.Mismatches)
	return nil
}

// resolveFormat picks the output format from the flag or the file extension
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch strings.ToLower(format) {
	case formatXLSX, "":
		return formatXLSX, nil
	case formatCSV:
		return formatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// collectPDFs expands directories into the .pdf files beneath them. Files
// named explicitly are kept regardless of extension so validation can
// report them.
func collectPDFs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func readFiles(paths []string) ([]service.UploadFile, error) {
	files := make([]service.UploadFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, service.UploadFile{Filename: filepath.Base(p), Content: content})
	}
	return files, nil
}
