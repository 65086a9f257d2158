package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-tabulator/internal/api"
	"github.com/insightdelivered/statement-tabulator/internal/bank"
	"github.com/insightdelivered/statement-tabulator/internal/engine"
	"github.com/insightdelivered/statement-tabulator/internal/extractor"
	"github.com/insightdelivered/statement-tabulator/internal/writer"
)

const version = "1.0.0"

func main() {
	bankFlag := flag.String("bank", "", "Bank key (e.g. sbi, icici)")
	configFlag := flag.String("config", "", "Path to a bank configuration YAML (overrides --bank)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	serveFlag := flag.String("serve", "", "Run the HTTP API on this address (e.g. :8080) instead of converting files")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Tabulator
Converts bank statement PDFs into normalized transaction tables
(Date, Description, Debit Amt, Credit Amt, Balance).

Usage:
  statement-tabulator --bank=<key> [flags] <input.pdf> [input2.pdf ...]
  statement-tabulator --serve=:8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement
  statement-tabulator --bank=sbi statement.pdf

  # Custom output path
  statement-tabulator --bank=icici --output=transactions.csv statement.pdf

  # Bank layout from a YAML file
  statement-tabulator --config=mybank.yaml statement.pdf

Built-in banks: %s
`, strings.Join(bank.DefaultRegistry().Banks(), ", "))
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-tabulator v%s\n", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	banks := bank.DefaultRegistry()
	source := extractor.NewPDFSource()

	if *serveFlag != "" {
		app := fiber.New()
		h := &api.Handler{Banks: banks, Source: source, Log: log}
		h.Register(app)
		fmt.Printf("Listening on %s\n", *serveFlag)
		if err := app.Listen(*serveFlag); err != nil {
			fatalf("Server failed: %v\n", err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := resolveConfig(banks, *bankFlag, *configFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, cfg, source, *outputFlag, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func resolveConfig(banks *bank.Registry, key, configPath string) (*bank.Config, error) {
	if configPath != "" {
		return bank.Load(configPath)
	}
	if key == "" {
		return nil, fmt.Errorf("no bank specified; use --bank or --config. Available: %s",
			strings.Join(banks.Banks(), ", "))
	}
	cfg := banks.Get(key)
	if cfg == nil {
		return nil, fmt.Errorf("unsupported bank %q. Available: %s",
			key, strings.Join(banks.Banks(), ", "))
	}
	return cfg, nil
}

func processFile(inputPath string, cfg *bank.Config, source engine.TableSource, outputPath string, log *slog.Logger) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)
	fmt.Printf("  Using %s layout\n", cfg.Name)

	eng := engine.New(source, cfg.Options(log))
	table, err := eng.Extract(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("  Found %d transaction(s)\n", len(table.Rows))
	if len(table.Rows) == 0 {
		fmt.Println("  Warning: no transactions found. The PDF layout may not match this bank configuration.")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{}
	if err := w.WriteToFile(outPath, table); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
