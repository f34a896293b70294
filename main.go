package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/cep-statement-ledger/internal/api"
	"github.com/insightdelivered/cep-statement-ledger/internal/cleaner"
	"github.com/insightdelivered/cep-statement-ledger/internal/config"
	"github.com/insightdelivered/cep-statement-ledger/internal/extractor"
	"github.com/insightdelivered/cep-statement-ledger/internal/ledger"
	"github.com/insightdelivered/cep-statement-ledger/internal/logger"
	"github.com/insightdelivered/cep-statement-ledger/internal/parser"
	"github.com/insightdelivered/cep-statement-ledger/internal/reconcile"
)

const version = "1.0.0"

func main() {
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to CEP_OUTPUT or compte.csv)")
	workersFlag := flag.Int("workers", 0, "Number of statements processed in parallel (defaults to CEP_WORKERS or the CPU count)")
	envFlag := flag.String("env", "", "Path to a .env configuration file")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `CEP Statement to Ledger Converter

Converts Caisse d'Épargne account statement PDFs (or pre-extracted .txt
files) into a reconciled semicolon-CSV ledger of transactions.

Usage:
  cep-statement-ledger [flags] <input.pdf|input.txt|directory> [...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a directory of monthly statements
  cep-statement-ledger ./statements/

  # Convert specific files to a custom output
  cep-statement-ledger --output=ledger.csv oct.pdf nov.pdf

  # Run the HTTP conversion API
  cep-statement-ledger --serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("cep-statement-ledger v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *outputFlag != "" {
		cfg.Output = *outputFlag
	}
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}

	logger.SetDebug(cfg.Debug)
	log := logger.New()

	if *serveFlag {
		serve(cfg, log)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	inputs, err := collectInputs(flag.Args())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to collect inputs")
	}
	if len(inputs) == 0 {
		log.Fatal().Msg("no .pdf or .txt statement files found")
	}

	led := run(cfg, log, inputs)

	led.Sort()
	if err := led.ExportToFile(cfg.Output); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	summary := led.Summary()
	ev := log.Info().
		Int("transactions", summary.Transactions).
		Str("credit", summary.TotalCredit.StringFixed(2)).
		Str("debit", summary.TotalDebit.StringFixed(2)).
		Int("discrepancies", summary.Discrepancies).
		Str("output", cfg.Output)
	for cat, n := range summary.ByCategory {
		ev = ev.Int(strings.ToLower(string(cat)), n)
	}
	ev.Msg("done")

	if summary.Discrepancies > 0 {
		log.Warn().Msg("some accounts did not reconcile; review the discrepancies above")
	}
}

// run processes statements with a bounded worker pool. Statements have no
// cross-dependency, so files run in parallel; the ledger append is the only
// shared state and is mutex-guarded internally.
func run(cfg *config.Config, log zerolog.Logger, inputs []string) *ledger.Ledger {
	led := ledger.New()

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				// A malformed statement must not abort the run.
				if err := processFile(cfg, log, led, path); err != nil {
					log.Error().Err(err).Str("source", path).Msg("statement skipped")
				}
			}
		}()
	}
	for _, path := range inputs {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return led
}

func processFile(cfg *config.Config, log zerolog.Logger, led *ledger.Ledger, path string) error {
	log.Info().Str("source", path).Msg("parsing")

	text, err := extractor.Load(path)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	p := parser.New(log)
	p.Clean = cleaner.Options{MaxLineLen: cfg.MaxLineLen, Boilerplate: cleaner.DefaultBoilerplate}

	info, err := p.Parse(path, text)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, acct := range info.Accounts {
		led.Append(acct.Transactions...)
		if d, ok := reconcile.Check(acct); !ok {
			led.AddDiscrepancy(d)
			log.Warn().
				Str("source", path).
				Str("account", d.Account).
				Str("previous", d.Previous.StringFixed(2)).
				Str("computed", d.Computed.StringFixed(2)).
				Str("expected", d.Expected.StringFixed(2)).
				Msg("reconciliation discrepancy")
		}
	}

	log.Info().
		Str("source", path).
		Str("owner", info.Owner).
		Int("accounts", len(info.Accounts)).
		Msg("parsed")
	return nil
}

// collectInputs expands directory arguments into their statement files,
// sorted for a deterministic encounter order.
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", arg, err)
		}
		if !fi.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".pdf", ".txt":
				inputs = append(inputs, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

func serve(cfg *config.Config, log zerolog.Logger) {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	api.RegisterRoutes(app)

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
