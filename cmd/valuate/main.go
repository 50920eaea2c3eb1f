package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/internal/modules/companies"
	"github.com/aristath/valuator/internal/modules/report"
	"github.com/aristath/valuator/pkg/logger"
)

func main() {
	var (
		list      = flag.Bool("list", false, "List all available companies")
		save      = flag.Bool("save", false, "Save the full report to a JSON file")
		outputDir = flag.String("output-dir", "./output", "Output directory for saved reports")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Pretty: true})

	loader := companies.NewLoader(cfg.DataDir, log)

	if *list {
		if err := printCompanies(loader); err != nil {
			fatal(err)
		}
		return
	}

	ticker := strings.ToUpper(flag.Arg(0))
	if ticker == "" {
		usage()
		os.Exit(2)
	}

	heuristics, err := config.LoadHeuristics(cfg.HeuristicsPath)
	if err != nil {
		fatal(err)
	}

	facts, err := loader.Load(ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		if listErr := printCompanies(loader); listErr == nil {
			fmt.Println("\nUsage: valuate <TICKER>")
		}
		os.Exit(1)
	}

	rep := report.NewService(heuristics, log).Generate(facts)
	printReport(rep)

	if *save {
		path, err := saveReport(rep, *outputDir)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("\nFull report saved to %s\n", path)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: valuate [flags] <TICKER>

Calculates the intrinsic value of a company using multiple valuation
methods and prints a summary to the console.

Examples:
  valuate CAT            Value Caterpillar
  valuate --list         List available companies
  valuate AAPL --save    Value Apple and save the full report

Flags:
`)
	flag.PrintDefaults()
}

func printCompanies(loader *companies.Loader) error {
	tickers, err := loader.List()
	if err != nil {
		return err
	}

	if len(tickers) == 0 {
		fmt.Println("No company data files found")
		return nil
	}

	fmt.Printf("Available companies (%d):\n", len(tickers))
	for _, t := range tickers {
		fmt.Printf("  %s\n", t)
	}
	return nil
}

func printReport(rep domain.ValuationReport) {
	fmt.Printf("\n%s (%s) - %s\n", rep.CompanyName, rep.Ticker, rep.Sector)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Current price:    $%.2f\n", rep.CurrentPrice)
	fmt.Printf("Intrinsic value:  $%.2f\n", rep.IntrinsicValue)
	fmt.Printf("Upside:           %+.1f%%\n", rep.Upside)
	fmt.Printf("Margin of safety: %.1f%%\n", rep.MarginOfSafety)
	fmt.Printf("Recommendation:   %s (%s confidence)\n", rep.Recommendation, rep.Confidence)

	fmt.Println("\nMethod breakdown:")
	for _, m := range rep.WeightedValuations {
		fmt.Printf("  %-22s $%10.2f  (weight %.1f%%)\n",
			m.Method, m.Value, m.NormalizedWeight*100)
	}

	fmt.Println("\nRisk:")
	fmt.Printf("  Financial: %s  Business: %s  Valuation: %s\n",
		rep.Risk.Financial.RiskLevel, rep.Risk.Business.RiskLevel,
		rep.Risk.Valuation.RiskLevel)

	fmt.Println()
	fmt.Println(rep.Summary.Valuation)
	fmt.Println(rep.Summary.Opportunity)
	fmt.Println(rep.Summary.Risk)
	fmt.Println(rep.Summary.Recommendation)
}

func saveReport(rep domain.ValuationReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("%s_valuation_%s.json",
		strings.ToLower(rep.Ticker), time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
