package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/scraper/rightmove"
	"github.com/sambezza/hullpropertyanalysis/server"
	"github.com/sambezza/hullpropertyanalysis/services"
	"github.com/sambezza/hullpropertyanalysis/storage"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

func main() {
	serve := flag.Bool("serve", false, "run the JSON API instead of the interactive CLI")
	importCSV := flag.Bool("import", false, "seed PostgreSQL from the price-paid CSV and exit")
	oneShot := flag.String("url", "", "analyze a single listing URL with default inputs and exit")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Buy-to-Let Analyzer starting ===")
	logger.Info("Config — sales source: %s | fetch mode: %s | retries: %d",
		cfg.SalesSource, cfg.FetchMode, cfg.MaxRetries)

	if *importCSV {
		runImport(cfg, logger)
		return
	}

	thresholds, err := config.LoadThresholds(cfg.ThresholdsPath)
	if err != nil {
		logger.Error("Failed to load thresholds: %v", err)
		os.Exit(1)
	}

	repo, err := openRepository(cfg, logger)
	if err != nil {
		if errors.Is(err, storage.ErrDatasetMissing) {
			logger.Error("Price-paid dataset not found at %s — set SALES_CSV_PATH to your extract", cfg.SalesCSVPath)
		} else {
			logger.Error("Failed to open sales repository: %v", err)
		}
		os.Exit(1)
	}
	defer repo.Close()

	fetcher := rightmove.New(cfg, logger)
	analyzer := services.NewAnalyzer(logger, thresholds)

	if *serve {
		srv := server.New(logger, fetcher, analyzer, repo, cfg.Defaults)
		if err := srv.Run(cfg.HTTPPort); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	transactions, err := repo.All()
	if err != nil {
		logger.Error("Failed to read sales data: %v", err)
		os.Exit(1)
	}

	if *oneShot != "" {
		listing, err := fetcher.Fetch(context.Background(), *oneShot)
		if err != nil {
			logger.Error("Fetch failed: %v", err)
			os.Exit(1)
		}
		price := int64(0)
		if listing.Price != nil {
			price = *listing.Price
		}
		services.PrintReport(analyzer.Analyze(listing, price, cfg.Defaults, transactions))
		return
	}

	runInteractive(cfg, logger, fetcher, analyzer, transactions)
}

// openRepository picks the configured sales backend.
func openRepository(cfg *config.Config, logger *utils.Logger) (storage.SalesRepository, error) {
	if cfg.SalesSource == "postgres" {
		return storage.NewPostgresRepository(cfg.DSN())
	}
	return storage.NewCSVRepository(cfg.SalesCSVPath, logger)
}

// runImport seeds the PostgreSQL sales table from the CSV extract.
func runImport(cfg *config.Config, logger *utils.Logger) {
	csvRepo, err := storage.NewCSVRepository(cfg.SalesCSVPath, logger)
	if err != nil {
		logger.Error("Import failed: %v", err)
		os.Exit(1)
	}
	transactions, _ := csvRepo.All()

	pg, err := storage.NewPostgresRepository(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Import(transactions); err != nil {
		logger.Error("Import failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Imported %d sale transactions into PostgreSQL (table: sales)", len(transactions))
}

func runInteractive(cfg *config.Config, logger *utils.Logger, fetcher rightmove.Fetcher,
	analyzer *services.Analyzer, transactions []*models.SaleTransaction) {
	reader := bufio.NewReader(os.Stdin)

	for {
		url := promptString(reader, "Rightmove property URL (q to quit)")
		if url == "" {
			continue
		}
		if url == "q" {
			return
		}

		listing, err := fetcher.Fetch(context.Background(), url)
		if err != nil {
			logger.Error("Fetch failed: %v", err)
			continue
		}
		printListing(listing)

		for {
			price, inputs := promptInputs(reader, cfg.Defaults, listing.Price)
			services.PrintReport(analyzer.Analyze(listing, price, inputs, transactions))

			if !promptYesNo(reader, "Adjust variables and recalculate?") {
				break
			}
		}
	}
}

func printListing(l *models.Listing) {
	na := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	fmt.Println()
	fmt.Printf("  Price         : %s\n", na(l.RawPrice))
	fmt.Printf("  Street        : %s\n", na(l.Street))
	fmt.Printf("  Postcode      : %s\n", na(l.Postcode))
	fmt.Printf("  Property type : %s\n", l.Type)
	fmt.Println()
}

// promptInputs walks the user through the investment variables. Enter
// keeps the shown default; the price defaults to the parsed listing price.
func promptInputs(reader *bufio.Reader, defaults models.InvestmentInputs, fetchedPrice *int64) (int64, models.InvestmentInputs) {
	priceDefault := float64(0)
	if fetchedPrice != nil {
		priceDefault = float64(*fetchedPrice)
	}
	price := int64(promptFloat(reader, "Property price (£)", priceDefault, 0, 100_000_000))

	in := models.InvestmentInputs{
		DepositPercent:          promptFloat(reader, "Deposit (%)", defaults.DepositPercent, 0, 100),
		MortgageInterestPercent: promptFloat(reader, "Mortgage interest (%)", defaults.MortgageInterestPercent, 0, 10),
		StampDutyPercent:        config.StampDutyPercent,
		LegalFees:               promptFloat(reader, "Legal fees (£)", defaults.LegalFees, 0, 5000),
		RefurbishmentCost:       promptFloat(reader, "Refurbishment (£)", defaults.RefurbishmentCost, 0, 50000),
		MonthlyRent:             promptFloat(reader, "Monthly rent (£)", defaults.MonthlyRent, 0, 5000),
		YearlyMaintenance:       promptFloat(reader, "Yearly maintenance (£)", defaults.YearlyMaintenance, 0, 5000),
		Insurance:               promptFloat(reader, "Insurance (£)", defaults.Insurance, 0, 5000),
	}
	return price, in
}

func promptString(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "q"
	}
	return strings.TrimSpace(line)
}

func promptFloat(reader *bufio.Reader, label string, def, min, max float64) float64 {
	for {
		fmt.Printf("%s [%g]: ", label, def)
		line, err := reader.ReadString('\n')
		if err != nil {
			return def
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return def
		}

		val, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Println("  Please enter a number.")
			continue
		}
		if val < min || val > max {
			fmt.Printf("  Value must be between %g and %g.\n", min, max)
			continue
		}
		return val
	}
}

func promptYesNo(reader *bufio.Reader, label string) bool {
	fmt.Printf("%s (y/N): ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
