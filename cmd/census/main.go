package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"neighborly/internal/config"
	"neighborly/internal/database"
	"neighborly/internal/repository"
	"neighborly/internal/service"
)

func main() {
	// Define subcommands
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	// Import flags
	importInput := importCmd.String("input", "", "Census file to import (default: CENSUS_FILE)")

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: census_YYYYMMDD_HHMMSS.txt)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	registry := service.NewRegistryService(repository.NewNeighborhoodRepository(db))

	switch os.Args[1] {
	case "import":
		importCmd.Parse(os.Args[2:])
		input := *importInput
		if input == "" {
			input = cfg.CensusFilePath
		}
		handleImport(registry, input)

	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(registry, *exportOutput)

	case "stats":
		statsCmd.Parse(os.Args[2:])
		handleStats(registry)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleImport(registry *service.RegistryService, inputPath string) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	log.Printf("Importing census file: %s", inputPath)
	if err := registry.ImportFile(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if err := registry.SaveToDatabase(); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	stats := registry.CensusStats()
	log.Printf("Import complete! %d households, %d residents", stats.Households, stats.TotalPopulation)
}

func handleExport(registry *service.RegistryService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("census_%s.txt", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	if err := registry.LoadFromDatabase(); err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	log.Printf("Exporting census file: %s", outputPath)
	if err := registry.ExportFile(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %d bytes", fileInfo.Size())
}

func handleStats(registry *service.RegistryService) {
	if err := registry.LoadFromDatabase(); err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	stats := registry.CensusStats()
	fmt.Printf("Households:       %d\n", stats.Households)
	fmt.Printf("Total population: %d\n", stats.TotalPopulation)
	fmt.Printf("Adults:           %d\n", stats.TotalAdults)
	fmt.Printf("Children:         %d\n", stats.TotalChildren)

	for _, h := range registry.MostPopulated() {
		fmt.Printf("Largest household: %d (%s) with %d members\n", h.HouseNumber(), h.Address(), h.Size())
	}
	for _, h := range registry.LeastPopulated() {
		fmt.Printf("Smallest household: %d (%s) with %d members\n", h.HouseNumber(), h.Address(), h.Size())
	}
}

func printUsage() {
	fmt.Println("Neighborly Census Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  census import [-input <file>]  Import a census text file into the registry store")
	fmt.Println("  census export [-output <file>] Export the registry store to a census text file")
	fmt.Println("  census stats                   Print census summary statistics")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./neighborly.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  CENSUS_FILE      Default census file for import (default: ./census.txt)")
}
