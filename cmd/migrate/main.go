package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"vehiclecatalog/internal/config"
	"vehiclecatalog/internal/database"
	"vehiclecatalog/internal/snapshot"
)

func main() {
	fmt.Println("🗃️  Vehicle Catalog Migration Tool")
	fmt.Println("==================================")

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/migrate/main.go <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  import-json [path] - Load a merged data.json into the catalog database")
		fmt.Println("  backup             - Copy data.json into a timestamped backup directory")
		fmt.Println("  status             - Show what the catalog database holds")
		os.Exit(1)
	}

	cfg := config.Load()
	dbPath := cfg.CatalogDB
	if dbPath == "" {
		dbPath = filepath.Join(cfg.DataDir, "catalog.db")
	}

	switch command := os.Args[1]; command {
	case "import-json":
		jsonPath := cfg.CatalogPath
		if len(os.Args) >= 3 {
			jsonPath = os.Args[2]
		}
		importCatalogFromJSON(dbPath, cfg.DataDir, jsonPath)
	case "backup":
		backupCatalog(cfg.DataDir)
	case "status":
		showCatalogStatus(dbPath)
	default:
		log.Fatal("Unknown command:", command)
	}
}

func openDatabase(dbPath string) *database.Database {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	return db
}

func importCatalogFromJSON(dbPath, dataDir, jsonPath string) {
	fmt.Printf("Importing catalog from %s...\n", jsonPath)

	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		fmt.Printf("❌ File not found: %s\n", jsonPath)
		os.Exit(1)
	}

	if filepath.Clean(jsonPath) == filepath.Join(dataDir, snapshot.MergedFileName) {
		backupCatalog(dataDir)
	}

	db := openDatabase(dbPath)
	defer db.Close()

	imported, err := db.ImportCatalogJSON(jsonPath)
	if err != nil {
		log.Fatal("Failed to import catalog:", err)
	}

	fmt.Printf("✅ Successfully imported %d variants into %s!\n", imported, dbPath)
}

func backupCatalog(dataDir string) {
	dir, err := database.BackupCurrentData(dataDir)
	if err != nil {
		log.Fatal("Failed to back up catalog:", err)
	}
	if dir == "" {
		fmt.Printf("Nothing to back up in %s\n", dataDir)
	}
}

func showCatalogStatus(dbPath string) {
	fmt.Println("Catalog Status Report")
	fmt.Println("=====================")

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("❌ No catalog database at %s - run import-json first\n", dbPath)
		return
	}

	db := openDatabase(dbPath)
	defer db.Close()

	status, err := db.Status()
	if err != nil {
		fmt.Printf("❌ Error reading catalog status: %v\n", err)
		return
	}

	fmt.Printf("📊 Current Schema Version: %s\n", status.SchemaVersion)
	fmt.Printf("📋 catalog_variants: %d records\n", status.Rows)
	if status.Source != "" {
		fmt.Printf("📥 Imported from %s at %s\n", status.Source, status.ImportedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("💾 Database size: %.2f KB\n", float64(status.SizeBytes)/1024)

	fmt.Println("✅ Status check complete!")
}
