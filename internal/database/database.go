package database

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vehiclecatalog/internal/models"
)

//go:embed schema.sql
var schema string

// Metadata keys written alongside the catalog
const (
	metaSchemaVersion = "schema_version"
	metaImportedAt    = "catalog_imported_at"
	metaSource        = "catalog_source"
	metaRows          = "catalog_rows"
)

type Database struct {
	db   *sql.DB
	path string
}

// CatalogStatus describes the catalog currently stored in the database
type CatalogStatus struct {
	SchemaVersion string    `json:"schemaVersion"`
	Rows          int       `json:"rows"`
	Source        string    `json:"source,omitempty"`
	ImportedAt    time.Time `json:"importedAt,omitzero"`
	SizeBytes     int64     `json:"sizeBytes"`
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_cache_size=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	database := &Database{db: db, path: dbPath}
	if err := database.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initializeSchema() error {
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// ReplaceCatalog swaps the stored catalog for rows in one transaction, keeping
// their order in the position column.
func (d *Database) ReplaceCatalog(rows []models.FlatCatalogRow, source string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM catalog_variants"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_variants (position, vehicle_type, brand, model, variant, specs)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		specs, err := json.Marshal(row.Specs)
		if err != nil {
			return fmt.Errorf("failed to encode specs for %s %s %s: %w", row.Brand, row.Model, row.Variant, err)
		}
		if _, err := stmt.Exec(i, row.VehicleType, row.Brand, row.Model, row.Variant, string(specs)); err != nil {
			return fmt.Errorf("failed to insert %s %s %s: %w", row.Brand, row.Model, row.Variant, err)
		}
	}

	meta := map[string]string{
		metaImportedAt: time.Now().UTC().Format(time.RFC3339),
		metaSource:     source,
		metaRows:       strconv.Itoa(len(rows)),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`
			INSERT INTO database_metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, key, value); err != nil {
			return fmt.Errorf("failed to record %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog returns every stored row in insertion order
func (d *Database) LoadCatalog() ([]models.FlatCatalogRow, error) {
	rows, err := d.db.Query(`
		SELECT vehicle_type, brand, model, variant, specs
		FROM catalog_variants
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var out []models.FlatCatalogRow
	for rows.Next() {
		var row models.FlatCatalogRow
		var specs string
		if err := rows.Scan(&row.VehicleType, &row.Brand, &row.Model, &row.Variant, &specs); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		if err := json.Unmarshal([]byte(specs), &row.Specs); err != nil {
			return nil, fmt.Errorf("failed to decode specs for %s %s %s: %w", row.Brand, row.Model, row.Variant, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return out, nil
}

// Status reports what the catalog tables currently hold
func (d *Database) Status() (CatalogStatus, error) {
	var status CatalogStatus

	version, err := d.metadata(metaSchemaVersion)
	if err != nil {
		return status, err
	}
	status.SchemaVersion = version

	if err := d.db.QueryRow("SELECT COUNT(*) FROM catalog_variants").Scan(&status.Rows); err != nil {
		return status, fmt.Errorf("failed to count catalog rows: %w", err)
	}

	if status.Source, err = d.metadata(metaSource); err != nil {
		return status, err
	}

	importedAt, err := d.metadata(metaImportedAt)
	if err != nil {
		return status, err
	}
	if importedAt != "" {
		if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
			status.ImportedAt = t
		}
	}

	// WAL mode keeps recent writes in the -wal file until a checkpoint
	for _, path := range []string{d.path, d.path + "-wal"} {
		if stat, err := os.Stat(path); err == nil {
			status.SizeBytes += stat.Size()
		}
	}
	return status, nil
}

// metadata returns "" for keys that were never written
func (d *Database) metadata(key string) (string, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM database_metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}
