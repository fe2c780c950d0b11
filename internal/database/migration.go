package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vehiclecatalog/internal/catalog"
	"vehiclecatalog/internal/snapshot"
)

// ImportCatalogJSON loads a merged data.json and replaces the stored catalog
// with its flattened rows. It returns the number of rows imported.
func (d *Database) ImportCatalogJSON(jsonPath string) (int, error) {
	doc, err := snapshot.LoadDocument(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog file: %w", err)
	}

	rows := catalog.Flatten(doc)
	if err := d.ReplaceCatalog(rows, jsonPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// BackupCurrentData copies the merged catalog file into a timestamped backup
// directory under dataDir. A missing file is not an error.
func BackupCurrentData(dataDir string) (string, error) {
	srcPath := filepath.Join(dataDir, snapshot.MergedFileName)
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return "", nil
	}

	backupDir := filepath.Join(dataDir, fmt.Sprintf("backup_%d", time.Now().UnixNano()))
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if err := copyFile(srcPath, filepath.Join(backupDir, snapshot.MergedFileName)); err != nil {
		return "", fmt.Errorf("failed to backup %s: %w", snapshot.MergedFileName, err)
	}

	fmt.Printf("Data backed up to: %s\n", backupDir)
	return backupDir, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
