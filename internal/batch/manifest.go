package batch

import (
	"fmt"
	"os"

	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/models"

	"github.com/gocarina/gocsv"
)

// Manifest statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ManifestEntry is one row of manifest.csv.
type ManifestEntry struct {
	InputFile   string `csv:"input_file"`
	OutputFile  string `csv:"output_file"`
	MessageCode string `csv:"message_code"`
	Status      string `csv:"status"`
	Error       string `csv:"error"`
}

// WriteManifest writes entries to path as CSV with a header row.
func WriteManifest(path string, entries []ManifestEntry) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionOutputFile)
	if err != nil {
		return fmt.Errorf("error creating manifest: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if entries == nil {
		entries = []ManifestEntry{}
	}
	if err := gocsv.MarshalFile(&entries, file); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) ([]ManifestEntry, error) {
	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening manifest: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []ManifestEntry
	if err := gocsv.UnmarshalFile(file, &entries); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	return entries, nil
}
