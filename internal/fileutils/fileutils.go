// Package fileutils reads payloads and schemas and writes generated
// messages, naming output files after the message definition.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/iso20022-gen/internal/dateutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		log.WithField(logging.FieldPath, dirPath).Debug("Creating directory")
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
		}
	}
	return nil
}

// ReadFile reads the entire contents of a file and returns it as a byte slice
func ReadFile(filePath string) ([]byte, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return data, nil
}

// WriteFile writes data to a file, creating the file if it doesn't exist
// and creating any parent directories if needed
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	log.WithFields(logrus.Fields{logging.FieldPath: filePath, "bytes": len(data)}).Debug("Wrote file")

	return nil
}

// OpenFile opens a file for reading, returning an error if the file doesn't exist
func OpenFile(filePath string) (*os.File, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DefaultOutputName names a generated file after the message definition
// and a timestamp: "pacs.008.001.08_20250109_150405.xml". messageCode may
// be a full namespace URI.
func DefaultOutputName(messageCode, extension string, now time.Time) string {
	definition := messageCode
	if i := strings.LastIndex(definition, ":"); i >= 0 {
		definition = definition[i+1:]
	}
	return fmt.Sprintf("%s_%s.%s", definition, dateutils.FileStamp(now), strings.TrimPrefix(extension, "."))
}

// ReplaceExtension swaps the extension of a file name.
func ReplaceExtension(filePath, extension string) string {
	return strings.TrimSuffix(filePath, filepath.Ext(filePath)) + "." + strings.TrimPrefix(extension, ".")
}

// SafeJoin joins a bare file name onto dir, refusing names that would
// escape it.
func SafeJoin(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(dir, name), nil
}
