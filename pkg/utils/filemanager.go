// =============================================================================
// Points Directory - File Manager Utility
// =============================================================================
//
// File helpers shared by the commands and the converter:
//   - Atomic file replacement for the generated page
//   - Input format detection by extension
//   - Existence checks
//
// WRITE STRATEGY:
//   The output is written to a uniquely named temporary file in the target
//   directory, synced, and renamed over the destination. Readers of the
//   destination therefore see either the previous page or the complete new
//   one, never a partial file. On any failure the temporary file is removed.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// TempFileName returns the name of the temporary sibling used while writing
// path, e.g. ".points_lista1.html.3f2a....tmp".
func TempFileName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic replaces path with data.
//
// PARAMETERS:
//   - path: The destination file. Its directory must exist.
//   - data: The complete file contents.
//   - perm: Permission bits for a newly created file.
//
// RETURNS:
//   - An error if any step fails. The destination is untouched in that case.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmpPath := TempFileName(path)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// INPUT FORMAT DETECTION
// =============================================================================

// DetectFormat guesses the input format from the file extension: ".xlsx"
// and ".xlsm" are workbooks, ".csv" and ".txt" delimited text, anything else
// is treated as SpreadsheetML.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".csv", ".txt":
		return "csv"
	default:
		return "xml"
	}
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
