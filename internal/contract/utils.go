package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adminizer/giving/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	FrequentColor   = color.New(color.FgGreen, color.Bold) // FrequentColor marks the most engaged donors.
	OccasionalColor = color.New(color.FgYellow)            // OccasionalColor marks repeat but irregular donors.
	OneTimeColor    = color.New(color.FgCyan)              // OneTimeColor marks single-gift donors.
)

// GetPlainLabel returns the plain text frequency label used for CSV, JSON and tables.
func GetPlainLabel(f schema.Frequency) string {
	switch f {
	case schema.Frequent:
		return "Frequent"
	case schema.Occasional:
		return "Occasional"
	default:
		return "One-time"
	}
}

// GetColorLabel returns a colored frequency label for console output (table).
func GetColorLabel(f schema.Frequency) string {
	text := GetPlainLabel(f)

	switch f {
	case schema.Frequent:
		return FrequentColor.Sprint(text)
	case schema.Occasional:
		return OccasionalColor.Sprint(text)
	default:
		return OneTimeColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a progress message to stderr so stdout stays machine-readable.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for donor storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".giving.db"
	}
	return filepath.Join(homeDir, ".giving.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis leaves room for content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
