// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the analysis report using the configured output format.
func (ow *OutWriter) WriteReport(result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return WriteReport(result, cfg, duration)
}

// WriteDonors prints the ranked donor directory using the configured output format.
func (ow *OutWriter) WriteDonors(ranked []schema.RankedDonor, cfg *contract.Config, duration time.Duration) error {
	return WriteDonors(ranked, cfg, duration)
}

// WriteExport writes the donor export using the configured output format.
func (ow *OutWriter) WriteExport(donors []schema.DonorData, cfg *contract.Config) error {
	return WriteExport(donors, cfg)
}

// WriteHistory prints the upload history using the configured output format.
func (ow *OutWriter) WriteHistory(history []schema.UploadHistoryEntry, cfg *contract.Config) error {
	return WriteHistory(history, cfg)
}

// WriteImport prints the outcome of parsing one file.
func (ow *OutWriter) WriteImport(name string, result schema.ParseResult, cfg *contract.Config) error {
	return WriteImport(name, result, cfg)
}

// WriteSync prints the outcome of a document-center sync.
func (ow *OutWriter) WriteSync(result schema.SyncResult, cfg *contract.Config) error {
	return WriteSync(result, cfg)
}

// getMaxNameWidth calculates the maximum width for donor names in table output
// based on terminal width and table configuration.
func getMaxNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Total + Gifts + Average + Last Gift + Frequency with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
