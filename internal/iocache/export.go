package iocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/internal/parquet"
)

// ExecuteDonorExport writes the stored donors and upload history to Parquet files.
// outputFile is used as the prefix of both files.
func ExecuteDonorExport(ctx context.Context, store contract.DonorStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for parquet export")
	}
	if store == nil {
		return errors.New("donor store is not initialized")
	}

	donors, err := store.LoadData(ctx)
	if err != nil {
		return fmt.Errorf("failed to load donors: %w", err)
	}
	if len(donors) == 0 {
		return errors.New("no donor data found to export")
	}

	history, err := store.GetUploadHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load upload history: %w", err)
	}

	donorsFile := outputFile + ".donors.parquet"
	if err := parquet.WriteDonorsParquet(parquet.ConvertDonors(donors), donorsFile); err != nil {
		return fmt.Errorf("failed to write donors: %w", err)
	}
	fmt.Printf("Exported %d donors to: %s\n", len(donors), donorsFile)

	uploadsFile := outputFile + ".uploads.parquet"
	if err := parquet.WriteUploadsParquet(parquet.ConvertUploads(history), uploadsFile); err != nil {
		return fmt.Errorf("failed to write upload history: %w", err)
	}
	fmt.Printf("Exported %d uploads to: %s\n", len(history), uploadsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - Any other Parquet-compatible tool")
	return nil
}
