package cmd

import (
	"fmt"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/internal/iocache"
	"github.com/adminizer/giving/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig loads and validates only the store backend settings.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetupWrapper validates the store settings without opening the
// store, so migrations can run on a fresh database.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := storeConfig(); err != nil {
		return err
	}
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect == "" {
		cfg.StoreDBConnect = contract.GetStoreDBFilePath()
	}
	return nil
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup. This avoids report and source validation for simple
// store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the donor store",
	Long: `Manage the database holding donors, upload history and synced documents.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is saved)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove the store itself
  migrate - Run database schema migrations

Examples:
  # Check store status
  giving store status

  # Use PostgreSQL (set connection string via env variable)
  GIVING_STORE_BACKEND=postgresql GIVING_STORE_DB_CONNECT="host=... dbname=..." giving store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the donor store.

Displays:
- Backend type and connection status
- Number of donors, uploads and synced documents
- Last and oldest update timestamps
- Table size

Examples:
  giving store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetDonorStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(status)
	},
}

// storeClearCmd removes the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the donor store",
	Long: `Delete the donor store from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store table

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  giving store clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := cfg.StoreDBConnect
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		if err := iocache.ClearStore(cfg.StoreBackend, dbPath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the donor store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the donor store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  giving store migrate

  # Migrate to specific version
  giving store migrate --target-version 1

  # Rollback to initial state
  giving store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations applied successfully.")
	},
}
