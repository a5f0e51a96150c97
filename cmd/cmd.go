// Package cmd defines the command-line interface for giving.
package cmd

import (
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(donorsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the sync subcommands to the parent sync command
	syncCmd.AddCommand(syncStatusCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of donors to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentage columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for sqlite path or mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("tiers", contract.DefaultTiers, "Comma-separated lifetime amount tier boundaries")
	reportCmd.Flags().String("trend", string(schema.MonthlyTrend), "Trend interval: month or year")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Document source flags are shared by sync and watch, so they are bound
	// to Viper in sourceSetupWrapper for the command that actually runs.
	for _, c := range []*cobra.Command{syncCmd, watchCmd} {
		c.PersistentFlags().String("source", string(schema.DirSource), "Document source: dir or s3 or none")
		c.PersistentFlags().String("source-dir", contract.DefaultSourceDir, "Document center folder for the dir source")
		c.PersistentFlags().String("s3-bucket", "", "Bucket for the s3 source")
		c.PersistentFlags().String("s3-prefix", "", "Key prefix for the s3 source")
		c.PersistentFlags().String("s3-region", "", "AWS region for the s3 source (defaults to the AWS config)")
	}
	watchCmd.Flags().String("debounce", contract.DefaultDebounce.String(), "Quiet period before a changed folder is synced")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
