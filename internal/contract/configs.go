package contract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultTiers       = "100,500,1000,5000"
	DefaultSourceDir   = "documents"
	DefaultDebounce    = 2 * time.Second
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	TierBreakpoints []decimal.Decimal
	TrendInterval   schema.TrendInterval

	Source    schema.SourceKind
	SourceDir string
	S3Bucket  string
	S3Prefix  string
	S3Region  string
	Debounce  time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Limit          int    `mapstructure:"limit"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from reportCmd.Flags() ---
	Tiers string `mapstructure:"tiers"`
	Trend string `mapstructure:"trend"`

	// --- Fields from syncCmd and watchCmd ---
	Source    string `mapstructure:"source"`
	SourceDir string `mapstructure:"source-dir"`
	S3Bucket  string `mapstructure:"s3-bucket"`
	S3Prefix  string `mapstructure:"s3-prefix"`
	S3Region  string `mapstructure:"s3-region"`
	Debounce  string `mapstructure:"debounce"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.TierBreakpoints != nil {
		clone.TierBreakpoints = make([]decimal.Decimal, len(c.TierBreakpoints))
		copy(clone.TierBreakpoints, c.TierBreakpoints)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processReportOptions(cfg, input); err != nil {
		return err
	}
	if err := processSourceConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' with host:port")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// validateBackendConfig validates the donor store backend.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processReportOptions handles the tier breakpoints and trend interval.
func processReportOptions(cfg *Config, input *ConfigRawInput) error {
	tiers, err := ParseTiers(input.Tiers)
	if err != nil {
		return fmt.Errorf("invalid --tiers value: %w", err)
	}
	cfg.TierBreakpoints = tiers

	cfg.TrendInterval = schema.TrendInterval(strings.ToLower(input.Trend))
	if cfg.TrendInterval == "" {
		cfg.TrendInterval = schema.MonthlyTrend
	}
	if _, ok := schema.ValidTrendIntervals[cfg.TrendInterval]; !ok {
		return fmt.Errorf("invalid trend interval '%s'. must be month, year", input.Trend)
	}
	return nil
}

// processSourceConfig validates the document source used by sync and watch.
func processSourceConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.DirSource
	}
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be dir, s3, none", input.Source)
	}

	cfg.SourceDir = input.SourceDir
	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultSourceDir
	}
	cfg.S3Bucket = input.S3Bucket
	cfg.S3Prefix = strings.TrimPrefix(input.S3Prefix, "/")
	cfg.S3Region = input.S3Region
	if cfg.Source == schema.S3Source && cfg.S3Bucket == "" {
		return fmt.Errorf("s3-bucket is required when using %s source", cfg.Source)
	}

	cfg.Debounce = DefaultDebounce
	if input.Debounce != "" {
		d, err := time.ParseDuration(input.Debounce)
		if err != nil {
			return fmt.Errorf("invalid --debounce value: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("debounce cannot be negative (received %s)", input.Debounce)
		}
		cfg.Debounce = d
	}
	return nil
}

// ParseTiers parses a string like "100,500,1000,5000" into ascending positive
// breakpoints. Duplicates are dropped. An empty string yields the defaults.
func ParseTiers(s string) ([]decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultTiers
	}

	var tiers []decimal.Decimal
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid tier breakpoint '%s': %w", part, err)
		}
		if !value.IsPositive() {
			return nil, fmt.Errorf("tier breakpoint must be positive (received %s)", part)
		}
		tiers = append(tiers, value)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("at least one tier breakpoint is required")
	}

	sort.Slice(tiers, func(i, j int) bool { return tiers[i].LessThan(tiers[j]) })
	unique := tiers[:1]
	for _, t := range tiers[1:] {
		if !t.Equal(unique[len(unique)-1]) {
			unique = append(unique, t)
		}
	}
	return unique, nil
}
