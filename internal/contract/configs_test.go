package contract

import (
	"testing"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        10,
		Output:       "text",
		Precision:    1,
		Color:        "yes",
		StoreBackend: "sqlite",
		Tiers:        "",
		Trend:        "month",
		Source:       "dir",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{"valid minimal config", func(*ConfigRawInput) {}, false},
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }, true},
		{"limit too large", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, true},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 3 }, true},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, true},
		{"uppercase output", func(in *ConfigRawInput) { in.Output = "JSON" }, false},
		{"parquet needs file", func(in *ConfigRawInput) { in.Output = "parquet" }, true},
		{"parquet with file", func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "donors.parquet" }, false},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }, true},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "redis" }, true},
		{"mysql without dsn", func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, true},
		{"mysql with dsn", func(in *ConfigRawInput) {
			in.StoreBackend = "mysql"
			in.StoreDBConnect = "user:pass@tcp(localhost:3306)/giving"
		}, false},
		{"postgres missing dbname", func(in *ConfigRawInput) {
			in.StoreBackend = "postgresql"
			in.StoreDBConnect = "host=localhost user=giving"
		}, true},
		{"bad tiers", func(in *ConfigRawInput) { in.Tiers = "100,abc" }, true},
		{"bad trend", func(in *ConfigRawInput) { in.Trend = "week" }, true},
		{"bad source", func(in *ConfigRawInput) { in.Source = "ftp" }, true},
		{"s3 without bucket", func(in *ConfigRawInput) { in.Source = "s3" }, true},
		{"s3 with bucket", func(in *ConfigRawInput) { in.Source = "s3"; in.S3Bucket = "donor-docs" }, false},
		{"bad debounce", func(in *ConfigRawInput) { in.Debounce = "soon" }, true},
		{"negative debounce", func(in *ConfigRawInput) { in.Debounce = "-1s" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validInput()
	input.Trend = ""
	input.Source = ""
	input.S3Prefix = "/donors/"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, schema.MonthlyTrend, cfg.TrendInterval)
	assert.Equal(t, schema.DirSource, cfg.Source)
	assert.Equal(t, DefaultSourceDir, cfg.SourceDir)
	assert.Equal(t, "donors/", cfg.S3Prefix)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.True(t, cfg.UseColors)
	require.Len(t, cfg.TierBreakpoints, 4)
	assert.True(t, cfg.TierBreakpoints[3].Equal(decimal.NewFromInt(5000)))
}

func TestProcessAndValidate_Debounce(t *testing.T) {
	input := validInput()
	input.Debounce = "500ms"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}

func TestParseTiers(t *testing.T) {
	tiers, err := ParseTiers(" 500, 100 ,100,250.50,")
	require.NoError(t, err)
	got := make([]string, len(tiers))
	for i, tier := range tiers {
		got[i] = tier.String()
	}
	assert.Equal(t, []string{"100", "250.5", "500"}, got)

	defaults, err := ParseTiers("")
	require.NoError(t, err)
	assert.Len(t, defaults, 4)

	_, err = ParseTiers("0")
	assert.Error(t, err)
	_, err = ParseTiers("-5")
	assert.Error(t, err)
	_, err = ParseTiers(",,")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ResultLimit: 5, TierBreakpoints: []decimal.Decimal{decimal.NewFromInt(1)}}
	clone := cfg.Clone()
	clone.TierBreakpoints[0] = decimal.NewFromInt(9)
	clone.ResultLimit = 7

	assert.True(t, cfg.TierBreakpoints[0].Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 5, cfg.ResultLimit)
}
