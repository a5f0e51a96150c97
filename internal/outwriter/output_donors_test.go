package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/adminizer/giving/core/algo"
	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDonorsTable(t *testing.T) {
	ranked := algo.RankDonors(testDonors(), 3)

	var buf bytes.Buffer
	require.NoError(t, writeDonorsTable(&buf, ranked, testConfig(schema.TextOut), time.Second))
	out := buf.String()

	assert.Contains(t, out, "Bo Li")
	assert.Contains(t, out, "1200.00")
	assert.Contains(t, out, "240.00")
	assert.Contains(t, out, "Frequent")
	assert.NotContains(t, out, "Ana Lee", "limited to three donors")
	assert.Contains(t, out, "Showing top 3 donors")
}

func TestWriteDonorsCSV(t *testing.T) {
	ranked := algo.RankDonors(testDonors(), 0)

	var buf bytes.Buffer
	require.NoError(t, writeDonorsCSV(&buf, ranked))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5) // header + 4 donors
	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, []string{"1", "email:bo@li.org", "Bo", "Li", "bo@li.org", "", "1200.00", "5", "240.00", "2022-01-01", "2024-01-01", "Frequent"}, records[1])
	assert.Equal(t, "name:ana\x1flee", records[4][1])
}

func TestWriteDonorsJSON(t *testing.T) {
	ranked := algo.RankDonors(testDonors(), 1)

	var buf bytes.Buffer
	require.NoError(t, writeDonorsJSON(&buf, ranked))

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "email:bo@li.org", result[0]["key"])
	assert.Equal(t, "Frequent", result[0]["label"])
	donor, ok := result[0]["donor"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bo", donor["first_name"])
}
