package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Frequent", GetPlainLabel(schema.Frequent))
	assert.Equal(t, "Occasional", GetPlainLabel(schema.Occasional))
	assert.Equal(t, "One-time", GetPlainLabel(schema.OneTime))
	assert.Equal(t, "One-time", GetPlainLabel(""))
}

func TestGetColorLabel(t *testing.T) {
	for _, f := range schema.AllFrequencies {
		assert.Contains(t, GetColorLabel(f), GetPlainLabel(f))
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcdefg...", TruncateText("abcdefghijklmnop", 10))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetStoreDBFilePath(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetStoreDBFilePath(), ".giving.db"))
}
