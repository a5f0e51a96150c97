//go:build integration || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedGivingPath holds the path to a shared giving binary built once for all tests.
	sharedGivingPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const januaryExport = `First Name,Last Name,Email,Amount,Date
Jane,Doe,jane@example.org,100.00,2024-01-05
John,Smith,,200,2024-01-20
`

const februaryExport = "Donor Name\tEmail\tGift Amount\tGift Date\n" +
	"Jane Doe\tJANE@example.org\t$50.00\t02/10/2024\n" +
	"John Smith\t\t300\t2024-02-11\n" +
	"Ana Lee\tana@example.org\t25\t2024-02-12\n" +
	"Broken Row\t\tnot-a-number\t2024-02-13\n"

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGivingBinary returns the path to the giving binary, building it once if needed.
func getGivingBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "giving-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		givingPath := filepath.Join(tempDir, "giving")
		buildCmd := exec.Command("go", "build", "-o", givingPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build giving: %v\n%s", err, out))
		}

		sharedGivingPath = givingPath
	})

	return sharedGivingPath
}

// writeExports writes the January and February fixtures into dir.
func writeExports(t *testing.T, dir string) (string, string) {
	t.Helper()
	jan := filepath.Join(dir, "january.csv")
	feb := filepath.Join(dir, "february.tsv")
	require.NoError(t, os.WriteFile(jan, []byte(januaryExport), 0o644))
	require.NoError(t, os.WriteFile(feb, []byte(februaryExport), 0o644))
	return jan, feb
}

// runGiving runs the giving binary in dir and returns its combined output.
func runGiving(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getGivingBinary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
