// Package main provides a performance benchmarking tool for the giving CLI.
// It generates synthetic donation exports of increasing size, then measures
// import and report times against the none and sqlite store backends. Each
// test runs multiple times; the first successful run is treated as cold and
// the rest are averaged as warm. Results are written as CSV for performance
// analysis and documentation.
//
// Prerequisites:
// - giving binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated exports and benchmark stores
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	Datasets    map[string]int
	Order       []string
}

var (
	firstNames = []string{"Jane", "John", "Ana", "Luis", "Mei", "Omar", "Priya", "Sam", "Tara", "Yusuf"}
	lastNames  = []string{"Doe", "Smith", "Lee", "Garcia", "Chen", "Haddad", "Patel", "Jones", "Brown", "Kaya"}
)

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 20_000,
			"large":  200_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the giving binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("giving"); err != nil {
		return fmt.Errorf("giving binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateExport writes a synthetic donation export with the given number of rows.
// Roughly a third of the rows repeat an earlier donor so merging is exercised.
func generateExport(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"First Name", "Last Name", "Email", "Amount", "Date"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rng := rand.New(rand.NewPCG(42, uint64(rows)))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	var emails []string
	for i := range rows {
		email := ""
		if len(emails) > 0 && rng.IntN(3) == 0 {
			email = emails[rng.IntN(len(emails))]
		} else {
			email = uuid.NewString()[:8] + "@example.org"
			emails = append(emails, email)
		}
		amount := decimal.New(int64(5+rng.IntN(2000)), 0).Add(decimal.New(int64(rng.IntN(100)), -2))
		date := start.AddDate(0, 0, rng.IntN(730))
		record := []string{
			firstNames[i%len(firstNames)],
			lastNames[rng.IntN(len(lastNames))],
			email,
			amount.StringFixed(2),
			date.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across the configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Order), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, name := range config.Order {
		rows := config.Datasets[name]
		export := filepath.Join(config.WorkDir, name+".csv")
		fmt.Printf("Generating %s dataset (%d rows)\n", name, rows)
		if err := generateExport(export, rows); err != nil {
			fmt.Printf("Warning: failed to generate %s: %v\n", export, err)
			continue
		}

		results = append(results, runBenchmarkSuite(config, name, "import", []string{"import", export}))
		results = append(results, runBenchmarkSuite(config, name, "report", []string{"report"}))
		results = append(results, runBenchmarkSuite(config, name, "export", []string{"export", "--output-file", export + ".out"}))
	}

	return results
}

// runBenchmarkSuite runs both no-store and sqlite store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, args, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
			if cold > 0 {
				avgTime = fmt.Sprintf("%.3fs", cold)
			}
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: SQLite runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "SQLite")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a giving command multiple times with the given store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset string, args []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	storePath := filepath.Join(config.WorkDir, dataset+".db")
	args = append([]string{"--store-backend", backend, "--store-db-connect", storePath, "--output-file", os.DevNull}, args...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("giving", args...)
		cmd.Dir = config.WorkDir

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/giving_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "import", "Import:")
	printCommandSummary(results, "report", "Report:")
	printCommandSummary(results, "export", "Export:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-store: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
