// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zcash/hashkit"
	"github.com/zcash/hashkit/sha512"
)

// benchEngine is one engine under measurement.
type benchEngine struct {
	name    string
	newHash func() (hashkit.Hash, error)
}

// BenchResult holds the timings of one engine.
type BenchResult struct {
	Engine       string    `json:"engine"`
	InputBytes   int       `json:"input_bytes"`
	RoundTimesMs []float64 `json:"round_times_ms"`
	MinTimeMs    float64   `json:"min_time_ms"`
	MaxTimeMs    float64   `json:"max_time_ms"`
	AvgTimeMs    float64   `json:"avg_time_ms"`
	MedianTimeMs float64   `json:"median_time_ms"`
	// Throughput in bytes per second at the median round time.
	Throughput float64 `json:"throughput_bytes_per_sec"`
}

// benchEngines returns the engines for algs; the 64-bit algorithms also get
// their emulated-lane engine so both paths can be compared.
func benchEngines(algs []hashkit.Algorithm) []benchEngine {
	var engines []benchEngine
	for _, a := range algs {
		engines = append(engines, benchEngine{a.String(), a.New})
		switch a {
		case hashkit.SHA384:
			engines = append(engines, benchEngine{"sha384-lanes", func() (hashkit.Hash, error) {
				return sha512.NewLanes(sha512.SHA384), nil
			}})
		case hashkit.SHA512:
			engines = append(engines, benchEngine{"sha512-lanes", func() (hashkit.Hash, error) {
				return sha512.NewLanes(sha512.SHA512), nil
			}})
		}
	}
	return engines
}

func runBench(ctx context.Context, engine benchEngine, data []byte, rounds int) (*BenchResult, error) {
	if rounds < 1 {
		return nil, errors.New("rounds must be positive")
	}
	result := &BenchResult{
		Engine:       engine.name,
		InputBytes:   len(data),
		RoundTimesMs: make([]float64, 0, rounds),
	}
	for range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h, err := engine.newHash()
		if err != nil {
			return nil, err
		}
		start := time.Now()
		h.Write(data)
		h.Digest()
		elapsed := time.Since(start)
		result.RoundTimesMs = append(result.RoundTimesMs, float64(elapsed.Nanoseconds())/1e6)
	}
	bytesHashed.Add(float64(len(data) * rounds))
	digestsComputed.WithLabelValues(engine.name).Add(float64(rounds))

	// Calculate statistics
	sorted := slices.Clone(result.RoundTimesMs)
	slices.Sort(sorted)
	result.MinTimeMs = sorted[0]
	result.MaxTimeMs = sorted[len(sorted)-1]
	var sum float64
	for _, t := range sorted {
		sum += t
	}
	result.AvgTimeMs = sum / float64(len(sorted))
	result.MedianTimeMs = sorted[len(sorted)/2]
	if result.MedianTimeMs > 0 {
		result.Throughput = float64(len(data)) / (result.MedianTimeMs / 1000)
	}
	return result, nil
}

func printBench(out io.Writer, results []*BenchResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if format != "text" {
		return errors.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(out, "%-14s %10s %10s %10s %10s %12s\n", "engine", "min ms", "median ms", "avg ms", "max ms", "throughput")
	for _, r := range results {
		fmt.Fprintf(out, "%-14s %10.3f %10.3f %10.3f %10.3f %10s/s\n",
			r.Engine, r.MinTimeMs, r.MedianTimeMs, r.AvgTimeMs, r.MaxTimeMs, formatBytes(int64(r.Throughput)))
	}
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure digest throughput of each engine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		rounds, _ := cmd.Flags().GetInt("rounds")
		format, _ := cmd.Flags().GetString("format")

		algs := hashkit.Algorithms()
		if cmd.Flags().Changed("algorithm") {
			alg, err := algorithm()
			if err != nil {
				return err
			}
			algs = []hashkit.Algorithm{alg}
		}

		data := make([]byte, size)
		rand.Read(data)

		var results []*BenchResult
		for _, engine := range benchEngines(algs) {
			r, err := runBench(cmd.Context(), engine, data, rounds)
			if err != nil {
				return err
			}
			results = append(results, r)
		}
		return printBench(cmd.OutOrStdout(), results, format)
	},
}

func init() {
	benchCmd.Flags().Int("size", 1<<20, "input size in bytes")
	benchCmd.Flags().Int("rounds", 5, "rounds per engine")
	benchCmd.Flags().String("format", "text", "output format: text or json")
}
