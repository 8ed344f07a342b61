package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/pipeline"
	"github.com/briefcheck/briefcheck/internal/worker"
)

var (
	batchWorkers int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Verify every .txt brief in a directory",
	Long: `Batch analyzes every plain-text brief in a directory:
- Briefs run concurrently with a configurable worker count
- Provider lookups stay globally throttled across all workers
- Each brief gets its own CSV in the output directory

Example:
  briefcheck batch ./briefs
  briefcheck batch ./briefs --workers 4 --output-dir ./results
  briefcheck batch ./briefs --pro-se --timeout 2h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "briefs analyzed concurrently (0 = config default)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./briefcheck-results", "output directory for per-brief CSVs")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 2*time.Hour, "total timeout for the batch")

	// Analysis flags shared with check
	batchCmd.Flags().BoolVar(&proSe, "pro-se", false, "filers are unrepresented; enables the pro-se legalese heuristic")
	batchCmd.Flags().BoolVar(&allowOtherState, "allow-other-state", false, "do not penalize citations from other states")
	batchCmd.Flags().BoolVar(&allowFederal, "allow-federal", false, "do not penalize federal citations")

	// Provider flags
	batchCmd.Flags().StringVar(&apiToken, "token", "", "CourtListener API token (overrides COURTLISTENER_TOKEN)")
	batchCmd.Flags().DurationVar(&requestDelay, "delay", 0, "minimum spacing between provider requests (0 = config default)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable lookup response caching")
}

// briefJob analyzes one brief file. Jobs share an analyzer so all provider
// calls flow through one throttle regardless of worker count.
type briefJob struct {
	analyzer *pipeline.Analyzer
	path     string
	flags    model.Flags
}

// briefResult carries one finished analysis back from the pool.
type briefResult struct {
	path   string
	report *model.Report
	err    error
}

func (r *briefResult) GetError() error { return r.err }

func (j *briefJob) Execute(ctx context.Context) worker.Result {
	raw, err := os.ReadFile(j.path)
	if err != nil {
		return &briefResult{path: j.path, err: fmt.Errorf("read brief: %w", err)}
	}

	rep, err := j.analyzer.Analyze(ctx, string(raw), filepath.Base(j.path), j.flags, nil)
	if err != nil {
		return &briefResult{path: j.path, err: err}
	}
	return &briefResult{path: j.path, report: rep}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list briefs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt briefs found in %s", dir)
	}
	sort.Strings(files)

	cfg := loadConfig()
	if apiToken != "" {
		cfg.Provider.Token = apiToken
	}
	if requestDelay > 0 {
		cfg.Provider.RequestDelay = requestDelay
	}
	cfg.Cache.Enabled = !noCache
	if batchWorkers > 0 {
		cfg.Batch.Workers = batchWorkers
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  BriefCheck Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Briefs:      %d\n", len(files))
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", cfg.Batch.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:     %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One analyzer for the whole batch: its single throttle keeps provider
	// calls sequential even with several briefs in flight.
	analyzer := pipeline.NewAnalyzer(cfg)
	flags := model.Flags{
		ProSe:           proSe,
		AllowOtherState: allowOtherState,
		AllowFederal:    allowFederal,
	}

	jobs := make([]worker.Job, 0, len(files))
	for _, path := range files {
		jobs = append(jobs, &briefJob{analyzer: analyzer, path: path, flags: flags})
	}

	successCount := 0
	failureCount := 0

	pool := worker.NewPool(cfg.Batch.Workers)
	for _, result := range pool.Run(ctx, jobs) {
		res, ok := result.(*briefResult)
		if !ok {
			continue
		}
		if res.err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(res.path), res.err)
			continue
		}

		csvName := strings.TrimSuffix(filepath.Base(res.path), filepath.Ext(res.path)) + ".csv"
		if err := writeCSVFile(filepath.Join(outputDir, csvName), res.report); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(res.path), err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (score: %d/100, %s)\n",
			filepath.Base(res.path), res.report.AdjustedScore, res.report.AdjustedLabel)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d briefs\n", len(files))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
