package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/pipeline"
	"github.com/briefcheck/briefcheck/internal/report"
)

var (
	proSe           bool
	allowOtherState bool
	allowFederal    bool
	listOnly        bool
	csvPath         string
	checkTimeout    time.Duration
	apiToken        string
	requestDelay    time.Duration
	noCache         bool
	llmEnabled      bool
	llmProvider     string
	llmModel        string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <brief.txt>",
	Short: "Verify the citations in a single brief and score it",
	Long: `Check reads a plain-text brief, extracts its case-law citations and
quoted passages, verifies each citation against CourtListener, and prints
a full report with the AI-generation score.

Lookups are spaced to stay under the provider's rate limit, so a brief
with many citations takes a while. Use --list-only to preview the
extracted citations without contacting the provider.

Example:
  briefcheck check motion.txt
  briefcheck check motion.txt --pro-se --csv results.csv
  briefcheck check motion.txt --list-only
  briefcheck check motion.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Analysis flags
	checkCmd.Flags().BoolVar(&proSe, "pro-se", false, "filer is unrepresented; enables the pro-se legalese heuristic")
	checkCmd.Flags().BoolVar(&allowOtherState, "allow-other-state", false, "do not penalize citations from other states")
	checkCmd.Flags().BoolVar(&allowFederal, "allow-federal", false, "do not penalize federal citations")
	checkCmd.Flags().BoolVar(&listOnly, "list-only", false, "print extracted citations without verifying them")

	// Output flags
	checkCmd.Flags().StringVar(&csvPath, "csv", "", "also write results to this CSV path")

	// Provider flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Minute, "overall timeout (lookups are spaced ~1.1s apart)")
	checkCmd.Flags().StringVar(&apiToken, "token", "", "CourtListener API token (overrides COURTLISTENER_TOKEN)")
	checkCmd.Flags().DurationVar(&requestDelay, "delay", 0, "minimum spacing between provider requests (0 = config default)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable lookup response caching")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a plain-language summary of the report")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.HasSuffix(strings.ToLower(path), ".txt") {
		return fmt.Errorf("only plain-text (.txt) briefs are supported: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read brief: %w", err)
	}
	text := string(raw)

	cfg := loadConfig()
	if apiToken != "" {
		cfg.Provider.Token = apiToken
	}
	if requestDelay > 0 {
		cfg.Provider.RequestDelay = requestDelay
	}
	cfg.Cache.Enabled = !noCache

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	analyzer := pipeline.NewAnalyzer(cfg)

	if listOnly {
		return printExtraction(analyzer, text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	flags := model.Flags{
		ProSe:           proSe,
		AllowOtherState: allowOtherState,
		AllowFederal:    allowFederal,
	}

	var emit pipeline.EmitFunc
	if verbose {
		emit = progressEmitter()
	}

	rep, err := analyzer.Analyze(ctx, text, filepath.Base(path), flags, emit)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	report.NewRenderer(os.Stdout, cfg.Output.Color).Render(rep)

	if csvPath != "" {
		if err := writeCSVFile(csvPath, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "CSV written to %s\n", csvPath)
	}
	return nil
}

// printExtraction lists the extracted citations and quotes without any
// provider contact.
func printExtraction(analyzer *pipeline.Analyzer, text string) error {
	citations, quotes, jur := analyzer.Extract(text)

	fmt.Printf("Jurisdiction: %s\n\n", jur.CourtName)
	fmt.Printf("Found %d citation(s):\n", len(citations))
	for i, c := range citations {
		fmt.Printf("  %2d. %s, %s", i+1, c.Parties, c.Label())
		if c.Court != "" || c.Year != "" {
			fmt.Printf(" (%s %s)", c.Court, c.Year)
		}
		fmt.Println()
	}
	fmt.Printf("\nFound %d quoted passage(s) attributed to a citation.\n", len(quotes))
	return nil
}

// progressEmitter prints verification progress to stderr as events arrive.
func progressEmitter() pipeline.EmitFunc {
	return func(e pipeline.Event) {
		switch e.Type {
		case pipeline.EventResult:
			if e.Citation != nil {
				fmt.Fprintf(os.Stderr, "  [%d] %s: %s\n", e.Index+1, e.Citation.Label(), e.Citation.Status)
			}
		case pipeline.EventQuotePhase:
			fmt.Fprintf(os.Stderr, "Verifying %d quoted passage(s)...\n", e.Total)
		case pipeline.EventQuoteResult:
			if e.Quote != nil {
				fmt.Fprintf(os.Stderr, "  quote [%d]: %s\n", e.Index+1, e.Quote.Status)
			}
		}
	}
}

func writeCSVFile(path string, rep *model.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close CSV: %w", closeErr)
		}
	}()

	if err := report.WriteCSV(f, rep); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	return nil
}
