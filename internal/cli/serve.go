package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/briefcheck/briefcheck/internal/pipeline"
	"github.com/briefcheck/briefcheck/internal/web"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web upload/verify/download server",
	Long: `Serve starts an HTTP server exposing the verification flow used by the
web UI: upload a plain-text brief, stream verification progress as
server-sent events, then download the results as CSV.

Brief text is held in memory only until scoring completes; it is never
written to disk, and a job is forgotten once its CSV is downloaded.

Example:
  briefcheck serve
  briefcheck serve --addr :8080
  briefcheck serve --llm ollama --llm-model llama3`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (config default when empty)")
	serveCmd.Flags().StringVar(&apiToken, "token", "", "CourtListener API token (overrides COURTLISTENER_TOKEN)")

	// LLM flags
	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate plain-language summaries of reports")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Web.Addr = serveAddr
	}
	if apiToken != "" {
		cfg.Provider.Token = apiToken
	}
	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	if cfg.Provider.Token == "" {
		fmt.Fprintln(os.Stderr, "Warning: no CourtListener token configured; anonymous rate limits apply")
	}

	server := web.NewServer(pipeline.NewAnalyzer(cfg), cfg.Web)
	return server.ListenAndServe()
}
