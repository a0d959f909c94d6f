// Package cli wires configuration, logging and the two front-ends into the
// figma-server command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"figma-node-tree/internal/analyzer"
	"figma-node-tree/internal/config"
	"figma-node-tree/internal/figma"
	"figma-node-tree/internal/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version information (set at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the root command. Without a subcommand it serves MCP
// over stdio when --cli is given or stdin is not a terminal, and HTTP
// otherwise.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var (
		envFile string
		cliMode bool
	)

	rootCmd := &cobra.Command{
		Use:   "figma-server",
		Short: "Figma node tree server (HTTP and MCP)",
		Long: `figma-server resolves Figma design URLs and returns the simplified node
hierarchy behind them, either over HTTP (POST /analyze) or as the
analyze_figma_file MCP tool on stdio.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd, envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
			if useMCP(cliMode, stdinTTY) {
				return a.runMCP(cmd.Context())
			}
			return a.runHTTP(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.Int("port", 3000, "HTTP port (env PORT)")
	flags.String("figma-base-url", figma.DefaultBaseURL, "Figma REST API base URL")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.String("log-format", "text", "log format (text|json)")
	flags.String("manifest", "", "path to an mcp.json overriding the built-in manifest")
	rootCmd.Flags().BoolVar(&cliMode, "cli", false, "serve MCP over stdio")

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newMCPCommand(a))
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func useMCP(cliFlag, stdinIsTerminal bool) bool {
	return cliFlag || !stdinIsTerminal
}

func (a *app) load(cmd *cobra.Command, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(analyzer.Config{
		APIKey:  a.cfg.Figma.APIKey,
		BaseURL: a.cfg.Figma.BaseURL,
		HTTPClient: &http.Client{
			Timeout:   a.cfg.Figma.Timeout,
			Transport: figma.InstrumentedTransport(http.DefaultTransport),
		},
		Logger: a.logger,
	})
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "figma-server %s (commit %s)\n", Version, GitCommit)
}
