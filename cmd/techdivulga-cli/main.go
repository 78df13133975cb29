// Package main provides the TechDivulga CLI entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile    string
	outputJSON bool
	verbose    bool

	cfg    *config.Config
	logger *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:   "techdivulga-cli",
	Short: "TechDivulga CLI for the Messi assistant, documents and site content",
	Long: `TechDivulga CLI runs the same services as the API server from a terminal.

Use this tool to:
- Ask the Messi assistant questions or chat with it
- Inspect how a question is classified
- List, extract and search the documents of the data directory
- Seed and browse the content tables
- Apply database migrations

All commands support --json for automation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      "console",
			Output:      os.Stderr,
			ServiceName: "techdivulga-cli",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newIntentsCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newContentCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp builds the services the command needs.
func openApp(ctx context.Context, opts app.Options) (*app.App, error) {
	a, err := app.New(ctx, cfg, logger, opts)
	if err != nil {
		return nil, fmt.Errorf("initialize services: %w", err)
	}
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "techdivulga-cli %s\n", version)
			return nil
		},
	}
}
