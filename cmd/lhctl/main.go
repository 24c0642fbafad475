package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woodhall335/landlord-heavenv3-sub002/cmd/lhctl/commands"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	if _, err := logging.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "lhctl",
		Short: "Eligibility engine control CLI",
		Long: `lhctl inspects and exercises the eligibility and notice-computation
engine from the command line.

Common workflows:
  lhctl rules validate ./config/rulesets      # Validate rule-set files
  lhctl rulesets list                         # Show loaded rule-set versions
  lhctl evaluate --facts case.yaml \
      --jurisdiction england --product assured_shorthold_tenancy`,
		Version: fmt.Sprintf("%s (commit: %s)", version, gitCommit),
	}

	rootCmd.PersistentFlags().StringP("rules", "r", "config/rulesets", "Directory of rule-set YAML files")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json")

	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewRulesetsCommand())
	rootCmd.AddCommand(commands.NewEvaluateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
