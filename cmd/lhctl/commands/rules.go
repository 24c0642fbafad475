// Package commands implements the lhctl subcommands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// NewRulesCommand groups rule-file operations.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Operations on rule-set files",
	}
	cmd.AddCommand(newRulesValidateCommand())
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate every rule-set file in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("rules")
			if len(args) == 1 {
				dir = args[0]
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}

			ok := color.New(color.FgGreen).SprintFunc()
			bad := color.New(color.FgRed).SprintFunc()
			failures := 0
			checked := 0
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
					continue
				}
				checked++
				rs, err := rules.ParseFile(filepath.Join(dir, name))
				if err != nil {
					failures++
					fmt.Printf("%s %s: %v\n", bad("FAIL"), name, err)
					continue
				}
				fmt.Printf("%s %s: %s (%s/%s), %d grounds, %d blockers\n",
					ok("OK"), name, rs.Version, rs.Jurisdiction, rs.Product, len(rs.Grounds), len(rs.Blockers))
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d rule-set files failed validation", failures, checked)
			}
			fmt.Printf("%d rule-set files validated\n", checked)
			return nil
		},
	}
}
