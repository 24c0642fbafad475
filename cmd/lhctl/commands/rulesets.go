package commands

import (
	"encoding/json"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
)

// NewRulesetsCommand lists the rule-set versions a directory provides.
func NewRulesetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rulesets",
		Short: "Inspect loaded rule sets",
	}
	cmd.AddCommand(newRulesetsListCommand())
	return cmd
}

func newRulesetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rule-set versions with their effective windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("rules")
			format, _ := cmd.Flags().GetString("output")

			repo, err := repository.Open(dir)
			if err != nil {
				return err
			}
			all := repo.All()

			if format == "json" {
				return json.NewEncoder(os.Stdout).Encode(all)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Version", "Jurisdiction", "Product", "From", "To", "Grounds", "Blockers"})
			for _, rs := range all {
				to := rs.EffectiveTo.String()
				if to == "" {
					to = "open"
				}
				table.Append([]string{
					rs.Version, rs.Jurisdiction, rs.Product,
					rs.EffectiveFrom.String(), to,
					itoa(len(rs.Grounds)), itoa(len(rs.Blockers)),
				})
			}
			table.Render()
			return nil
		},
	}
}
