package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/calendar"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/decision"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/notice"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
)

// NewEvaluateCommand runs one case evaluation from a fact file.
func NewEvaluateCommand() *cobra.Command {
	var (
		factsPath    string
		jurisdiction string
		product      string
		asOf         string
		method       string
		serviceDate  string
		serviceTime  string
		consent      bool
		consentSet   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a case-fact file against the active rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("rules")
			format, _ := cmd.Flags().GetString("output")
			consentSet = cmd.Flags().Changed("electronic-consent")

			data, err := os.ReadFile(factsPath)
			if err != nil {
				return err
			}
			var f facts.CaseFacts
			if err := yaml.Unmarshal(data, &f); err != nil {
				return fmt.Errorf("parsing %s: %w", factsPath, err)
			}

			req := decision.Request{
				Jurisdiction: jurisdiction,
				Product:      product,
				Facts:        &f,
			}
			if asOf != "" {
				d, err := dates.Parse(asOf)
				if err != nil {
					return err
				}
				req.AsOf = d
			}
			if method != "" {
				ev := &notice.ServiceEvent{Method: notice.Method(method), TimeOfDay: serviceTime}
				if serviceDate != "" {
					d, err := dates.Parse(serviceDate)
					if err != nil {
						return err
					}
					ev.Date = d
				}
				if consentSet {
					ev.ElectronicConsent = &consent
				}
				req.Service = ev
			}

			repo, err := repository.Open(dir)
			if err != nil {
				return err
			}
			aggregator := decision.New(repo, calendar.NewService())

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			rec, err := aggregator.Evaluate(ctx, req)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			printRecord(rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&factsPath, "facts", "", "Case-fact YAML file (required)")
	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", "england", "Jurisdiction key")
	cmd.Flags().StringVar(&product, "product", "assured_shorthold_tenancy", "Product / case-type key")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Rule-set selection date (YYYY-MM-DD, default: service date or today)")
	cmd.Flags().StringVar(&method, "service-method", "", "Service method: hand, post, electronic, dx")
	cmd.Flags().StringVar(&serviceDate, "service-date", "", "Planned service date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&serviceTime, "service-time", "", "Time of service (HH:MM)")
	cmd.Flags().BoolVar(&consent, "electronic-consent", false, "Tenant has consented to electronic service")
	_ = cmd.MarkFlagRequired("facts")

	return cmd
}

func printRecord(rec *decision.Record) {
	statusColor := color.New(color.FgYellow)
	switch rec.Status {
	case decision.StatusComplete:
		statusColor = color.New(color.FgGreen)
	case decision.StatusBlocked:
		statusColor = color.New(color.FgRed)
	}
	fmt.Printf("Decision %s  rule set %s  status: %s\n\n",
		rec.ID, rec.RuleSetVersion, statusColor.Sprint(rec.Status))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Route", "Status", "Eligible", "Pending", "Blockers", "Deemed Service", "Expiry"})
	for _, rd := range rec.Routes {
		deemed, expiry := "", ""
		if rd.Notice != nil {
			deemed = rd.Notice.DeemedServiceDate.String()
			expiry = rd.Notice.ExpiryDate.String()
		}
		table.Append([]string{
			rd.Route, string(rd.Status),
			itoa(len(rd.Grounds.Eligible)), itoa(len(rd.Grounds.Pending)),
			itoa(len(rd.Blockers)), deemed, expiry,
		})
	}
	table.Render()

	if len(rec.UnresolvedFacts) > 0 {
		fmt.Println("\nUnresolved facts that would change the outcome:")
		for _, p := range rec.UnresolvedFacts {
			fmt.Printf("  - %s\n", p)
		}
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
