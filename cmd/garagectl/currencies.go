package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/revops-api/pkg/currency"
)

func newCurrenciesCmd() *cobra.Command {
	var (
		sample string
		locale string
	)
	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "List supported currencies with a formatted sample amount",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := decimal.NewFromString(sample)
			if err != nil {
				return fmt.Errorf("invalid --sample %q: %w", sample, err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSYMBOL\tNAME\tSAMPLE")
			for _, c := range currency.All() {
				marker := ""
				if c.Code == currency.DefaultCode {
					marker = " (default)"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", c.Code, marker, c.Symbol, c.Name,
					currency.NewFormatter(c.Code, locale).Format(amount))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "1234.5", "amount to format")
	cmd.Flags().StringVar(&locale, "locale", currency.DefaultLocale, "BCP 47 tag for digit grouping")
	return cmd
}
