package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cashflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Cash Flow statement",
		Long: `Compute the Cash Flow statement from the ledger workbook.

Each statement line's per-year flows are rolled forward according to its
value-type policy (period flows, opening balances, closing balances)
across all years in the data, then filtered and pivoted like the other
statements.`,
		RunE: runCashflow,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringSlice("compare-by", nil,
		"Comparison dimensions on columns: Region and/or Country (Year is always included)")
	addOutputFlags(cmd)

	return cmd
}

func runCashflow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	svc, closeFn, err := initService()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	table, err := svc.CashFlow(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to compute cash flow: %w", err)
	}

	return outputStatement(ctx, cmd, "Cash Flow", table)
}
