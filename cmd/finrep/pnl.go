package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pnlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pnl",
		Short: "Profit & Loss report",
		Long: `Compute the Profit & Loss statement from the ledger workbook.

Rows follow the P&L structure ordering (Revenue before Cost of Sales
before Gross Profit), at the selected level of detail. Columns are the
selected comparison dimensions crossed with Year. A Total column is
included; the grand-total row is always suppressed.`,
		RunE: runPnl,
	}

	addFilterFlags(cmd)
	addShapeFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().Bool("no-total", false, "Omit the Total column")

	return cmd
}

func runPnl(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	noTotal, _ := cmd.Flags().GetBool("no-total")
	req.WithTotals = !noTotal

	svc, closeFn, err := initService()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	table, err := svc.ProfitAndLoss(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to compute profit and loss: %w", err)
	}

	return outputStatement(ctx, cmd, "Profit & Loss", table)
}
