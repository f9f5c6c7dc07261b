package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Balance Sheet report",
		Long: `Compute the Balance Sheet from the ledger workbook.

Period flows are accumulated year over year into point-in-time balances
before filters apply, so a year's balance always includes flows from
prior, unselected years.`,
		RunE: runBalance,
	}

	addFilterFlags(cmd)
	addShapeFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

func runBalance(cmd *cobra.Command, _ []string) error {
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

	table, err := svc.BalanceSheet(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to compute balance sheet: %w", err)
	}

	return outputStatement(ctx, cmd, "Balance Sheet", table)
}
