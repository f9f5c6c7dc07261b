package main

import (
	"fmt"

	"github.com/sazfar/finrep/internal/render"

	"github.com/spf13/cobra"
)

func detailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Transaction detail view",
		Long: `Print the filtered, denormalized ledger rows: each transaction with its
chart-of-accounts categories and territory/calendar dimensions joined in.`,
		RunE: runDetail,
	}

	addFilterFlags(cmd)
	cmd.Flags().Int("limit", 0, "Maximum rows to print (0 = all)")

	return cmd
}

func runDetail(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	svc, closeFn, err := initService()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	facts, err := svc.TransactionDetail(ctx, req.Filter)
	if err != nil {
		return fmt.Errorf("failed to load transaction detail: %w", err)
	}

	total := len(facts)
	if limit > 0 && len(facts) > limit {
		facts = facts[:limit]
	}

	fmt.Println(render.FormatTitle("Transaction Details")) //nolint:forbidigo // User-facing output
	fmt.Println(render.Detail(facts))                      //nolint:forbidigo // User-facing output
	if len(facts) < total {
		fmt.Println(render.SubtleStyle.Render(fmt.Sprintf("showing %d of %d rows", len(facts), total))) //nolint:forbidigo // User-facing output
	}
	return nil
}
