package main

import (
	"fmt"
	"strings"

	"github.com/sazfar/finrep/internal/render"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func metricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Ratio analysis and KPI cards",
		Long: `Compute the KPI metric cards and ratio tables: total sales to date,
current-year sales with year-over-year delta, gross and net profit
margins, and EBITDA per year.

Sales cards slice on the chart-of-accounts sub-class; margins and EBITDA
slice the P&L structure hierarchy. The labels used for slicing are
configurable under metrics.labels.`,
		RunE: runMetrics,
	}

	addFilterFlags(cmd)

	return cmd
}

func runMetrics(cmd *cobra.Command, _ []string) error {
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

	metrics, err := svc.Metrics(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		render.KPICard("Total Sales TTD", render.Amount(metrics.KPI.SalesTTD), ""),
		" ",
		render.KPICard(
			fmt.Sprintf("Total Sales FTP (%d)", metrics.KPI.CurrentYear),
			render.Amount(metrics.KPI.SalesFTP),
			render.Amount(metrics.KPI.SalesDelta),
		),
	)

	out := strings.Join([]string{
		render.FormatTitle("Ratio Analysis"),
		cards,
		render.Statement("Gross Profit Margin", metrics.GrossMargin),
		render.Statement("Net Profit Margin", metrics.NetMargin),
		render.Statement("EBITDA Over the Period", metrics.EBITDA),
	}, "\n")
	fmt.Println(out) //nolint:forbidigo // User-facing output
	return nil
}
