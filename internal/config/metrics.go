package config

import (
	"github.com/sazfar/finrep/internal/report"
	"github.com/spf13/viper"
)

// LoadCalculator builds the metric calculator from configuration. The
// hierarchy labels the KPIs slice on are configurable so a renamed
// structure category does not silently zero the metrics; defaults match
// the conventional statement categories.
func LoadCalculator() report.Calculator {
	labels := report.Labels{
		Sales:             viper.GetString("metrics.labels.sales"),
		GrossProfit:       viper.GetString("metrics.labels.gross_profit"),
		NetProfit:         viper.GetString("metrics.labels.net_profit"),
		CostOfSales:       viper.GetString("metrics.labels.cost_of_sales"),
		OperatingExpenses: viper.GetString("metrics.labels.operating_expenses"),
	}
	fallbackYear := viper.GetInt("metrics.fallback_year")

	return report.NewCalculator(labels, fallbackYear)
}
