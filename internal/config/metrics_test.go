package config

import (
	"testing"

	"github.com/sazfar/finrep/internal/report"
	"github.com/spf13/viper"
)

func TestLoadCalculator(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	calc := LoadCalculator()
	if calc.Labels.Sales != "Sales" {
		t.Errorf("default sales label = %q, want Sales", calc.Labels.Sales)
	}
	if calc.FallbackYear != report.DefaultFallbackYear {
		t.Errorf("default fallback year = %d, want %d", calc.FallbackYear, report.DefaultFallbackYear)
	}

	viper.Set("metrics.labels.sales", "Net Revenue")
	viper.Set("metrics.fallback_year", 2023)

	calc = LoadCalculator()
	if calc.Labels.Sales != "Net Revenue" {
		t.Errorf("configured sales label = %q, want Net Revenue", calc.Labels.Sales)
	}
	if calc.Labels.GrossProfit != "Gross Profit" {
		t.Errorf("unset label = %q, want the default Gross Profit", calc.Labels.GrossProfit)
	}
	if calc.FallbackYear != 2023 {
		t.Errorf("configured fallback year = %d, want 2023", calc.FallbackYear)
	}
}
