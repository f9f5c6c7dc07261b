package report

import (
	"testing"

	"github.com/sazfar/finrep/internal/model"
)

func TestFilter_Apply(t *testing.T) {
	facts := joinedFacts(testDataset())

	tests := []struct {
		name   string
		filter Filter
		want   int
		check  func(t *testing.T, got []model.Fact)
	}{
		{
			name:   "all filters empty passes everything through",
			filter: Filter{},
			want:   len(facts),
		},
		{
			name:   "year filter",
			filter: Filter{Years: []int{2021}},
			want:   3,
			check: func(t *testing.T, got []model.Fact) {
				for _, f := range got {
					if f.Year != 2021 {
						t.Errorf("row with year %d passed a 2021 filter", f.Year)
					}
				}
			},
		},
		{
			name:   "region filter",
			filter: Filter{Regions: []string{"Europe"}},
			want:   3,
		},
		{
			name:   "filters combine with AND",
			filter: Filter{Years: []int{2021}, Regions: []string{"Europe"}},
			want:   1,
			check: func(t *testing.T, got []model.Fact) {
				for _, f := range got {
					if f.Year != 2021 || f.Region != "Europe" {
						t.Errorf("row %+v does not satisfy all filters", f)
					}
				}
			},
		},
		{
			name:   "multiple values in one set",
			filter: Filter{Countries: []string{"United Kingdom", "Australia"}},
			want:   len(facts),
		},
		{
			name:   "value absent from source domain yields empty result",
			filter: Filter{Regions: []string{"Antarctica"}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(facts)
			if len(got) != tt.want {
				t.Fatalf("Apply() returned %d rows, want %d", len(got), tt.want)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestFilter_ApplyIdentity(t *testing.T) {
	facts := joinedFacts(testDataset())
	got := Filter{}.Apply(facts)
	if len(got) != len(facts) {
		t.Fatalf("empty filter changed row count: %d != %d", len(got), len(facts))
	}
	for i := range facts {
		if got[i].AccountKey != facts[i].AccountKey || got[i].Amount != facts[i].Amount {
			t.Fatalf("empty filter changed row %d", i)
		}
	}
}
