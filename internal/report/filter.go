package report

import "github.com/sazfar/finrep/internal/model"

// Filter is one report request's global filters. Each dimension is either
// empty, meaning no restriction, or a set of values to keep. An unselected
// sidebar control means "show everything", never "show nothing".
type Filter struct {
	Years     []int
	Regions   []string
	Countries []string
}

// Empty reports whether no dimension is restricted.
func (f Filter) Empty() bool {
	return len(f.Years) == 0 && len(f.Regions) == 0 && len(f.Countries) == 0
}

// Apply keeps facts matching every non-empty filter set. The three
// dimensions combine with logical AND. A filter value absent from the
// source domain simply matches nothing.
func (f Filter) Apply(facts []model.Fact) []model.Fact {
	if f.Empty() {
		return facts
	}

	years := make(map[int]bool, len(f.Years))
	for _, y := range f.Years {
		years[y] = true
	}
	regions := make(map[string]bool, len(f.Regions))
	for _, r := range f.Regions {
		regions[r] = true
	}
	countries := make(map[string]bool, len(f.Countries))
	for _, c := range f.Countries {
		countries[c] = true
	}

	out := make([]model.Fact, 0, len(facts))
	for i := range facts {
		if len(years) > 0 && !years[facts[i].Year] {
			continue
		}
		if len(regions) > 0 && !regions[facts[i].Region] {
			continue
		}
		if len(countries) > 0 && !countries[facts[i].Country] {
			continue
		}
		out = append(out, facts[i])
	}
	return out
}
