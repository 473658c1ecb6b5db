// Package tables loads the year-keyed cost-of-children tables and statutory
// constants the assessment engine reads from.
package tables

import (
	"embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	costFile         = "data/cost_of_children.yaml"
	jurisdictionFile = "data/jurisdictions.yaml"
)

var ageGroupKeys = map[string]domain.AgeGroup{
	"younger": domain.AllYounger,
	"older":   domain.AllOlder,
	"mixed":   domain.Mixed,
}

var childCountKeys = map[string]domain.ChildCount{
	"one":        domain.OneChild,
	"two":        domain.TwoChildren,
	"three_plus": domain.ThreePlusChildren,
}

// costFileData mirrors the YAML layout of the cost tables file
type costFileData struct {
	Years map[int]yearData `yaml:"years"`
}

type yearData struct {
	Constants struct {
		SSA    decimal.Decimal `yaml:"ssa"`
		MAR    decimal.Decimal `yaml:"mar"`
		FAR    decimal.Decimal `yaml:"far"`
		MaxPPS decimal.Decimal `yaml:"max_pps"`
	} `yaml:"constants"`
	Bands []decimal.Decimal              `yaml:"bands"`
	Cost  map[string]map[string]cellData `yaml:"cost"`
}

type cellData struct {
	Rates []decimal.Decimal `yaml:"rates"`
	Bases []decimal.Decimal `yaml:"bases"`
	Max   decimal.Decimal   `yaml:"max"`
}

// Cell is one age-group by child-count entry of a year's table. The
// mixed-age single-child cell is the only one that is not applicable.
type Cell struct {
	Applicable bool
	Brackets   []domain.CostBracket
}

// YearTable holds everything the engine needs for one assessment year
type YearTable struct {
	Constants domain.YearConstants
	cells     [3][3]Cell
}

// Cell returns the entry for the given age group and child count
func (t *YearTable) Cell(group domain.AgeGroup, count domain.ChildCount) Cell {
	return t.cells[group][count]
}

// Registry is an immutable set of year tables plus the jurisdiction lists
type Registry struct {
	years         map[domain.AssessmentYear]*YearTable
	jurisdictions jurisdictionLists
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	data, err := dataFS.ReadFile(costFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded cost tables: %w", err)
	}
	return Load(data)
})

// Default returns the registry built from the embedded data files
func Default() (*Registry, error) {
	return defaultRegistry()
}

// LoadFile builds a registry from a cost tables file on disk
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Load(data)
}

// Load builds a registry from cost tables YAML
func Load(data []byte) (*Registry, error) {
	var raw costFileData
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(raw.Years) == 0 {
		return nil, fmt.Errorf("%w: no years defined", ErrInvalidTable)
	}

	jl, err := loadJurisdictions()
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		years:         make(map[domain.AssessmentYear]*YearTable, len(raw.Years)),
		jurisdictions: jl,
	}
	for year, yd := range raw.Years {
		table, err := buildYear(domain.AssessmentYear(year), yd)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		reg.years[table.Constants.Year] = table
	}
	return reg, nil
}

func buildYear(year domain.AssessmentYear, yd yearData) (*YearTable, error) {
	c := yd.Constants
	if !c.SSA.IsPositive() || !c.MAR.IsPositive() || !c.FAR.IsPositive() || !c.MaxPPS.IsPositive() {
		return nil, fmt.Errorf("%w: constants must all be positive", ErrInvalidTable)
	}
	if len(yd.Bands) == 0 {
		return nil, fmt.Errorf("%w: no income bands", ErrInvalidTable)
	}
	for i := 1; i < len(yd.Bands); i++ {
		if !yd.Bands[i].GreaterThan(yd.Bands[i-1]) {
			return nil, fmt.Errorf("%w: bands must be strictly increasing", ErrInvalidTable)
		}
	}

	table := &YearTable{
		Constants: domain.YearConstants{
			Year:   year,
			SSA:    c.SSA,
			MAR:    c.MAR,
			FAR:    c.FAR,
			MaxPPS: c.MaxPPS,
		},
	}

	for groupKey, counts := range yd.Cost {
		group, ok := ageGroupKeys[groupKey]
		if !ok {
			return nil, fmt.Errorf("%w: unknown age group %q", ErrInvalidTable, groupKey)
		}
		for countKey, cell := range counts {
			count, ok := childCountKeys[countKey]
			if !ok {
				return nil, fmt.Errorf("%w: unknown child count %q", ErrInvalidTable, countKey)
			}
			if group == domain.Mixed && count == domain.OneChild {
				return nil, fmt.Errorf("%w: mixed ages cannot have a single-child table", ErrInvalidTable)
			}
			brackets, err := buildBrackets(yd.Bands, cell)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", groupKey, countKey, err)
			}
			table.cells[group][count] = Cell{Applicable: true, Brackets: brackets}
		}
	}

	// Every cell but mixed/one must be present.
	for _, g := range domain.AgeGroups {
		for _, n := range domain.ChildCounts {
			if g == domain.Mixed && n == domain.OneChild {
				continue
			}
			if !table.cells[g][n].Applicable {
				return nil, fmt.Errorf("%w: missing table for %s children aged %s", ErrInvalidTable, n, g)
			}
		}
	}
	return table, nil
}

func buildBrackets(bands []decimal.Decimal, cell cellData) ([]domain.CostBracket, error) {
	if len(cell.Rates) != len(bands) || len(cell.Bases) != len(bands) {
		return nil, fmt.Errorf("%w: expected %d rates and bases", ErrInvalidTable, len(bands))
	}

	one := decimal.NewFromInt(1)
	brackets := make([]domain.CostBracket, 0, len(bands)+1)
	lower := decimal.Zero
	for i, band := range bands {
		rate := cell.Rates[i]
		if rate.IsNegative() || rate.GreaterThan(one) {
			return nil, fmt.Errorf("%w: rate %s out of range", ErrInvalidTable, rate)
		}
		if i > 0 && cell.Bases[i].LessThan(cell.Bases[i-1]) {
			return nil, fmt.Errorf("%w: bases must not decrease", ErrInvalidTable)
		}
		upper := band
		brackets = append(brackets, domain.CostBracket{
			MinIncome: lower,
			MaxIncome: &upper,
			Fixed:     cell.Bases[i],
			Rate:      rate,
		})
		lower = band
	}
	if cell.Max.LessThan(cell.Bases[len(bands)-1]) {
		return nil, fmt.Errorf("%w: max below last base", ErrInvalidTable)
	}
	brackets = append(brackets, domain.CostBracket{
		MinIncome: lower,
		Fixed:     cell.Max,
		Rate:      decimal.Zero,
	})
	return brackets, nil
}

// Years returns the loaded assessment years in ascending order
func (r *Registry) Years() []domain.AssessmentYear {
	years := make([]domain.AssessmentYear, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Latest returns the most recent loaded year
func (r *Registry) Latest() domain.AssessmentYear {
	years := r.Years()
	return years[len(years)-1]
}

// Year returns the table for an assessment year
func (r *Registry) Year(year domain.AssessmentYear) (*YearTable, error) {
	t, ok := r.years[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	return t, nil
}

// Constants returns the statutory constants for an assessment year
func (r *Registry) Constants(year domain.AssessmentYear) (domain.YearConstants, error) {
	t, err := r.Year(year)
	if err != nil {
		return domain.YearConstants{}, err
	}
	return t.Constants, nil
}

// Brackets returns the cost brackets for a year, age group and child count
func (r *Registry) Brackets(year domain.AssessmentYear, group domain.AgeGroup, count domain.ChildCount) ([]domain.CostBracket, error) {
	t, err := r.Year(year)
	if err != nil {
		return nil, err
	}
	cell := t.Cell(group, count)
	if !cell.Applicable {
		return nil, fmt.Errorf("%w: %s children aged %s in %d", ErrNotApplicable, count, group, year)
	}
	return cell.Brackets, nil
}

// Lookup returns the first bracket containing income
func Lookup(brackets []domain.CostBracket, income decimal.Decimal) (domain.CostBracket, error) {
	for _, b := range brackets {
		if b.Contains(income) {
			return b, nil
		}
	}
	return domain.CostBracket{}, fmt.Errorf("%w: %s", ErrBracketNotFound, income.StringFixed(2))
}
