package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CarePeriod is the unit a child's care amounts are expressed in
type CarePeriod string

const (
	PeriodWeek      CarePeriod = "week"
	PeriodFortnight CarePeriod = "fortnight"
	PeriodYear      CarePeriod = "year"
	PeriodPercent   CarePeriod = "percent"
)

// Days returns the number of nights in the period, or zero for PeriodPercent
func (p CarePeriod) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodFortnight:
		return 14
	case PeriodYear:
		return 365
	default:
		return 0
	}
}

// Valid reports whether p is a known period
func (p CarePeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodFortnight, PeriodYear, PeriodPercent:
		return true
	}
	return false
}

// Age thresholds used by the cost tables
const (
	OlderChildAge = 13
	AdultAge      = 18
)

// AgeBand classifies a single child for cost-table purposes
type AgeBand int

const (
	BandYounger AgeBand = iota
	BandOlder
	BandAdult
)

// AgeBandOf returns the band for the given age
func AgeBandOf(age int) AgeBand {
	switch {
	case age >= AdultAge:
		return BandAdult
	case age >= OlderChildAge:
		return BandOlder
	default:
		return BandYounger
	}
}

// String returns the display label for the band
func (b AgeBand) String() string {
	switch b {
	case BandYounger:
		return "Under 13"
	case BandOlder:
		return "13+"
	default:
		return "18+"
	}
}

// AgeGroup is the age composition key of a set of assessable children
type AgeGroup int

const (
	AllYounger AgeGroup = iota
	AllOlder
	Mixed
)

// AgeGroups lists every age group in table order
var AgeGroups = []AgeGroup{AllYounger, AllOlder, Mixed}

func (g AgeGroup) String() string {
	switch g {
	case AllYounger:
		return "0-12"
	case AllOlder:
		return "13+"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("AgeGroup(%d)", int(g))
	}
}

// ChildCount is the child-count key of the cost tables
type ChildCount int

const (
	OneChild ChildCount = iota
	TwoChildren
	ThreePlusChildren
)

// ChildCounts lists every child-count key in table order
var ChildCounts = []ChildCount{OneChild, TwoChildren, ThreePlusChildren}

// ChildCountOf maps a positive child count onto its table key
func ChildCountOf(n int) ChildCount {
	switch {
	case n >= 3:
		return ThreePlusChildren
	case n == 2:
		return TwoChildren
	default:
		return OneChild
	}
}

func (c ChildCount) String() string {
	switch c {
	case OneChild:
		return "1"
	case TwoChildren:
		return "2"
	case ThreePlusChildren:
		return "3+"
	default:
		return fmt.Sprintf("ChildCount(%d)", int(c))
	}
}

// Child is one child in the current case. Care amounts are expressed in Period.
type Child struct {
	ID      string          `yaml:"id,omitempty" json:"id,omitempty"`
	Age     int             `yaml:"age" json:"age" validate:"gte=0,lte=25"`
	CareA   decimal.Decimal `yaml:"care_a" json:"careA" validate:"gte=0"`
	CareB   decimal.Decimal `yaml:"care_b" json:"careB" validate:"gte=0"`
	CareNPC decimal.Decimal `yaml:"care_npc,omitempty" json:"careNPC" validate:"gte=0"`
	Period  CarePeriod      `yaml:"period" json:"period" validate:"required,oneof=week fortnight year percent"`
}

// IsAdult reports whether the child is excluded from assessment
func (c Child) IsAdult() bool {
	return c.Age >= AdultAge
}

// Label returns the ID or a positional fallback
func (c Child) Label(index int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("Child %d", index+1)
}

// OtherCaseChild is a child of one parent assessed in a separate case
type OtherCaseChild struct {
	ID  string `yaml:"id,omitempty" json:"id,omitempty"`
	Age int    `yaml:"age" json:"age" validate:"gte=0,lte=25"`
}
