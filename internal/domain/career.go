package domain

import "github.com/shopspring/decimal"

// ─── Career Levels ──────────────────────────────────────────────────────────

// CareerLevel is one tier of the metric-based career ladder.
type CareerLevel struct {
	Name       string `json:"name"`
	MinClients int    `json:"min_clients"`
}

// MetricLevels returns the six metric-based tiers in ascending order.
// The ladder is a fixed business rule, not configuration.
func MetricLevels() []CareerLevel {
	return []CareerLevel{
		{Name: "Famiglia e Utenze", MinClients: 0},
		{Name: "Incaricato alle Vendite", MinClients: 5},
		{Name: "Consulente Junior", MinClients: 10},
		{Name: "Consulente Senior", MinClients: 25},
		{Name: "Team Leader", MinClients: 50},
		{Name: "Area Manager", MinClients: 100},
	}
}

// FamilyProLevel is the special tier forced when an agent in the two lowest
// tiers has accumulated 10+ family-utility contracts.
const FamilyProLevel = "Family Pro"

// FamilyProThreshold is the family-utility contract count that triggers the
// Family Pro override.
const FamilyProThreshold = 10

// CareerStatus is derived, never stored.
type CareerStatus struct {
	Level          string       `json:"level"`
	Next           *CareerLevel `json:"next,omitempty"`
	TotalClients   int          `json:"total_clients"`
	TotalContracts int          `json:"total_contracts"`
	ProgressPct    float64      `json:"progress_pct"`
	SpecialStatus  bool         `json:"special_status"`
	ManualOverride bool         `json:"manual_override"`
}

// ─── Commission ─────────────────────────────────────────────────────────────

// CommissionStatus is a user profile setting, not derived from activity.
type CommissionStatus string

const (
	StatusStandard     CommissionStatus = "STANDARD"
	StatusPrivilegiato CommissionStatus = "PRIVILEGIATO"
)

// ParseCommissionStatus validates a commission status from config or API input.
func ParseCommissionStatus(s string) (CommissionStatus, error) {
	switch CommissionStatus(s) {
	case StatusStandard, StatusPrivilegiato:
		return CommissionStatus(s), nil
	}
	return "", ErrUnknownCommissionStatus
}

// RateTable maps (commission status, contract subtype) to a per-contract
// rate in EUR. Currency math uses decimals, never floats.
type RateTable map[CommissionStatus]map[ContractSubtype]decimal.Decimal

// Rate returns the rate for a status/subtype pair, zero when absent.
func (t RateTable) Rate(status CommissionStatus, subtype ContractSubtype) decimal.Decimal {
	if row, ok := t[status]; ok {
		return row[subtype]
	}
	return decimal.Zero
}

// DefaultRateTable returns the fixed commission lookup table.
func DefaultRateTable() RateTable {
	return RateTable{
		StatusStandard: {
			SubtypeGreen: decimal.NewFromInt(20),
			SubtypeLight: decimal.NewFromInt(10),
		},
		StatusPrivilegiato: {
			SubtypeGreen: decimal.NewFromInt(25),
			SubtypeLight: decimal.RequireFromString("12.5"),
		},
	}
}
