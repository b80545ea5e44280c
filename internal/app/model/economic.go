package model

// Balance types reported by the channel. Only the annual income kinds are
// persisted; anything else is ignored.
const (
	BalanceRealAnnualIncome      = "REAL_ANNUAL_INCOME"
	BalanceProjectedAnnualIncome = "PROJECTED_ANNUAL_INCOME"
)

// Package assignment derived from the declared income.
const (
	IncomeAssignFull    = "INCOME_ASSIGN_FULL"
	IncomeAssignPartial = "INCOME_ASSIGN_PARTIAL"
)

// Balance is one declared income line.
type Balance struct {
	BalanceType string  `json:"balance_type"`
	Amount      float64 `json:"amount"`
	IncomeDate  string  `json:"income_date"` // yyyyMMdd
}

// EconomicData is the economic profile sent by the channel.
type EconomicData struct {
	EconomicActivityID int       `json:"economic_activity_id"`
	TaxConditionID     int       `json:"tax_condition_id"`
	Balances           []Balance `json:"balances"`
}

// QualifyingBalance returns the first balance of an annual income kind,
// or nil when none qualifies.
func (e *EconomicData) QualifyingBalance() *Balance {
	for i := range e.Balances {
		t := e.Balances[i].BalanceType
		if t == BalanceRealAnnualIncome || t == BalanceProjectedAnnualIncome {
			return &e.Balances[i]
		}
	}
	return nil
}
