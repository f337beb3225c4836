package enum

import "database/sql/driver"

// ExpenseCategory groups expenses. Salaries records payroll payouts.
type ExpenseCategory string

const (
	ExpenseSalaries    ExpenseCategory = "Salaires"
	ExpenseSupplies    ExpenseCategory = "Fournitures"
	ExpenseRent        ExpenseCategory = "Loyer"
	ExpenseUtilities   ExpenseCategory = "Factures"
	ExpenseMaintenance ExpenseCategory = "Entretien"
	ExpenseOther       ExpenseCategory = "Autre"
)

// ExpenseCategories lists every category, in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseSalaries, ExpenseSupplies, ExpenseRent, ExpenseUtilities, ExpenseMaintenance, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	return scanString((*string)(c), value)
}
