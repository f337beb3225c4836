package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/config"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/pkg/utils"
	"github.com/shopspring/decimal"
)

// PayrollRules are the working-time conventions salaries are prorated on.
type PayrollRules struct {
	WorkDaysPerMonth int
	HoursPerDay      int
	// LateAfter is the minute of the day after which an arrival is late.
	LateAfter int
}

// DefaultPayrollRules is 26 days of 8 hours, late after 08:30.
func DefaultPayrollRules() PayrollRules {
	return PayrollRules{WorkDaysPerMonth: 26, HoursPerDay: 8, LateAfter: 8*60 + 30}
}

// NewPayrollRules reads the rules from configuration.
func NewPayrollRules(cfg config.PayrollConfig) (PayrollRules, error) {
	rules := DefaultPayrollRules()
	if cfg.WorkDaysPerMonth > 0 {
		rules.WorkDaysPerMonth = cfg.WorkDaysPerMonth
	}
	if cfg.HoursPerDay > 0 {
		rules.HoursPerDay = cfg.HoursPerDay
	}
	if cfg.LateThreshold != "" {
		minutes, err := utils.ParseClock(cfg.LateThreshold)
		if err != nil {
			return rules, fmt.Errorf("payroll late threshold: %w", err)
		}
		rules.LateAfter = minutes
	}
	return rules, nil
}

// PayrollResult is one employee's pay for a month.
type PayrollResult struct {
	EmployeeID       uuid.UUID       `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	PeriodKey        string          `json:"period_key"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	DailyRate        decimal.Decimal `json:"daily_rate"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	DaysWorked       int             `json:"days_worked"`
	AbsenceDays      int             `json:"absence_days"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	LateMinutes      int             `json:"late_minutes"`
	LateDeduction    decimal.Decimal `json:"late_deduction"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	IsPaid           bool            `json:"is_paid"`
}

// ComputePayroll prorates an employee's monthly salary on attendance.
//
// Every distinct day with a record counts as worked. Each missing day of
// the working month costs salary/WorkDaysPerMonth. Each minute of a check-in
// past the late threshold costs 1/60 of the hourly rate. Amounts are
// computed exactly and rounded to cents at the end; net salary is never
// negative. Records of other employees or months are ignored, as are
// records with an unreadable date.
func ComputePayroll(
	emp *entity.Employee,
	attendance []entity.AttendanceRecord,
	expenses []entity.Expense,
	month, year int,
	rules PayrollRules,
) PayrollResult {
	workDays := decimal.NewFromInt(int64(rules.WorkDaysPerMonth))
	hours := decimal.NewFromInt(int64(rules.HoursPerDay))
	salary := emp.Salary

	worked := make(map[string]struct{})
	lateMinutes := 0
	for _, rec := range attendance {
		if rec.EmployeeID != emp.ID {
			continue
		}
		day, err := utils.ParseDayDate(rec.Date)
		if err != nil || int(day.Month()) != month || day.Year() != year {
			continue
		}
		worked[utils.ISODate(day)] = struct{}{}

		if in, err := utils.ParseClock(rec.CheckIn); err == nil && in > rules.LateAfter {
			lateMinutes += in - rules.LateAfter
		}
	}

	absenceDays := max(0, rules.WorkDaysPerMonth-len(worked))
	absence := salary.Mul(decimal.NewFromInt(int64(absenceDays))).Div(workDays)
	late := salary.Mul(decimal.NewFromInt(int64(lateMinutes))).
		Div(workDays.Mul(hours).Mul(decimal.NewFromInt(60)))
	net := decimal.Max(decimal.Zero, salary.Sub(absence).Sub(late))

	periodKey := utils.PeriodKey(month, year)
	paid := false
	for i := range expenses {
		if expenses[i].SettlesPayroll(emp.ID, periodKey) {
			paid = true
			break
		}
	}

	daily := salary.Div(workDays)
	return PayrollResult{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.Name,
		Month:            month,
		Year:             year,
		PeriodKey:        periodKey,
		BaseSalary:       salary,
		DailyRate:        daily.Round(2),
		HourlyRate:       daily.Div(hours).Round(2),
		DaysWorked:       len(worked),
		AbsenceDays:      absenceDays,
		AbsenceDeduction: absence.Round(2),
		LateMinutes:      lateMinutes,
		LateDeduction:    late.Round(2),
		NetSalary:        net.Round(2),
		IsPaid:           paid,
	}
}
