package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/config"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attendanceDays(emp *entity.Employee, month, year, days int, checkIn string) []entity.AttendanceRecord {
	records := make([]entity.AttendanceRecord, days)
	for i := range records {
		records[i] = entity.AttendanceRecord{
			EmployeeID: emp.ID,
			Date:       fmt.Sprintf("%02d/%02d/%04d", i+1, month, year),
			CheckIn:    checkIn,
		}
	}
	return records
}

func TestComputePayroll_AbsenceDeduction(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Name: "Moussa", Salary: dec(30000)}
	records := attendanceDays(emp, 3, 2024, 20, "08:00")

	r := ComputePayroll(emp, records, nil, 3, 2024, DefaultPayrollRules())

	assert.Equal(t, 20, r.DaysWorked)
	assert.Equal(t, 6, r.AbsenceDays)
	requireDecimal(t, "6923.08", r.AbsenceDeduction)
	assert.True(t, r.LateDeduction.IsZero())
	requireDecimal(t, "23076.92", r.NetSalary)
	requireDecimal(t, "1153.85", r.DailyRate)
	assert.Equal(t, "2024-03", r.PeriodKey)
	assert.False(t, r.IsPaid)
}

func TestComputePayroll_NoAttendanceIsZero(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(30000)}

	r := ComputePayroll(emp, nil, nil, 3, 2024, DefaultPayrollRules())
	assert.Equal(t, 26, r.AbsenceDays)
	assert.True(t, r.NetSalary.IsZero())
}

func TestComputePayroll_LateMinutes(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(30000)}
	records := attendanceDays(emp, 3, 2024, 26, "08:30")
	records[0].CheckIn = "09:00"

	r := ComputePayroll(emp, records, nil, 3, 2024, DefaultPayrollRules())

	assert.Equal(t, 0, r.AbsenceDays)
	assert.Equal(t, 30, r.LateMinutes)
	requireDecimal(t, "72.12", r.LateDeduction)
	requireDecimal(t, "29927.88", r.NetSalary)
}

func TestComputePayroll_ArrivalAtThresholdIsOnTime(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(26000)}
	records := attendanceDays(emp, 3, 2024, 26, "08:30")

	r := ComputePayroll(emp, records, nil, 3, 2024, DefaultPayrollRules())
	assert.Equal(t, 0, r.LateMinutes)
	requireDecimal(t, "26000", r.NetSalary)
}

func TestComputePayroll_IgnoresOtherRecords(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(26000)}
	other := &entity.Employee{ID: uuid.New()}

	records := attendanceDays(emp, 3, 2024, 2, "08:00")
	records = append(records,
		// same day twice counts once
		entity.AttendanceRecord{EmployeeID: emp.ID, Date: "01/03/2024", CheckIn: "14:00"},
		entity.AttendanceRecord{EmployeeID: emp.ID, Date: "01/04/2024", CheckIn: "08:00"},
		entity.AttendanceRecord{EmployeeID: emp.ID, Date: "not a date", CheckIn: "08:00"},
		entity.AttendanceRecord{EmployeeID: other.ID, Date: "05/03/2024", CheckIn: "08:00"},
	)

	r := ComputePayroll(emp, records, nil, 3, 2024, DefaultPayrollRules())
	assert.Equal(t, 2, r.DaysWorked)
	assert.Equal(t, 330, r.LateMinutes)
}

func TestComputePayroll_NetNeverNegative(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(1000)}
	records := attendanceDays(emp, 3, 2024, 1, "23:59")

	r := ComputePayroll(emp, records, nil, 3, 2024, DefaultPayrollRules())
	assert.True(t, r.NetSalary.IsZero())
}

func TestComputePayroll_IsPaid(t *testing.T) {
	emp := &entity.Employee{ID: uuid.New(), Salary: dec(1000)}
	paid := []entity.Expense{{
		Category:   enum.ExpenseSalaries,
		EmployeeID: &emp.ID,
		PeriodKey:  "2024-03",
	}}

	assert.True(t, ComputePayroll(emp, nil, paid, 3, 2024, DefaultPayrollRules()).IsPaid)
	assert.False(t, ComputePayroll(emp, nil, paid, 4, 2024, DefaultPayrollRules()).IsPaid)
}

func TestNewPayrollRules(t *testing.T) {
	rules, err := NewPayrollRules(config.PayrollConfig{WorkDaysPerMonth: 22, LateThreshold: "09:15"})
	require.NoError(t, err)
	assert.Equal(t, 22, rules.WorkDaysPerMonth)
	assert.Equal(t, 8, rules.HoursPerDay)
	assert.Equal(t, 9*60+15, rules.LateAfter)

	_, err = NewPayrollRules(config.PayrollConfig{LateThreshold: "late"})
	require.Error(t, err)
}
