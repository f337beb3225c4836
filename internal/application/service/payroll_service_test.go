package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) attend(t *testing.T, emp *entity.Employee, days int, checkIn string) {
	t.Helper()
	for _, rec := range attendanceDays(emp, 3, 2024, days, checkIn) {
		require.NoError(t, f.attendance.Create(f.ctx, &rec))
	}
}

func TestPayrollService_PayOncePerPeriod(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Moussa", 30000)
	f.attend(t, emp, 20, "08:00")

	expense, err := f.payrollSvc.Pay(f.ctx, &PayInput{EmployeeID: emp.ID, Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "Salaire Moussa - mars 2024", expense.Description)
	assert.Equal(t, enum.ExpenseSalaries, expense.Category)
	assert.Equal(t, "2024-03", expense.PeriodKey)
	assert.Equal(t, "2024-03-15", expense.Date)
	requireDecimal(t, "23076.92", expense.Amount)

	result, err := f.payrollSvc.Compute(f.ctx, emp.ID, 3, 2024)
	require.NoError(t, err)
	assert.True(t, result.IsPaid)

	_, err = f.payrollSvc.Pay(f.ctx, &PayInput{EmployeeID: emp.ID, Month: 3, Year: 2024})
	require.ErrorIs(t, err, ErrAlreadyPaid)

	expenses, _, err := f.expenses.List(f.ctx, &repository.ExpenseFilterParams{})
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestPayrollService_NothingToPay(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Awa", 30000)

	_, err := f.payrollSvc.Pay(f.ctx, &PayInput{EmployeeID: emp.ID, Month: 3, Year: 2024})
	require.ErrorIs(t, err, ErrNothingToPay)
}

func TestPayrollService_Validation(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Awa", 30000)

	_, err := f.payrollSvc.Compute(f.ctx, emp.ID, 13, 2024)
	require.Error(t, err)

	_, err = f.payrollSvc.Compute(f.ctx, uuid.New(), 3, 2024)
	require.Error(t, err)

	_, err = f.payrollSvc.Pay(f.ctx, &PayInput{EmployeeID: emp.ID, Month: 3, Year: 2024, PaymentMethod: "gold"})
	require.Error(t, err)
}

func TestPayrollService_ComputeAll(t *testing.T) {
	f := newFixture(t)
	moussa := f.employee(t, "Moussa", 26000)
	awa := f.employee(t, "Awa", 26000)
	f.attend(t, moussa, 26, "08:00")
	f.attend(t, awa, 13, "08:00")

	_, err := f.payrollSvc.Pay(f.ctx, &PayInput{EmployeeID: moussa.ID, Month: 3, Year: 2024})
	require.NoError(t, err)

	results, err := f.payrollSvc.ComputeAll(f.ctx, 3, 2024)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byName := map[string]PayrollResult{}
	for _, r := range results {
		byName[r.EmployeeName] = r
	}
	requireDecimal(t, "26000", byName["Moussa"].NetSalary)
	assert.True(t, byName["Moussa"].IsPaid)
	requireDecimal(t, "13000", byName["Awa"].NetSalary)
	assert.False(t, byName["Awa"].IsPaid)
}

func TestAttendance_ClockInOut(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Moussa", 30000)
	morning := time.Date(2024, 3, 15, 8, 45, 0, 0, time.UTC)

	rec, err := f.attendanceSvc.ClockIn(f.ctx, emp.ID, &morning)
	require.NoError(t, err)
	assert.Equal(t, "15/03/2024", rec.Date)
	assert.Equal(t, "08:45", rec.CheckIn)

	_, err = f.attendanceSvc.ClockIn(f.ctx, emp.ID, nil)
	require.ErrorIs(t, err, ErrAlreadyClockedIn)

	stored, err := f.attendanceSvc.GetEmployee(f.ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsClockedIn)

	out, err := f.attendanceSvc.ClockOut(f.ctx, emp.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	assert.Equal(t, "12:00", *out.CheckOut)

	_, err = f.attendanceSvc.ClockOut(f.ctx, emp.ID, nil)
	require.ErrorIs(t, err, ErrNotClockedIn)

	stored, err = f.attendanceSvc.GetEmployee(f.ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsClockedIn)

	march, err := f.attendanceSvc.ListAttendance(f.ctx, emp.ID, 3, 2024)
	require.NoError(t, err)
	assert.Len(t, march, 1)
	april, err := f.attendanceSvc.ListAttendance(f.ctx, emp.ID, 4, 2024)
	require.NoError(t, err)
	assert.Empty(t, april)

	result, err := f.payrollSvc.Compute(f.ctx, emp.ID, 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, 15, result.LateMinutes)
}

func TestAttendance_EmployeeCRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.attendanceSvc.CreateEmployee(f.ctx, &EmployeeInput{Name: " ", Salary: dec(-1)})
	require.Error(t, err)

	emp, err := f.attendanceSvc.CreateEmployee(f.ctx, &EmployeeInput{
		Name:     "Moussa",
		Role:     "Serveur",
		Salary:   dec(30000),
		JoinDate: "01/02/2023",
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01", emp.JoinDate)

	updated, err := f.attendanceSvc.UpdateEmployee(f.ctx, emp.ID, &EmployeeInput{Name: "Moussa D.", Salary: dec(32000)})
	require.NoError(t, err)
	assert.Equal(t, "Moussa D.", updated.Name)

	all, err := f.attendanceSvc.ListEmployees(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	requireDecimal(t, "32000", all[0].Salary)

	_, err = f.attendanceSvc.GetEmployee(f.ctx, uuid.New())
	require.Error(t, err)
}

func TestExpenseService_Record(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.expenses, f.store, f.log)
	svc.now = func() time.Time { return f.clock }

	expense, err := svc.Record(f.ctx, &ExpenseInput{Description: "Gaz", Amount: dec(1500)})
	require.NoError(t, err)
	assert.Equal(t, enum.ExpenseOther, expense.Category)
	assert.Equal(t, "2024-03-15", expense.Date)

	_, err = svc.Record(f.ctx, &ExpenseInput{Description: "Loyer", Amount: dec(20000), Category: enum.ExpenseRent, Date: "01/03/2024"})
	require.NoError(t, err)

	_, err = svc.Record(f.ctx, &ExpenseInput{Description: "Salaire", Amount: dec(1), Category: enum.ExpenseSalaries})
	require.Error(t, err)
	_, err = svc.Record(f.ctx, &ExpenseInput{Description: "Rien", Amount: dec(0)})
	require.Error(t, err)

	rent := enum.ExpenseRent
	page, err := svc.List(f.ctx, &repository.ExpenseFilterParams{Category: &rent})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2024-03-01", page.Items[0].Date)
}
