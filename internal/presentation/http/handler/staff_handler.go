package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/pkg/utils"
)

// StaffHandler handles employees, attendance and payroll
type StaffHandler struct {
	attendanceService *service.AttendanceService
	payrollService    *service.PayrollService
	documentService   *service.DocumentService
	now               func() time.Time
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(
	attendanceService *service.AttendanceService,
	payrollService *service.PayrollService,
	documentService *service.DocumentService,
) *StaffHandler {
	return &StaffHandler{
		attendanceService: attendanceService,
		payrollService:    payrollService,
		documentService:   documentService,
		now:               time.Now,
	}
}

// period reads month and year from the query, defaulting to the current
// month.
func (h *StaffHandler) period(c *gin.Context) (int, int, bool) {
	var req request.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid month or year")
		return 0, 0, false
	}
	now := h.now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	return req.Month, req.Year, true
}

func employeeInput(req *request.EmployeeRequest) *service.EmployeeInput {
	return &service.EmployeeInput{
		Name:         req.Name,
		Role:         req.Role,
		Department:   req.Department,
		Salary:       req.Salary,
		JoinDate:     req.JoinDate,
		ContractType: req.ContractType,
	}
}

// ListEmployees handles listing employees
func (h *StaffHandler) ListEmployees(c *gin.Context) {
	employees, err := h.attendanceService.ListEmployees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employees retrieved successfully", employees)
}

// CreateEmployee handles creating an employee
func (h *StaffHandler) CreateEmployee(c *gin.Context) {
	var req request.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := h.attendanceService.CreateEmployee(c.Request.Context(), employeeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// GetEmployee handles getting a single employee
func (h *StaffHandler) GetEmployee(c *gin.Context) {
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.attendanceService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// UpdateEmployee handles replacing an employee's details
func (h *StaffHandler) UpdateEmployee(c *gin.Context) {
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	var req request.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := h.attendanceService.UpdateEmployee(c.Request.Context(), id, employeeInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// ClockIn records an arrival
func (h *StaffHandler) ClockIn(c *gin.Context) {
	var req request.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	record, err := h.attendanceService.ClockIn(c.Request.Context(), employeeID, req.At)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Clocked in", record)
}

// ClockOut records a departure
func (h *StaffHandler) ClockOut(c *gin.Context) {
	var req request.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	record, err := h.attendanceService.ClockOut(c.Request.Context(), employeeID, req.At)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clocked out", record)
}

// ListAttendance lists an employee's records for a month
func (h *StaffHandler) ListAttendance(c *gin.Context) {
	employeeID, err := utils.ParseUUID(c.Query("employee_id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListAttendance(c.Request.Context(), employeeID, month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Attendance retrieved successfully", records)
}

// ListPayroll computes the payroll of every employee for a month
func (h *StaffHandler) ListPayroll(c *gin.Context) {
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	results, err := h.payrollService.ComputeAll(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll computed successfully", results)
}

// GetPayroll computes one employee's payroll for a month
func (h *StaffHandler) GetPayroll(c *gin.Context) {
	id, ok := paramID(c, "employee_id", "employee")
	if !ok {
		return
	}
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	result, err := h.payrollService.Compute(c.Request.Context(), id, month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll computed successfully", result)
}

// Pay books an employee's net salary as an expense, once per month
func (h *StaffHandler) Pay(c *gin.Context) {
	id, ok := paramID(c, "employee_id", "employee")
	if !ok {
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.payrollService.Pay(c.Request.Context(), &service.PayInput{
		EmployeeID:    id,
		Month:         req.Month,
		Year:          req.Year,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Salary paid", expense)
}

// Payslip renders an employee's payslip as a PDF
func (h *StaffHandler) Payslip(c *gin.Context) {
	id, ok := paramID(c, "employee_id", "employee")
	if !ok {
		return
	}
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	file, err := h.documentService.Payslip(c.Request.Context(), id, month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, file.Name, file.ContentType, file.Data)
}

// ExportPayroll renders the month's payroll as a spreadsheet
func (h *StaffHandler) ExportPayroll(c *gin.Context) {
	month, year, ok := h.period(c)
	if !ok {
		return
	}

	file, err := h.documentService.PayrollSheet(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, file.Name, file.ContentType, file.Data)
}
