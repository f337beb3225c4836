package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a staff member paid a monthly gross salary.
type Employee struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Role         string          `gorm:"size:100" json:"role"`
	Department   string          `gorm:"size:100" json:"department"`
	Salary       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"salary"`
	JoinDate     string          `gorm:"size:10" json:"join_date"`
	IsClockedIn  bool            `gorm:"not null;default:false" json:"is_clocked_in"`
	ContractType string          `gorm:"size:50" json:"contract_type"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Employee) TableName() string {
	return "employees"
}

// AttendanceRecord is one clock-in, and optionally its clock-out, on a day.
// Date is DD/MM/YYYY, CheckIn and CheckOut are HH:MM.
type AttendanceRecord struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:char(36);not null;index" json:"employee_id"`
	EmployeeName string    `gorm:"size:255" json:"employee_name"`
	Date         string    `gorm:"size:10;not null;index" json:"date"`
	CheckIn      string    `gorm:"size:8;not null" json:"check_in"`
	CheckOut     *string   `gorm:"size:8" json:"check_out,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a *AttendanceRecord) IsOpen() bool {
	return a.CheckOut == nil
}
