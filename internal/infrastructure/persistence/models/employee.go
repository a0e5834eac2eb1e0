package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
)

// EmployeeModel is the persistence model for the Employee domain entity.
// Documents and tags are stored as JSON columns.
type EmployeeModel struct {
	AggregateModel
	Code            string `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName       string `gorm:"type:varchar(100);not null"`
	LastName        string `gorm:"type:varchar(100);not null"`
	MiddleName      string `gorm:"type:varchar(100)"`
	Email           string `gorm:"type:varchar(200);index"`
	Phone           string `gorm:"type:varchar(50)"`
	DateOfBirth     *time.Time
	PositionGroup   employee.PositionGroup  `gorm:"type:varchar(30);not null;index"`
	PositionTitle   string                  `gorm:"type:varchar(200)"`
	Grade           string                  `gorm:"type:varchar(10)"`
	DepartmentID    *uuid.UUID              `gorm:"type:uuid;index"`
	LineManagerID   *uuid.UUID              `gorm:"type:uuid;index"`
	Status          employee.EmployeeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	HireDate        time.Time               `gorm:"not null"`
	TerminationDate *time.Time
	PhotoKey        string `gorm:"type:varchar(500)"`
	Documents       string `gorm:"type:jsonb;default:'[]'"`
	Tags            string `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() (*employee.Employee, error) {
	var documents []employee.Document
	if m.Documents != "" {
		if err := json.Unmarshal([]byte(m.Documents), &documents); err != nil {
			return nil, err
		}
	}

	var tags []string
	if m.Tags != "" {
		if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
			return nil, err
		}
	}

	emp := &employee.Employee{
		Code:            m.Code,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		MiddleName:      m.MiddleName,
		Email:           m.Email,
		Phone:           m.Phone,
		DateOfBirth:     m.DateOfBirth,
		PositionGroup:   m.PositionGroup,
		PositionTitle:   m.PositionTitle,
		Grade:           m.Grade,
		DepartmentID:    m.DepartmentID,
		LineManagerID:   m.LineManagerID,
		Status:          m.Status,
		HireDate:        m.HireDate,
		TerminationDate: m.TerminationDate,
		PhotoKey:        m.PhotoKey,
		Documents:       documents,
		Tags:            tags,
	}
	m.PopulateAggregateRoot(&emp.BaseAggregateRoot)
	return emp, nil
}

// FromDomain populates the persistence model from a domain Employee entity.
func (m *EmployeeModel) FromDomain(e *employee.Employee) error {
	documents, err := json.Marshal(e.Documents)
	if err != nil {
		return err
	}
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Code = e.Code
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.MiddleName = e.MiddleName
	m.Email = e.Email
	m.Phone = e.Phone
	m.DateOfBirth = e.DateOfBirth
	m.PositionGroup = e.PositionGroup
	m.PositionTitle = e.PositionTitle
	m.Grade = e.Grade
	m.DepartmentID = e.DepartmentID
	m.LineManagerID = e.LineManagerID
	m.Status = e.Status
	m.HireDate = e.HireDate
	m.TerminationDate = e.TerminationDate
	m.PhotoKey = e.PhotoKey
	m.Documents = string(documents)
	m.Tags = string(tags)
	return nil
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee entity.
func EmployeeModelFromDomain(e *employee.Employee) (*EmployeeModel, error) {
	m := &EmployeeModel{}
	if err := m.FromDomain(e); err != nil {
		return nil, err
	}
	return m, nil
}
