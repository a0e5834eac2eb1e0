package employee

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// EmployeeStatus represents the lifecycle status of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "ACTIVE"
	EmployeeStatusOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeStatusTerminated EmployeeStatus = "TERMINATED"
)

// Document represents an attached document stored in object storage
type Document struct {
	ID         uuid.UUID
	Name       string
	StorageKey string // Object storage key
	MimeType   string
	SizeBytes  int64
	UploadedAt time.Time
}

// Employee represents an employee record
// It is the aggregate root for employee master data
type Employee struct {
	shared.BaseAggregateRoot
	Code            string // Unique code, e.g. "EMP-0042"
	FirstName       string
	LastName        string
	MiddleName      string
	Email           string
	Phone           string
	DateOfBirth     *time.Time
	PositionGroup   PositionGroup
	PositionTitle   string
	Grade           string // Grade within the position group, e.g. "1", "2A"
	DepartmentID    *uuid.UUID
	LineManagerID   *uuid.UUID // Direct manager (another employee)
	Status          EmployeeStatus
	HireDate        time.Time
	TerminationDate *time.Time
	PhotoKey        string // Object storage key for the profile photo
	Documents       []Document
	Tags            []string
}

// NewEmployee creates a new employee record
func NewEmployee(code, firstName, lastName string, positionGroup PositionGroup, hireDate time.Time) (*Employee, error) {
	if err := validateEmployeeCode(code); err != nil {
		return nil, err
	}
	if err := validatePersonName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return nil, err
	}
	if !positionGroup.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group")
	}
	if hireDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_HIRE_DATE", "Hire date is required")
	}

	emp := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		PositionGroup:     positionGroup,
		Status:            EmployeeStatusActive,
		HireDate:          hireDate,
		Documents:         make([]Document, 0),
		Tags:              make([]string, 0),
	}

	emp.AddDomainEvent(NewEmployeeCreatedEvent(emp))

	return emp, nil
}

// FullName returns the employee's full name
func (e *Employee) FullName() string {
	if e.MiddleName != "" {
		return fmt.Sprintf("%s %s %s", e.FirstName, e.MiddleName, e.LastName)
	}
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// UpdatePersonal updates the employee's personal fields
func (e *Employee) UpdatePersonal(firstName, lastName, middleName, email, phone string, dateOfBirth *time.Time) error {
	if err := validatePersonName(firstName, "First name"); err != nil {
		return err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmployeeEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}

	e.FirstName = strings.TrimSpace(firstName)
	e.LastName = strings.TrimSpace(lastName)
	e.MiddleName = strings.TrimSpace(middleName)
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	e.DateOfBirth = dateOfBirth
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeUpdatedEvent(e))

	return nil
}

// SetPosition sets the employee's position group, title, and grade
func (e *Employee) SetPosition(group PositionGroup, title, grade string) error {
	if !group.IsValid() {
		return shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group")
	}
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_POSITION_TITLE", "Position title cannot be empty")
	}

	oldGroup := e.PositionGroup
	e.PositionGroup = group
	e.PositionTitle = strings.TrimSpace(title)
	e.Grade = strings.TrimSpace(grade)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	if oldGroup != group {
		e.AddDomainEvent(NewEmployeePositionChangedEvent(e, oldGroup, group))
	}

	return nil
}

// SetDepartment sets the employee's department
func (e *Employee) SetDepartment(departmentID *uuid.UUID) {
	e.DepartmentID = departmentID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// ChangeManager changes the employee's line manager.
// Self-management is rejected here; cycle detection across the manager
// graph requires repository access and is enforced by CheckManagerAssignment.
func (e *Employee) ChangeManager(managerID *uuid.UUID) error {
	if managerID != nil && *managerID == e.ID {
		return shared.NewDomainError("INVALID_MANAGER", "Employee cannot be their own manager")
	}

	oldManagerID := e.LineManagerID
	e.LineManagerID = managerID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeManagerChangedEvent(e, oldManagerID, managerID))

	return nil
}

// Terminate terminates the employee
func (e *Employee) Terminate(terminationDate time.Time) error {
	if e.Status == EmployeeStatusTerminated {
		return shared.NewDomainError("ALREADY_TERMINATED", "Employee is already terminated")
	}
	if terminationDate.Before(e.HireDate) {
		return shared.NewDomainError("INVALID_TERMINATION_DATE", "Termination date cannot be before hire date")
	}

	oldStatus := e.Status
	e.Status = EmployeeStatusTerminated
	e.TerminationDate = &terminationDate
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeStatusChangedEvent(e, oldStatus, EmployeeStatusTerminated))

	return nil
}

// PutOnLeave marks the employee as on leave
func (e *Employee) PutOnLeave() error {
	if e.Status != EmployeeStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active employees can be put on leave")
	}

	e.Status = EmployeeStatusOnLeave
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeStatusChangedEvent(e, EmployeeStatusActive, EmployeeStatusOnLeave))

	return nil
}

// Reactivate returns the employee to active status.
// Works for both on-leave and terminated (rehired) employees.
func (e *Employee) Reactivate() error {
	if e.Status == EmployeeStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Employee is already active")
	}

	oldStatus := e.Status
	e.Status = EmployeeStatusActive
	e.TerminationDate = nil
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeStatusChangedEvent(e, oldStatus, EmployeeStatusActive))

	return nil
}

// IsActive returns true if the employee is active
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// IsTerminated returns true if the employee is terminated
func (e *Employee) IsTerminated() bool {
	return e.Status == EmployeeStatusTerminated
}

// CanReceiveAssignments returns true if the employee may receive assets,
// trainings, or job description assignments
func (e *Employee) CanReceiveAssignments() bool {
	return e.Status != EmployeeStatusTerminated
}

// SetPhoto sets the profile photo storage key
func (e *Employee) SetPhoto(storageKey string) {
	e.PhotoKey = storageKey
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// AddDocument attaches a document to the employee
func (e *Employee) AddDocument(name, storageKey, mimeType string, sizeBytes int64) (*Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document name cannot be empty")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	doc := Document{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(name),
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		UploadedAt: time.Now(),
	}

	e.Documents = append(e.Documents, doc)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return &doc, nil
}

// RemoveDocument removes an attached document
func (e *Employee) RemoveDocument(documentID uuid.UUID) error {
	found := false
	newDocs := make([]Document, 0, len(e.Documents))
	for _, d := range e.Documents {
		if d.ID != documentID {
			newDocs = append(newDocs, d)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("DOCUMENT_NOT_FOUND", "Employee does not have this document")
	}

	e.Documents = newDocs
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// AddTag adds a tag to the employee
func (e *Employee) AddTag(tag string) error {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return shared.NewDomainError("INVALID_TAG", "Tag cannot be empty")
	}
	if len(tag) > 50 {
		return shared.NewDomainError("INVALID_TAG", "Tag cannot exceed 50 characters")
	}

	for _, t := range e.Tags {
		if t == tag {
			return shared.NewDomainError("TAG_ALREADY_EXISTS", "Employee already has this tag")
		}
	}

	e.Tags = append(e.Tags, tag)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// RemoveTag removes a tag from the employee
func (e *Employee) RemoveTag(tag string) error {
	tag = strings.ToLower(strings.TrimSpace(tag))

	found := false
	newTags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		if t != tag {
			newTags = append(newTags, t)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("TAG_NOT_FOUND", "Employee does not have this tag")
	}

	e.Tags = newTags
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Validation functions

var employeeCodeRegex = regexp.MustCompile(`^[A-Z]{2,5}-[0-9]{1,6}$`)

func validateEmployeeCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return shared.NewDomainError("INVALID_EMPLOYEE_CODE", "Employee code cannot be empty")
	}
	if !employeeCodeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_EMPLOYEE_CODE", "Employee code must match PREFIX-NUMBER format (e.g., EMP-0042)")
	}
	return nil
}

func validatePersonName(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 100 characters")
	}
	return nil
}

func validateEmployeeEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}
