package training

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/domain/training"
)

// TrainingService handles the training catalog and assignment lifecycle
type TrainingService struct {
	trainingRepo   training.TrainingRepository
	assignmentRepo training.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(
	trainingRepo training.TrainingRepository,
	assignmentRepo training.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
) *TrainingService {
	return &TrainingService{
		trainingRepo:   trainingRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// Create creates a new catalog entry
func (s *TrainingService) Create(ctx context.Context, req CreateTrainingRequest) (*TrainingResponse, error) {
	trainingType := training.TrainingType(strings.ToUpper(strings.TrimSpace(req.Type)))
	entry, err := training.NewTraining(req.Title, trainingType)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.DurationHrs > 0 {
		if err := entry.Update(req.Title, req.Description, req.DurationHrs); err != nil {
			return nil, err
		}
	}

	if err := s.trainingRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToTrainingResponse(entry)
	return &response, nil
}

// Get retrieves a catalog entry by ID
func (s *TrainingService) Get(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTrainingResponse(entry)
	return &response, nil
}

// List retrieves catalog entries matching the filter
func (s *TrainingService) List(ctx context.Context, filter TrainingListFilter) (*shared.Paginated[TrainingResponse], error) {
	domainFilter := training.NewTrainingFilter().
		WithKeyword(filter.Keyword).
		WithPagination(filter.Page, filter.PageSize)

	if filter.Type != "" {
		trainingType := training.TrainingType(strings.ToUpper(filter.Type))
		if !trainingType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TRAINING_TYPE", "Unknown training type: "+filter.Type)
		}
		domainFilter = domainFilter.WithType(trainingType)
	}
	if filter.IsActive != nil {
		domainFilter = domainFilter.WithActive(*filter.IsActive)
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	page, err := s.trainingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]TrainingResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, ToTrainingResponse(t))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a catalog entry
func (s *TrainingService) Update(ctx context.Context, id uuid.UUID, req UpdateTrainingRequest) (*TrainingResponse, error) {
	return s.mutate(ctx, id, func(t *training.Training) error {
		return t.Update(req.Title, req.Description, req.DurationHrs)
	})
}

// Activate returns a catalog entry to active status
func (s *TrainingService) Activate(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	return s.mutate(ctx, id, func(t *training.Training) error { return t.Activate() })
}

// Deactivate retires a catalog entry from new assignments
func (s *TrainingService) Deactivate(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	return s.mutate(ctx, id, func(t *training.Training) error { return t.Deactivate() })
}

// Delete removes a catalog entry. Trainings with assignments cannot be
// deleted, only deactivated.
func (s *TrainingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.trainingRepo.FindByID(ctx, id); err != nil {
		return err
	}

	assignments, err := s.trainingRepo.CountAssignments(ctx, id)
	if err != nil {
		return err
	}
	if assignments > 0 {
		return shared.NewDomainError("TRAINING_HAS_ASSIGNMENTS", "Cannot delete a training with assignments")
	}

	return s.trainingRepo.Delete(ctx, id)
}

// Assign assigns a training to the given employees. Employees who
// already have an open assignment for the training are skipped, so
// re-running a bulk assignment is safe.
func (s *TrainingService) Assign(ctx context.Context, req AssignRequest) (*BulkAssignResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, req.TrainingID)
	if err != nil {
		return nil, err
	}
	if !entry.IsActive {
		return nil, shared.NewDomainError("TRAINING_INACTIVE", "Cannot assign an inactive training")
	}

	assignments := make([]*training.Assignment, 0, len(req.EmployeeIDs))
	skipped := 0
	for _, employeeID := range req.EmployeeIDs {
		emp, err := s.employeeRepo.FindByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee not found: "+employeeID.String())
			}
			return nil, err
		}
		if !emp.CanReceiveAssignments() {
			return nil, shared.ErrEmployeeTerminated
		}

		open, err := s.assignmentRepo.ExistsOpen(ctx, req.TrainingID, employeeID)
		if err != nil {
			return nil, err
		}
		if open {
			skipped++
			continue
		}

		assignment, err := training.NewAssignment(req.TrainingID, employeeID, req.DueDate)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if len(assignments) > 0 {
		if err := s.assignmentRepo.SaveAll(ctx, assignments); err != nil {
			return nil, err
		}
	}

	assigned := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		assigned = append(assigned, ToAssignmentResponse(a))
	}

	return &BulkAssignResponse{Assigned: assigned, Skipped: skipped}, nil
}

// Start marks the assignment as started by the assigned employee
func (s *TrainingService) Start(ctx context.Context, assignmentID, actorEmployeeID uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.EmployeeID != actorEmployeeID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the assigned employee can start the training")
	}

	if err := assignment.Start(); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// Complete marks the assignment completed with an optional score
func (s *TrainingService) Complete(ctx context.Context, assignmentID uuid.UUID, req CompleteRequest) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := assignment.Complete(req.Score); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// GetAssignment retrieves an assignment by ID
func (s *TrainingService) GetAssignment(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// ListAssignments retrieves assignments matching the filter
func (s *TrainingService) ListAssignments(ctx context.Context, filter AssignmentListFilter) (*shared.Paginated[AssignmentResponse], error) {
	domainFilter := training.NewAssignmentFilter().
		WithPagination(filter.Page, filter.PageSize)

	if filter.TrainingID != nil {
		domainFilter = domainFilter.WithTrainingID(*filter.TrainingID)
	}
	if filter.EmployeeID != nil {
		domainFilter = domainFilter.WithEmployeeID(*filter.EmployeeID)
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(training.AssignmentStatus(strings.ToUpper(filter.Status)))
	}

	page, err := s.assignmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AssignmentResponse, 0, len(page.Items))
	for _, a := range page.Items {
		items = append(items, ToAssignmentResponse(a))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// EmployeeTrainings lists all assignments of an employee
func (s *TrainingService) EmployeeTrainings(ctx context.Context, employeeID uuid.UUID) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	items := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, ToAssignmentResponse(a))
	}
	return items, nil
}

// CompletionReport aggregates completion counts for a training
func (s *TrainingService) CompletionReport(ctx context.Context, trainingID uuid.UUID) (*CompletionReportResponse, error) {
	if _, err := s.trainingRepo.FindByID(ctx, trainingID); err != nil {
		return nil, err
	}

	stats, err := s.assignmentRepo.CompletionStats(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	return &CompletionReportResponse{
		TrainingID:     trainingID,
		Total:          stats.Total,
		Completed:      stats.Completed,
		Overdue:        stats.Overdue,
		CompletionRate: stats.CompletionRate(),
	}, nil
}

// DepartmentCompletionReport aggregates completion counts across every
// assignment held by the department's employees. An unknown department
// simply yields an empty report.
func (s *TrainingService) DepartmentCompletionReport(ctx context.Context, departmentID uuid.UUID) (*DepartmentCompletionReportResponse, error) {
	report := &DepartmentCompletionReportResponse{DepartmentID: departmentID}

	filter := employee.NewEmployeeFilter().
		WithDepartmentID(departmentID).
		WithPagination(1, 200)
	for {
		page, err := s.employeeRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}

		for _, emp := range page.Items {
			report.Employees++
			assignments, err := s.assignmentRepo.FindByEmployee(ctx, emp.ID)
			if err != nil {
				return nil, err
			}
			for _, a := range assignments {
				report.Total++
				switch a.Status {
				case training.AssignmentStatusCompleted:
					report.Completed++
				case training.AssignmentStatusOverdue:
					report.Overdue++
				}
			}
		}

		if int64(filter.Page*filter.PageSize) >= page.Total {
			break
		}
		filter = filter.WithPagination(filter.Page+1, filter.PageSize)
	}

	if report.Total > 0 {
		report.CompletionRate = float64(report.Completed) / float64(report.Total)
	}
	return report, nil
}

// SweepOverdue flags open assignments whose due date has passed.
// It backs the nightly scheduler job and returns the number of
// assignments flagged.
func (s *TrainingService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	assignments, err := s.assignmentRepo.FindOpenPastDue(ctx, now)
	if err != nil {
		return 0, err
	}

	flagged := make([]*training.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if err := assignment.MarkOverdue(now); err != nil {
			// Already overdue or completed between query and sweep
			continue
		}
		flagged = append(flagged, assignment)
	}

	if len(flagged) > 0 {
		if err := s.assignmentRepo.SaveAll(ctx, flagged); err != nil {
			return 0, err
		}
	}

	return len(flagged), nil
}

// GetOverdueTrainingCount reports the overdue assignment gauge value
func (s *TrainingService) GetOverdueTrainingCount(ctx context.Context) (int64, error) {
	filter := training.NewAssignmentFilter().
		WithStatus(training.AssignmentStatusOverdue).
		WithPagination(1, 1)

	page, err := s.assignmentRepo.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

func (s *TrainingService) mutate(ctx context.Context, id uuid.UUID, fn func(*training.Training) error) (*TrainingResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(entry); err != nil {
		return nil, err
	}

	if err := s.trainingRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToTrainingResponse(entry)
	return &response, nil
}
