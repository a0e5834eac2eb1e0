package jobdesc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/jobdesc"
	"github.com/hris/backend/internal/domain/shared"
)

// AssignmentService drives the job description approval workflow
type AssignmentService struct {
	jdRepo         jobdesc.JobDescriptionRepository
	assignmentRepo jobdesc.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	jdRepo jobdesc.JobDescriptionRepository,
	assignmentRepo jobdesc.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
) *AssignmentService {
	return &AssignmentService{
		jdRepo:         jdRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// Create drafts an assignment of a job description to an employee or
// a vacancy. For employee assignments the line manager defaults to the
// employee's manager of record; vacancy assignments must name one.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	jd, err := s.jdRepo.FindByID(ctx, req.JobDescriptionID)
	if err != nil {
		return nil, err
	}
	if !jd.IsActive {
		return nil, shared.NewDomainError("JD_INACTIVE", "Cannot assign an inactive job description")
	}

	lineManagerID := req.LineManagerID

	if req.EmployeeID != nil {
		emp, err := s.employeeRepo.FindByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee not found")
			}
			return nil, err
		}
		if !emp.CanReceiveAssignments() {
			return nil, shared.ErrEmployeeTerminated
		}

		open, err := s.assignmentRepo.FindOpenByEmployee(ctx, *req.EmployeeID)
		if err != nil {
			return nil, err
		}
		for _, a := range open {
			if a.JobDescriptionID == req.JobDescriptionID {
				return nil, shared.NewDomainError("ASSIGNMENT_EXISTS", "Employee already has an open assignment for this job description")
			}
		}

		if lineManagerID == nil {
			lineManagerID = emp.LineManagerID
		}
	}

	if lineManagerID == nil {
		return nil, shared.NewDomainError("INVALID_MANAGER_ID", "A line manager is required to route approval")
	}

	manager, err := s.employeeRepo.FindByID(ctx, *lineManagerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_MANAGER_ID", "Line manager not found")
		}
		return nil, err
	}
	if manager.IsTerminated() {
		return nil, shared.NewDomainError("INVALID_MANAGER_ID", "Line manager is terminated")
	}

	assignment, err := jobdesc.NewAssignment(req.JobDescriptionID, req.EmployeeID, *lineManagerID)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// Get retrieves an assignment by ID
func (s *AssignmentService) Get(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAssignmentResponse(assignment)
	return &response, nil
}

// List retrieves assignments matching the filter
func (s *AssignmentService) List(ctx context.Context, filter AssignmentListFilter) (*shared.Paginated[AssignmentResponse], error) {
	domainFilter := jobdesc.NewAssignmentFilter().
		WithPagination(filter.Page, filter.PageSize)

	if filter.JobDescriptionID != nil {
		domainFilter = domainFilter.WithJobDescriptionID(*filter.JobDescriptionID)
	}
	if filter.EmployeeID != nil {
		domainFilter = domainFilter.WithEmployeeID(*filter.EmployeeID)
	}
	if filter.LineManagerID != nil {
		domainFilter = domainFilter.WithLineManagerID(*filter.LineManagerID)
	}
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(jobdesc.ApprovalStatus(strings.ToUpper(filter.Status)))
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

// PendingForActor lists assignments awaiting a decision from the actor
func (s *AssignmentService) PendingForActor(ctx context.Context, actorEmployeeID uuid.UUID) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindPendingForActor(ctx, actorEmployeeID)
	if err != nil {
		return nil, err
	}

	items := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, ToAssignmentResponse(a))
	}
	return items, nil
}

// Submit sends a draft assignment into the line manager's queue
func (s *AssignmentService) Submit(ctx context.Context, id, actorEmployeeID uuid.UUID) (*AssignmentResponse, error) {
	return s.mutate(ctx, id, func(a *jobdesc.Assignment) error {
		return a.Submit(actorEmployeeID)
	})
}

// Approve records the pending stage's approval. The domain routes the
// decision: line manager first, then the assigned employee; vacancy
// assignments complete at the manager stage.
func (s *AssignmentService) Approve(ctx context.Context, id, actorEmployeeID uuid.UUID, req DecisionRequest) (*AssignmentResponse, error) {
	return s.mutate(ctx, id, func(a *jobdesc.Assignment) error {
		switch a.Status {
		case jobdesc.ApprovalStatusPendingLineManager:
			return a.ApproveAsManager(actorEmployeeID, req.Comment)
		case jobdesc.ApprovalStatusPendingEmployee:
			return a.ApproveAsEmployee(actorEmployeeID, req.Comment)
		default:
			return shared.NewDomainError("INVALID_STATE", "Assignment is not awaiting approval")
		}
	})
}

// Reject terminally rejects the assignment with a mandatory comment
func (s *AssignmentService) Reject(ctx context.Context, id, actorEmployeeID uuid.UUID, req DecisionRequest) (*AssignmentResponse, error) {
	return s.mutate(ctx, id, func(a *jobdesc.Assignment) error {
		return a.Reject(actorEmployeeID, req.Comment)
	})
}

// RequestRevision returns the assignment to its author for changes
func (s *AssignmentService) RequestRevision(ctx context.Context, id, actorEmployeeID uuid.UUID, req DecisionRequest) (*AssignmentResponse, error) {
	return s.mutate(ctx, id, func(a *jobdesc.Assignment) error {
		return a.RequestRevision(actorEmployeeID, req.Comment)
	})
}

func (s *AssignmentService) mutate(ctx context.Context, id uuid.UUID, fn func(*jobdesc.Assignment) error) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(assignment); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	response := ToAssignmentResponse(assignment)
	return &response, nil
}
