package training

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/domain/training"
)

// MockTrainingRepository is a mock implementation of TrainingRepository
type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) Save(ctx context.Context, entry *training.Training) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Training), args.Error(1)
}

func (m *MockTrainingRepository) FindAll(ctx context.Context, filter training.TrainingFilter) (*shared.Paginated[*training.Training], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*training.Training]), args.Error(1)
}

func (m *MockTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrainingRepository) CountAssignments(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *training.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) SaveAll(ctx context.Context, assignments []*training.Assignment) error {
	args := m.Called(ctx, assignments)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAll(ctx context.Context, filter training.AssignmentFilter) (*shared.Paginated[*training.Assignment], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*training.Assignment]), args.Error(1)
}

func (m *MockAssignmentRepository) FindOpenPastDue(ctx context.Context, now time.Time) ([]*training.Assignment, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]*training.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*training.Assignment, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]*training.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ExistsOpen(ctx context.Context, trainingID, employeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, trainingID, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) CompletionStats(ctx context.Context, trainingID uuid.UUID) (*training.CompletionStats, error) {
	args := m.Called(ctx, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.CompletionStats), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Save(ctx context.Context, emp *employee.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*employee.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*employee.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter employee.EmployeeFilter) (*shared.Paginated[*employee.Employee], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*employee.Employee]), args.Error(1)
}

func (m *MockEmployeeRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]*employee.Employee, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllActive(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllNotTerminated(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) NextCode(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func newTestTraining(t *testing.T) *training.Training {
	t.Helper()
	entry, err := training.NewTraining("Security Awareness", training.TrainingTypeCompliance)
	require.NoError(t, err)
	return entry
}

func newTestEmployee(t *testing.T, code string) *employee.Employee {
	t.Helper()
	emp, err := employee.NewEmployee(code, "Jane", "Doe", employee.PositionGroupSpecialist, time.Date(2022, 4, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return emp
}

func newService(trainingRepo *MockTrainingRepository, assignmentRepo *MockAssignmentRepository, empRepo *MockEmployeeRepository) *TrainingService {
	return NewTrainingService(trainingRepo, assignmentRepo, empRepo)
}

func TestAssignSkipsOpenDuplicates(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	entry := newTestTraining(t)
	empA := newTestEmployee(t, "EMP-0001")
	empB := newTestEmployee(t, "EMP-0002")
	due := time.Now().AddDate(0, 1, 0)

	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	empRepo.On("FindByID", mock.Anything, empA.ID).Return(empA, nil)
	empRepo.On("FindByID", mock.Anything, empB.ID).Return(empB, nil)
	assignmentRepo.On("ExistsOpen", mock.Anything, entry.ID, empA.ID).Return(true, nil)
	assignmentRepo.On("ExistsOpen", mock.Anything, entry.ID, empB.ID).Return(false, nil)
	assignmentRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(assignments []*training.Assignment) bool {
		return len(assignments) == 1 && assignments[0].EmployeeID == empB.ID
	})).Return(nil)

	result, err := service.Assign(context.Background(), AssignRequest{
		TrainingID:  entry.ID,
		EmployeeIDs: []uuid.UUID{empA.ID, empB.ID},
		DueDate:     due,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Assigned, 1)
	assert.Equal(t, empB.ID, result.Assigned[0].EmployeeID)
	assert.Equal(t, "ASSIGNED", result.Assigned[0].Status)
}

func TestAssignInactiveTraining(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	entry := newTestTraining(t)
	require.NoError(t, entry.Deactivate())
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)

	_, err := service.Assign(context.Background(), AssignRequest{
		TrainingID:  entry.ID,
		EmployeeIDs: []uuid.UUID{uuid.New()},
		DueDate:     time.Now().AddDate(0, 1, 0),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TRAINING_INACTIVE", domainErr.Code)
}

func TestAssignTerminatedEmployee(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	entry := newTestTraining(t)
	emp := newTestEmployee(t, "EMP-0001")
	require.NoError(t, emp.Terminate(time.Now()))

	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)

	_, err := service.Assign(context.Background(), AssignRequest{
		TrainingID:  entry.ID,
		EmployeeIDs: []uuid.UUID{emp.ID},
		DueDate:     time.Now().AddDate(0, 1, 0),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPLOYEE_TERMINATED", domainErr.Code)
	assignmentRepo.AssertNotCalled(t, "SaveAll")
}

func TestStartRequiresAssignedEmployee(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	assignment, err := training.NewAssignment(uuid.New(), uuid.New(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assignmentRepo.On("FindByID", mock.Anything, assignment.ID).Return(assignment, nil)

	_, err = service.Start(context.Background(), assignment.ID, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestCompleteWithScore(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	assignment, err := training.NewAssignment(uuid.New(), uuid.New(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assignmentRepo.On("FindByID", mock.Anything, assignment.ID).Return(assignment, nil)
	assignmentRepo.On("Save", mock.Anything, assignment).Return(nil)

	score := 92
	resp, err := service.Complete(context.Background(), assignment.ID, CompleteRequest{Score: &score})

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	require.NotNil(t, resp.Score)
	assert.Equal(t, 92, *resp.Score)
	assert.NotNil(t, resp.CompletedAt)
}

func TestCompleteOverdueAssignment(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	assignment, err := training.NewAssignment(uuid.New(), uuid.New(), time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	require.NoError(t, assignment.MarkOverdue(time.Now()))

	assignmentRepo.On("FindByID", mock.Anything, assignment.ID).Return(assignment, nil)
	assignmentRepo.On("Save", mock.Anything, assignment).Return(nil)

	resp, err := service.Complete(context.Background(), assignment.ID, CompleteRequest{})

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
}

func TestSweepOverdueFlagsPastDue(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	now := time.Now()
	pastDueA, err := training.NewAssignment(uuid.New(), uuid.New(), now.Add(-72*time.Hour))
	require.NoError(t, err)
	pastDueB, err := training.NewAssignment(uuid.New(), uuid.New(), now.Add(-24*time.Hour))
	require.NoError(t, err)

	assignmentRepo.On("FindOpenPastDue", mock.Anything, now).Return([]*training.Assignment{pastDueA, pastDueB}, nil)
	assignmentRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(assignments []*training.Assignment) bool {
		return len(assignments) == 2
	})).Return(nil)

	flagged, err := service.SweepOverdue(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 2, flagged)
	assert.Equal(t, training.AssignmentStatusOverdue, pastDueA.Status)
	assert.Equal(t, training.AssignmentStatusOverdue, pastDueB.Status)
}

func TestSweepOverdueNothingToFlag(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	now := time.Now()
	assignmentRepo.On("FindOpenPastDue", mock.Anything, now).Return([]*training.Assignment{}, nil)

	flagged, err := service.SweepOverdue(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, flagged)
	assignmentRepo.AssertNotCalled(t, "SaveAll")
}

func TestCompletionReport(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	entry := newTestTraining(t)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	assignmentRepo.On("CompletionStats", mock.Anything, entry.ID).Return(&training.CompletionStats{
		Total:     8,
		Completed: 6,
		Overdue:   1,
	}, nil)

	report, err := service.CompletionReport(context.Background(), entry.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(8), report.Total)
	assert.InDelta(t, 0.75, report.CompletionRate, 0.0001)
}

func TestDepartmentCompletionReport(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	departmentID := uuid.New()
	empA := newTestEmployee(t, "EMP-0001")
	empB := newTestEmployee(t, "EMP-0002")

	due := time.Now().AddDate(0, 1, 0)
	completed, err := training.NewAssignment(uuid.New(), empA.ID, due)
	require.NoError(t, err)
	require.NoError(t, completed.Start())
	require.NoError(t, completed.Complete(nil))
	overdue, err := training.NewAssignment(uuid.New(), empA.ID, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, overdue.MarkOverdue(time.Now()))
	open, err := training.NewAssignment(uuid.New(), empB.ID, due)
	require.NoError(t, err)

	page := shared.NewPaginated([]*employee.Employee{empA, empB}, 2, 1, 200)
	empRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f employee.EmployeeFilter) bool {
		return f.DepartmentID != nil && *f.DepartmentID == departmentID
	})).Return(&page, nil)
	assignmentRepo.On("FindByEmployee", mock.Anything, empA.ID).Return([]*training.Assignment{completed, overdue}, nil)
	assignmentRepo.On("FindByEmployee", mock.Anything, empB.ID).Return([]*training.Assignment{open}, nil)

	report, err := service.DepartmentCompletionReport(context.Background(), departmentID)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Employees)
	assert.Equal(t, int64(3), report.Total)
	assert.Equal(t, int64(1), report.Completed)
	assert.Equal(t, int64(1), report.Overdue)
	assert.InDelta(t, 1.0/3.0, report.CompletionRate, 0.0001)
}

func TestDeleteTrainingWithAssignments(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	entry := newTestTraining(t)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	trainingRepo.On("CountAssignments", mock.Anything, entry.ID).Return(int64(2), nil)

	err := service.Delete(context.Background(), entry.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TRAINING_HAS_ASSIGNMENTS", domainErr.Code)
	trainingRepo.AssertNotCalled(t, "Delete")
}

func TestGetOverdueTrainingCount(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	assignmentRepo := new(MockAssignmentRepository)
	empRepo := new(MockEmployeeRepository)
	service := newService(trainingRepo, assignmentRepo, empRepo)

	page := shared.NewPaginated([]*training.Assignment{}, 7, 1, 1)
	assignmentRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter training.AssignmentFilter) bool {
		return filter.Status != nil && *filter.Status == training.AssignmentStatusOverdue
	})).Return(&page, nil)

	count, err := service.GetOverdueTrainingCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
