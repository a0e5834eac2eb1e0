package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/assessment"
	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// MockSelfAssessmentRepository is a mock implementation of SelfAssessmentRepository
type MockSelfAssessmentRepository struct {
	mock.Mock
}

func (m *MockSelfAssessmentRepository) Save(ctx context.Context, sa *assessment.SelfAssessment) error {
	args := m.Called(ctx, sa)
	return args.Error(0)
}

func (m *MockSelfAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*assessment.SelfAssessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assessment.SelfAssessment), args.Error(1)
}

func (m *MockSelfAssessmentRepository) FindAll(ctx context.Context, filter assessment.AssessmentFilter) (*shared.Paginated[*assessment.SelfAssessment], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*assessment.SelfAssessment]), args.Error(1)
}

func (m *MockSelfAssessmentRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, period string) (*assessment.SelfAssessment, error) {
	args := m.Called(ctx, employeeID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assessment.SelfAssessment), args.Error(1)
}

func (m *MockSelfAssessmentRepository) FindPendingForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*assessment.SelfAssessment, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]*assessment.SelfAssessment), args.Error(1)
}

func (m *MockSelfAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

// MockSkillGroupRepository is a mock implementation of SkillGroupRepository
type MockSkillGroupRepository struct {
	mock.Mock
}

func (m *MockSkillGroupRepository) Save(ctx context.Context, group *competency.SkillGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockSkillGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*competency.SkillGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*competency.SkillGroup), args.Error(1)
}

func (m *MockSkillGroupRepository) FindByName(ctx context.Context, name string) (*competency.SkillGroup, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*competency.SkillGroup), args.Error(1)
}

func (m *MockSkillGroupRepository) FindAll(ctx context.Context, filter competency.TaxonomyFilter) (*shared.Paginated[*competency.SkillGroup], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*competency.SkillGroup]), args.Error(1)
}

func (m *MockSkillGroupRepository) FindSkillGroup(ctx context.Context, skillID uuid.UUID) (*competency.SkillGroup, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*competency.SkillGroup), args.Error(1)
}

func (m *MockSkillGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSkillGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func newTestEmployee(t *testing.T, code string) *employee.Employee {
	t.Helper()
	emp, err := employee.NewEmployee(code, "Jane", "Doe", employee.PositionGroupSpecialist, time.Date(2022, 4, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return emp
}

func newService(assessmentRepo *MockSelfAssessmentRepository, empRepo *MockEmployeeRepository, skillGroupRepo *MockSkillGroupRepository) *AssessmentService {
	return NewAssessmentService(assessmentRepo, empRepo, skillGroupRepo)
}

func TestCreateDefaultsReviewerToLineManager(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	manager := newTestEmployee(t, "EMP-0001")
	emp := newTestEmployee(t, "EMP-0002")
	emp.LineManagerID = &manager.ID

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)
	assessmentRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.ID, "2026-H1").Return(nil, shared.ErrNotFound)
	assessmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*assessment.SelfAssessment")).Return(nil)

	resp, err := service.Create(context.Background(), CreateAssessmentRequest{
		EmployeeID: emp.ID,
		Period:     "2026-H1",
	})

	require.NoError(t, err)
	assert.Equal(t, manager.ID, resp.ReviewerID)
	assert.Equal(t, "DRAFT", resp.Status)
}

func TestCreateDuplicatePeriod(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	manager := newTestEmployee(t, "EMP-0001")
	emp := newTestEmployee(t, "EMP-0002")
	emp.LineManagerID = &manager.ID

	existing, err := assessment.NewSelfAssessment(emp.ID, manager.ID, "2026-H1")
	require.NoError(t, err)

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	assessmentRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.ID, "2026-H1").Return(existing, nil)

	_, err = service.Create(context.Background(), CreateAssessmentRequest{
		EmployeeID: emp.ID,
		Period:     "2026-H1",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ASSESSMENT_EXISTS", domainErr.Code)
}

func TestCreateWithoutLineManager(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	emp := newTestEmployee(t, "EMP-0002")

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	assessmentRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.ID, "2026-H1").Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateAssessmentRequest{
		EmployeeID: emp.ID,
		Period:     "2026-H1",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_REVIEWER_ID", domainErr.Code)
}

func TestSetRatingOnlyOwner(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	sa, err := assessment.NewSelfAssessment(uuid.New(), uuid.New(), "2026-H1")
	require.NoError(t, err)

	group, err := competency.NewSkillGroup("Software Engineering", "")
	require.NoError(t, err)
	skill, err := group.AddSkill("Go", "")
	require.NoError(t, err)

	skillGroupRepo.On("FindSkillGroup", mock.Anything, skill.ID).Return(group, nil)
	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)

	_, err = service.SetRating(context.Background(), sa.ID, uuid.New(), SetRatingRequest{
		SkillID: skill.ID,
		Rating:  4,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assessmentRepo.AssertNotCalled(t, "Save")
}

func TestSubmitRequiresRatings(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	employeeID := uuid.New()
	sa, err := assessment.NewSelfAssessment(employeeID, uuid.New(), "2026-H1")
	require.NoError(t, err)

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)

	_, err = service.Submit(context.Background(), sa.ID, employeeID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ASSESSMENT", domainErr.Code)
}

func TestSubmitThenApprove(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	employeeID := uuid.New()
	reviewerID := uuid.New()
	sa, err := assessment.NewSelfAssessment(employeeID, reviewerID, "2026-H1")
	require.NoError(t, err)
	require.NoError(t, sa.SetRating(uuid.New(), 4, ""))

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)
	assessmentRepo.On("Save", mock.Anything, sa).Return(nil)

	resp, err := service.Submit(context.Background(), sa.ID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", resp.Status)

	resp, err = service.Approve(context.Background(), sa.ID, reviewerID, ReviewRequest{Comment: "Fair self-evaluation"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.NotNil(t, resp.ReviewedAt)
}

func TestApproveWrongReviewer(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	employeeID := uuid.New()
	sa, err := assessment.NewSelfAssessment(employeeID, uuid.New(), "2026-H1")
	require.NoError(t, err)
	require.NoError(t, sa.SetRating(uuid.New(), 3, ""))
	require.NoError(t, sa.Submit())

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)

	_, err = service.Approve(context.Background(), sa.ID, uuid.New(), ReviewRequest{})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_AUTHORIZED_ACTOR", domainErr.Code)
}

func TestReturnReopensDraft(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	employeeID := uuid.New()
	reviewerID := uuid.New()
	sa, err := assessment.NewSelfAssessment(employeeID, reviewerID, "2026-H1")
	require.NoError(t, err)
	require.NoError(t, sa.SetRating(uuid.New(), 2, ""))
	require.NoError(t, sa.Submit())

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)
	assessmentRepo.On("Save", mock.Anything, sa).Return(nil)

	resp, err := service.Return(context.Background(), sa.ID, reviewerID, ReviewRequest{Comment: "Please rate your full skill set"})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)

	// Back in draft, the employee can edit and resubmit
	require.NoError(t, sa.SetRating(uuid.New(), 4, ""))
	resp, err = service.Submit(context.Background(), sa.ID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", resp.Status)
}

func TestDeleteSubmittedAssessment(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	sa, err := assessment.NewSelfAssessment(uuid.New(), uuid.New(), "2026-H1")
	require.NoError(t, err)
	require.NoError(t, sa.SetRating(uuid.New(), 3, ""))
	require.NoError(t, sa.Submit())

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)

	err = service.Delete(context.Background(), sa.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assessmentRepo.AssertNotCalled(t, "Delete")
}

func TestAverageRatingInResponse(t *testing.T) {
	assessmentRepo := new(MockSelfAssessmentRepository)
	empRepo := new(MockEmployeeRepository)
	skillGroupRepo := new(MockSkillGroupRepository)
	service := newService(assessmentRepo, empRepo, skillGroupRepo)

	sa, err := assessment.NewSelfAssessment(uuid.New(), uuid.New(), "2026-H1")
	require.NoError(t, err)
	require.NoError(t, sa.SetRating(uuid.New(), 2, ""))
	require.NoError(t, sa.SetRating(uuid.New(), 5, ""))

	assessmentRepo.On("FindByID", mock.Anything, sa.ID).Return(sa, nil)

	resp, err := service.Get(context.Background(), sa.ID)

	require.NoError(t, err)
	assert.InDelta(t, 3.5, resp.AverageRating, 0.0001)
}
