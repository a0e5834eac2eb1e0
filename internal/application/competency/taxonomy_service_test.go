package competency

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

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

// MockBehavioralGroupRepository is a mock implementation of BehavioralGroupRepository
type MockBehavioralGroupRepository struct {
	mock.Mock
}

func (m *MockBehavioralGroupRepository) Save(ctx context.Context, group *competency.BehavioralGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockBehavioralGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*competency.BehavioralGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*competency.BehavioralGroup), args.Error(1)
}

func (m *MockBehavioralGroupRepository) FindAll(ctx context.Context, filter competency.TaxonomyFilter) (*shared.Paginated[*competency.BehavioralGroup], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*competency.BehavioralGroup]), args.Error(1)
}

func (m *MockBehavioralGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBehavioralGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockMatrixRepository is a mock implementation of PositionSkillMatrixRepository
type MockMatrixRepository struct {
	mock.Mock
}

func (m *MockMatrixRepository) Save(ctx context.Context, matrix *competency.PositionSkillMatrix) error {
	args := m.Called(ctx, matrix)
	return args.Error(0)
}

func (m *MockMatrixRepository) FindByPositionGroup(ctx context.Context, group employee.PositionGroup) (*competency.PositionSkillMatrix, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*competency.PositionSkillMatrix), args.Error(1)
}

func (m *MockMatrixRepository) FindAll(ctx context.Context) ([]*competency.PositionSkillMatrix, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*competency.PositionSkillMatrix), args.Error(1)
}

func (m *MockMatrixRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTaxonomyService(skillGroupRepo *MockSkillGroupRepository, behavioralGroupRepo *MockBehavioralGroupRepository) *TaxonomyService {
	return NewTaxonomyService(skillGroupRepo, behavioralGroupRepo)
}

func TestCreateSkillGroup(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	skillGroupRepo.On("ExistsByName", mock.Anything, "Software Engineering").Return(false, nil)
	skillGroupRepo.On("Save", mock.Anything, mock.AnythingOfType("*competency.SkillGroup")).Return(nil)

	resp, err := service.CreateSkillGroup(context.Background(), CreateGroupRequest{
		Name:        "Software Engineering",
		Description: "Technical skills",
	})

	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Empty(t, resp.Skills)
}

func TestCreateSkillGroupDuplicateName(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	skillGroupRepo.On("ExistsByName", mock.Anything, "Software Engineering").Return(true, nil)

	_, err := service.CreateSkillGroup(context.Background(), CreateGroupRequest{Name: "Software Engineering"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "GROUP_NAME_EXISTS", domainErr.Code)
	skillGroupRepo.AssertNotCalled(t, "Save")
}

func TestAddSkillDuplicateWithinGroup(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	group, err := competency.NewSkillGroup("Software Engineering", "")
	require.NoError(t, err)
	_, err = group.AddSkill("Go", "")
	require.NoError(t, err)

	skillGroupRepo.On("FindByID", mock.Anything, group.ID).Return(group, nil)

	_, err = service.AddSkill(context.Background(), group.ID, AddItemRequest{Name: "go"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SKILL_ALREADY_EXISTS", domainErr.Code)
	skillGroupRepo.AssertNotCalled(t, "Save")
}

func TestDeactivateSkillKeepsItListed(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	group, err := competency.NewSkillGroup("Software Engineering", "")
	require.NoError(t, err)
	skill, err := group.AddSkill("COBOL", "")
	require.NoError(t, err)

	skillGroupRepo.On("FindByID", mock.Anything, group.ID).Return(group, nil)
	skillGroupRepo.On("Save", mock.Anything, group).Return(nil)

	resp, err := service.DeactivateSkill(context.Background(), group.ID, skill.ID)

	require.NoError(t, err)
	require.Len(t, resp.Skills, 1)
	assert.False(t, resp.Skills[0].IsActive)
}

func TestAddCompetencyToBehavioralGroup(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	group, err := competency.NewBehavioralGroup("Communication", "")
	require.NoError(t, err)

	behavioralGroupRepo.On("FindByID", mock.Anything, group.ID).Return(group, nil)
	behavioralGroupRepo.On("Save", mock.Anything, group).Return(nil)

	resp, err := service.AddCompetency(context.Background(), group.ID, AddItemRequest{
		Name: "Gives constructive feedback",
	})

	require.NoError(t, err)
	require.Len(t, resp.Competencies, 1)
	assert.Equal(t, "Gives constructive feedback", resp.Competencies[0].Name)
}

func TestFindSkillUnknown(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	behavioralGroupRepo := new(MockBehavioralGroupRepository)
	service := newTaxonomyService(skillGroupRepo, behavioralGroupRepo)

	skillID := uuid.New()
	skillGroupRepo.On("FindSkillGroup", mock.Anything, skillID).Return(nil, shared.ErrNotFound)

	_, err := service.FindSkill(context.Background(), skillID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SKILL_NOT_FOUND", domainErr.Code)
}

func TestSetMatrixEntryCreatesMatrixOnFirstUse(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	matrixRepo := new(MockMatrixRepository)
	service := NewMatrixService(matrixRepo, skillGroupRepo)

	group, err := competency.NewSkillGroup("Software Engineering", "")
	require.NoError(t, err)
	skill, err := group.AddSkill("Go", "")
	require.NoError(t, err)

	skillGroupRepo.On("FindSkillGroup", mock.Anything, skill.ID).Return(group, nil)
	matrixRepo.On("FindByPositionGroup", mock.Anything, employee.PositionGroupSpecialist).Return(nil, shared.ErrNotFound)
	matrixRepo.On("Save", mock.Anything, mock.AnythingOfType("*competency.PositionSkillMatrix")).Return(nil)

	resp, err := service.SetEntry(context.Background(), "specialist", SetMatrixEntryRequest{
		SkillID:       skill.ID,
		ExpectedLevel: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "SPECIALIST", resp.PositionGroup)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 3, resp.Entries[0].ExpectedLevel)
}

func TestSetMatrixEntryInactiveSkill(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	matrixRepo := new(MockMatrixRepository)
	service := NewMatrixService(matrixRepo, skillGroupRepo)

	group, err := competency.NewSkillGroup("Software Engineering", "")
	require.NoError(t, err)
	skill, err := group.AddSkill("COBOL", "")
	require.NoError(t, err)
	require.NoError(t, group.DeactivateSkill(skill.ID))

	skillGroupRepo.On("FindSkillGroup", mock.Anything, skill.ID).Return(group, nil)

	_, err = service.SetEntry(context.Background(), "SPECIALIST", SetMatrixEntryRequest{
		SkillID:       skill.ID,
		ExpectedLevel: 2,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SKILL_ID", domainErr.Code)
	matrixRepo.AssertNotCalled(t, "Save")
}

func TestGetMatrixUnknownPositionGroup(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	matrixRepo := new(MockMatrixRepository)
	service := NewMatrixService(matrixRepo, skillGroupRepo)

	_, err := service.Get(context.Background(), "WIZARD")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_POSITION_GROUP", domainErr.Code)
}

func TestGetMatrixDefaultsToEmpty(t *testing.T) {
	skillGroupRepo := new(MockSkillGroupRepository)
	matrixRepo := new(MockMatrixRepository)
	service := NewMatrixService(matrixRepo, skillGroupRepo)

	matrixRepo.On("FindByPositionGroup", mock.Anything, employee.PositionGroupManager).Return(nil, shared.ErrNotFound)

	resp, err := service.Get(context.Background(), "MANAGER")

	require.NoError(t, err)
	assert.Equal(t, "MANAGER", resp.PositionGroup)
	assert.Empty(t, resp.Entries)
}
