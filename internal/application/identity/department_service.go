package identity

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

// DepartmentService handles department management and hierarchy operations
type DepartmentService struct {
	departmentRepo identity.DepartmentRepository
	employeeRepo   employee.EmployeeRepository
	logger         *zap.Logger
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	departmentRepo identity.DepartmentRepository,
	employeeRepo employee.EmployeeRepository,
	logger *zap.Logger,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// Create creates a new department
func (s *DepartmentService) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	exists, err := s.departmentRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DEPARTMENT_CODE_EXISTS", "Department code already exists")
	}

	dept, err := identity.NewDepartment(input.Code, input.Name)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		dept.SetDescription(input.Description)
	}
	if input.SortOrder != 0 {
		dept.SetSortOrder(input.SortOrder)
	}

	if input.ParentID != nil {
		parent, err := s.findDepartment(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if err := dept.SetParent(input.ParentID, parent.Path, parent.Level); err != nil {
			return nil, err
		}
	} else {
		if err := dept.SetParent(nil, "", 0); err != nil {
			return nil, err
		}
	}

	if input.HeadID != nil {
		if err := s.checkHead(ctx, *input.HeadID); err != nil {
			return nil, err
		}
		dept.SetHead(input.HeadID)
	}

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		s.logger.Error("Failed to create department", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Department created",
		zap.String("department_id", dept.ID.String()),
		zap.String("code", dept.Code))

	return toDepartmentDTO(dept), nil
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	dept, err := s.findDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTO(dept), nil
}

// List retrieves a paginated list of departments
func (s *DepartmentService) List(ctx context.Context, filter identity.DepartmentFilter) (*shared.Paginated[DepartmentDTO], error) {
	page, err := s.departmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DepartmentDTO, 0, len(page.Items))
	for _, dept := range page.Items {
		items = append(items, *toDepartmentDTO(dept))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Tree returns the full department hierarchy as a forest
func (s *DepartmentService) Tree(ctx context.Context) ([]*DepartmentTreeNode, error) {
	roots, err := s.departmentRepo.FindRoots(ctx)
	if err != nil {
		return nil, err
	}

	forest := make([]*DepartmentTreeNode, 0, len(roots))
	for _, root := range roots {
		descendants, err := s.departmentRepo.FindDescendants(ctx, root.Path)
		if err != nil {
			return nil, err
		}
		forest = append(forest, buildTree(root, descendants))
	}

	sortTreeNodes(forest)
	return forest, nil
}

// Update updates a department's basic information
func (s *DepartmentService) Update(ctx context.Context, input UpdateDepartmentInput) (*DepartmentDTO, error) {
	dept, err := s.findDepartment(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := dept.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		dept.SetSortOrder(*input.SortOrder)
	}

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("Department updated", zap.String("department_id", input.ID.String()))

	return toDepartmentDTO(dept), nil
}

// Move reparents a department. The entire subtree keeps its shape; the
// materialized paths and levels of all descendants are rewritten.
func (s *DepartmentService) Move(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) (*DepartmentDTO, error) {
	dept, err := s.findDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := dept.Path
	oldLevel := dept.Level

	if newParentID != nil {
		if *newParentID == id {
			return nil, shared.NewDomainError("INVALID_PARENT", "Department cannot be its own parent")
		}
		parent, err := s.findDepartment(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
		if parent.IsDescendantOf(dept.Path) {
			return nil, shared.NewDomainError("CYCLIC_HIERARCHY", "Cannot move a department under its own descendant")
		}
		if err := dept.SetParent(newParentID, parent.Path, parent.Level); err != nil {
			return nil, err
		}
	} else {
		if err := dept.SetParent(nil, "", 0); err != nil {
			return nil, err
		}
	}

	descendants, err := s.departmentRepo.FindDescendants(ctx, oldPath)
	if err != nil {
		return nil, err
	}

	levelDelta := dept.Level - oldLevel
	for _, child := range descendants {
		child.Path = dept.Path + strings.TrimPrefix(child.Path, oldPath)
		child.Level += levelDelta
		if err := s.departmentRepo.Save(ctx, child); err != nil {
			return nil, err
		}
	}

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("Department moved",
		zap.String("department_id", id.String()),
		zap.Int("descendants", len(descendants)))

	return toDepartmentDTO(dept), nil
}

// SetHead assigns a department head
func (s *DepartmentService) SetHead(ctx context.Context, id uuid.UUID, headID *uuid.UUID) (*DepartmentDTO, error) {
	dept, err := s.findDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	if headID != nil {
		if err := s.checkHead(ctx, *headID); err != nil {
			return nil, err
		}
	}
	dept.SetHead(headID)

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}

	return toDepartmentDTO(dept), nil
}

// Activate activates a department
func (s *DepartmentService) Activate(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	return s.mutate(ctx, id, func(d *identity.Department) error { return d.Activate() })
}

// Deactivate deactivates a department
func (s *DepartmentService) Deactivate(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	return s.mutate(ctx, id, func(d *identity.Department) error { return d.Deactivate() })
}

// Delete deletes a department. Departments with child departments or
// assigned employees cannot be deleted.
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findDepartment(ctx, id); err != nil {
		return err
	}

	hasChildren, err := s.departmentRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("HAS_CHILDREN", "Department has child departments")
	}

	employees, err := s.employeeRepo.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if employees > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_EMPLOYEES", "Department still has employees assigned")
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Department deleted", zap.String("department_id", id.String()))
	return nil
}

func (s *DepartmentService) mutate(ctx context.Context, id uuid.UUID, fn func(*identity.Department) error) (*DepartmentDTO, error) {
	dept, err := s.findDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(dept); err != nil {
		return nil, err
	}

	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}

	return toDepartmentDTO(dept), nil
}

func (s *DepartmentService) findDepartment(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	dept, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("DEPARTMENT_NOT_FOUND", "Department not found")
		}
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) checkHead(ctx context.Context, headID uuid.UUID) error {
	emp, err := s.employeeRepo.FindByID(ctx, headID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_HEAD_ID", "Department head employee not found")
		}
		return err
	}
	if emp.IsTerminated() {
		return shared.NewDomainError("INVALID_HEAD_ID", "Department head cannot be a terminated employee")
	}
	return nil
}

func buildTree(root *identity.Department, descendants []*identity.Department) *DepartmentTreeNode {
	nodes := map[uuid.UUID]*DepartmentTreeNode{
		root.ID: {DepartmentDTO: *toDepartmentDTO(root)},
	}
	for _, dept := range descendants {
		nodes[dept.ID] = &DepartmentTreeNode{DepartmentDTO: *toDepartmentDTO(dept)}
	}

	for _, dept := range descendants {
		node := nodes[dept.ID]
		if dept.ParentID == nil {
			continue
		}
		if parent, ok := nodes[*dept.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	for _, node := range nodes {
		sortTreeNodes(node.Children)
	}

	return nodes[root.ID]
}

func sortTreeNodes(nodes []*DepartmentTreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Code < nodes[j].Code
	})
}

// toDepartmentDTO converts domain Department to DepartmentDTO
func toDepartmentDTO(dept *identity.Department) *DepartmentDTO {
	return &DepartmentDTO{
		ID:          dept.ID,
		Code:        dept.Code,
		Name:        dept.Name,
		Description: dept.Description,
		ParentID:    dept.ParentID,
		Level:       dept.Level,
		SortOrder:   dept.SortOrder,
		HeadID:      dept.HeadID,
		Status:      string(dept.Status),
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
	}
}
