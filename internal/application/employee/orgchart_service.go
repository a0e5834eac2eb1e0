package employee

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// OrgChartService builds the organization chart from line manager links
type OrgChartService struct {
	employeeRepo employee.EmployeeRepository
}

// NewOrgChartService creates a new OrgChartService
func NewOrgChartService(employeeRepo employee.EmployeeRepository) *OrgChartService {
	return &OrgChartService{employeeRepo: employeeRepo}
}

// BuildChart builds the chart over all non-terminated employees.
// Employees without a manager (or whose manager is terminated) become
// roots. Siblings are ordered by code. When departmentID is set, only
// employees of that department are included and manager links crossing
// the department boundary make the subordinate a root. Members of a
// manager cycle in stored data are kept in the chart rather than lost:
// one of them is promoted to a root.
func (s *OrgChartService) BuildChart(ctx context.Context, departmentID *uuid.UUID) ([]*OrgChartNode, error) {
	employees, err := s.employeeRepo.FindAllNotTerminated(ctx)
	if err != nil {
		return nil, err
	}

	if departmentID != nil {
		filtered := make([]*employee.Employee, 0, len(employees))
		for _, e := range employees {
			if e.DepartmentID != nil && *e.DepartmentID == *departmentID {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}

	nodes := make(map[uuid.UUID]*OrgChartNode, len(employees))
	for _, e := range employees {
		nodes[e.ID] = &OrgChartNode{
			ID:            e.ID,
			Code:          e.Code,
			FullName:      e.FullName(),
			PositionGroup: string(e.PositionGroup),
			PositionTitle: e.PositionTitle,
			DepartmentID:  e.DepartmentID,
			Children:      make([]*OrgChartNode, 0),
		}
	}

	roots := make([]*OrgChartNode, 0)
	parents := make(map[uuid.UUID]*OrgChartNode, len(employees))
	for _, e := range employees {
		node := nodes[e.ID]
		if e.LineManagerID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*e.LineManagerID]
		if !ok {
			// Manager terminated or outside the department filter.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
		parents[e.ID] = parent
	}

	// Manager links that form a cycle leave every member unreachable
	// from the roots. Promote the lowest code in each cycle to a root
	// and cut its manager link so the rest of the loop hangs off it.
	reached := make(map[uuid.UUID]bool, len(nodes))
	for _, root := range roots {
		markReached(root, reached)
	}
	if len(reached) < len(nodes) {
		trapped := make([]*OrgChartNode, 0, len(nodes)-len(reached))
		for id, node := range nodes {
			if !reached[id] {
				trapped = append(trapped, node)
			}
		}
		sortNodes(trapped)
		for _, node := range trapped {
			if reached[node.ID] {
				continue
			}
			if parent := parents[node.ID]; parent != nil {
				parent.Children = removeChild(parent.Children, node.ID)
			}
			roots = append(roots, node)
			markReached(node, reached)
		}
	}

	for _, node := range nodes {
		sortNodes(node.Children)
		node.DirectReports = len(node.Children)
	}
	sortNodes(roots)

	for _, root := range roots {
		countTotalReports(root)
	}

	return roots, nil
}

// Subtree builds the chart rooted at a single employee
func (s *OrgChartService) Subtree(ctx context.Context, employeeID uuid.UUID) (*OrgChartNode, error) {
	chart, err := s.BuildChart(ctx, nil)
	if err != nil {
		return nil, err
	}

	for _, root := range chart {
		if node := findNode(root, employeeID); node != nil {
			return node, nil
		}
	}

	return nil, shared.ErrNotFound
}

// DirectReports lists the employees reporting directly to a manager
func (s *OrgChartService) DirectReports(ctx context.Context, managerID uuid.UUID) ([]EmployeeListResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, managerID); err != nil {
		return nil, err
	}

	reports, err := s.employeeRepo.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	items := make([]EmployeeListResponse, 0, len(reports))
	for _, e := range reports {
		items = append(items, ToEmployeeListResponse(e))
	}
	return items, nil
}

func sortNodes(nodes []*OrgChartNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Code < nodes[j].Code
	})
}

func markReached(node *OrgChartNode, reached map[uuid.UUID]bool) {
	if reached[node.ID] {
		return
	}
	reached[node.ID] = true
	for _, child := range node.Children {
		markReached(child, reached)
	}
}

func removeChild(children []*OrgChartNode, id uuid.UUID) []*OrgChartNode {
	out := children[:0]
	for _, c := range children {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func countTotalReports(node *OrgChartNode) int {
	total := 0
	for _, child := range node.Children {
		total += 1 + countTotalReports(child)
	}
	node.TotalReports = total
	return total
}

func findNode(node *OrgChartNode, id uuid.UUID) *OrgChartNode {
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, id); found != nil {
			return found
		}
	}
	return nil
}
