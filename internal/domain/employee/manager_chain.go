package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// maxManagerChainDepth bounds the walk up the manager chain during
// cycle detection.
const maxManagerChainDepth = 100

// CheckManagerAssignment verifies that managerID can become the line
// manager of emp: the manager must exist, must not be terminated, and
// the assignment must not close a cycle in the reporting chain. Every
// path that sets a line manager goes through this check.
func CheckManagerAssignment(ctx context.Context, repo EmployeeRepository, emp *Employee, managerID uuid.UUID) error {
	if managerID == emp.ID {
		return shared.NewDomainError("INVALID_MANAGER", "Employee cannot be their own manager")
	}

	manager, err := repo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_MANAGER", "Manager not found")
		}
		return err
	}
	if manager.IsTerminated() {
		return shared.NewDomainError("INVALID_MANAGER", "Manager is terminated")
	}

	// Walk up the chain from the proposed manager. Hitting the employee
	// means the assignment would close a cycle.
	current := manager
	for depth := 0; depth < maxManagerChainDepth; depth++ {
		if current.LineManagerID == nil {
			return nil
		}
		if *current.LineManagerID == emp.ID {
			return shared.NewDomainError("MANAGER_CYCLE", "Assignment would create a cycle in the reporting chain")
		}
		current, err = repo.FindByID(ctx, *current.LineManagerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
	}

	return shared.NewDomainError("MANAGER_CYCLE", "Reporting chain is too deep")
}
