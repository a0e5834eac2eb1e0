package employee

import (
	"strings"

	"github.com/hris/backend/internal/domain/shared"
)

// PositionGroup represents the hierarchical band an employee belongs to.
// Groups are strictly ordered; the order drives the salary grading
// calculation which derives each group's base from the group below it.
type PositionGroup string

const (
	PositionGroupBlueCollar       PositionGroup = "BLUE_COLLAR"
	PositionGroupJunior           PositionGroup = "JUNIOR"
	PositionGroupSpecialist       PositionGroup = "SPECIALIST"
	PositionGroupSeniorSpecialist PositionGroup = "SENIOR_SPECIALIST"
	PositionGroupManager          PositionGroup = "MANAGER"
	PositionGroupHeadOfDepartment PositionGroup = "HEAD_OF_DEPARTMENT"
	PositionGroupDirector         PositionGroup = "DIRECTOR"
	PositionGroupViceChairman     PositionGroup = "VICE_CHAIRMAN"
)

// PositionGroupsOrdered lists all position groups from lowest to highest.
var PositionGroupsOrdered = []PositionGroup{
	PositionGroupBlueCollar,
	PositionGroupJunior,
	PositionGroupSpecialist,
	PositionGroupSeniorSpecialist,
	PositionGroupManager,
	PositionGroupHeadOfDepartment,
	PositionGroupDirector,
	PositionGroupViceChairman,
}

var positionGroupRanks = func() map[PositionGroup]int {
	ranks := make(map[PositionGroup]int, len(PositionGroupsOrdered))
	for i, g := range PositionGroupsOrdered {
		ranks[g] = i
	}
	return ranks
}()

// ParsePositionGroup parses a position group from its string form
func ParsePositionGroup(s string) (PositionGroup, error) {
	g := PositionGroup(strings.ToUpper(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group: "+s)
	}
	return g, nil
}

// IsValid returns true if the position group is a known value
func (g PositionGroup) IsValid() bool {
	_, ok := positionGroupRanks[g]
	return ok
}

// Rank returns the position of the group in the hierarchy (0 = lowest).
// Returns -1 for unknown groups.
func (g PositionGroup) Rank() int {
	rank, ok := positionGroupRanks[g]
	if !ok {
		return -1
	}
	return rank
}

// IsAbove returns true if g ranks higher than other
func (g PositionGroup) IsAbove(other PositionGroup) bool {
	return g.Rank() > other.Rank()
}

// String returns the string form of the position group
func (g PositionGroup) String() string {
	return string(g)
}
