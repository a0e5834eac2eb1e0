package competency

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// BehavioralCompetency represents a single behavioral competency entry
// (e.g., "Gives constructive feedback")
type BehavioralCompetency struct {
	ID          uuid.UUID
	Name        string
	Description string
	SortOrder   int
	IsActive    bool
}

// BehavioralGroup groups behavioral competencies
// (e.g., "Communication", "Leadership")
type BehavioralGroup struct {
	shared.BaseAggregateRoot
	Name         string
	Description  string
	Competencies []BehavioralCompetency
	IsActive     bool
}

// NewBehavioralGroup creates a new behavioral competency group
func NewBehavioralGroup(name, description string) (*BehavioralGroup, error) {
	if err := validateTaxonomyName(name); err != nil {
		return nil, err
	}

	group := &BehavioralGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Competencies:      make([]BehavioralCompetency, 0),
		IsActive:          true,
	}

	return group, nil
}

// Rename renames the group
func (g *BehavioralGroup) Rename(name string) error {
	if err := validateTaxonomyName(name); err != nil {
		return err
	}

	g.Name = strings.TrimSpace(name)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// AddCompetency adds a competency to the group. Names are unique within it.
func (g *BehavioralGroup) AddCompetency(name, description string) (*BehavioralCompetency, error) {
	if err := validateTaxonomyName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	for _, c := range g.Competencies {
		if strings.EqualFold(c.Name, name) {
			return nil, shared.NewDomainError("COMPETENCY_ALREADY_EXISTS", "Group already contains a competency with this name")
		}
	}

	comp := BehavioralCompetency{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		SortOrder:   len(g.Competencies),
		IsActive:    true,
	}

	g.Competencies = append(g.Competencies, comp)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return &comp, nil
}

// DeactivateCompetency retires a competency without removing references
func (g *BehavioralGroup) DeactivateCompetency(competencyID uuid.UUID) error {
	for i, c := range g.Competencies {
		if c.ID == competencyID {
			if !c.IsActive {
				return shared.NewDomainError("ALREADY_INACTIVE", "Competency is already inactive")
			}
			g.Competencies[i].IsActive = false
			g.UpdatedAt = time.Now()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("COMPETENCY_NOT_FOUND", "Group does not contain this competency")
}

// Deactivate retires the whole group
func (g *BehavioralGroup) Deactivate() error {
	if !g.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Group is already inactive")
	}

	g.IsActive = false
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}
