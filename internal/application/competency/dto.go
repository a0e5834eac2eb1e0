package competency

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/competency"
)

// CreateGroupRequest creates a skill or behavioral group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

// RenameGroupRequest renames a group
type RenameGroupRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// AddItemRequest adds a skill or competency to a group
type AddItemRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

// UpdateSkillRequest updates a skill within its group
type UpdateSkillRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

// TaxonomyListFilter defines taxonomy list query parameters
type TaxonomyListFilter struct {
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SetMatrixEntryRequest sets a skill expectation for a position group
type SetMatrixEntryRequest struct {
	SkillID       uuid.UUID `json:"skill_id" binding:"required"`
	ExpectedLevel int       `json:"expected_level" binding:"required,min=1,max=5"`
}

// SkillResponse is the API representation of a skill
type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
}

// SkillGroupResponse is the API representation of a skill group
type SkillGroupResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Skills      []SkillResponse `json:"skills"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CompetencyResponse is the API representation of a behavioral competency
type CompetencyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
}

// BehavioralGroupResponse is the API representation of a behavioral group
type BehavioralGroupResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Competencies []CompetencyResponse `json:"competencies"`
	IsActive     bool                 `json:"is_active"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// MatrixEntryResponse is one skill expectation in a position matrix
type MatrixEntryResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	ExpectedLevel int       `json:"expected_level"`
}

// MatrixResponse is the API representation of a position skill matrix
type MatrixResponse struct {
	ID            uuid.UUID             `json:"id"`
	PositionGroup string                `json:"position_group"`
	Entries       []MatrixEntryResponse `json:"entries"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToSkillGroupResponse converts a domain skill group to its API representation
func ToSkillGroupResponse(g *competency.SkillGroup) SkillGroupResponse {
	skills := make([]SkillResponse, 0, len(g.Skills))
	for _, s := range g.Skills {
		skills = append(skills, SkillResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			SortOrder:   s.SortOrder,
			IsActive:    s.IsActive,
		})
	}

	return SkillGroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Skills:      skills,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ToBehavioralGroupResponse converts a domain behavioral group to its API representation
func ToBehavioralGroupResponse(g *competency.BehavioralGroup) BehavioralGroupResponse {
	competencies := make([]CompetencyResponse, 0, len(g.Competencies))
	for _, c := range g.Competencies {
		competencies = append(competencies, CompetencyResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			SortOrder:   c.SortOrder,
			IsActive:    c.IsActive,
		})
	}

	return BehavioralGroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Competencies: competencies,
		IsActive:     g.IsActive,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToMatrixResponse converts a domain matrix to its API representation
func ToMatrixResponse(m *competency.PositionSkillMatrix) MatrixResponse {
	entries := make([]MatrixEntryResponse, 0, len(m.Entries))
	for _, e := range m.Entries {
		entries = append(entries, MatrixEntryResponse{
			SkillID:       e.SkillID,
			ExpectedLevel: e.ExpectedLevel,
		})
	}

	return MatrixResponse{
		ID:            m.ID,
		PositionGroup: string(m.PositionGroup),
		Entries:       entries,
		UpdatedAt:     m.UpdatedAt,
	}
}
