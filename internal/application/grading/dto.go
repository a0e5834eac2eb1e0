package grading

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/grading"
)

// CreateScenarioRequest creates a draft salary scenario
type CreateScenarioRequest struct {
	Name      string          `json:"name" binding:"required,max=200"`
	Comment   string          `json:"comment"`
	BaseValue decimal.Decimal `json:"base_value" binding:"required"`
}

// UpdateScenarioRequest updates a draft scenario's name, comment and base
type UpdateScenarioRequest struct {
	Name      string           `json:"name" binding:"required,max=200"`
	Comment   string           `json:"comment"`
	BaseValue *decimal.Decimal `json:"base_value"`
}

// GradeInputRequest carries the percentage inputs for one position group
type GradeInputRequest struct {
	PositionGroup      string            `json:"position_group" binding:"required"`
	VerticalPercent    decimal.Decimal   `json:"vertical_percent"`
	HorizontalPercents []decimal.Decimal `json:"horizontal_percents" binding:"required"`
}

// CalculateRequest computes bands without persisting anything
type CalculateRequest struct {
	BaseValue decimal.Decimal     `json:"base_value" binding:"required"`
	Inputs    []GradeInputRequest `json:"inputs" binding:"required"`
}

// ScenarioListFilter defines scenario list query parameters
type ScenarioListFilter struct {
	Keyword  string `form:"keyword"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// GradeBandResponse holds the computed band values for one position group
type GradeBandResponse struct {
	PositionGroup string          `json:"position_group"`
	LD            decimal.Decimal `json:"ld"`
	LQ            decimal.Decimal `json:"lq"`
	M             decimal.Decimal `json:"m"`
	UQ            decimal.Decimal `json:"uq"`
	UD            decimal.Decimal `json:"ud"`
}

// GradeInputResponse is the API representation of a group's inputs
type GradeInputResponse struct {
	PositionGroup      string            `json:"position_group"`
	VerticalPercent    decimal.Decimal   `json:"vertical_percent"`
	HorizontalPercents []decimal.Decimal `json:"horizontal_percents"`
}

// ScenarioResponse is the API representation of a salary scenario
type ScenarioResponse struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Comment    string               `json:"comment,omitempty"`
	BaseValue  decimal.Decimal      `json:"base_value"`
	Status     string               `json:"status"`
	Inputs     []GradeInputResponse `json:"inputs"`
	Grades     []GradeBandResponse  `json:"grades"`
	IsComplete bool                 `json:"is_complete"`
	AppliedAt  *time.Time           `json:"applied_at,omitempty"`
	ArchivedAt *time.Time           `json:"archived_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// BandDeltaResponse is the per-group comparison of two structures
type BandDeltaResponse struct {
	PositionGroup string          `json:"position_group"`
	MedianBefore  decimal.Decimal `json:"median_before"`
	MedianAfter   decimal.Decimal `json:"median_after"`
	MedianChange  decimal.Decimal `json:"median_change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// ComparisonResponse summarizes a scenario against the current structure
type ComparisonResponse struct {
	ScenarioID           uuid.UUID           `json:"scenario_id"`
	CurrentScenarioID    uuid.UUID           `json:"current_scenario_id"`
	Deltas               []BandDeltaResponse `json:"deltas"`
	AverageChangePercent decimal.Decimal     `json:"average_change_percent"`
}

// ToGradeBandResponses converts domain bands to their API representation
func ToGradeBandResponses(bands []grading.GradeBand) []GradeBandResponse {
	items := make([]GradeBandResponse, 0, len(bands))
	for _, b := range bands {
		items = append(items, GradeBandResponse{
			PositionGroup: string(b.PositionGroup),
			LD:            b.LD,
			LQ:            b.LQ,
			M:             b.M,
			UQ:            b.UQ,
			UD:            b.UD,
		})
	}
	return items
}

// ToScenarioResponse converts a domain scenario to its API representation
func ToScenarioResponse(s *grading.SalaryScenario) ScenarioResponse {
	inputs := make([]GradeInputResponse, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		horizontals := make([]decimal.Decimal, grading.HorizontalSteps)
		copy(horizontals, in.HorizontalPercents[:])
		inputs = append(inputs, GradeInputResponse{
			PositionGroup:      string(in.PositionGroup),
			VerticalPercent:    in.VerticalPercent,
			HorizontalPercents: horizontals,
		})
	}

	return ScenarioResponse{
		ID:         s.ID,
		Name:       s.Name,
		Comment:    s.Comment,
		BaseValue:  s.BaseValue,
		Status:     string(s.Status),
		Inputs:     inputs,
		Grades:     ToGradeBandResponses(s.Grades),
		IsComplete: s.IsComplete(),
		AppliedAt:  s.AppliedAt,
		ArchivedAt: s.ArchivedAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
