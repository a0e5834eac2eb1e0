package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/assessment"
)

// CreateAssessmentRequest opens a draft self-assessment for a period
type CreateAssessmentRequest struct {
	EmployeeID uuid.UUID  `json:"employee_id" binding:"required"`
	ReviewerID *uuid.UUID `json:"reviewer_id"`
	Period     string     `json:"period" binding:"required,max=20"`
}

// SetRatingRequest adds or replaces a skill rating
type SetRatingRequest struct {
	SkillID uuid.UUID `json:"skill_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment"`
}

// SetCommentRequest sets the overall self-comment
type SetCommentRequest struct {
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewRequest carries the reviewer's decision comment
type ReviewRequest struct {
	Comment string `json:"comment"`
}

// AssessmentListFilter defines list query parameters
type AssessmentListFilter struct {
	EmployeeID *uuid.UUID `form:"employee_id"`
	ReviewerID *uuid.UUID `form:"reviewer_id"`
	Period     string     `form:"period"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// SkillRatingResponse is one rated skill in an assessment
type SkillRatingResponse struct {
	SkillID uuid.UUID `json:"skill_id"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
}

// AssessmentResponse is the API representation of a self-assessment
type AssessmentResponse struct {
	ID              uuid.UUID             `json:"id"`
	EmployeeID      uuid.UUID             `json:"employee_id"`
	ReviewerID      uuid.UUID             `json:"reviewer_id"`
	Period          string                `json:"period"`
	Status          string                `json:"status"`
	Ratings         []SkillRatingResponse `json:"ratings"`
	AverageRating   float64               `json:"average_rating"`
	EmployeeComment string                `json:"employee_comment,omitempty"`
	ReviewerComment string                `json:"reviewer_comment,omitempty"`
	SubmittedAt     *time.Time            `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time            `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToAssessmentResponse converts a domain assessment to its API representation
func ToAssessmentResponse(sa *assessment.SelfAssessment) AssessmentResponse {
	ratings := make([]SkillRatingResponse, 0, len(sa.Ratings))
	for _, r := range sa.Ratings {
		ratings = append(ratings, SkillRatingResponse{
			SkillID: r.SkillID,
			Rating:  r.Rating,
			Comment: r.Comment,
		})
	}

	return AssessmentResponse{
		ID:              sa.ID,
		EmployeeID:      sa.EmployeeID,
		ReviewerID:      sa.ReviewerID,
		Period:          sa.Period,
		Status:          string(sa.Status),
		Ratings:         ratings,
		AverageRating:   sa.AverageRating(),
		EmployeeComment: sa.EmployeeComment,
		ReviewerComment: sa.ReviewerComment,
		SubmittedAt:     sa.SubmittedAt,
		ReviewedAt:      sa.ReviewedAt,
		CreatedAt:       sa.CreatedAt,
		UpdatedAt:       sa.UpdatedAt,
	}
}
