package jobdesc

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/jobdesc"
)

// CreateJobDescriptionRequest creates a new job description
type CreateJobDescriptionRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	PositionGroup string     `json:"position_group" binding:"required"`
	Grade         string     `json:"grade"`
	DepartmentID  *uuid.UUID `json:"department_id"`
	Purpose       string     `json:"purpose"`
}

// UpdateJobDescriptionRequest updates a job description's core content
type UpdateJobDescriptionRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Purpose string `json:"purpose"`
	Grade   string `json:"grade"`
}

// AddDutySectionRequest appends a duty section
type AddDutySectionRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content"`
}

// SetRequiredSkillRequest sets the expected proficiency for a skill
type SetRequiredSkillRequest struct {
	SkillID       uuid.UUID `json:"skill_id" binding:"required"`
	RequiredLevel int       `json:"required_level" binding:"required,min=1,max=5"`
}

// JobDescriptionListFilter defines list query parameters
type JobDescriptionListFilter struct {
	Keyword       string     `form:"keyword"`
	PositionGroup string     `form:"position_group"`
	DepartmentID  *uuid.UUID `form:"department_id"`
	IsActive      *bool      `form:"is_active"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// DutySectionResponse is the API representation of a duty section
type DutySectionResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SortOrder int       `json:"sort_order"`
}

// RequiredSkillResponse is the API representation of a required skill
type RequiredSkillResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	RequiredLevel int       `json:"required_level"`
}

// JobDescriptionResponse is the API representation of a job description
type JobDescriptionResponse struct {
	ID             uuid.UUID               `json:"id"`
	Title          string                  `json:"title"`
	PositionGroup  string                  `json:"position_group"`
	Grade          string                  `json:"grade,omitempty"`
	DepartmentID   *uuid.UUID              `json:"department_id,omitempty"`
	Purpose        string                  `json:"purpose,omitempty"`
	DutySections   []DutySectionResponse   `json:"duty_sections"`
	RequiredSkills []RequiredSkillResponse `json:"required_skills"`
	Revision       int                     `json:"revision"`
	IsActive       bool                    `json:"is_active"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// CreateAssignmentRequest assigns a JD to an employee or a vacancy
type CreateAssignmentRequest struct {
	JobDescriptionID uuid.UUID  `json:"job_description_id" binding:"required"`
	EmployeeID       *uuid.UUID `json:"employee_id"`
	LineManagerID    *uuid.UUID `json:"line_manager_id"`
}

// DecisionRequest carries an approval-stage decision comment
type DecisionRequest struct {
	Comment string `json:"comment"`
}

// AssignmentListFilter defines assignment list query parameters
type AssignmentListFilter struct {
	JobDescriptionID *uuid.UUID `form:"job_description_id"`
	EmployeeID       *uuid.UUID `form:"employee_id"`
	LineManagerID    *uuid.UUID `form:"line_manager_id"`
	Status           string     `form:"status"`
	Page             int        `form:"page"`
	PageSize         int        `form:"page_size"`
}

// TransitionResponse is one step of the approval history
type TransitionResponse struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    uuid.UUID `json:"actor_id"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AssignmentResponse is the API representation of a JD assignment
type AssignmentResponse struct {
	ID               uuid.UUID            `json:"id"`
	JobDescriptionID uuid.UUID            `json:"job_description_id"`
	EmployeeID       *uuid.UUID           `json:"employee_id,omitempty"`
	LineManagerID    uuid.UUID            `json:"line_manager_id"`
	IsVacancy        bool                 `json:"is_vacancy"`
	Status           string               `json:"status"`
	ManagerComment   string               `json:"manager_comment,omitempty"`
	EmployeeComment  string               `json:"employee_comment,omitempty"`
	SubmittedAt      *time.Time           `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time           `json:"approved_at,omitempty"`
	History          []TransitionResponse `json:"history"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ToJobDescriptionResponse converts a domain JD to its API representation
func ToJobDescriptionResponse(jd *jobdesc.JobDescription) JobDescriptionResponse {
	sections := make([]DutySectionResponse, 0, len(jd.DutySections))
	for _, s := range jd.DutySections {
		sections = append(sections, DutySectionResponse{
			ID:        s.ID,
			Title:     s.Title,
			Content:   s.Content,
			SortOrder: s.SortOrder,
		})
	}

	skills := make([]RequiredSkillResponse, 0, len(jd.RequiredSkills))
	for _, rs := range jd.RequiredSkills {
		skills = append(skills, RequiredSkillResponse{
			SkillID:       rs.SkillID,
			RequiredLevel: rs.RequiredLevel,
		})
	}

	return JobDescriptionResponse{
		ID:             jd.ID,
		Title:          jd.Title,
		PositionGroup:  string(jd.PositionGroup),
		Grade:          jd.Grade,
		DepartmentID:   jd.DepartmentID,
		Purpose:        jd.Purpose,
		DutySections:   sections,
		RequiredSkills: skills,
		Revision:       jd.Revision,
		IsActive:       jd.IsActive,
		CreatedAt:      jd.CreatedAt,
		UpdatedAt:      jd.UpdatedAt,
	}
}

// ToAssignmentResponse converts a domain assignment to its API representation
func ToAssignmentResponse(a *jobdesc.Assignment) AssignmentResponse {
	history := make([]TransitionResponse, 0, len(a.History))
	for _, r := range a.History {
		history = append(history, TransitionResponse{
			From:       string(r.From),
			To:         string(r.To),
			ActorID:    r.ActorID,
			Comment:    r.Comment,
			OccurredAt: r.OccurredAt,
		})
	}

	return AssignmentResponse{
		ID:               a.ID,
		JobDescriptionID: a.JobDescriptionID,
		EmployeeID:       a.EmployeeID,
		LineManagerID:    a.LineManagerID,
		IsVacancy:        a.IsVacancy(),
		Status:           string(a.Status),
		ManagerComment:   a.ManagerComment,
		EmployeeComment:  a.EmployeeComment,
		SubmittedAt:      a.SubmittedAt,
		ApprovedAt:       a.ApprovedAt,
		History:          history,
		CreatedAt:        a.CreatedAt,
	}
}
