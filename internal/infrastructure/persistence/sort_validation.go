package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"status":        true,
	"last_login_at": true,
}

// RoleSortFields contains allowed sort fields for roles
var RoleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"sort_order":     true,
	"is_enabled":     true,
	"is_system_role": true,
}

// DepartmentSortFields contains allowed sort fields for departments
var DepartmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"level":      true,
	"sort_order": true,
	"status":     true,
}

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"first_name":     true,
	"last_name":      true,
	"email":          true,
	"position_group": true,
	"position_title": true,
	"grade":          true,
	"status":         true,
	"hire_date":      true,
}

// AssetBatchSortFields contains allowed sort fields for asset batches
var AssetBatchSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"category":           true,
	"initial_quantity":   true,
	"available_quantity": true,
	"assigned_quantity":  true,
	"unit_cost_cents":    true,
	"purchased_at":       true,
	"is_active":          true,
}

// AssetAssignmentSortFields contains allowed sort fields for asset assignments
var AssetAssignmentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"batch_id":    true,
	"employee_id": true,
	"quantity":    true,
	"status":      true,
	"accepted_at": true,
	"returned_at": true,
}

// JobDescriptionSortFields contains allowed sort fields for job descriptions
var JobDescriptionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"title":          true,
	"position_group": true,
	"grade":          true,
	"revision":       true,
	"is_active":      true,
}

// JobAssignmentSortFields contains allowed sort fields for job description assignments
var JobAssignmentSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"job_description_id": true,
	"employee_id":        true,
	"status":             true,
	"submitted_at":       true,
	"approved_at":        true,
}

// SkillGroupSortFields contains allowed sort fields for skill groups
var SkillGroupSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"is_active":  true,
}

// SelfAssessmentSortFields contains allowed sort fields for self assessments
var SelfAssessmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"employee_id":  true,
	"period":       true,
	"status":       true,
	"submitted_at": true,
	"reviewed_at":  true,
}

// TrainingSortFields contains allowed sort fields for trainings
var TrainingSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"type":         true,
	"duration_hrs": true,
	"is_active":    true,
}

// TrainingAssignmentSortFields contains allowed sort fields for training assignments
var TrainingAssignmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"training_id":  true,
	"employee_id":  true,
	"due_date":     true,
	"status":       true,
	"score":        true,
	"completed_at": true,
}

// SalaryScenarioSortFields contains allowed sort fields for salary scenarios
var SalaryScenarioSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"applied_at": true,
}

// ImportHistorySortFields contains allowed sort fields for import histories
var ImportHistorySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"entity_type":  true,
	"file_name":    true,
	"file_size":    true,
	"total_rows":   true,
	"success_rows": true,
	"error_rows":   true,
	"status":       true,
	"started_at":   true,
	"completed_at": true,
}
