package training

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// TrainingType categorizes trainings
type TrainingType string

const (
	TrainingTypeOnboarding TrainingType = "ONBOARDING"
	TrainingTypeCompliance TrainingType = "COMPLIANCE"
	TrainingTypeSkill      TrainingType = "SKILL"
	TrainingTypeLeadership TrainingType = "LEADERSHIP"
)

// IsValid returns true for known training types
func (t TrainingType) IsValid() bool {
	switch t {
	case TrainingTypeOnboarding, TrainingTypeCompliance, TrainingTypeSkill, TrainingTypeLeadership:
		return true
	}
	return false
}

// Material represents a training material stored in object storage
type Material struct {
	ID         uuid.UUID
	Name       string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	UploadedAt time.Time
}

// Training represents a catalog entry of a training course
type Training struct {
	shared.BaseAggregateRoot
	Title       string
	Type        TrainingType
	Description string
	DurationHrs int
	Materials   []Material
	IsActive    bool
}

// NewTraining creates a new training catalog entry
func NewTraining(title string, trainingType TrainingType) (*Training, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Training title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Training title cannot exceed 200 characters")
	}
	if !trainingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRAINING_TYPE", "Unknown training type")
	}

	tr := &Training{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Type:              trainingType,
		Materials:         make([]Material, 0),
		IsActive:          true,
	}

	tr.AddDomainEvent(NewTrainingCreatedEvent(tr))

	return tr, nil
}

// Update updates the training's descriptive fields
func (t *Training) Update(title, description string, durationHrs int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Training title cannot be empty")
	}
	if durationHrs < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}

	t.Title = title
	t.Description = description
	t.DurationHrs = durationHrs
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// AddMaterial attaches a material to the training
func (t *Training) AddMaterial(name, storageKey, mimeType string, sizeBytes int64) (*Material, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_MATERIAL_NAME", "Material name cannot be empty")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	material := Material{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(name),
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		UploadedAt: time.Now(),
	}

	t.Materials = append(t.Materials, material)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return &material, nil
}

// RemoveMaterial detaches a material
func (t *Training) RemoveMaterial(materialID uuid.UUID) error {
	found := false
	newMaterials := make([]Material, 0, len(t.Materials))
	for _, m := range t.Materials {
		if m.ID != materialID {
			newMaterials = append(newMaterials, m)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("MATERIAL_NOT_FOUND", "Training does not have this material")
	}

	t.Materials = newMaterials
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Deactivate retires the training from new assignments
func (t *Training) Deactivate() error {
	if !t.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Training is already inactive")
	}

	t.IsActive = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Activate returns the training to active status
func (t *Training) Activate() error {
	if t.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Training is already active")
	}

	t.IsActive = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}
