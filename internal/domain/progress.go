package domain

import (
	"fmt"
	"time"
)

type ProgressStatus string

const (
	ProgressStatusActive    ProgressStatus = "active"
	ProgressStatusCompleted ProgressStatus = "completed"
)

// Progress tracks one user's position in one masterclass. There is at most
// one record per (user, masterclass) pair; its ID is the deterministic
// composite key so duplicate grants collapse to a no-op.
type Progress struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	MasterclassID    string         `json:"masterclass_id"`
	CurrentModule    int32          `json:"current_module"`
	CompletedModules []int64        `json:"completed_modules"`
	Status           ProgressStatus `json:"status"`
	EnrolledOn       time.Time      `json:"enrolled_on"`
	LastActivityOn   time.Time      `json:"last_activity_on"`
}

// ProgressID builds the composite key for a (user, masterclass) pair.
func ProgressID(userID, masterclassID string) string {
	return fmt.Sprintf("%s_%s", userID, masterclassID)
}

// NewProgress returns a fresh progress record pointed at the first module.
func NewProgress(userID, masterclassID string, now time.Time) *Progress {
	return &Progress{
		ID:               ProgressID(userID, masterclassID),
		UserID:           userID,
		MasterclassID:    masterclassID,
		CurrentModule:    1,
		CompletedModules: []int64{},
		Status:           ProgressStatusActive,
		EnrolledOn:       now,
		LastActivityOn:   now,
	}
}
