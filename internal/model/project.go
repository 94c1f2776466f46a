package model

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProjectNumber      string        `gorm:"uniqueIndex;size:16"`
	Manager            string        `gorm:"size:128"`
	AnnouncementNumber string        `gorm:"size:64"`
	MaxBidAmount       int64         // VAT-inclusive, whole won
	StartDate          time.Time
	EndDate            time.Time
	Status             ProjectStatus `gorm:"size:16"`
	CreatedAt          time.Time
	Budget             *Budget `gorm:"-"`
}

func (Project) TableName() string { return "projects" }
