package models

import (
	"time"
)

// ProcessingStatus is the lifecycle state of a version's transcription.
// A version only ever moves from StatusProcessing to one of the other two.
type ProcessingStatus string

const (
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Version is one state of a project's transcript. Versions form a
// parent-linked history: the root version has no parent, edits fork new
// versions that point back at the version they were created from.
type Version struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"project_id"`
	ParentVersionID *string          `json:"parent_version_id,omitempty"`
	VideoID         string           `json:"video_id"`
	Timestamp       time.Time        `json:"timestamp"`
	Status          ProcessingStatus `json:"status"`
	Transcript      []Word           `json:"transcript"`
	ErrorMessage    *string          `json:"error_message,omitempty"`
}
