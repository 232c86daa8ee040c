package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// CollaborationStatus represents the status of a collaboration request
type CollaborationStatus string

const (
	CollaborationPending   CollaborationStatus = "pending"
	CollaborationAccepted  CollaborationStatus = "accepted"
	CollaborationDeclined  CollaborationStatus = "declined"
	CollaborationCompleted CollaborationStatus = "completed"
)

// MaxProjectTitleLength caps the project title of a collaboration request
const MaxProjectTitleLength = 100

// IsValid reports whether s is a known status
func (s CollaborationStatus) IsValid() bool {
	switch s {
	case CollaborationPending, CollaborationAccepted, CollaborationDeclined, CollaborationCompleted:
		return true
	}
	return false
}

// IsTerminalStatus returns true if the status is terminal (no further transitions allowed)
func (s CollaborationStatus) IsTerminalStatus() bool {
	return s == CollaborationDeclined || s == CollaborationCompleted
}

// CanTransitionTo checks if a status transition is valid
func (s CollaborationStatus) CanTransitionTo(newStatus CollaborationStatus) bool {
	if s.IsTerminalStatus() {
		return false
	}

	switch s {
	case CollaborationPending:
		return newStatus == CollaborationAccepted || newStatus == CollaborationDeclined
	case CollaborationAccepted:
		return newStatus == CollaborationCompleted
	default:
		return false
	}
}

// CollaborationRequest is a directed request from requester to receiver
type CollaborationRequest struct {
	ID             string              `json:"id"`
	RequesterID    string              `json:"requesterId"`
	ReceiverID     string              `json:"receiverId"`
	ProjectTitle   string              `json:"projectTitle"`
	Description    string              `json:"description"`
	RequiredSkills []string            `json:"requiredSkills"`
	Message        *string             `json:"message"`
	Status         CollaborationStatus `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// IsParty reports whether profileID is the requester or the receiver
func (r *CollaborationRequest) IsParty(profileID string) bool {
	return profileID == r.RequesterID || profileID == r.ReceiverID
}

// CreateCollaborationRequest is the payload for creating a collaboration request.
// RequiredSkillsText accepts the comma separated form used by the web form.
type CreateCollaborationRequest struct {
	ReceiverID         string   `json:"receiverId" binding:"required"`
	ProjectTitle       string   `json:"projectTitle" binding:"required,max=100"`
	Description        string   `json:"description" binding:"required"`
	RequiredSkills     []string `json:"requiredSkills" binding:"omitempty,dive,max=50"`
	RequiredSkillsText string   `json:"requiredSkillsText" binding:"max=1000"`
	Message            string   `json:"message" binding:"max=2000"`
}

// CollaborationLists partitions a profile's requests by direction
type CollaborationLists struct {
	Received []*CollaborationRequest `json:"received"`
	Sent     []*CollaborationRequest `json:"sent"`
}

// ScanCollaboration scans a single PostgreSQL row into a CollaborationRequest
// Expected columns: id, requester_id, receiver_id, project_title, description,
// required_skills, message, status, created_at, updated_at
func ScanCollaboration(row pgx.Row) (*CollaborationRequest, error) {
	var r CollaborationRequest
	var requiredSkills []string

	err := row.Scan(
		&r.ID,
		&r.RequesterID,
		&r.ReceiverID,
		&r.ProjectTitle,
		&r.Description,
		&requiredSkills,
		&r.Message,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if requiredSkills == nil {
		requiredSkills = []string{}
	}
	r.RequiredSkills = requiredSkills

	return &r, nil
}

// ScanCollaborations scans multiple PostgreSQL rows into a slice of CollaborationRequest
func ScanCollaborations(rows pgx.Rows) ([]*CollaborationRequest, error) {
	defer rows.Close()

	requests := []*CollaborationRequest{}
	for rows.Next() {
		request, err := ScanCollaboration(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
