package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"go.uber.org/zap"
)

const collaborationColumns = `
	id::text, requester_id::text, receiver_id::text, project_title, description,
	required_skills, message, status, created_at, updated_at`

// ListCollaborations returns every request where the profile is requester or receiver, newest first
func (c *Client) ListCollaborations(ctx context.Context, profileID string) ([]*models.CollaborationRequest, error) {
	start := time.Now()
	operation := "listCollaborations"

	if !isUUID(profileID) {
		return []*models.CollaborationRequest{}, nil
	}

	query := `SELECT` + collaborationColumns + `
		FROM collaborations
		WHERE requester_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id`

	rows, err := c.pool.Query(ctx, query, profileID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query collaborations: %w", err)
	}

	requests, err := models.ScanCollaborations(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan collaborations: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("profile_id", profileID),
		zap.Int("count", len(requests)))

	return requests, nil
}

// GetCollaboration fetches a single request
func (c *Client) GetCollaboration(ctx context.Context, id string) (*models.CollaborationRequest, error) {
	start := time.Now()
	operation := "getCollaboration"

	if !isUUID(id) {
		return nil, apperrors.NotFoundError("collaboration", id)
	}

	req, err := models.ScanCollaboration(c.pool.QueryRow(ctx,
		`SELECT`+collaborationColumns+` FROM collaborations WHERE id = $1`, id))

	duration := metrics.MeasureDuration(start)

	if isNoRows(err) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("collaboration", id)
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query collaboration: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return req, nil
}

// CreateCollaboration inserts a new request. A missing party surfaces as not found.
func (c *Client) CreateCollaboration(ctx context.Context, req *models.CollaborationRequest) (*models.CollaborationRequest, error) {
	start := time.Now()
	operation := "createCollaboration"

	if !isUUID(req.RequesterID) {
		return nil, apperrors.NotFoundError("profile", req.RequesterID)
	}
	if !isUUID(req.ReceiverID) {
		return nil, apperrors.NotFoundError("profile", req.ReceiverID)
	}

	requiredSkills := req.RequiredSkills
	if requiredSkills == nil {
		requiredSkills = []string{}
	}

	query := `
		INSERT INTO collaborations (
			id, requester_id, receiver_id, project_title, description,
			required_skills, message, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + collaborationColumns

	created, err := models.ScanCollaboration(c.pool.QueryRow(ctx, query,
		req.ID, req.RequesterID, req.ReceiverID, req.ProjectTitle, req.Description,
		requiredSkills, req.Message, req.Status,
	))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			recordMetrics(operation, "not_found", duration)
			missing := req.ReceiverID
			if exists, lookupErr := c.ProfileExists(ctx, req.RequesterID); lookupErr == nil && !exists {
				missing = req.RequesterID
			}
			return nil, apperrors.NotFoundError("profile", missing)
		case pgUniqueViolation:
			recordMetrics(operation, "conflict", duration)
			return nil, apperrors.StoreConflictError("collaboration", req.ID)
		case pgCheckViolation:
			recordMetrics(operation, "invalid", duration)
			return nil, apperrors.InvalidInputError("collaboration", err.Error())
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert collaboration: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("collaboration_id", created.ID),
		zap.String("requester_id", created.RequesterID),
		zap.String("receiver_id", created.ReceiverID))

	return created, nil
}

// UpdateCollaborationStatus moves a request to newStatus only while it is
// still in the expected status. When no row matches, a follow-up lookup
// tells a missing record apart from a lost race.
func (c *Client) UpdateCollaborationStatus(ctx context.Context, id string, newStatus, expected models.CollaborationStatus) (*models.CollaborationRequest, error) {
	start := time.Now()
	operation := "updateCollaborationStatus"

	if !isUUID(id) {
		return nil, apperrors.NotFoundError("collaboration", id)
	}

	query := `
		UPDATE collaborations
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING` + collaborationColumns

	updated, err := models.ScanCollaboration(c.pool.QueryRow(ctx, query, id, newStatus, expected))

	if isNoRows(err) {
		var exists bool
		if existsErr := c.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM collaborations WHERE id = $1)`, id).Scan(&exists); existsErr != nil {
			err = existsErr
		} else {
			duration := metrics.MeasureDuration(start)
			if !exists {
				recordMetrics(operation, "not_found", duration)
				return nil, apperrors.NotFoundError("collaboration", id)
			}
			recordMetrics(operation, "conflict", duration)
			logger.Warn("Collaboration status changed concurrently",
				zap.String("collaboration_id", id),
				zap.String("expected_status", string(expected)),
				zap.String("new_status", string(newStatus)))
			return nil, apperrors.StoreConflictError("collaboration", id)
		}
	}

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update collaboration status: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("collaboration_id", id),
		zap.String("status", string(newStatus)))

	return updated, nil
}
