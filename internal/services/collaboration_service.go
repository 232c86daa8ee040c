package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/repository"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"github.com/talentmap/talentmap-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// collaborationAction names a lifecycle operation for logs and metrics
type collaborationAction string

const (
	actionAccept   collaborationAction = "accept"
	actionDecline  collaborationAction = "decline"
	actionComplete collaborationAction = "complete"
)

// target returns the status an action moves a request to
func (a collaborationAction) target() models.CollaborationStatus {
	switch a {
	case actionAccept:
		return models.CollaborationAccepted
	case actionDecline:
		return models.CollaborationDeclined
	default:
		return models.CollaborationCompleted
	}
}

// authorize checks that actorID may perform the action on req.
// Accept and decline belong to the receiver; either party may complete.
func (a collaborationAction) authorize(req *models.CollaborationRequest, actorID string) error {
	switch a {
	case actionAccept, actionDecline:
		if actorID != req.ReceiverID {
			return apperrors.UnauthorizedError("only the receiver may " + string(a) + " a collaboration request")
		}
	case actionComplete:
		if !req.IsParty(actorID) {
			return apperrors.UnauthorizedError("only a party may complete a collaboration")
		}
	}
	return nil
}

// CollaborationService drives the collaboration request lifecycle
type CollaborationService struct {
	repo repository.CollaborationRepositoryInterface
}

// NewCollaborationService creates a new CollaborationService
func NewCollaborationService(repo repository.CollaborationRepositoryInterface) *CollaborationService {
	return &CollaborationService{
		repo: repo,
	}
}

// Create opens a new pending request from requesterID to the payload's receiver
func (s *CollaborationService) Create(ctx context.Context, requesterID string, payload *models.CreateCollaborationRequest) (*models.CollaborationRequest, error) {
	record, err := buildCollaboration(requesterID, payload)
	if err != nil {
		metrics.CollaborationRequests.WithLabelValues("invalid").Inc()
		logger.Warn("Rejected collaboration request",
			zap.String("requester_id", requesterID),
			zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		metrics.CollaborationRequests.WithLabelValues("error").Inc()
		logger.Error("Failed to create collaboration request",
			zap.String("requester_id", requesterID),
			zap.String("receiver_id", record.ReceiverID),
			zap.Error(err))
		return nil, err
	}

	metrics.CollaborationRequests.WithLabelValues("created").Inc()
	logger.Info("Collaboration request created",
		zap.String("collaboration_id", created.ID),
		zap.String("requester_id", created.RequesterID),
		zap.String("receiver_id", created.ReceiverID),
		zap.Int("required_skills", len(created.RequiredSkills)))

	return created, nil
}

// Accept moves a pending request to accepted. Receiver only.
func (s *CollaborationService) Accept(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error) {
	return s.transition(ctx, requestID, actorID, actionAccept)
}

// Decline moves a pending request to declined. Receiver only.
func (s *CollaborationService) Decline(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error) {
	return s.transition(ctx, requestID, actorID, actionDecline)
}

// Complete moves an accepted request to completed. Either party.
func (s *CollaborationService) Complete(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error) {
	return s.transition(ctx, requestID, actorID, actionComplete)
}

// Get returns a single request to one of its parties
func (s *CollaborationService) Get(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !req.IsParty(actorID) {
		logger.Warn("Access denied to collaboration request",
			zap.String("collaboration_id", requestID),
			zap.String("actor_id", actorID))
		return nil, apperrors.UnauthorizedError("only a party may view a collaboration request")
	}

	return req, nil
}

// List partitions the profile's requests into received and sent, newest first
func (s *CollaborationService) List(ctx context.Context, profileID string) (*models.CollaborationLists, error) {
	requests, err := s.repo.ListForProfile(ctx, profileID)
	if err != nil {
		logger.Error("Failed to list collaboration requests",
			zap.String("profile_id", profileID),
			zap.Error(err))
		return nil, err
	}

	lists := &models.CollaborationLists{
		Received: []*models.CollaborationRequest{},
		Sent:     []*models.CollaborationRequest{},
	}
	for _, req := range requests {
		switch profileID {
		case req.ReceiverID:
			lists.Received = append(lists.Received, req)
		case req.RequesterID:
			lists.Sent = append(lists.Sent, req)
		}
	}

	return lists, nil
}

// transition reads the request, checks the actor and then the state, and
// writes the new status conditioned on the state it read
func (s *CollaborationService) transition(ctx context.Context, requestID, actorID string, action collaborationAction) (updated *models.CollaborationRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "collaboration."+string(action),
		attribute.String("collaboration.id", requestID),
		attribute.String("actor.id", actorID))
	defer func() { tracing.EndSpan(span, err) }()

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		metrics.CollaborationTransitions.WithLabelValues(string(action), string(apperrors.KindOf(err))).Inc()
		return nil, err
	}

	if err := action.authorize(req, actorID); err != nil {
		metrics.CollaborationTransitions.WithLabelValues(string(action), string(apperrors.KindUnauthorized)).Inc()
		logger.Warn("Unauthorized collaboration transition",
			zap.String("collaboration_id", requestID),
			zap.String("action", string(action)),
			zap.String("actor_id", actorID))
		return nil, err
	}

	target := action.target()
	if !req.Status.CanTransitionTo(target) {
		metrics.CollaborationTransitions.WithLabelValues(string(action), string(apperrors.KindIllegalTransition)).Inc()
		logger.Warn("Invalid collaboration status transition",
			zap.String("collaboration_id", requestID),
			zap.String("from_status", string(req.Status)),
			zap.String("to_status", string(target)))
		return nil, apperrors.IllegalTransitionError(string(req.Status), string(target))
	}

	updated, err = s.repo.UpdateStatus(ctx, requestID, target, req.Status)
	if err != nil {
		metrics.CollaborationTransitions.WithLabelValues(string(action), string(apperrors.KindOf(err))).Inc()
		logger.Warn("Failed to update collaboration status",
			zap.String("collaboration_id", requestID),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil, err
	}

	metrics.CollaborationTransitions.WithLabelValues(string(action), "success").Inc()
	logger.Info("Collaboration status updated",
		zap.String("collaboration_id", requestID),
		zap.String("actor_id", actorID),
		zap.String("from_status", string(req.Status)),
		zap.String("to_status", string(updated.Status)))

	return updated, nil
}

// buildCollaboration validates the payload and returns the pending record to store
func buildCollaboration(requesterID string, payload *models.CreateCollaborationRequest) (*models.CollaborationRequest, error) {
	if payload == nil {
		return nil, apperrors.InvalidInputError("body", "is required")
	}

	requesterID = strings.TrimSpace(requesterID)
	receiverID := strings.TrimSpace(payload.ReceiverID)
	title := strings.TrimSpace(payload.ProjectTitle)
	description := strings.TrimSpace(payload.Description)

	switch {
	case requesterID == "":
		return nil, apperrors.InvalidInputError("requesterId", "is required")
	case receiverID == "":
		return nil, apperrors.InvalidInputError("receiverId", "is required")
	case requesterID == receiverID:
		return nil, apperrors.InvalidInputError("receiverId", "cannot request a collaboration with yourself")
	case title == "":
		return nil, apperrors.InvalidInputError("projectTitle", "is required")
	case utf8.RuneCountInString(title) > models.MaxProjectTitleLength:
		return nil, apperrors.InvalidInputError("projectTitle", "is too long")
	case description == "":
		return nil, apperrors.InvalidInputError("description", "is required")
	}

	skills := ParseRequiredSkills(payload.RequiredSkills, payload.RequiredSkillsText)
	for _, skill := range skills {
		if utf8.RuneCountInString(skill) > models.MaxSkillNameLength {
			return nil, apperrors.InvalidInputError("requiredSkills", "skill name is too long")
		}
	}

	var message *string
	if m := strings.TrimSpace(payload.Message); m != "" {
		message = &m
	}

	return &models.CollaborationRequest{
		RequesterID:    requesterID,
		ReceiverID:     receiverID,
		ProjectTitle:   title,
		Description:    description,
		RequiredSkills: skills,
		Message:        message,
		Status:         models.CollaborationPending,
	}, nil
}

// ParseRequiredSkills returns the trimmed, non-blank skill names in order.
// The list form wins; the comma separated text form is used when the list is empty.
func ParseRequiredSkills(list []string, text string) []string {
	raw := list
	if len(raw) == 0 && strings.TrimSpace(text) != "" {
		raw = strings.Split(text, ",")
	}

	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
