package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talentmap/talentmap-api/internal/models"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"github.com/talentmap/talentmap-api/pkg/metrics"
	"go.uber.org/zap"
)

const profileColumns = `
	p.id::text, p.full_name, p.email, p.bio, p.location, p.is_available, p.is_verified,
	p.linkedin_url, p.github_url, p.website_url, p.created_at`

// ListProfiles fetches every profile with its relations, newest first.
// Relations are loaded with one query per table and stitched in memory.
func (c *Client) ListProfiles(ctx context.Context) ([]*models.TalentProfile, error) {
	start := time.Now()
	operation := "listProfiles"

	profiles, err := c.queryProfiles(ctx, `SELECT`+profileColumns+` FROM profiles p ORDER BY p.created_at DESC, p.id`)
	if err == nil {
		err = c.loadRelations(ctx, profiles, nil)
	}

	duration := metrics.MeasureDuration(start)
	status := metrics.ResultLabel(err)
	recordMetrics(operation, status, duration)
	if err != nil {
		logger.LogAPICall("postgres", operation, status, duration, zap.Error(err))
		return nil, err
	}

	logger.LogAPICall("postgres", operation, status, duration, zap.Int("count", len(profiles)))
	return profiles, nil
}

// GetProfile fetches a single profile with its relations
func (c *Client) GetProfile(ctx context.Context, id string) (*models.TalentProfile, error) {
	start := time.Now()
	operation := "getProfile"

	if !isUUID(id) {
		return nil, apperrors.NotFoundError("profile", id)
	}

	profiles, err := c.queryProfiles(ctx, `SELECT`+profileColumns+` FROM profiles p WHERE p.id = $1`, id)
	if err == nil && len(profiles) == 0 {
		recordMetrics(operation, "not_found", metrics.MeasureDuration(start))
		return nil, apperrors.NotFoundError("profile", id)
	}
	if err == nil {
		err = c.loadRelations(ctx, profiles, &id)
	}

	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, err
	}

	recordMetrics(operation, "success", duration)
	return profiles[0], nil
}

// ProfileExists reports whether a profile id is present
func (c *Client) ProfileExists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	var exists bool
	err := c.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return exists, nil
}

func (c *Client) queryProfiles(ctx context.Context, query string, args ...any) ([]*models.TalentProfile, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.TalentProfile, 0)
	for rows.Next() {
		var p models.TalentProfile
		err := rows.Scan(
			&p.ID, &p.FullName, &p.Email, &p.Bio, &p.Location, &p.IsAvailable, &p.IsVerified,
			&p.LinkedinURL, &p.GithubURL, &p.WebsiteURL, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		p.Skills = []models.Skill{}
		p.Languages = []models.Language{}
		p.Projects = []models.Project{}
		p.Passions = []models.Passion{}
		p.Badges = []models.Badge{}
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

// relationFilter narrows a relation query to one owner when set
func relationFilter(ownerID *string) (string, []any) {
	if ownerID == nil {
		return "", nil
	}
	return " WHERE user_id = $1", []any{*ownerID}
}

// loadRelations fills the owned records of profiles. ownerID restricts the
// queries to a single profile.
func (c *Client) loadRelations(ctx context.Context, profiles []*models.TalentProfile, ownerID *string) error {
	byID := make(map[string]*models.TalentProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	where, args := relationFilter(ownerID)

	loaders := []struct {
		name  string
		query string
		scan  func(pgx.Rows) error
	}{
		{
			name:  "skills",
			query: `SELECT id::text, user_id::text, name, category, level, years_experience FROM skills` + where + ` ORDER BY created_at, id`,
			scan: func(rows pgx.Rows) error {
				var s models.Skill
				if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Category, &s.Level, &s.YearsExperience); err != nil {
					return err
				}
				if p, ok := byID[s.UserID]; ok {
					p.Skills = append(p.Skills, s)
				}
				return nil
			},
		},
		{
			name:  "languages",
			query: `SELECT id::text, user_id::text, name, proficiency FROM languages` + where + ` ORDER BY created_at, id`,
			scan: func(rows pgx.Rows) error {
				var l models.Language
				if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Proficiency); err != nil {
					return err
				}
				if p, ok := byID[l.UserID]; ok {
					p.Languages = append(p.Languages, l)
				}
				return nil
			},
		},
		{
			name: "projects",
			query: `SELECT id::text, user_id::text, title, description, technologies, project_url, github_url,
				start_date, end_date, is_current FROM projects` + where + ` ORDER BY created_at DESC, id`,
			scan: func(rows pgx.Rows) error {
				var pr models.Project
				err := rows.Scan(&pr.ID, &pr.UserID, &pr.Title, &pr.Description, &pr.Technologies,
					&pr.ProjectURL, &pr.GithubURL, &pr.StartDate, &pr.EndDate, &pr.IsCurrent)
				if err != nil {
					return err
				}
				if pr.Technologies == nil {
					pr.Technologies = []string{}
				}
				pr.EndDate = pr.EffectiveEndDate()
				if p, ok := byID[pr.UserID]; ok {
					p.Projects = append(p.Projects, pr)
				}
				return nil
			},
		},
		{
			name:  "passions",
			query: `SELECT id::text, user_id::text, name, description FROM passions` + where + ` ORDER BY created_at, id`,
			scan: func(rows pgx.Rows) error {
				var ps models.Passion
				if err := rows.Scan(&ps.ID, &ps.UserID, &ps.Name, &ps.Description); err != nil {
					return err
				}
				if p, ok := byID[ps.UserID]; ok {
					p.Passions = append(p.Passions, ps)
				}
				return nil
			},
		},
		{
			name:  "badges",
			query: `SELECT id::text, user_id::text, badge_type, name, description, issued_by, issued_at FROM badges` + where + ` ORDER BY issued_at, id`,
			scan: func(rows pgx.Rows) error {
				var b models.Badge
				if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeType, &b.Name, &b.Description, &b.IssuedBy, &b.IssuedAt); err != nil {
					return err
				}
				if p, ok := byID[b.UserID]; ok {
					p.Badges = append(p.Badges, b)
				}
				return nil
			},
		},
	}

	for _, l := range loaders {
		if err := c.scanAll(ctx, l.query, args, l.scan); err != nil {
			return fmt.Errorf("failed to load %s: %w", l.name, err)
		}
	}

	return nil
}

func (c *Client) scanAll(ctx context.Context, query string, args []any, scan func(pgx.Rows) error) error {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// isUUID reports whether id can be a primary key; anything else cannot exist
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isNoRows reports whether err is pgx.ErrNoRows
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
