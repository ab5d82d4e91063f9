package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/model"
	"github.com/sakif/devconnector/internal/repository"
)

// compile-time check that *ProfileDB implements repository.ProfileRepository
var _ repository.ProfileRepository = (*ProfileDB)(nil)

// ProfileDB implements repository.ProfileRepository on SQLite.
//
// The four document columns (skills, social, experience, education) are
// marshalled to JSON on write and back on read. Marshalling happens here —
// the service layer only ever sees model.Profile with real slices.
type ProfileDB struct {
	conn *sql.DB
}

// profileColumns is the SELECT list shared by every profile read, joined
// with the owner's display fields so responses can show name and avatar
// without a second query.
const profileColumns = `
	p.id, p.user_id, u.name, u.avatar_url,
	p.company, p.website, p.location, p.status, p.skills, p.bio,
	p.github_username, p.social, p.experience, p.education,
	p.created_at, p.updated_at`

// Save inserts the profile if the user has none, otherwise replaces the
// stored row. Upsert is keyed on user_id, not on profile id: the caller
// identifies a profile by its owner.
//
// On update the existing profile ID and created_at are preserved — only the
// content and updated_at change.
func (p *ProfileDB) Save(ctx context.Context, profile *model.Profile) error {
	skills, social, experience, education, err := marshalDocs(profile)
	if err != nil {
		return err
	}

	var existingID string
	var createdAt time.Time
	err = p.conn.QueryRowContext(ctx,
		`SELECT id, created_at FROM profiles WHERE user_id = ?`, profile.UserID,
	).Scan(&existingID, &createdAt)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up profile for user %s: %w", profile.UserID, err)
	}

	if existingID != "" {
		profile.ID = existingID
		profile.CreatedAt = createdAt
		profile.UpdatedAt = time.Now()
		_, err = p.conn.ExecContext(ctx,
			`UPDATE profiles SET
				company = ?, website = ?, location = ?, status = ?, skills = ?,
				bio = ?, github_username = ?, social = ?, experience = ?,
				education = ?, updated_at = ?
			 WHERE user_id = ?`,
			profile.Company, profile.Website, profile.Location, profile.Status,
			skills, profile.Bio, profile.GitHubUsername, social, experience,
			education, profile.UpdatedAt, profile.UserID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating profile for user %s: %w", profile.UserID, err)
		}
		return nil
	}

	now := time.Now()
	profile.ID = xid.New().String()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err = p.conn.ExecContext(ctx,
		`INSERT INTO profiles (
			id, user_id, company, website, location, status, skills, bio,
			github_username, social, experience, education, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.UserID, profile.Company, profile.Website,
		profile.Location, profile.Status, skills, profile.Bio,
		profile.GitHubUsername, social, experience, education,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting profile for user %s: %w", profile.UserID, err)
	}

	return nil
}

// GetByUserID retrieves a user's profile with the owner's name and avatar
// joined in. Returns apperror.ErrNotFound if the user has no profile.
func (p *ProfileDB) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	row := p.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = ?`,
		userID,
	)

	profile, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("There is no profile for this user")
		}
		return nil, fmt.Errorf("sqlite: getting profile for user %s: %w", userID, err)
	}

	return profile, nil
}

// List returns every profile, newest first, joined with owner display fields.
func (p *ProfileDB) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := p.conn.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning profile row: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating profiles: %w", err)
	}

	return profiles, nil
}

// DeleteByUserID removes the user's profile row. A user without a profile is
// not an error — account deletion runs this unconditionally.
func (p *ProfileDB) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := p.conn.ExecContext(ctx,
		`DELETE FROM profiles WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting profile for user %s: %w", userID, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows so scanProfile serves single
// and multi-row reads.
type scanner interface {
	Scan(dest ...any) error
}

// scanProfile reads one joined profile row and unmarshals the JSON document
// columns back into slices/structs.
func scanProfile(row scanner) (*model.Profile, error) {
	var profile model.Profile
	var skills, social, experience, education string

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.AvatarURL,
		&profile.Company, &profile.Website, &profile.Location, &profile.Status,
		&skills, &profile.Bio, &profile.GitHubUsername, &social,
		&experience, &education, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(skills), &profile.Skills); err != nil {
		return nil, fmt.Errorf("unmarshalling skills: %w", err)
	}
	if err := json.Unmarshal([]byte(social), &profile.Social); err != nil {
		return nil, fmt.Errorf("unmarshalling social: %w", err)
	}
	if err := json.Unmarshal([]byte(experience), &profile.Experience); err != nil {
		return nil, fmt.Errorf("unmarshalling experience: %w", err)
	}
	if err := json.Unmarshal([]byte(education), &profile.Education); err != nil {
		return nil, fmt.Errorf("unmarshalling education: %w", err)
	}

	return &profile, nil
}

// marshalDocs serialises the document columns for a write.
func marshalDocs(profile *model.Profile) (skills, social, experience, education string, err error) {
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Experience == nil {
		profile.Experience = []model.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []model.Education{}
	}

	skillsB, err := json.Marshal(profile.Skills)
	if err != nil {
		return "", "", "", "", fmt.Errorf("sqlite: marshalling skills: %w", err)
	}
	socialB, err := json.Marshal(profile.Social)
	if err != nil {
		return "", "", "", "", fmt.Errorf("sqlite: marshalling social: %w", err)
	}
	experienceB, err := json.Marshal(profile.Experience)
	if err != nil {
		return "", "", "", "", fmt.Errorf("sqlite: marshalling experience: %w", err)
	}
	educationB, err := json.Marshal(profile.Education)
	if err != nil {
		return "", "", "", "", fmt.Errorf("sqlite: marshalling education: %w", err)
	}

	return string(skillsB), string(socialB), string(experienceB), string(educationB), nil
}
