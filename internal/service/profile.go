package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnector/internal/apperror"
	"github.com/sakif/devconnector/internal/model"
	"github.com/sakif/devconnector/internal/repository"
)

// ProfileInput carries the fields a client may supply when creating or
// updating a profile. Skills arrive as a single comma-separated string
// ("go, sql, docker") and are split and trimmed here.
//
// SPARSE UPDATE SEMANTICS:
// An empty field means "leave it alone", not "clear it". Only supplied
// values overwrite what's stored; everything else survives the update. The
// two required fields (status, skills) are always supplied, so they always
// overwrite.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GitHubUsername string
	YouTube        string
	Twitter        string
	Facebook       string
	LinkedIn       string
	Instagram      string
}

// ExperienceInput carries a new work-history entry. Dates arrive as strings
// ("2019-06-01" or RFC 3339) and are parsed here.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput carries a new education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// ProfileService handles profile reads, the upsert, sub-collection edits,
// and account deletion.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(
	profiles repository.ProfileRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		logger:   logger,
	}
}

// GetOwn returns the caller's profile, or ErrNotFound with the
// "no profile for this user" message when they haven't created one yet.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// GetByUserID returns another user's profile for display.
//
// A malformed ID can't match anything, so both "bad id" and "no such
// profile" collapse into the same not-found answer — the caller learns
// nothing about which IDs exist.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// List returns all profiles with owner display fields joined in.
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		s.logger.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

// Upsert creates the caller's profile or updates it in place.
//
// Strategy: fetch-then-save. We load the existing profile (if any), apply
// the sparse merge in memory, and write the whole row back. Sub-collections
// (experience, education) are untouched by the upsert — they have their own
// operations.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	verr := &apperror.ValidationErrors{}
	if strings.TrimSpace(in.Status) == "" {
		verr.Add("status", "Status is required")
	}
	if strings.TrimSpace(in.Skills) == "" {
		verr.Add("skills", "Skills are required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("loading profile for upsert: %w", err)
		}
		// First submission — start a fresh profile for this user.
		profile = &model.Profile{UserID: userID}
	}

	// Required fields always overwrite.
	profile.Status = strings.TrimSpace(in.Status)
	profile.Skills = splitSkills(in.Skills)

	// Optional fields overwrite only when supplied.
	setIfPresent(&profile.Company, in.Company)
	setIfPresent(&profile.Website, in.Website)
	setIfPresent(&profile.Location, in.Location)
	setIfPresent(&profile.Bio, in.Bio)
	setIfPresent(&profile.GitHubUsername, in.GitHubUsername)
	setIfPresent(&profile.Social.YouTube, in.YouTube)
	setIfPresent(&profile.Social.Twitter, in.Twitter)
	setIfPresent(&profile.Social.Facebook, in.Facebook)
	setIfPresent(&profile.Social.LinkedIn, in.LinkedIn)
	setIfPresent(&profile.Social.Instagram, in.Instagram)

	if err := s.profiles.Save(ctx, profile); err != nil {
		s.logger.Error("failed to save profile",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	s.logger.Info("profile saved",
		slog.String("profileID", profile.ID),
		slog.String("userID", userID),
	)

	// Re-read through the repository so the response carries the owner's
	// name and avatar, which only exist on the joined read. On the update
	// branch the loaded profile already had them; on the creation branch
	// the freshly built struct does not.
	saved, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reloading saved profile: %w", err)
	}

	return saved, nil
}

// DeleteAccount removes the caller's profile and then their user record.
//
// TWO-STEP DELETE, NO TRANSACTION:
// The two deletes are independent writes. If the user delete fails after
// the profile delete succeeded, the account is left in a half-deleted state
// — we log that loudly as partial completion and surface the error, but
// there is no rollback. The order (profile first) means the worst case is a
// user without a profile, which the API already handles, rather than an
// orphaned profile pointing at a missing user.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting profile for user %s: %w", userID, err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Error("account delete partially completed: profile removed but user delete failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting user %s after profile delete: %w", userID, err)
	}

	s.logger.Info("account deleted", slog.String("userID", userID))
	return nil
}

// AddExperience validates and prepends a work-history entry to the caller's
// profile. Each call appends — the operation is non-idempotent by design.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*model.Profile, error) {
	verr := &apperror.ValidationErrors{}
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		verr.Add("company", "Company is required")
	}
	from, to, ok := parseDateRange(in.From, in.To, verr)
	if !verr.Empty() || !ok {
		return nil, verr
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := model.Experience{
		ID:          xid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: strings.TrimSpace(in.Description),
	}

	// Most-recent-first: new entries go to the front.
	profile.Experience = append([]model.Experience{entry}, profile.Experience...)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("saving experience for user %s: %w", userID, err)
	}

	s.logger.Info("experience added",
		slog.String("userID", userID),
		slog.String("entryID", entry.ID),
	)

	return profile, nil
}

// RemoveExperience deletes the entry with the given ID from the caller's
// profile. An unmatched ID is a no-op: the profile is returned unchanged and
// no other entry is touched.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0:0]
	for _, entry := range profile.Experience {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(profile.Experience) {
		// Nothing matched — don't rewrite the row for nothing.
		return profile, nil
	}
	profile.Experience = kept

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("removing experience %s for user %s: %w", entryID, userID, err)
	}

	s.logger.Info("experience removed",
		slog.String("userID", userID),
		slog.String("entryID", entryID),
	)

	return profile, nil
}

// AddEducation validates and prepends an education entry.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*model.Profile, error) {
	verr := &apperror.ValidationErrors{}
	if strings.TrimSpace(in.School) == "" {
		verr.Add("school", "School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		verr.Add("degree", "Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		verr.Add("fieldofstudy", "Field of study is required")
	}
	from, to, ok := parseDateRange(in.From, in.To, verr)
	if !verr.Empty() || !ok {
		return nil, verr
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := model.Education{
		ID:           xid.New().String(),
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  strings.TrimSpace(in.Description),
	}

	profile.Education = append([]model.Education{entry}, profile.Education...)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("saving education for user %s: %w", userID, err)
	}

	s.logger.Info("education added",
		slog.String("userID", userID),
		slog.String("entryID", entry.ID),
	)

	return profile, nil
}

// RemoveEducation deletes the entry with the given ID. Unmatched IDs are a
// no-op, same as RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0:0]
	for _, entry := range profile.Education {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(profile.Education) {
		return profile, nil
	}
	profile.Education = kept

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("removing education %s for user %s: %w", entryID, userID, err)
	}

	s.logger.Info("education removed",
		slog.String("userID", userID),
		slog.String("entryID", entryID),
	)

	return profile, nil
}

// splitSkills turns "go, sql,  docker" into ["go" "sql" "docker"].
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// setIfPresent overwrites dst only when the supplied value is non-empty —
// the sparse-update rule for optional fields.
func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

// dateLayouts are the accepted wire formats for entry dates: plain date
// (what the form sends) and full RFC 3339.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate parses a wire date string.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// parseDateRange validates the from/to pair shared by experience and
// education entries: from is required; when to is given, from must precede
// it. Field errors land in verr; ok is false when parsing failed.
func parseDateRange(fromRaw, toRaw string, verr *apperror.ValidationErrors) (from time.Time, to *time.Time, ok bool) {
	if strings.TrimSpace(fromRaw) == "" {
		verr.Add("from", "From date is required")
		return time.Time{}, nil, false
	}

	from, err := parseDate(fromRaw)
	if err != nil {
		verr.Add("from", "From date is invalid")
		return time.Time{}, nil, false
	}

	if strings.TrimSpace(toRaw) != "" {
		parsed, err := parseDate(toRaw)
		if err != nil {
			verr.Add("to", "To date is invalid")
			return time.Time{}, nil, false
		}
		if !from.Before(parsed) {
			verr.Add("from", "From date needs to be before to date")
			return time.Time{}, nil, false
		}
		to = &parsed
	}

	return from, to, true
}
