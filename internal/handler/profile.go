package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/devconnector/internal/auth"
	"github.com/sakif/devconnector/internal/github"
	"github.com/sakif/devconnector/internal/service"
)

// ProfileHandler serves the profile endpoints:
//
//	GET    /api/profile/me                → own profile (private)
//	POST   /api/profile                   → create/update profile (private)
//	GET    /api/profile                   → all profiles (private)
//	GET    /api/profile/user/{id}         → profile by user id (private)
//	DELETE /api/profile                   → delete profile + account (private)
//	PUT    /api/profile/experience        → add experience (private)
//	DELETE /api/profile/experience/{id}   → remove experience (private)
//	PUT    /api/profile/education         → add education (private)
//	DELETE /api/profile/education/{id}    → remove education (private)
//	GET    /api/profile/github/{username} → public repos (public)
type ProfileHandler struct {
	svc    *service.ProfileService
	gh     *github.Client
	logger *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, gh *github.Client, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, gh: gh, logger: logger}
}

// requireUser extracts the authenticated userID placed in the context by
// RequireAuth. The ok=false branch only fires if a route was wired without
// the middleware — a programming error, answered like a missing token.
func (h *ProfileHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody{Msg: "Token Verification failed"})
		return "", false
	}
	return userID, true
}

// HandleGetOwn returns the caller's profile.
//
// HTTP: GET /api/profile/me (private)
// No profile yet → 400 {"msg": "There is no profile for this user"}.
func (h *ProfileHandler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.GetOwn(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// profileRequest is the POST /api/profile body. Skills is a comma-separated
// string; the social platforms are flat fields, matching the form the
// frontend submits.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// HandleUpsert creates or updates the caller's profile.
//
// HTTP: POST /api/profile (private)
// Upsert keyed on the caller: update if a profile exists, else insert.
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
			{Msg: "Invalid JSON body"},
		}})
		return
	}

	profile, err := h.svc.Upsert(r.Context(), userID, service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleList returns every profile.
//
// HTTP: GET /api/profile (private)
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	profiles, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// HandleGetByUserID returns one user's profile for display.
//
// HTTP: GET /api/profile/user/{id} (private)
// Malformed or unmatched id → 400 {"msg": "profile not found"}.
func (h *ProfileHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	profile, err := h.svc.GetByUserID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDeleteAccount deletes the caller's profile and account.
//
// HTTP: DELETE /api/profile (private)
func (h *ProfileHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Msg: "User Deleted"})
}

// experienceRequest is the PUT /api/profile/experience body.
type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// HandleAddExperience prepends a work-history entry.
//
// HTTP: PUT /api/profile/experience (private)
func (h *ProfileHandler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid experience JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
			{Msg: "Invalid JSON body"},
		}})
		return
	}

	profile, err := h.svc.AddExperience(r.Context(), userID, service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleRemoveExperience removes a work-history entry by its ID.
//
// HTTP: DELETE /api/profile/experience/{id} (private)
// An unmatched ID leaves the profile untouched.
func (h *ProfileHandler) HandleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.RemoveExperience(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// educationRequest is the PUT /api/profile/education body.
type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// HandleAddEducation prepends an education entry.
//
// HTTP: PUT /api/profile/education (private)
func (h *ProfileHandler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req educationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid education JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
			{Msg: "Invalid JSON body"},
		}})
		return
	}

	profile, err := h.svc.AddEducation(r.Context(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleRemoveEducation removes an education entry by its ID.
//
// HTTP: DELETE /api/profile/education/{id} (private)
func (h *ProfileHandler) HandleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.RemoveEducation(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleGitHubRepos lists a GitHub user's five most recent public repos.
//
// HTTP: GET /api/profile/github/{username} (public)
// Unknown username → 400 {"msg": "No Github profile found"}.
func (h *ProfileHandler) HandleGitHubRepos(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	repos, err := h.gh.ListRepos(r.Context(), username)
	if err != nil {
		h.logger.Warn("github repos lookup failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}
