package model

import "time"

// Profile is a user's public career profile. Exactly one profile exists per
// user (user_id is UNIQUE in the database).
//
// DOCUMENT-STYLE SUB-COLLECTIONS:
// Skills, Social, Experience and Education are stored as JSON columns on the
// profile row, not as separate tables. A sub-collection edit is therefore a
// single-row read-modify-write: fetch the profile, splice the slice, save.
// That keeps each edit atomic at the row level without multi-table
// transactions — the same guarantee a document database gives per document.
//
// The Name and AvatarURL fields are NOT stored on the profile row. They are
// joined in from the users table on every read, so a profile always displays
// the owner's current name and avatar.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user"`
	Name           string       `json:"name,omitempty"`   // joined from users
	AvatarURL      string       `json:"avatar,omitempty"` // joined from users
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// SocialLinks maps the supported platforms to profile URLs.
// Empty entries are omitted from JSON so the social object only carries the
// links the user actually supplied.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is one entry in a profile's work history. Entries are ordered
// most-recent-first: a new entry is always inserted at the front.
//
// Each entry gets its own ID (xid) at insertion time so it can later be
// removed individually. Entries are never updated in place — only added and
// removed.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"` // nil means "current position"
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is one entry in a profile's education history. Same ordering and
// identity rules as Experience.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}
