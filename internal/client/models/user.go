// Package models defines the client-side data models exchanged with the
// profilespaces API and mirrored into local state.
package models

import "time"

// Visibility controls who can see a profile.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Theme is the preferred presentation theme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeSystem || t == ThemeDark || t == ThemeLight
}

// User is the authenticated account as returned by the session endpoints.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	Bio           string     `json:"bio"`
	Location      string     `json:"location"`
	Interests     []string   `json:"interests"`
	ProfileURL    string     `json:"profile_url"`
	PhotoURL      string     `json:"photo_url"`
	Visibility    Visibility `json:"visibility"`
	Theme         Theme      `json:"theme"`
	ShowLocation  bool       `json:"show_location"`
	AllowSearch   bool       `json:"allow_search"`
	AgreedToTerms bool       `json:"agreed_to_terms"`
}

// Profile returns the profile view of the user.
func (u User) Profile() Profile {
	return Profile{
		DisplayName:  u.Name,
		Username:     u.Username,
		ProfileURL:   u.ProfileURL,
		Status:       u.Status,
		Bio:          u.Bio,
		Location:     u.Location,
		Interests:    append([]string(nil), u.Interests...),
		PhotoURL:     u.PhotoURL,
		Visibility:   u.Visibility,
		Theme:        u.Theme,
		ShowLocation: u.ShowLocation,
		AllowSearch:  u.AllowSearch,
	}
}

// Profile is the editable public profile.
type Profile struct {
	DisplayName  string     `json:"display_name"`
	Username     string     `json:"username"`
	ProfileURL   string     `json:"profile_url"`
	Status       string     `json:"status"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location"`
	Interests    []string   `json:"interests"`
	PhotoURL     string     `json:"photo_url"`
	Visibility   Visibility `json:"visibility"`
	Theme        Theme      `json:"theme"`
	ShowLocation bool       `json:"show_location"`
	AllowSearch  bool       `json:"allow_search"`
	UpdatedAt    string     `json:"updated_at,omitempty"`
}

// ProfileUpdate is the PATCH body for the profile endpoint. The server
// treats a missing profile_url as "same as username", so every field is
// always sent.
type ProfileUpdate struct {
	DisplayName  string     `json:"display_name"`
	Username     string     `json:"username"`
	ProfileURL   string     `json:"profile_url"`
	Status       string     `json:"status"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location"`
	Interests    []string   `json:"interests"`
	Visibility   Visibility `json:"visibility"`
	Theme        Theme      `json:"theme"`
	ShowLocation bool       `json:"show_location"`
	AllowSearch  bool       `json:"allow_search"`
}

// ProfileResult is returned by a successful profile update.
type ProfileResult struct {
	Profile Profile `json:"profile"`
	User    User    `json:"user"`
}

// Availability is the answer of a username or profile URL lookup.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// PhotoResult carries the photo URL after upload or removal.
type PhotoResult struct {
	PhotoURL string `json:"photo_url"`
}

// AuthResult is returned by login, signup, password change and reset.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
