// Package validation holds the pure, synchronous form rules shared by the
// session, account and settings flows. Validators never touch the network;
// they return Errors keyed by Field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

const (
	MinNameLength     = 2
	MaxDisplayName    = 150
	MinPasswordLength = 8
	MaxBioLength      = 160
	MaxStatusLength   = 80
	MaxLocationLength = 120
	MaxInterests      = 5
	MaxInterestLength = 60

	DeleteConfirmation = "DELETE"
)

var (
	handlePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,30}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsHandle reports whether s matches the shared username / profile URL
// format: 3-30 letters, digits, '.', '_' or '-'.
func IsHandle(s string) bool {
	return handlePattern.MatchString(s)
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func runes(s string) int {
	return utf8.RuneCountInString(s)
}

// Login validates the login form.
func Login(c models.Credentials) Errors {
	errs := Errors{}

	identifier := strings.TrimSpace(c.Identifier)
	switch {
	case identifier == "":
		errs[FieldIdentifier] = "Username or email is required."
	case strings.Contains(identifier, "@"):
		if !IsEmail(identifier) {
			errs[FieldIdentifier] = "Enter a valid email address."
		}
	case !IsHandle(identifier):
		errs[FieldIdentifier] = "Use 3-30 letters, numbers, or ._- in your username."
	}

	if c.Password == "" {
		errs[FieldPassword] = "Password is required."
	}
	return errs
}

// Signup validates the signup form.
func Signup(f models.SignupFields) Errors {
	errs := Errors{}

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		errs[FieldName] = "Name is required."
	case runes(name) < MinNameLength:
		errs[FieldName] = "Name must be at least 2 characters."
	}

	if msg := handleError(f.Username, "Username"); msg != "" {
		errs[FieldUsername] = msg
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required."
	case !IsEmail(email):
		errs[FieldEmail] = "Enter a valid email address."
	}

	if msg := newPasswordError(f.Password); msg != "" {
		errs[FieldPassword] = msg
	}
	if f.Confirm != f.Password {
		errs[FieldConfirm] = "Passwords do not match."
	}
	if !f.Agree {
		errs[FieldAgree] = "You must accept the terms to create an account."
	}
	return errs
}

// PasswordChange validates the change-password form.
func PasswordChange(p models.PasswordChange) Errors {
	errs := Errors{}
	if p.Current == "" {
		errs[FieldCurrent] = "Enter your current password."
	}
	switch {
	case p.New == "":
		errs[FieldNew] = "Create a new password."
	case runes(p.New) < MinPasswordLength:
		errs[FieldNew] = "Password must be at least 8 characters."
	}
	switch {
	case p.Confirm == "":
		errs[FieldConfirm] = "Confirm your new password."
	case p.Confirm != p.New:
		errs[FieldConfirm] = "Passwords do not match."
	}
	return errs
}

// EmailChange validates the change-email form.
func EmailChange(e models.EmailChange) Errors {
	errs := Errors{}
	email := strings.TrimSpace(e.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required."
	case !IsEmail(email):
		errs[FieldEmail] = "Enter a valid email address."
	}
	if e.Password == "" {
		errs[FieldPassword] = "Password confirmation is required."
	}
	return errs
}

// Profile validates the editable profile fields.
func Profile(p models.ProfileUpdate) Errors {
	errs := Errors{}

	name := strings.TrimSpace(p.DisplayName)
	switch {
	case name == "":
		errs[FieldDisplayName] = "Display name is required."
	case runes(name) < MinNameLength:
		errs[FieldDisplayName] = "Display name must be at least 2 characters."
	case runes(name) > MaxDisplayName:
		errs[FieldDisplayName] = "Display name is too long."
	}

	if msg := handleError(p.Username, "Username"); msg != "" {
		errs[FieldUsername] = msg
	}
	if msg := handleError(p.ProfileURL, "Profile URL"); msg != "" {
		errs[FieldProfileURL] = msg
	}

	if runes(strings.TrimSpace(p.Bio)) > MaxBioLength {
		errs[FieldBio] = fmt.Sprintf("Bio must be %d characters or less.", MaxBioLength)
	}
	if runes(strings.TrimSpace(p.Status)) > MaxStatusLength {
		errs[FieldStatus] = fmt.Sprintf("Status must be %d characters or less.", MaxStatusLength)
	}
	if runes(strings.TrimSpace(p.Location)) > MaxLocationLength {
		errs[FieldLocation] = "Location is too long."
	}
	if msg := interestsError(p.Interests); msg != "" {
		errs[FieldInterests] = msg
	}
	return errs
}

// Privacy validates the privacy section.
func Privacy(visibility models.Visibility) Errors {
	errs := Errors{}
	if !visibility.Valid() {
		errs[FieldVisibility] = "Visibility must be public or private."
	}
	return errs
}

// Appearance validates the appearance section.
func Appearance(theme models.Theme) Errors {
	errs := Errors{}
	if !theme.Valid() {
		errs[FieldTheme] = "Theme must be system, dark, or light."
	}
	return errs
}

// Notifications validates notification preferences.
func Notifications(n models.NotificationsUpdate) Errors {
	errs := Errors{}
	if !n.PauseNotifications.Valid() {
		errs[FieldPauseNotifications] = "Pause must be off, day, or week."
	}
	return errs
}

// DeleteAccount validates the account deletion confirmation.
func DeleteAccount(d models.AccountDeletion) Errors {
	errs := Errors{}
	if strings.TrimSpace(d.Confirm) != DeleteConfirmation {
		errs[FieldConfirm] = `Type "DELETE" to confirm.`
	}
	return errs
}

// PasswordResetRequest validates the reset request form.
func PasswordResetRequest(r models.PasswordResetRequest) Errors {
	errs := Errors{}
	if strings.TrimSpace(r.Identifier) == "" {
		errs[FieldIdentifier] = "Username or email is required."
	}
	return errs
}

// PasswordReset validates the reset completion form.
func PasswordReset(r models.PasswordReset) Errors {
	errs := Errors{}
	if strings.TrimSpace(r.Token) == "" {
		errs[FieldToken] = "Reset token is required."
	}
	if msg := newPasswordError(r.Password); msg != "" {
		errs[FieldPassword] = msg
	}
	switch {
	case r.Confirm == "":
		errs[FieldConfirm] = "Confirm your new password."
	case r.Confirm != r.Password:
		errs[FieldConfirm] = "Passwords do not match."
	}
	return errs
}

// NormalizeInterests trims entries, drops empty and duplicate ones, cuts
// each to MaxInterestLength runes and keeps at most MaxInterests.
func NormalizeInterests(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		text := strings.TrimSpace(item)
		if text == "" {
			continue
		}
		if runes(text) > MaxInterestLength {
			text = string([]rune(text)[:MaxInterestLength])
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
		if len(out) == MaxInterests {
			break
		}
	}
	return out
}

func handleError(value, label string) string {
	handle := strings.TrimSpace(value)
	if handle == "" {
		return label + " is required."
	}
	if !IsHandle(handle) {
		if label == "Username" {
			return "Use 3-30 letters, numbers, or ._- in your username."
		}
		return label + " must match username rules."
	}
	return ""
}

func newPasswordError(pw string) string {
	switch {
	case pw == "":
		return "Password is required."
	case runes(pw) < MinPasswordLength:
		return "Password must be at least 8 characters."
	}
	return ""
}

func interestsError(interests []string) string {
	if len(interests) > MaxInterests {
		return fmt.Sprintf("Add up to %d interests.", MaxInterests)
	}
	for _, i := range interests {
		if runes(strings.TrimSpace(i)) > MaxInterestLength {
			return fmt.Sprintf("Keep each interest under %d characters.", MaxInterestLength)
		}
	}
	return ""
}
