package settings

import (
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

// Section is one page of the settings surface.
type Section string

const (
	Account       Section = "account"
	Profile       Section = "profile"
	Privacy       Section = "privacy"
	Notifications Section = "notifications"
	Appearance    Section = "appearance"
	Help          Section = "help"
)

// Sections lists the sections in display order.
var Sections = []Section{Account, Profile, Privacy, Notifications, Appearance, Help}

var sectionFields = map[Section][]validation.Field{
	Account: {validation.FieldEmail},
	Profile: {
		validation.FieldDisplayName,
		validation.FieldUsername,
		validation.FieldProfileURL,
		validation.FieldStatus,
		validation.FieldBio,
		validation.FieldLocation,
		validation.FieldInterests,
	},
	Privacy: {
		validation.FieldVisibility,
		validation.FieldShowLocation,
		validation.FieldAllowSearch,
	},
	Notifications: {
		validation.FieldEmailNotifications,
		validation.FieldProductUpdates,
		validation.FieldNewFollowerAlerts,
		validation.FieldWeeklyDigest,
		validation.FieldPauseNotifications,
	},
	Appearance: {validation.FieldTheme},
	Help:       nil,
}

// Fields returns the fields owned by s.
func (s Section) Fields() []validation.Field {
	return append([]validation.Field(nil), sectionFields[s]...)
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	_, ok := sectionFields[s]
	return ok
}

// Destination is the navigation target of s.
func (s Section) Destination() nav.Destination {
	return nav.SettingsSection(string(s))
}

// ParseSection parses a section name.
func ParseSection(name string) (Section, bool) {
	s := Section(name)
	return s, s.Valid()
}

// SectionOf returns the section owning field.
func SectionOf(field validation.Field) (Section, bool) {
	for _, s := range Sections {
		for _, f := range sectionFields[s] {
			if f == field {
				return s, true
			}
		}
	}
	return "", false
}

// profileBacked reports whether s is saved through the profile endpoint.
func (s Section) profileBacked() bool {
	return s == Profile || s == Privacy || s == Appearance
}
