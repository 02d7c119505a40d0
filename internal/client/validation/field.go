package validation

import "sort"

// Field identifies a form or settings field. The set is closed: server
// error keys are mapped onto it with ParseField and anything unknown is
// reported under FieldGeneral.
type Field string

const (
	FieldGeneral Field = "general"

	// login / signup / account forms
	FieldIdentifier Field = "identifier"
	FieldPassword   Field = "password"
	FieldName       Field = "name"
	FieldUsername   Field = "username"
	FieldEmail      Field = "email"
	FieldConfirm    Field = "confirm"
	FieldAgree      Field = "agree"
	FieldCurrent    Field = "current"
	FieldNew        Field = "new"
	FieldToken      Field = "token"

	// profile
	FieldDisplayName Field = "display_name"
	FieldProfileURL  Field = "profile_url"
	FieldStatus      Field = "status"
	FieldBio         Field = "bio"
	FieldLocation    Field = "location"
	FieldInterests   Field = "interests"
	FieldPhotoURL    Field = "photo_url"

	// privacy / appearance
	FieldVisibility   Field = "visibility"
	FieldShowLocation Field = "show_location"
	FieldAllowSearch  Field = "allow_search"
	FieldTheme        Field = "theme"

	// notifications
	FieldEmailNotifications Field = "email_notifications"
	FieldProductUpdates     Field = "product_updates"
	FieldNewFollowerAlerts  Field = "new_follower_alerts"
	FieldWeeklyDigest       Field = "weekly_digest"
	FieldPauseNotifications Field = "pause_notifications"
)

var knownFields = map[Field]struct{}{}

// aliases covers alternate keys the API accepts for the same field.
var aliases = map[string]Field{
	"slug":             FieldProfileURL,
	"profile_slug":     FieldProfileURL,
	"current_password": FieldCurrent,
	"new_password":     FieldNew,
	"confirm_password": FieldConfirm,
	"new_email":        FieldEmail,
	"agreed_to_terms":  FieldAgree,
	"reset_token":      FieldToken,
	"pause":            FieldPauseNotifications,
}

func init() {
	for _, f := range []Field{
		FieldGeneral, FieldIdentifier, FieldPassword, FieldName, FieldUsername, FieldEmail,
		FieldConfirm, FieldAgree, FieldCurrent, FieldNew, FieldToken, FieldDisplayName,
		FieldProfileURL, FieldStatus, FieldBio, FieldLocation, FieldInterests, FieldPhotoURL,
		FieldVisibility, FieldShowLocation, FieldAllowSearch, FieldTheme,
		FieldEmailNotifications, FieldProductUpdates, FieldNewFollowerAlerts,
		FieldWeeklyDigest, FieldPauseNotifications,
	} {
		knownFields[f] = struct{}{}
	}
}

// ParseField maps a wire key onto a Field.
func ParseField(key string) (Field, bool) {
	if f, ok := aliases[key]; ok {
		return f, true
	}
	f := Field(key)
	_, ok := knownFields[f]
	return f, ok
}

// Valid reports whether f belongs to the closed set.
func (f Field) Valid() bool {
	_, ok := knownFields[f]
	return ok
}

// Errors maps fields to human-readable messages. A missing key means the
// field is valid; submission is blocked while the map is non-empty.
type Errors map[Field]string

// Empty reports whether there are no errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the fields with errors in a stable order.
func (e Errors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// First returns the message of the first field in order that has an
// error, falling back to the alphabetically first one.
func (e Errors) First(order ...Field) string {
	for _, f := range order {
		if msg, ok := e[f]; ok {
			return msg
		}
	}
	if fields := e.Fields(); len(fields) > 0 {
		return e[fields[0]]
	}
	return ""
}

// Only returns the subset of e restricted to fields.
func (e Errors) Only(fields []Field) Errors {
	out := Errors{}
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// FromWire converts a server error map, folding unknown keys into
// FieldGeneral. When several keys land on one field the key named like the
// field wins, then the first key in sorted order.
func FromWire(wire map[string]string) Errors {
	keys := make([]string, 0, len(wire))
	for k := range wire {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := Errors{}
	for _, k := range keys {
		f, ok := ParseField(k)
		if !ok {
			f = FieldGeneral
		}
		if _, exists := out[f]; exists && k != string(f) {
			continue
		}
		out[f] = wire[k]
	}
	return out
}
