package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

// Values is the full set of editable settings. The machine keeps one copy
// as confirmed by the server and one as the user's draft.
type Values struct {
	Email string

	DisplayName string
	Username    string
	ProfileURL  string
	Status      string
	Bio         string
	Location    string
	Interests   []string
	PhotoURL    string

	Visibility   models.Visibility
	ShowLocation bool
	AllowSearch  bool

	EmailNotifications bool
	ProductUpdates     bool
	NewFollowerAlerts  bool
	WeeklyDigest       bool
	PauseNotifications models.PauseMode

	Theme models.Theme
}

// ValuesFromUser builds settings from the session user. Notification
// preferences start at the defaults until the machine loads them.
func ValuesFromUser(u models.User) Values {
	v := Values{Email: u.Email}
	v.applyProfile(u.Profile())
	v.applyNotifications(models.DefaultNotifications())
	return v
}

func (v *Values) applyProfile(p models.Profile) {
	v.DisplayName = p.DisplayName
	v.Username = p.Username
	v.ProfileURL = p.ProfileURL
	v.Status = p.Status
	v.Bio = p.Bio
	v.Location = p.Location
	v.Interests = append([]string(nil), p.Interests...)
	v.PhotoURL = p.PhotoURL
	v.Visibility = p.Visibility
	v.ShowLocation = p.ShowLocation
	v.AllowSearch = p.AllowSearch
	v.Theme = p.Theme
}

func (v *Values) applyNotifications(n models.Notifications) {
	v.EmailNotifications = n.EmailNotifications
	v.ProductUpdates = n.ProductUpdates
	v.NewFollowerAlerts = n.NewFollowerAlerts
	v.WeeklyDigest = n.WeeklyDigest
	v.PauseNotifications = n.PauseNotifications
}

func (v Values) clone() Values {
	v.Interests = append([]string(nil), v.Interests...)
	return v
}

// Get returns the value of field.
func (v Values) Get(field validation.Field) any {
	switch field {
	case validation.FieldEmail:
		return v.Email
	case validation.FieldDisplayName:
		return v.DisplayName
	case validation.FieldUsername:
		return v.Username
	case validation.FieldProfileURL:
		return v.ProfileURL
	case validation.FieldStatus:
		return v.Status
	case validation.FieldBio:
		return v.Bio
	case validation.FieldLocation:
		return v.Location
	case validation.FieldInterests:
		return v.Interests
	case validation.FieldPhotoURL:
		return v.PhotoURL
	case validation.FieldVisibility:
		return v.Visibility
	case validation.FieldShowLocation:
		return v.ShowLocation
	case validation.FieldAllowSearch:
		return v.AllowSearch
	case validation.FieldEmailNotifications:
		return v.EmailNotifications
	case validation.FieldProductUpdates:
		return v.ProductUpdates
	case validation.FieldNewFollowerAlerts:
		return v.NewFollowerAlerts
	case validation.FieldWeeklyDigest:
		return v.WeeklyDigest
	case validation.FieldPauseNotifications:
		return v.PauseNotifications
	case validation.FieldTheme:
		return v.Theme
	}
	return nil
}

// copyField copies field from src into v.
func (v *Values) copyField(src Values, field validation.Field) {
	switch field {
	case validation.FieldEmail:
		v.Email = src.Email
	case validation.FieldDisplayName:
		v.DisplayName = src.DisplayName
	case validation.FieldUsername:
		v.Username = src.Username
	case validation.FieldProfileURL:
		v.ProfileURL = src.ProfileURL
	case validation.FieldStatus:
		v.Status = src.Status
	case validation.FieldBio:
		v.Bio = src.Bio
	case validation.FieldLocation:
		v.Location = src.Location
	case validation.FieldInterests:
		v.Interests = append([]string(nil), src.Interests...)
	case validation.FieldPhotoURL:
		v.PhotoURL = src.PhotoURL
	case validation.FieldVisibility:
		v.Visibility = src.Visibility
	case validation.FieldShowLocation:
		v.ShowLocation = src.ShowLocation
	case validation.FieldAllowSearch:
		v.AllowSearch = src.AllowSearch
	case validation.FieldEmailNotifications:
		v.EmailNotifications = src.EmailNotifications
	case validation.FieldProductUpdates:
		v.ProductUpdates = src.ProductUpdates
	case validation.FieldNewFollowerAlerts:
		v.NewFollowerAlerts = src.NewFollowerAlerts
	case validation.FieldWeeklyDigest:
		v.WeeklyDigest = src.WeeklyDigest
	case validation.FieldPauseNotifications:
		v.PauseNotifications = src.PauseNotifications
	case validation.FieldTheme:
		v.Theme = src.Theme
	}
}

// Set parses raw as the value of field. Interests are comma separated;
// booleans accept on/off, yes/no and anything strconv.ParseBool takes.
func (v *Values) Set(field validation.Field, raw string) error {
	switch field {
	case validation.FieldEmail:
		v.Email = raw
	case validation.FieldDisplayName:
		v.DisplayName = raw
	case validation.FieldUsername:
		v.Username = raw
	case validation.FieldProfileURL:
		v.ProfileURL = raw
	case validation.FieldStatus:
		v.Status = raw
	case validation.FieldBio:
		v.Bio = raw
	case validation.FieldLocation:
		v.Location = raw
	case validation.FieldInterests:
		var items []string
		if strings.TrimSpace(raw) != "" {
			items = strings.Split(raw, ",")
		}
		v.Interests = validation.NormalizeInterests(items)
	case validation.FieldVisibility:
		vis := models.Visibility(strings.ToLower(strings.TrimSpace(raw)))
		if !vis.Valid() {
			return fmt.Errorf("visibility must be public or private")
		}
		v.Visibility = vis
	case validation.FieldPauseNotifications:
		p := models.PauseMode(strings.ToLower(strings.TrimSpace(raw)))
		if !p.Valid() {
			return fmt.Errorf("pause must be off, day, or week")
		}
		v.PauseNotifications = p
	case validation.FieldTheme:
		th := models.Theme(strings.ToLower(strings.TrimSpace(raw)))
		if !th.Valid() {
			return fmt.Errorf("theme must be system, dark, or light")
		}
		v.Theme = th
	case validation.FieldShowLocation, validation.FieldAllowSearch,
		validation.FieldEmailNotifications, validation.FieldProductUpdates,
		validation.FieldNewFollowerAlerts, validation.FieldWeeklyDigest:
		b, err := parseBool(raw)
		if err != nil {
			return err
		}
		v.setBool(field, b)
	default:
		return fmt.Errorf("field %q is not editable", field)
	}
	return nil
}

func (v *Values) setBool(field validation.Field, b bool) {
	switch field {
	case validation.FieldShowLocation:
		v.ShowLocation = b
	case validation.FieldAllowSearch:
		v.AllowSearch = b
	case validation.FieldEmailNotifications:
		v.EmailNotifications = b
	case validation.FieldProductUpdates:
		v.ProductUpdates = b
	case validation.FieldNewFollowerAlerts:
		v.NewFollowerAlerts = b
	case validation.FieldWeeklyDigest:
		v.WeeklyDigest = b
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("expected on/off, got %q", raw)
	}
	return b, nil
}

// profileUpdate builds the PATCH body: every field is sent, taken from saved
// except the fields owned by section, which come from draft. Interests are
// left as entered so validation sees them; normalize before sending.
func profileUpdate(saved, draft Values, section Section) models.ProfileUpdate {
	body := saved.clone()
	for _, f := range section.Fields() {
		body.copyField(draft, f)
	}
	return models.ProfileUpdate{
		DisplayName:  strings.TrimSpace(body.DisplayName),
		Username:     strings.TrimSpace(body.Username),
		ProfileURL:   strings.TrimSpace(body.ProfileURL),
		Status:       strings.TrimSpace(body.Status),
		Bio:          strings.TrimSpace(body.Bio),
		Location:     strings.TrimSpace(body.Location),
		Interests:    body.Interests,
		Visibility:   body.Visibility,
		Theme:        body.Theme,
		ShowLocation: body.ShowLocation,
		AllowSearch:  body.AllowSearch,
	}
}

func notificationsUpdate(v Values) models.NotificationsUpdate {
	return models.NotificationsUpdate{
		EmailNotifications: v.EmailNotifications,
		ProductUpdates:     v.ProductUpdates,
		NewFollowerAlerts:  v.NewFollowerAlerts,
		WeeklyDigest:       v.WeeklyDigest,
		PauseNotifications: v.PauseNotifications,
	}
}
