package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/toast"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

var sectionTitles = map[Section]string{
	Account:       "Account",
	Profile:       "Profile",
	Privacy:       "Privacy",
	Notifications: "Notification",
	Appearance:    "Appearance",
	Help:          "Help",
}

// Save persists the draft of section. A clean section is a no-op. On
// success saved and the section's draft fields are set to what the server
// confirmed; on failure the draft is kept and the errors are recorded.
func (m *Machine) Save(ctx context.Context, section Section) error {
	m.mu.Lock()
	if section == Notifications && !m.notificationsLoaded {
		m.mu.Unlock()
		return m.fail(&SaveError{
			Section: section,
			Kind:    KindTransport,
			Message: notLoadedMessage,
			Err:     ErrNotLoaded,
		})
	}
	if !m.dirtyLocked(section) {
		m.mu.Unlock()
		return nil
	}
	if m.saving[section] {
		m.mu.Unlock()
		return ErrSaveInProgress
	}
	m.saving[section] = true
	saved, draft, password := m.saved.clone(), m.draft.clone(), m.accountPassword
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.saving, section)
		m.mu.Unlock()
	}()

	token := m.session.Token()
	if token == "" {
		return m.fail(&SaveError{Section: section, Kind: KindSessionExpired, Message: sessionExpiredMessage})
	}

	if errs := validate(section, saved, draft, password); !errs.Empty() {
		return m.fail(&SaveError{
			Section: section,
			Kind:    KindValidation,
			Fields:  errs,
			Message: summary(section, errs, ""),
		})
	}

	if section == Profile {
		if errs := m.checker.Gate(ctx, draft.Username, draft.ProfileURL); !errs.Empty() {
			return m.fail(&SaveError{
				Section: section,
				Kind:    KindConflict,
				Fields:  errs,
				Message: summary(section, errs, ""),
			})
		}
	}

	var err error
	switch {
	case section == Account:
		err = m.saveAccount(ctx, token, draft, password)
	case section.profileBacked():
		err = m.saveProfile(ctx, token, section, saved, draft)
	case section == Notifications:
		err = m.saveNotifications(ctx, token, draft)
	default:
		return nil
	}
	if err != nil {
		return m.fail(classify(section, err))
	}

	m.mu.Lock()
	for _, f := range append(section.Fields(), validation.FieldPassword, validation.FieldGeneral) {
		delete(m.errs, f)
	}
	m.mu.Unlock()

	m.log.Info(ctx, "settings saved", "section", string(section))
	m.toasts.Show(sectionTitles[section]+" settings saved.", toast.Success)
	return nil
}

func validate(section Section, saved, draft Values, password string) validation.Errors {
	switch section {
	case Account:
		return validation.EmailChange(models.EmailChange{Email: draft.Email, Password: password})
	case Profile:
		return validation.Profile(profileUpdate(saved, draft, section))
	case Privacy:
		return validation.Privacy(draft.Visibility)
	case Appearance:
		return validation.Appearance(draft.Theme)
	case Notifications:
		return validation.Notifications(notificationsUpdate(draft))
	}
	return validation.Errors{}
}

func (m *Machine) saveAccount(ctx context.Context, token string, draft Values, password string) error {
	user, err := m.api.ChangeEmail(ctx, token, models.EmailChange{
		Email:    strings.TrimSpace(draft.Email),
		Password: password,
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.saved.Email = user.Email
	m.draft.Email = user.Email
	m.accountPassword = ""
	m.mu.Unlock()

	m.updateUser(ctx, *user)
	return nil
}

func (m *Machine) saveProfile(ctx context.Context, token string, section Section, saved, draft Values) error {
	body := profileUpdate(saved, draft, section)
	body.Interests = validation.NormalizeInterests(body.Interests)

	res, err := m.api.UpdateProfile(ctx, token, body)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.saved.applyProfile(res.Profile)
	for _, f := range section.Fields() {
		m.draft.copyField(m.saved, f)
	}
	m.draft.PhotoURL = m.saved.PhotoURL
	m.mu.Unlock()

	m.updateUser(ctx, res.User)
	return nil
}

func (m *Machine) saveNotifications(ctx context.Context, token string, draft Values) error {
	n, err := m.api.UpdateNotifications(ctx, token, notificationsUpdate(draft))
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.saved.applyNotifications(*n)
	m.notificationsLoaded = true
	for _, f := range Notifications.Fields() {
		m.draft.copyField(m.saved, f)
	}
	m.mu.Unlock()
	return nil
}

func (m *Machine) updateUser(ctx context.Context, user models.User) {
	if err := m.session.SetUser(ctx, user); err != nil {
		m.log.Warn(ctx, "update session user", "error", err)
	}
}

// fail records se in the machine and shows the matching toast.
func (m *Machine) fail(se *SaveError) error {
	if len(se.Fields) > 0 {
		m.mu.Lock()
		for f, msg := range se.Fields {
			m.errs[f] = msg
		}
		m.mu.Unlock()
	}

	if se.Kind == KindSessionExpired {
		m.toasts.Show(se.Message, toast.Warning)
	} else {
		m.toasts.Show(se.Message, toast.Error)
	}
	return se
}

// Enter opens section. Profile-backed sections reload the profile and the
// notifications section reloads preferences, unless the draft holds
// unsaved changes for them, both before the request and when it returns.
func (m *Machine) Enter(ctx context.Context, section Section) error {
	m.mu.Lock()
	m.section = section
	m.mu.Unlock()

	switch {
	case section == Profile || section == Privacy:
		return m.reloadProfile(ctx)
	case section == Notifications:
		return m.reloadNotifications(ctx)
	}
	return nil
}

func (m *Machine) profileDirty() bool {
	return m.dirtyLocked(Profile) || m.dirtyLocked(Privacy) || m.dirtyLocked(Appearance)
}

func (m *Machine) reloadProfile(ctx context.Context) error {
	m.mu.Lock()
	dirty := m.profileDirty()
	m.mu.Unlock()
	if dirty {
		return nil
	}

	token := m.session.Token()
	if token == "" {
		return nil
	}

	p, err := m.api.GetProfile(ctx, token)
	if err != nil {
		return m.loadFailed(ctx, Profile, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profileDirty() {
		m.log.Debug(ctx, "profile reload dropped: local edits")
		return nil
	}
	m.saved.applyProfile(*p)
	for _, s := range []Section{Profile, Privacy, Appearance} {
		for _, f := range s.Fields() {
			m.draft.copyField(m.saved, f)
		}
	}
	m.draft.PhotoURL = m.saved.PhotoURL
	return nil
}

func (m *Machine) reloadNotifications(ctx context.Context) error {
	m.mu.Lock()
	dirty := m.dirtyLocked(Notifications)
	m.mu.Unlock()
	if dirty {
		return nil
	}

	token := m.session.Token()
	if token == "" {
		return nil
	}

	n, err := m.api.GetNotifications(ctx, token)
	if err != nil {
		return m.loadFailed(ctx, Notifications, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirtyLocked(Notifications) {
		return nil
	}
	m.saved.applyNotifications(*n)
	m.notificationsLoaded = true
	for _, f := range Notifications.Fields() {
		m.draft.copyField(m.saved, f)
	}
	return nil
}

func (m *Machine) loadFailed(ctx context.Context, section Section, err error) error {
	m.log.Warn(ctx, "settings load failed", "section", string(section), "error", err)
	if errors.Is(err, client.ErrUnauthorized) {
		m.toasts.Show(sessionExpiredMessage, toast.Warning)
	} else {
		m.toasts.Show(fmt.Sprintf("Unable to load %s settings.", strings.ToLower(sectionTitles[section])), toast.Error)
	}
	return fmt.Errorf("load %s: %w", section, err)
}

// UploadPhoto replaces the profile photo immediately; the new URL is
// written to both saved and draft.
func (m *Machine) UploadPhoto(ctx context.Context, p client.Photo) error {
	return m.photo(ctx, "Profile photo updated.", func(token string) (*models.PhotoResult, error) {
		return m.api.UploadPhoto(ctx, token, p)
	})
}

// RemovePhoto deletes the profile photo immediately.
func (m *Machine) RemovePhoto(ctx context.Context) error {
	return m.photo(ctx, "Profile photo removed.", func(token string) (*models.PhotoResult, error) {
		return m.api.DeletePhoto(ctx, token)
	})
}

func (m *Machine) photo(ctx context.Context, okMessage string, call func(token string) (*models.PhotoResult, error)) error {
	token := m.session.Token()
	if token == "" {
		return m.fail(&SaveError{Section: Profile, Kind: KindSessionExpired, Message: sessionExpiredMessage})
	}

	res, err := call(token)
	if err != nil {
		se := classify(Profile, err)
		if photoErr := client.FieldErrors(err)["photo"]; photoErr != "" {
			se.Message = truncate(photoErr, maxSummary)
		}
		return m.fail(se)
	}

	m.mu.Lock()
	m.saved.PhotoURL = res.PhotoURL
	m.draft.PhotoURL = res.PhotoURL
	m.mu.Unlock()

	if u := m.session.User(); u != nil {
		u.PhotoURL = res.PhotoURL
		m.updateUser(ctx, *u)
	}
	m.toasts.Show(okMessage, toast.Success)
	return nil
}
