// Package settings implements the settings surface as a state machine over
// a saved/draft pair of Values. Drafts are freely editable; only objects
// confirmed by the server become saved. Leaving a section with unsaved
// changes asks for confirmation first.
package settings

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dmitrijs2005/profilespaces/internal/client/availability"
	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/toast"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

const (
	maxSummary            = 120
	genericSaveMessage    = "Unable to save changes. Please try again."
	sessionExpiredMessage = "Your session has expired. Please log in again."
	notLoadedMessage      = "Notification settings could not be loaded. Open the section again to retry."
)

// Session is the part of the session store the machine needs.
type Session interface {
	Token() string
	User() *models.User
	SetUser(ctx context.Context, user models.User) error
}

// Toaster shows notices.
type Toaster interface {
	Show(message string, kind toast.Kind)
}

type pendingNav struct {
	dest    nav.Destination
	trigger string
}

// Machine holds settings state. It is safe for concurrent use; network
// calls run without holding the lock.
type Machine struct {
	api      client.Client
	session  Session
	checker  *availability.Checker
	toasts   Toaster
	navi     nav.Navigator
	prompter nav.Prompter
	focuser  nav.Focuser
	log      logging.Logger

	mu              sync.Mutex
	saved           Values
	draft           Values
	section         Section
	errs            validation.Errors
	pending         *pendingNav
	accountPassword string
	saving          map[Section]bool

	// Notification preferences are not part of the session user; until a
	// load succeeds saved holds defaults the server never confirmed.
	notificationsLoaded bool
}

// Option customizes a Machine.
type Option func(*Machine)

func WithNavigator(n nav.Navigator) Option { return func(m *Machine) { m.navi = n } }
func WithPrompter(p nav.Prompter) Option   { return func(m *Machine) { m.prompter = p } }
func WithFocuser(f nav.Focuser) Option     { return func(m *Machine) { m.focuser = f } }
func WithLogger(l logging.Logger) Option   { return func(m *Machine) { m.log = l } }

// WithChecker replaces the availability checker built by New.
func WithChecker(c *availability.Checker) Option { return func(m *Machine) { m.checker = c } }

type nopPrompter struct{}

func (nopPrompter) PromptDiscard(string, nav.Destination) {}

type nopFocuser struct{}

func (nopFocuser) Focus(string) {}

// New builds a machine seeded from the current session user.
func New(api client.Client, session Session, toasts Toaster, opts ...Option) *Machine {
	m := &Machine{
		api:      api,
		session:  session,
		toasts:   toasts,
		navi:     nav.Discard,
		prompter: nopPrompter{},
		focuser:  nopFocuser{},
		log:      logging.Nop(),
		section:  Account,
		errs:     validation.Errors{},
		saving:   make(map[Section]bool),
	}
	for _, o := range opts {
		o(m)
	}
	if m.checker == nil {
		m.checker = availability.NewChecker(api, session,
			availability.WithSaved(m.savedValue),
			availability.WithLogger(m.log))
	}
	if u := session.User(); u != nil {
		m.Load(*u)
	}
	return m
}

// Load replaces saved and draft with values derived from user.
func (m *Machine) Load(user models.User) {
	v := ValuesFromUser(user)
	m.mu.Lock()
	m.saved = v
	m.draft = v.clone()
	m.errs = validation.Errors{}
	m.accountPassword = ""
	m.notificationsLoaded = false
	m.mu.Unlock()
}

// Loaded reports whether the saved values of section came from the server.
func (m *Machine) Loaded(section Section) bool {
	if section != Notifications {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsLoaded
}

// Checker exposes the availability checker for blur-time checks.
func (m *Machine) Checker() *availability.Checker { return m.checker }

// Values returns a copy of the draft.
func (m *Machine) Values() Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.clone()
}

// Saved returns a copy of the server-confirmed values.
func (m *Machine) Saved() Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.clone()
}

// Section returns the open section.
func (m *Machine) Section() Section {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.section
}

// Errors returns a copy of the current field errors.
func (m *Machine) Errors() validation.Errors {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(validation.Errors, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// Pending returns the navigation waiting for a discard decision.
func (m *Machine) Pending() (nav.Destination, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return "", false
	}
	return m.pending.dest, true
}

// HasSectionChanges reports whether any field of section differs between
// draft and saved.
func (m *Machine) HasSectionChanges(section Section) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirtyLocked(section)
}

// HasChanges reports whether any section is dirty.
func (m *Machine) HasChanges() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range Sections {
		if m.dirtyLocked(s) {
			return true
		}
	}
	return false
}

var equalOpts = cmpopts.EquateEmpty()

func (m *Machine) dirtyLocked(section Section) bool {
	for _, f := range sectionFields[section] {
		if !cmp.Equal(m.saved.Get(f), m.draft.Get(f), equalOpts) {
			return true
		}
	}
	return false
}

// ShowLocationEnabled reports whether the show-location toggle can be
// changed: only when the saved profile has a location.
func (m *Machine) ShowLocationEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.TrimSpace(m.saved.Location) != ""
}

// Edit mutates the draft. Errors of changed fields are cleared.
func (m *Machine) Edit(fn func(v *Values)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.draft.clone()
	next := m.draft.clone()
	fn(&next)

	if strings.TrimSpace(m.saved.Location) == "" {
		next.ShowLocation = before.ShowLocation
	}
	next.PhotoURL = before.PhotoURL
	if !m.notificationsLoaded {
		for _, f := range sectionFields[Notifications] {
			next.copyField(before, f)
		}
	}

	for _, s := range Sections {
		for _, f := range sectionFields[s] {
			if !cmp.Equal(before.Get(f), next.Get(f), equalOpts) {
				delete(m.errs, f)
			}
		}
	}
	m.draft = next
}

// SetField parses raw into field of the draft.
func (m *Machine) SetField(field validation.Field, raw string) error {
	if s, ok := SectionOf(field); ok && !m.Loaded(s) {
		return ErrNotLoaded
	}
	var err error
	m.Edit(func(v *Values) { err = v.Set(field, raw) })
	return err
}

// SetAccountPassword stores the password that confirms an email change.
func (m *Machine) SetAccountPassword(pw string) {
	m.mu.Lock()
	m.accountPassword = pw
	delete(m.errs, validation.FieldPassword)
	m.mu.Unlock()
}

// Cancel resets the whole draft to saved and clears errors, availability
// statuses and the pending account password.
func (m *Machine) Cancel(section Section) {
	m.mu.Lock()
	m.resetLocked()
	m.mu.Unlock()

	m.checker.Reset()
}

func (m *Machine) resetLocked() {
	m.draft = m.saved.clone()
	m.errs = validation.Errors{}
	m.accountPassword = ""
}

// Navigate moves to dest. When the open section has unsaved changes the
// navigation is held and the prompter is asked; Navigate then returns false
// and the decision arrives through ConfirmDiscard or KeepEditing.
func (m *Machine) Navigate(dest nav.Destination, trigger string) bool {
	m.mu.Lock()
	current := m.section
	if dest == current.Destination() {
		m.mu.Unlock()
		return true
	}
	if m.dirtyLocked(current) {
		m.pending = &pendingNav{dest: dest, trigger: trigger}
		m.mu.Unlock()
		m.prompter.PromptDiscard(string(current), dest)
		return false
	}
	m.completeLocked(dest)
	m.mu.Unlock()

	m.navi.Navigate(dest)
	return true
}

// ConfirmDiscard drops unsaved changes and completes the held navigation.
func (m *Machine) ConfirmDiscard() {
	m.mu.Lock()
	p := m.pending
	if p == nil {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.resetLocked()
	m.completeLocked(p.dest)
	m.mu.Unlock()

	m.checker.Reset()
	m.navi.Navigate(p.dest)
}

// KeepEditing abandons the held navigation and returns focus to the control
// that triggered it.
func (m *Machine) KeepEditing() {
	m.mu.Lock()
	p := m.pending
	m.pending = nil
	m.mu.Unlock()

	if p != nil && p.trigger != "" {
		m.focuser.Focus(p.trigger)
	}
}

func (m *Machine) completeLocked(dest nav.Destination) {
	for _, s := range Sections {
		if s.Destination() == dest {
			m.section = s
			return
		}
	}
}

func (m *Machine) savedValue(field validation.Field) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, _ := m.saved.Get(field).(string)
	return v
}

// summary picks the toast text for a failed save: first field error of the
// section, then the server detail, then a generic message.
func summary(section Section, fields validation.Errors, detail string) string {
	order := append(section.Fields(), validation.FieldPassword, validation.FieldGeneral)
	msg := ""
	for _, f := range order {
		if fields[f] != "" {
			msg = fields[f]
			break
		}
	}
	if msg == "" {
		msg = fields.First()
	}
	if msg == "" {
		msg = detail
	}
	if msg == "" {
		msg = genericSaveMessage
	}
	return truncate(msg, maxSummary)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
