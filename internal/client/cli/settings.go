package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/profilespaces/internal/client/availability"
	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/settings"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/filex"
)

// Profile shows the signed-in user's profile card.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	a.leave(nav.Profile, "profile")
	return nil
}

// Settings opens a settings section (account when none is given). Leaving
// a section with unsaved changes asks for confirmation first.
func (a *App) Settings(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	section := settings.Account
	if len(args) > 0 {
		s, ok := settings.ParseSection(strings.ToLower(args[0]))
		if !ok {
			a.println("Usage: settings <" + sectionNames() + ">")
			return nil
		}
		section = s
	}

	a.leave(section.Destination(), "settings "+string(section))
	return nil
}

// Set edits one field of the open section's draft.
func (a *App) Set(ctx context.Context, args []string) error {
	section, ok := a.requireSection()
	if !ok {
		return nil
	}
	if len(args) == 0 {
		a.println("Usage: set <field> <value>")
		return nil
	}

	field, ok := validation.ParseField(args[0])
	if !ok {
		a.println("Unknown field:", args[0])
		return nil
	}
	value := strings.Join(args[1:], " ")

	if field == validation.FieldPassword && section == settings.Account {
		if value == "" {
			pw, err := a.secret("Password")
			if err != nil {
				return err
			}
			value = pw
		}
		a.settings.SetAccountPassword(value)
		return nil
	}

	owner, ok := settings.SectionOf(field)
	switch {
	case field == validation.FieldPhotoURL:
		a.println("Use 'photo <path>' or 'photo remove' to change the photo.")
		return nil
	case !ok:
		a.println("Field", field, "cannot be edited here.")
		return nil
	case owner != section:
		a.printf("%s is in %s settings.\n", field, owner)
		return nil
	case field == validation.FieldShowLocation && !a.settings.ShowLocationEnabled():
		a.println("Add a location and save your profile before changing location visibility.")
		return nil
	}

	if err := a.settings.SetField(field, value); err != nil {
		a.println(err)
		return err
	}

	if field == validation.FieldUsername || field == validation.FieldProfileURL {
		a.printResult(a.settings.Checker().Check(ctx, field, value))
	}
	return nil
}

// Check runs an availability check without editing the draft.
func (a *App) Check(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) < 2 {
		a.println("Usage: check <username|profile_url> <value>")
		return nil
	}
	field, ok := validation.ParseField(args[0])
	if !ok || (field != validation.FieldUsername && field != validation.FieldProfileURL) {
		a.println("Usage: check <username|profile_url> <value>")
		return nil
	}

	a.printResult(a.settings.Checker().Check(ctx, field, args[1]))
	return nil
}

// Save saves the open section.
func (a *App) Save(ctx context.Context) error {
	section, ok := a.requireSection()
	if !ok {
		return nil
	}
	if !a.settings.HasSectionChanges(section) {
		a.println("No changes to save.")
		return nil
	}

	err := a.settings.Save(ctx, section)
	switch {
	case err == nil:
		a.redraw()
	case errors.Is(err, settings.ErrSaveInProgress):
		a.println("A save is already in progress.")
	case settings.KindOf(err) == settings.KindSessionExpired:
		a.sessionRejected()
	default:
		a.printErrors(a.settings.Errors())
	}
	return err
}

// Cancel resets every draft to the saved values.
func (a *App) Cancel(ctx context.Context) error {
	section, ok := a.requireSection()
	if !ok {
		return nil
	}
	a.settings.Cancel(section)
	a.println("Changes discarded.")
	a.redraw()
	return nil
}

// Discard answers the unsaved-changes prompt by dropping the changes.
func (a *App) Discard(ctx context.Context) error {
	if _, ok := a.settings.Pending(); !ok {
		a.println("Nothing to discard.")
		return nil
	}
	a.settings.ConfirmDiscard()

	a.mu.Lock()
	then := a.afterDiscard
	a.afterDiscard = nil
	a.mu.Unlock()
	if then != nil {
		return then(ctx)
	}
	return nil
}

// Keep answers the unsaved-changes prompt by staying on the section.
func (a *App) Keep(ctx context.Context) error {
	if _, ok := a.settings.Pending(); !ok {
		a.println("Nothing to keep.")
		return nil
	}
	a.mu.Lock()
	a.afterDiscard = nil
	a.mu.Unlock()
	a.settings.KeepEditing()
	return nil
}

// Photo uploads an image file as the profile photo, or removes it.
func (a *App) Photo(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) == 0 {
		a.println("Usage: photo <path>|remove")
		return nil
	}

	var err error
	if args[0] == "remove" {
		err = a.settings.RemovePhoto(ctx)
	} else {
		img, oerr := filex.OpenImage(strings.Join(args, " "), filex.MaxImageBytes)
		if oerr != nil {
			a.report(ctx, oerr)
			return oerr
		}
		defer img.Close()

		err = a.settings.UploadPhoto(ctx, client.Photo{
			Filename:    img.Name,
			ContentType: img.ContentType,
			Reader:      img,
		})
	}
	if settings.KindOf(err) == settings.KindSessionExpired {
		a.sessionRejected()
	}
	return err
}

// leave moves to dest, through the unsaved-changes guard when a settings
// section is open.
func (a *App) leave(dest nav.Destination, trigger string) {
	a.mu.Lock()
	a.afterDiscard = nil
	a.mu.Unlock()

	if _, ok := a.openSection(); ok {
		if !a.settings.Navigate(dest, trigger) {
			return
		}
	}
	a.Navigate(dest)
}

// leaveFor runs the unsaved-changes guard before a command that leaves
// settings. It returns false when the decision is held; then runs once the
// user answers 'discard'.
func (a *App) leaveFor(trigger string, then func(context.Context) error) bool {
	if _, ok := a.openSection(); !ok {
		return true
	}
	if a.settings.Navigate(nav.Login, trigger) {
		return true
	}
	a.mu.Lock()
	a.afterDiscard = then
	a.mu.Unlock()
	return false
}

func (a *App) requireSection() (settings.Section, bool) {
	if !a.requireLogin() {
		return "", false
	}
	section, ok := a.openSection()
	if !ok {
		a.println("Open a section first: settings <" + sectionNames() + ">")
	}
	return section, ok
}

func (a *App) printResult(r availability.Result) {
	if r.Superseded || r.Message == "" {
		return
	}
	mark := "ok"
	if r.Status == availability.Error {
		mark = "!!"
	}
	a.printf("  [%s] %s\n", mark, r.Message)
}

func sectionNames() string {
	names := make([]string, len(settings.Sections))
	for i, s := range settings.Sections {
		names[i] = string(s)
	}
	return strings.Join(names, "|")
}
