package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/profilespaces/internal/client/availability"
	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/services"
	"github.com/dmitrijs2005/profilespaces/internal/client/settings"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/common"
	"github.com/dmitrijs2005/profilespaces/internal/filex"
)

// render draws the current view if a command navigated since the last draw.
func (a *App) render(ctx context.Context) {
	a.mu.Lock()
	if !a.viewChanged {
		a.mu.Unlock()
		return
	}
	a.viewChanged = false
	view := a.view
	a.mu.Unlock()

	switch view {
	case nav.Login:
		a.println("Not logged in. Use 'login', 'signup' or 'reset-request'.")
		return
	case nav.Signup:
		a.println("Your account is gone. Use 'signup' to create a new one.")
		return
	case nav.Profile:
		a.renderProfile()
		return
	}

	section, ok := a.openSection()
	if !ok {
		return
	}
	if err := a.settings.Enter(ctx, section); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.sessionRejected()
		}
		if !a.settings.Loaded(section) {
			a.printf("Open 'settings %s' again to retry.\n", section)
			return
		}
	}
	a.renderSection(section)
}

// redraw prints the open section again in place of a full render, which
// would reload it from the server.
func (a *App) redraw() {
	if section, ok := a.openSection(); ok {
		a.renderSection(section)
	}
}

func (a *App) renderProfile() {
	u := a.session.User()
	if u == nil {
		return
	}

	a.printf("%s (@%s)\n", displayName(*u), u.Username)
	if u.Status != "" {
		a.printf("  %s\n", u.Status)
	}
	if u.Bio != "" {
		a.printf("  %s\n", u.Bio)
	}
	if u.Location != "" && u.ShowLocation {
		a.printf("  Location: %s\n", u.Location)
	}
	if len(u.Interests) > 0 {
		a.printf("  Interests: %s\n", strings.Join(u.Interests, ", "))
	}
	if u.PhotoURL != "" {
		a.printf("  Photo: %s\n", u.PhotoURL)
	}
	if u.Visibility == models.VisibilityPrivate {
		a.println("  This profile is private.")
	}
	a.printf("  Share: %s\n", shareURL(a.shareBase, profileSlug(*u)))
}

var sectionHelp = []string{
	"Edit a field with 'set <field> <value>', then 'save' or 'cancel'.",
	"Booleans take on/off. Interests are comma separated (up to 5).",
	"Usernames and profile URLs use 3-30 letters, numbers, or ._-.",
	"Leaving a section with unsaved changes asks to 'discard' or 'keep'.",
	"Password and account removal: 'password', 'email', 'delete-account'.",
}

func (a *App) renderSection(section settings.Section) {
	title := strings.ToUpper(string(section[:1])) + string(section[1:])
	a.printf("== %s settings ==\n", title)

	if section == settings.Help {
		for _, line := range sectionHelp {
			a.printf("  %s\n", line)
		}
		return
	}

	values := a.settings.Values()
	errs := a.settings.Errors()
	checker := a.settings.Checker()

	for _, f := range section.Fields() {
		a.printf("  %-20s %s\n", f, formatValue(values.Get(f)))
		if msg, ok := errs[f]; ok {
			a.printf("  %-20s ! %s\n", "", msg)
		} else if f == validation.FieldUsername || f == validation.FieldProfileURL {
			if r := checker.Status(f); r.Status != availability.Neutral && r.Message != "" {
				a.printf("  %-20s %s\n", "", r.Message)
			}
		}
	}
	if section == settings.Profile && values.PhotoURL != "" {
		a.printf("  %-20s %s\n", validation.FieldPhotoURL, values.PhotoURL)
	}
	if msg, ok := errs[validation.FieldGeneral]; ok {
		a.printf("  ! %s\n", msg)
	}
	if a.settings.HasSectionChanges(section) {
		a.println("  (unsaved changes)")
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "on"
		}
		return "off"
	case []string:
		if len(x) == 0 {
			return "-"
		}
		return strings.Join(x, ", ")
	case nil:
		return "-"
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "-"
	}
	return s
}

// report shows a failed form submission: field errors inline, the rest as
// a toast.
func (a *App) report(ctx context.Context, err error) {
	var fe *services.FormError
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		a.toasts.Warning("Your session has expired. Please log in again.")
		a.sessionRejected()
	case errors.Is(err, common.ErrNotAuthenticated):
		a.println("Not logged in. Use 'login' or 'signup' first.")
	case errors.Is(err, client.ErrUnavailable):
		a.toasts.Error("Server unavailable. Please try again later.")
	case errors.Is(err, filex.ErrTooLarge):
		a.toasts.Error("Photo is too large (max 5 MB).")
	case errors.Is(err, filex.ErrNotImage):
		a.toasts.Error("Upload an image file.")
	case errors.As(err, &fe):
		a.printErrors(fe.Fields)
		if fe.Message != "" {
			a.toasts.Error(fe.Message)
		}
	default:
		a.log.Error(ctx, "command failed", "error", err)
		a.toasts.Error("Something went wrong. Please try again.")
	}
}

func (a *App) printErrors(errs validation.Errors) {
	for _, f := range errs.Fields() {
		if f == validation.FieldGeneral {
			a.printf("  ! %s\n", errs[f])
			continue
		}
		a.printf("  ! %s: %s\n", f, errs[f])
	}
}

// ShareBase derives the web origin of shareable profile links from the API
// base URL: http://host/api becomes http://host.
func ShareBase(apiBaseURL string) string {
	u, err := url.Parse(apiBaseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/api")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/")
}

func shareURL(base, slug string) string {
	if base == "" {
		return slug
	}
	return base + "/" + url.PathEscape(slug)
}

// profileSlug falls back to the username, as the server does.
func profileSlug(u models.User) string {
	if u.ProfileURL != "" {
		return u.ProfileURL
	}
	return u.Username
}
