package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

// Login prompts for an identifier (username or email) and password and
// signs in. On success the session service moves the view to the profile.
func (a *App) Login(ctx context.Context) error {
	section, editing := a.openSection()
	before := a.session.User()

	identifier, err := a.text("Username or email")
	if err != nil {
		return err
	}
	password, err := a.secret("Password")
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, models.Credentials{
		Identifier: identifier,
		Password:   password,
		Remember:   true,
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.toasts.Success(fmt.Sprintf("Welcome back, %s.", displayName(*user)))
	if editing && before != nil && before.ID == user.ID {
		a.Navigate(section.Destination())
	}
	return nil
}

// Signup collects the signup form and creates the account.
func (a *App) Signup(ctx context.Context) error {
	var f models.SignupFields
	var err error

	if f.Name, err = a.text("Full name"); err != nil {
		return err
	}
	if f.Username, err = a.text("Username"); err != nil {
		return err
	}
	if f.Email, err = a.text("Email"); err != nil {
		return err
	}
	if f.Password, err = a.secret("Password"); err != nil {
		return err
	}
	if f.Confirm, err = a.secret("Confirm password"); err != nil {
		return err
	}
	if f.Agree, err = a.confirm("Do you agree to the terms?"); err != nil {
		return err
	}
	f.Remember = true

	user, err := a.session.Signup(ctx, f)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.toasts.Success(fmt.Sprintf("Welcome to profilespaces, %s.", displayName(*user)))
	return nil
}

// Logout signs out of this session. Leaving a section with unsaved changes
// asks for confirmation first.
func (a *App) Logout(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if !a.leaveFor("logout", a.logout) {
		return nil
	}
	return a.logout(ctx)
}

func (a *App) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.toasts.Info("Signed out.")
	return nil
}

// LogoutAll ends every session of the user.
func (a *App) LogoutAll(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if !a.leaveFor("logout-all", a.logoutAll) {
		return nil
	}
	return a.logoutAll(ctx)
}

func (a *App) logoutAll(ctx context.Context) error {
	if err := a.session.LogoutAll(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.toasts.Info("Signed out of all sessions.")
	return nil
}

// Whoami prints the signed-in user.
func (a *App) Whoami(ctx context.Context) error {
	st := a.session.State()
	if !st.Authenticated() {
		a.println("Not logged in.")
		return nil
	}
	u := st.User
	a.printf("%s (@%s) <%s>\n", displayName(*u), u.Username, u.Email)
	if st.ExpiresAt != nil {
		a.printf("Session expires %s\n", st.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// ResetRequest asks the server for a password reset token.
func (a *App) ResetRequest(ctx context.Context) error {
	identifier, err := a.text("Username or email")
	if err != nil {
		return err
	}

	ticket, err := a.account.RequestPasswordReset(ctx, models.PasswordResetRequest{Identifier: identifier})
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if ticket.Detail != "" {
		a.println(ticket.Detail)
	} else {
		a.println("If an account matches, a reset token has been issued.")
	}
	if ticket.ResetToken != "" {
		a.printf("Reset token: %s\n", ticket.ResetToken)
		if ticket.ExpiresAt != nil {
			a.printf("Valid until %s. Use 'reset' to choose a new password.\n",
				ticket.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// Reset completes a password reset and signs the user in.
func (a *App) Reset(ctx context.Context) error {
	var r models.PasswordReset
	var err error

	if r.Token, err = a.text("Reset token"); err != nil {
		return err
	}
	if r.Password, err = a.secret("New password"); err != nil {
		return err
	}
	if r.Confirm, err = a.secret("Confirm new password"); err != nil {
		return err
	}

	if _, err := a.account.ResetPassword(ctx, r); err != nil {
		a.report(ctx, err)
		return err
	}
	a.toasts.Success("Password reset. You are signed in.")
	return nil
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	a.println("Not logged in. Use 'login' or 'signup' first.")
	return false
}

// sessionRejected follows a request the server refused for the session.
// The session and every draft stay in place until the user signs in again.
func (a *App) sessionRejected() {
	a.println("Use 'login' to sign in again. Unsaved changes are kept.")
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
