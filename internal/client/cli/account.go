package cli

import (
	"context"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

// Password changes the account password. The server rotates the session
// token and ends other sessions.
func (a *App) Password(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	var p models.PasswordChange
	var err error
	if p.Current, err = a.secret("Current password"); err != nil {
		return err
	}
	if p.New, err = a.secret("New password"); err != nil {
		return err
	}
	if p.Confirm, err = a.secret("Confirm new password"); err != nil {
		return err
	}

	if err := a.account.ChangePassword(ctx, p); err != nil {
		a.report(ctx, err)
		return err
	}
	a.toasts.Success("Password updated.")
	return nil
}

// Email changes the account email after password confirmation.
func (a *App) Email(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	var e models.EmailChange
	var err error
	if e.Email, err = a.text("New email"); err != nil {
		return err
	}
	if e.Password, err = a.secret("Password"); err != nil {
		return err
	}

	user, err := a.account.ChangeEmail(ctx, e)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !a.settings.HasChanges() {
		a.settings.Load(*user)
	}
	a.toasts.Success("Email updated.")
	return nil
}

// DeleteAccount removes the account after the user types the confirmation
// word and the password.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	var d models.AccountDeletion
	var err error
	a.println("This permanently deletes your account and profile.")
	if d.Confirm, err = a.text("Type " + validation.DeleteConfirmation + " to confirm"); err != nil {
		return err
	}
	if d.Password, err = a.secret("Password"); err != nil {
		return err
	}

	if err := a.account.DeleteAccount(ctx, d); err != nil {
		a.report(ctx, err)
		return err
	}
	a.toasts.Info("Account deleted.")
	return nil
}
