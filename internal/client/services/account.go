package services

import (
	"context"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/common"
)

// AccountService groups the account forms: password, email, deletion and
// password reset. Each validates locally before calling the API.
type AccountService struct {
	api     client.Client
	session *SessionService
}

func NewAccountService(api client.Client, session *SessionService) *AccountService {
	return &AccountService{api: api, session: session}
}

// ChangePassword changes the password and adopts the rotated token; every
// other session of the user is ended by the server.
func (a *AccountService) ChangePassword(ctx context.Context, p models.PasswordChange) error {
	if errs := validation.PasswordChange(p); !errs.Empty() {
		return invalid(errs)
	}
	token := a.session.Token()
	if token == "" {
		return common.ErrNotAuthenticated
	}

	res, err := a.api.ChangePassword(ctx, token, p)
	if err != nil {
		return formError("change password", err)
	}
	a.session.Rotate(ctx, res)
	return nil
}

// ChangeEmail updates the account email after password confirmation.
func (a *AccountService) ChangeEmail(ctx context.Context, e models.EmailChange) (*models.User, error) {
	if errs := validation.EmailChange(e); !errs.Empty() {
		return nil, invalid(errs)
	}
	token := a.session.Token()
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}

	user, err := a.api.ChangeEmail(ctx, token, e)
	if err != nil {
		return nil, formError("change email", err)
	}
	if err := a.session.SetUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and ends the local session.
func (a *AccountService) DeleteAccount(ctx context.Context, d models.AccountDeletion) error {
	if errs := validation.DeleteAccount(d); !errs.Empty() {
		return invalid(errs)
	}
	token := a.session.Token()
	if token == "" {
		return common.ErrNotAuthenticated
	}

	if err := a.api.DeleteAccount(ctx, token, d); err != nil {
		return formError("delete account", err)
	}

	err := a.session.ClearAuth(ctx)
	a.session.nav.Navigate(nav.Signup)
	return err
}

// RequestPasswordReset asks the server for a reset token. The ticket has
// no token when no account matched.
func (a *AccountService) RequestPasswordReset(ctx context.Context, r models.PasswordResetRequest) (*models.ResetTicket, error) {
	if errs := validation.PasswordResetRequest(r); !errs.Empty() {
		return nil, invalid(errs)
	}

	ticket, err := a.api.RequestPasswordReset(ctx, r)
	if err != nil {
		return nil, formError("request password reset", err)
	}
	return ticket, nil
}

// ResetPassword completes a reset and signs the user in with the issued
// token.
func (a *AccountService) ResetPassword(ctx context.Context, r models.PasswordReset) (*models.User, error) {
	if errs := validation.PasswordReset(r); !errs.Empty() {
		return nil, invalid(errs)
	}

	res, err := a.api.ResetPassword(ctx, r)
	if err != nil {
		return nil, formError("reset password", err)
	}
	a.session.Rotate(ctx, res)
	a.session.nav.Navigate(nav.Profile)
	return &res.User, nil
}
