// Package clienttest provides a scriptable client.Client for tests.
package clienttest

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

// ErrNotScripted is returned by methods without a handler.
var ErrNotScripted = errors.New("clienttest: call not scripted")

// Fake implements client.Client. Set the func fields a test needs; Calls
// records method names in call order.
type Fake struct {
	LoginFn                func(ctx context.Context, c models.Credentials) (*models.AuthResult, error)
	SignupFn               func(ctx context.Context, f models.SignupFields) (*models.AuthResult, error)
	SessionFn              func(ctx context.Context, token string) (*models.User, error)
	LogoutFn               func(ctx context.Context, token string) error
	LogoutAllFn            func(ctx context.Context, token string) error
	GetProfileFn           func(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfileFn        func(ctx context.Context, token string, u models.ProfileUpdate) (*models.ProfileResult, error)
	CheckUsernameFn        func(ctx context.Context, token, username string) (*models.Availability, error)
	CheckProfileURLFn      func(ctx context.Context, token, profileURL string) (*models.Availability, error)
	UploadPhotoFn          func(ctx context.Context, token string, p client.Photo) (*models.PhotoResult, error)
	DeletePhotoFn          func(ctx context.Context, token string) (*models.PhotoResult, error)
	ChangePasswordFn       func(ctx context.Context, token string, p models.PasswordChange) (*models.AuthResult, error)
	ChangeEmailFn          func(ctx context.Context, token string, e models.EmailChange) (*models.User, error)
	GetNotificationsFn     func(ctx context.Context, token string) (*models.Notifications, error)
	UpdateNotificationsFn  func(ctx context.Context, token string, n models.NotificationsUpdate) (*models.Notifications, error)
	DeleteAccountFn        func(ctx context.Context, token string, d models.AccountDeletion) error
	RequestPasswordResetFn func(ctx context.Context, r models.PasswordResetRequest) (*models.ResetTicket, error)
	ResetPasswordFn        func(ctx context.Context, r models.PasswordReset) (*models.AuthResult, error)

	mu    sync.Mutex
	calls []string
}

var _ client.Client = (*Fake)(nil)

func (f *Fake) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

// Calls returns the recorded method names.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many times name was called.
func (f *Fake) Count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *Fake) Login(ctx context.Context, c models.Credentials) (*models.AuthResult, error) {
	f.record("Login")
	if f.LoginFn == nil {
		return nil, ErrNotScripted
	}
	return f.LoginFn(ctx, c)
}

func (f *Fake) Signup(ctx context.Context, s models.SignupFields) (*models.AuthResult, error) {
	f.record("Signup")
	if f.SignupFn == nil {
		return nil, ErrNotScripted
	}
	return f.SignupFn(ctx, s)
}

func (f *Fake) Session(ctx context.Context, token string) (*models.User, error) {
	f.record("Session")
	if f.SessionFn == nil {
		return nil, ErrNotScripted
	}
	return f.SessionFn(ctx, token)
}

func (f *Fake) Logout(ctx context.Context, token string) error {
	f.record("Logout")
	if f.LogoutFn == nil {
		return ErrNotScripted
	}
	return f.LogoutFn(ctx, token)
}

func (f *Fake) LogoutAll(ctx context.Context, token string) error {
	f.record("LogoutAll")
	if f.LogoutAllFn == nil {
		return ErrNotScripted
	}
	return f.LogoutAllFn(ctx, token)
}

func (f *Fake) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	f.record("GetProfile")
	if f.GetProfileFn == nil {
		return nil, ErrNotScripted
	}
	return f.GetProfileFn(ctx, token)
}

func (f *Fake) UpdateProfile(ctx context.Context, token string, u models.ProfileUpdate) (*models.ProfileResult, error) {
	f.record("UpdateProfile")
	if f.UpdateProfileFn == nil {
		return nil, ErrNotScripted
	}
	return f.UpdateProfileFn(ctx, token, u)
}

func (f *Fake) CheckUsername(ctx context.Context, token, username string) (*models.Availability, error) {
	f.record("CheckUsername")
	if f.CheckUsernameFn == nil {
		return nil, ErrNotScripted
	}
	return f.CheckUsernameFn(ctx, token, username)
}

func (f *Fake) CheckProfileURL(ctx context.Context, token, profileURL string) (*models.Availability, error) {
	f.record("CheckProfileURL")
	if f.CheckProfileURLFn == nil {
		return nil, ErrNotScripted
	}
	return f.CheckProfileURLFn(ctx, token, profileURL)
}

func (f *Fake) UploadPhoto(ctx context.Context, token string, p client.Photo) (*models.PhotoResult, error) {
	f.record("UploadPhoto")
	if f.UploadPhotoFn == nil {
		return nil, ErrNotScripted
	}
	return f.UploadPhotoFn(ctx, token, p)
}

func (f *Fake) DeletePhoto(ctx context.Context, token string) (*models.PhotoResult, error) {
	f.record("DeletePhoto")
	if f.DeletePhotoFn == nil {
		return nil, ErrNotScripted
	}
	return f.DeletePhotoFn(ctx, token)
}

func (f *Fake) ChangePassword(ctx context.Context, token string, p models.PasswordChange) (*models.AuthResult, error) {
	f.record("ChangePassword")
	if f.ChangePasswordFn == nil {
		return nil, ErrNotScripted
	}
	return f.ChangePasswordFn(ctx, token, p)
}

func (f *Fake) ChangeEmail(ctx context.Context, token string, e models.EmailChange) (*models.User, error) {
	f.record("ChangeEmail")
	if f.ChangeEmailFn == nil {
		return nil, ErrNotScripted
	}
	return f.ChangeEmailFn(ctx, token, e)
}

func (f *Fake) GetNotifications(ctx context.Context, token string) (*models.Notifications, error) {
	f.record("GetNotifications")
	if f.GetNotificationsFn == nil {
		return nil, ErrNotScripted
	}
	return f.GetNotificationsFn(ctx, token)
}

func (f *Fake) UpdateNotifications(ctx context.Context, token string, n models.NotificationsUpdate) (*models.Notifications, error) {
	f.record("UpdateNotifications")
	if f.UpdateNotificationsFn == nil {
		return nil, ErrNotScripted
	}
	return f.UpdateNotificationsFn(ctx, token, n)
}

func (f *Fake) DeleteAccount(ctx context.Context, token string, d models.AccountDeletion) error {
	f.record("DeleteAccount")
	if f.DeleteAccountFn == nil {
		return ErrNotScripted
	}
	return f.DeleteAccountFn(ctx, token, d)
}

func (f *Fake) RequestPasswordReset(ctx context.Context, r models.PasswordResetRequest) (*models.ResetTicket, error) {
	f.record("RequestPasswordReset")
	if f.RequestPasswordResetFn == nil {
		return nil, ErrNotScripted
	}
	return f.RequestPasswordResetFn(ctx, r)
}

func (f *Fake) ResetPassword(ctx context.Context, r models.PasswordReset) (*models.AuthResult, error) {
	f.record("ResetPassword")
	if f.ResetPasswordFn == nil {
		return nil, ErrNotScripted
	}
	return f.ResetPasswordFn(ctx, r)
}
