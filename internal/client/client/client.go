package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

// Photo is an image to upload as the profile photo.
type Photo struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Client is the typed contract of the profilespaces API. Every method that
// needs an authenticated session takes the session token explicitly.
type Client interface {
	Login(ctx context.Context, c models.Credentials) (*models.AuthResult, error)
	Signup(ctx context.Context, f models.SignupFields) (*models.AuthResult, error)
	Session(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, token string) error

	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, u models.ProfileUpdate) (*models.ProfileResult, error)
	CheckUsername(ctx context.Context, token, username string) (*models.Availability, error)
	CheckProfileURL(ctx context.Context, token, profileURL string) (*models.Availability, error)
	UploadPhoto(ctx context.Context, token string, p Photo) (*models.PhotoResult, error)
	DeletePhoto(ctx context.Context, token string) (*models.PhotoResult, error)

	ChangePassword(ctx context.Context, token string, p models.PasswordChange) (*models.AuthResult, error)
	ChangeEmail(ctx context.Context, token string, e models.EmailChange) (*models.User, error)
	GetNotifications(ctx context.Context, token string) (*models.Notifications, error)
	UpdateNotifications(ctx context.Context, token string, n models.NotificationsUpdate) (*models.Notifications, error)
	DeleteAccount(ctx context.Context, token string, d models.AccountDeletion) error

	RequestPasswordReset(ctx context.Context, r models.PasswordResetRequest) (*models.ResetTicket, error)
	ResetPassword(ctx context.Context, r models.PasswordReset) (*models.AuthResult, error)
}
