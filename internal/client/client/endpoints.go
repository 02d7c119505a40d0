package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

// API paths relative to the base URL.
const (
	PathLogin               = "/auth/login/"
	PathSignup              = "/auth/signup/"
	PathSession             = "/auth/session/"
	PathLogout              = "/auth/logout/"
	PathLogoutAll           = "/auth/logout/all/"
	PathProfile             = "/auth/profile/"
	PathUsernameCheck       = "/auth/profile/username/"
	PathProfileURLCheck     = "/auth/profile/url/"
	PathPhoto               = "/auth/profile/photo/"
	PathPhotoDelete         = "/auth/profile/photo/delete/"
	PathPasswordChange      = "/auth/password/change/"
	PathEmail               = "/auth/email/"
	PathNotifications       = "/auth/notifications/"
	PathDeleteAccount       = "/auth/delete/"
	PathPasswordResetSend   = "/auth/password/reset/request/"
	PathPasswordResetFinish = "/auth/password/reset/"

	// PhotoField is the multipart field carrying the photo.
	PhotoField = "photo"
)

type userEnvelope struct {
	User models.User `json:"user"`
}

type profileEnvelope struct {
	Profile models.Profile `json:"profile"`
}

type notificationsEnvelope struct {
	Notifications models.Notifications `json:"notifications"`
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (*models.AuthResult, error) {
	payload, err := c.Request(ctx, PathLogin, RequestOptions{Method: http.MethodPost, Body: cr})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResult](payload)
}

func (c *HTTPClient) Signup(ctx context.Context, f models.SignupFields) (*models.AuthResult, error) {
	payload, err := c.Request(ctx, PathSignup, RequestOptions{Method: http.MethodPost, Body: f})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResult](payload)
}

func (c *HTTPClient) Session(ctx context.Context, token string) (*models.User, error) {
	payload, err := c.Request(ctx, PathSession, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	env, err := decode[userEnvelope](payload)
	if err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	_, err := c.Request(ctx, PathLogout, RequestOptions{Method: http.MethodPost, Token: token})
	return err
}

func (c *HTTPClient) LogoutAll(ctx context.Context, token string) error {
	_, err := c.Request(ctx, PathLogoutAll, RequestOptions{Method: http.MethodPost, Token: token})
	return err
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	payload, err := c.Request(ctx, PathProfile, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	env, err := decode[profileEnvelope](payload)
	if err != nil {
		return nil, err
	}
	return &env.Profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, u models.ProfileUpdate) (*models.ProfileResult, error) {
	payload, err := c.Request(ctx, PathProfile, RequestOptions{Method: http.MethodPatch, Body: u, Token: token})
	if err != nil {
		return nil, err
	}
	return decode[models.ProfileResult](payload)
}

func (c *HTTPClient) CheckUsername(ctx context.Context, token, username string) (*models.Availability, error) {
	payload, err := c.Request(ctx, PathUsernameCheck, RequestOptions{
		Token: token,
		Query: url.Values{"username": {username}},
	})
	if err != nil {
		return nil, err
	}
	return decode[models.Availability](payload)
}

func (c *HTTPClient) CheckProfileURL(ctx context.Context, token, profileURL string) (*models.Availability, error) {
	payload, err := c.Request(ctx, PathProfileURLCheck, RequestOptions{
		Token: token,
		Query: url.Values{"profile_url": {profileURL}},
	})
	if err != nil {
		return nil, err
	}
	return decode[models.Availability](payload)
}

func (c *HTTPClient) UploadPhoto(ctx context.Context, token string, p Photo) (*models.PhotoResult, error) {
	payload, err := c.Upload(ctx, PathPhoto, UploadOptions{
		Field:       PhotoField,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Reader:      p.Reader,
		Token:       token,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.PhotoResult](payload)
}

func (c *HTTPClient) DeletePhoto(ctx context.Context, token string) (*models.PhotoResult, error) {
	payload, err := c.Request(ctx, PathPhotoDelete, RequestOptions{Method: http.MethodDelete, Token: token})
	if err != nil {
		return nil, err
	}
	return decode[models.PhotoResult](payload)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token string, p models.PasswordChange) (*models.AuthResult, error) {
	payload, err := c.Request(ctx, PathPasswordChange, RequestOptions{Method: http.MethodPost, Body: p, Token: token})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResult](payload)
}

func (c *HTTPClient) ChangeEmail(ctx context.Context, token string, e models.EmailChange) (*models.User, error) {
	payload, err := c.Request(ctx, PathEmail, RequestOptions{Method: http.MethodPost, Body: e, Token: token})
	if err != nil {
		return nil, err
	}
	env, err := decode[userEnvelope](payload)
	if err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *HTTPClient) GetNotifications(ctx context.Context, token string) (*models.Notifications, error) {
	payload, err := c.Request(ctx, PathNotifications, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	env, err := decode[notificationsEnvelope](payload)
	if err != nil {
		return nil, err
	}
	return &env.Notifications, nil
}

func (c *HTTPClient) UpdateNotifications(ctx context.Context, token string, n models.NotificationsUpdate) (*models.Notifications, error) {
	payload, err := c.Request(ctx, PathNotifications, RequestOptions{Method: http.MethodPatch, Body: n, Token: token})
	if err != nil {
		return nil, err
	}
	env, err := decode[notificationsEnvelope](payload)
	if err != nil {
		return nil, err
	}
	return &env.Notifications, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, token string, d models.AccountDeletion) error {
	_, err := c.Request(ctx, PathDeleteAccount, RequestOptions{Method: http.MethodPost, Body: d, Token: token})
	return err
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, r models.PasswordResetRequest) (*models.ResetTicket, error) {
	payload, err := c.Request(ctx, PathPasswordResetSend, RequestOptions{Method: http.MethodPost, Body: r})
	if err != nil {
		return nil, err
	}
	return decode[models.ResetTicket](payload)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, r models.PasswordReset) (*models.AuthResult, error) {
	payload, err := c.Request(ctx, PathPasswordResetFinish, RequestOptions{Method: http.MethodPost, Body: r})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResult](payload)
}
