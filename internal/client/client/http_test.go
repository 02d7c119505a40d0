package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T, register func(r chi.Router)) *HTTPClient {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", register)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api", "secret-key")
}

func TestRequest_SendsHeaders(t *testing.T) {
	var got http.Header
	c := newTestServer(t, func(r chi.Router) {
		r.Get("/auth/session/", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 7, "username": "mika", "theme": "dark"}})
		})
	})

	u, err := c.Session(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, models.ThemeDark, u.Theme)

	assert.Equal(t, "Token tok123", got.Get("Authorization"))
	assert.Equal(t, "secret-key", got.Get("X-API-Key"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	_, err = uuid.Parse(got.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRequest_NoTokenNoAuthorization(t *testing.T) {
	var got http.Header
	var body map[string]any
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, http.StatusOK, map[string]any{
				"token":      "abc",
				"expires_at": "2026-01-02T03:04:05Z",
				"user":       map[string]any{"username": "mika"},
			})
		})
	})

	res, err := c.Login(context.Background(), models.Credentials{Identifier: "mika", Password: "pw", Remember: true})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), res.ExpiresAt.UTC())
	assert.Empty(t, got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, map[string]any{"identifier": "mika", "password": "pw", "remember": true}, body)
}

func TestRequest_FieldErrors(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Patch("/auth/profile/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": map[string]string{"username": "This username is already taken."}})
		})
	})

	_, err := c.UpdateProfile(context.Background(), "t", models.ProfileUpdate{Username: "taken"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, apiErr.Network)
	assert.Equal(t, map[string]string{"username": "This username is already taken."}, FieldErrors(err))
	assert.Empty(t, Detail(err))
}

func TestRequest_DetailAndUnauthorized(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Get("/auth/profile/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Session expired."})
		})
	})

	_, err := c.GetProfile(context.Background(), "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Session expired.", Detail(err))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestRequest_NonJSONBodyBecomesDetail(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})

	err := c.Logout(context.Background(), "t")
	require.Error(t, err)
	assert.Equal(t, "boom", Detail(err))
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewHTTPClient(base, "")
	_, err := c.Session(context.Background(), "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "server unavailable", apiErr.Message)
}

func TestCheckUsername_Query(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Get("/auth/profile/username/", func(w http.ResponseWriter, r *http.Request) {
			name := r.URL.Query().Get("username")
			writeJSON(w, http.StatusOK, models.Availability{Available: name != "taken", Reason: "x"})
		})
		r.Get("/auth/profile/url/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.Availability{Available: r.URL.Query().Get("profile_url") == "free"})
		})
	})

	a, err := c.CheckUsername(context.Background(), "t", "taken")
	require.NoError(t, err)
	assert.False(t, a.Available)

	a, err = c.CheckProfileURL(context.Background(), "t", "free")
	require.NoError(t, err)
	assert.True(t, a.Available)
}

func TestUploadPhoto_Multipart(t *testing.T) {
	var gotName, gotBody, gotAuth string
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/auth/profile/photo/", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			f, hdr, err := r.FormFile("photo")
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
				return
			}
			defer f.Close()
			b, _ := io.ReadAll(f)
			gotName, gotBody = hdr.Filename, string(b)
			writeJSON(w, http.StatusOK, models.PhotoResult{PhotoURL: "/media/p.png"})
		})
		r.Delete("/auth/profile/photo/delete/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.PhotoResult{})
		})
	})

	res, err := c.UploadPhoto(context.Background(), "t", Photo{Filename: "p.png", ContentType: "image/png", Reader: strings.NewReader("PNG")})
	require.NoError(t, err)
	assert.Equal(t, "/media/p.png", res.PhotoURL)
	assert.Equal(t, "p.png", gotName)
	assert.Equal(t, "PNG", gotBody)
	assert.Equal(t, "Token t", gotAuth)

	res, err = c.DeletePhoto(context.Background(), "t")
	require.NoError(t, err)
	assert.Empty(t, res.PhotoURL)
}

func TestNotificationsAndReset(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Get("/auth/notifications/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"notifications": models.DefaultNotifications()})
		})
		r.Patch("/auth/notifications/", func(w http.ResponseWriter, r *http.Request) {
			var in models.NotificationsUpdate
			_ = json.NewDecoder(r.Body).Decode(&in)
			writeJSON(w, http.StatusOK, map[string]any{"notifications": models.Notifications{
				WeeklyDigest:       in.WeeklyDigest,
				PauseNotifications: in.PauseNotifications,
			}})
		})
		r.Post("/auth/password/reset/request/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"detail": "If an account exists, a reset token has been created."})
		})
	})

	ctx := context.Background()
	n, err := c.GetNotifications(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, models.PauseOff, n.PauseNotifications)

	n, err = c.UpdateNotifications(ctx, "t", models.NotificationsUpdate{WeeklyDigest: true, PauseNotifications: models.PauseWeek})
	require.NoError(t, err)
	assert.True(t, n.WeeklyDigest)
	assert.Equal(t, models.PauseWeek, n.PauseNotifications)

	ticket, err := c.RequestPasswordReset(ctx, models.PasswordResetRequest{Identifier: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, ticket.ResetToken)
	assert.Nil(t, ticket.ExpiresAt)
}
