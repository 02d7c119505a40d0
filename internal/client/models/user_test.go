package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_ProfileCopiesInterests(t *testing.T) {
	u := User{Name: "Mika", Username: "mika", Interests: []string{"go", "tea"}, Theme: ThemeDark}
	p := u.Profile()

	assert.Equal(t, "Mika", p.DisplayName)
	assert.Equal(t, ThemeDark, p.Theme)

	p.Interests[0] = "rust"
	assert.Equal(t, "go", u.Interests[0], "profile must not alias the user's interests")
}

func TestAuthResult_DecodesServerTimestamps(t *testing.T) {
	raw := `{"token":"abc","expires_at":"2026-10-18T09:30:00.123456+00:00","user":{"id":7,"name":"Mika","username":"mika","visibility":"public","theme":"system"}}`

	var res AuthResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))

	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, 2026, res.ExpiresAt.Year())
	assert.Equal(t, time.October, res.ExpiresAt.Month())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, VisibilityPrivate.Valid())
	assert.False(t, Visibility("friends").Valid())
	assert.True(t, ThemeLight.Valid())
	assert.False(t, Theme("blue").Valid())
	assert.True(t, PauseWeek.Valid())
	assert.False(t, PauseMode("month").Valid())
}
