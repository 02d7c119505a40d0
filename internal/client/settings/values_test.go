package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

func TestValues_Set(t *testing.T) {
	var v Values

	require.NoError(t, v.Set(validation.FieldInterests, " go, tea ,go,,music"))
	assert.Equal(t, []string{"go", "tea", "music"}, v.Interests)

	require.NoError(t, v.Set(validation.FieldInterests, ""))
	assert.Empty(t, v.Interests)

	require.NoError(t, v.Set(validation.FieldTheme, "Dark"))
	assert.Equal(t, models.ThemeDark, v.Theme)
	assert.Error(t, v.Set(validation.FieldTheme, "neon"))

	require.NoError(t, v.Set(validation.FieldAllowSearch, "yes"))
	assert.True(t, v.AllowSearch)
	require.NoError(t, v.Set(validation.FieldAllowSearch, "false"))
	assert.False(t, v.AllowSearch)
	assert.Error(t, v.Set(validation.FieldAllowSearch, "maybe"))

	assert.Error(t, v.Set(validation.FieldPhotoURL, "x"), "photo is not edited through the draft")
	assert.Error(t, v.Set(validation.FieldVisibility, "friends"))
}

func TestSectionFields(t *testing.T) {
	assert.Equal(t, []validation.Field{validation.FieldEmail}, Account.Fields())
	assert.Len(t, Profile.Fields(), 7)
	assert.Empty(t, Help.Fields())

	s, ok := SectionOf(validation.FieldWeeklyDigest)
	assert.True(t, ok)
	assert.Equal(t, Notifications, s)

	_, ok = ParseSection("billing")
	assert.False(t, ok)
}

func TestProfileUpdate_OverlaysSection(t *testing.T) {
	saved := ValuesFromUser(models.User{Name: "Saved", Username: "saved", Theme: models.ThemeLight, Interests: []string{"a"}})
	draft := saved.clone()
	draft.DisplayName = "Draft"
	draft.Theme = models.ThemeDark

	body := profileUpdate(saved, draft, Appearance)
	assert.Equal(t, "Saved", body.DisplayName)
	assert.Equal(t, models.ThemeDark, body.Theme)
	assert.Equal(t, []string{"a"}, body.Interests)

	body = profileUpdate(saved, draft, Profile)
	assert.Equal(t, "Draft", body.DisplayName)
	assert.Equal(t, models.ThemeLight, body.Theme)
}
