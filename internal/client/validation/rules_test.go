package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name  string
		in    models.Credentials
		wants []Field
	}{
		{"empty", models.Credentials{}, []Field{FieldIdentifier, FieldPassword}},
		{"bad email", models.Credentials{Identifier: "a@b", Password: "x"}, []Field{FieldIdentifier}},
		{"good email", models.Credentials{Identifier: "mika@example.com", Password: "x"}, nil},
		{"short handle", models.Credentials{Identifier: "ab", Password: "x"}, []Field{FieldIdentifier}},
		{"handle with space", models.Credentials{Identifier: "mi ka", Password: "x"}, []Field{FieldIdentifier}},
		{"trimmed handle", models.Credentials{Identifier: "  mika  ", Password: "x"}, nil},
		{"missing password", models.Credentials{Identifier: "mika"}, []Field{FieldPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Login(tt.in)
			assert.ElementsMatch(t, tt.wants, errs.Fields())
		})
	}
}

func TestLogin_AnyValidHandlePasses(t *testing.T) {
	alphabet := "abcXYZ019._-"
	for n := 3; n <= 30; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(alphabet[i%len(alphabet)])
		}
		errs := Login(models.Credentials{Identifier: b.String(), Password: "pw"})
		assert.True(t, errs.Empty(), "handle %q", b.String())
	}

	errs := Login(models.Credentials{Identifier: strings.Repeat("a", 31), Password: "pw"})
	assert.Contains(t, errs, FieldIdentifier)
}

func TestSignup(t *testing.T) {
	valid := models.SignupFields{
		Name:     "Mika",
		Username: "mika",
		Email:    "mika@example.com",
		Password: "password1",
		Confirm:  "password1",
		Agree:    true,
	}
	require.True(t, Signup(valid).Empty())

	t.Run("mismatched confirm", func(t *testing.T) {
		f := valid
		f.Confirm = "password2"
		errs := Signup(f)
		assert.Equal(t, "Passwords do not match.", errs[FieldConfirm])
		assert.Len(t, errs, 1)
	})

	t.Run("short password", func(t *testing.T) {
		f := valid
		f.Password, f.Confirm = "short", "short"
		assert.Contains(t, Signup(f), FieldPassword)
	})

	t.Run("terms not accepted", func(t *testing.T) {
		f := valid
		f.Agree = false
		assert.Contains(t, Signup(f), FieldAgree)
	})

	t.Run("one-letter name", func(t *testing.T) {
		f := valid
		f.Name = " M "
		assert.Equal(t, "Name must be at least 2 characters.", Signup(f)[FieldName])
	})
}

func TestPasswordChange(t *testing.T) {
	errs := PasswordChange(models.PasswordChange{})
	assert.ElementsMatch(t, []Field{FieldCurrent, FieldNew, FieldConfirm}, errs.Fields())

	errs = PasswordChange(models.PasswordChange{Current: "old", New: "newpassword", Confirm: "other"})
	assert.Equal(t, Errors{FieldConfirm: "Passwords do not match."}, errs)

	assert.True(t, PasswordChange(models.PasswordChange{Current: "old", New: "newpassword", Confirm: "newpassword"}).Empty())
}

func TestEmailChange(t *testing.T) {
	errs := EmailChange(models.EmailChange{Email: "nope"})
	assert.ElementsMatch(t, []Field{FieldEmail, FieldPassword}, errs.Fields())
	assert.True(t, EmailChange(models.EmailChange{Email: "a@b.co", Password: "x"}).Empty())
}

func TestProfile(t *testing.T) {
	valid := models.ProfileUpdate{
		DisplayName: "Mika",
		Username:    "mika",
		ProfileURL:  "mika",
		Bio:         strings.Repeat("b", MaxBioLength),
		Status:      strings.Repeat("s", MaxStatusLength),
		Interests:   []string{"a", "b", "c", "d", "e"},
	}
	require.True(t, Profile(valid).Empty())

	p := valid
	p.Bio += "x"
	p.Status += "x"
	p.Interests = append(p.Interests, "f")
	p.ProfileURL = "no spaces"
	errs := Profile(p)
	assert.ElementsMatch(t, []Field{FieldBio, FieldStatus, FieldInterests, FieldProfileURL}, errs.Fields())

	// multi-byte runes count once
	p = valid
	p.Bio = strings.Repeat("é", MaxBioLength)
	assert.True(t, Profile(p).Empty())
}

func TestDeleteAccount(t *testing.T) {
	assert.Contains(t, DeleteAccount(models.AccountDeletion{Confirm: "delete"}), FieldConfirm)
	assert.True(t, DeleteAccount(models.AccountDeletion{Confirm: "DELETE"}).Empty())
}

func TestPasswordReset(t *testing.T) {
	errs := PasswordReset(models.PasswordReset{Password: "longenough", Confirm: "longenough"})
	assert.Equal(t, Errors{FieldToken: "Reset token is required."}, errs)
}

func TestNormalizeInterests(t *testing.T) {
	got := NormalizeInterests([]string{" go ", "", "tea", "go", "a", "b", "c", "d"})
	assert.Equal(t, []string{"go", "tea", "a", "b", "c"}, got)

	long := strings.Repeat("x", MaxInterestLength+10)
	assert.Equal(t, []string{strings.Repeat("x", MaxInterestLength)}, NormalizeInterests([]string{long}))
}
