package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilespaces/internal/client/client/clienttest"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func savedValues(m map[validation.Field]string) SavedFunc {
	return func(f validation.Field) string { return m[f] }
}

func TestCheck_EmptyOrMalformedIsNeutral(t *testing.T) {
	api := &clienttest.Fake{}
	c := NewChecker(api, staticToken("tok"))

	for _, raw := range []string{"", "   ", "ab", "has space"} {
		r := c.Check(context.Background(), validation.FieldUsername, raw)
		assert.Equal(t, Neutral, r.Status, raw)
	}
	assert.Empty(t, api.Calls())
}

func TestCheck_SavedValueSucceedsWithoutNetwork(t *testing.T) {
	api := &clienttest.Fake{}
	c := NewChecker(api, staticToken("tok"), WithSaved(savedValues(map[validation.Field]string{
		validation.FieldUsername: "mika",
	})))

	r := c.Check(context.Background(), validation.FieldUsername, "MIKA")
	assert.Equal(t, Success, r.Status)
	assert.Equal(t, "mika", r.Value)
	assert.Empty(t, api.Calls())
	assert.Equal(t, Success, c.Status(validation.FieldUsername).Status)
}

func TestCheck_ReservedFailsWithoutNetwork(t *testing.T) {
	api := &clienttest.Fake{}
	c := NewChecker(api, staticToken("tok"))

	r := c.Check(context.Background(), validation.FieldProfileURL, " Admin ")
	assert.Equal(t, Error, r.Status)
	assert.Equal(t, "That profile url is reserved.", r.Message)
	assert.Empty(t, api.Calls())
}

func TestCheck_Lookup(t *testing.T) {
	api := &clienttest.Fake{
		CheckUsernameFn: func(ctx context.Context, token, username string) (*models.Availability, error) {
			assert.Equal(t, "tok", token)
			if username == "taken" {
				return &models.Availability{Available: false, Reason: "This username is already taken."}, nil
			}
			return &models.Availability{Available: true}, nil
		},
		CheckProfileURLFn: func(ctx context.Context, token, profileURL string) (*models.Availability, error) {
			return nil, errors.New("boom")
		},
	}
	c := NewChecker(api, staticToken("tok"))
	ctx := context.Background()

	assert.Equal(t, Success, c.Check(ctx, validation.FieldUsername, "Fresh").Status)

	r := c.Check(ctx, validation.FieldUsername, "taken")
	assert.Equal(t, Error, r.Status)
	assert.Equal(t, "This username is already taken.", r.Message)

	assert.Equal(t, Neutral, c.Check(ctx, validation.FieldProfileURL, "anything").Status)
}

func TestCheck_SignedOutIsNeutral(t *testing.T) {
	api := &clienttest.Fake{}
	c := NewChecker(api, staticToken(""))

	assert.Equal(t, Neutral, c.Check(context.Background(), validation.FieldUsername, "someone").Status)
	assert.Empty(t, api.Calls())
}

// Overlapping checks for one field: whatever order the responses arrive
// in, the committed status is the one of the last-issued check.
func TestCheck_LastRequestWins(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{name: "older response arrives last", order: []string{"alice", "alic", "ali"}},
		{name: "responses in issue order", order: []string{"ali", "alic", "alice"}},
		{name: "latest in the middle", order: []string{"alic", "alice", "ali"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issued := []string{"ali", "alic", "alice"}
			release := map[string]chan struct{}{}
			for _, v := range issued {
				release[v] = make(chan struct{})
			}
			started := make(chan string, len(issued))

			api := &clienttest.Fake{CheckUsernameFn: func(ctx context.Context, token, username string) (*models.Availability, error) {
				started <- username
				<-release[username]
				// "alice" is taken; the shorter handles are free
				return &models.Availability{Available: username != "alice", Reason: "taken"}, nil
			}}
			c := NewChecker(api, staticToken("tok"))
			ctx := context.Background()

			done := map[string]chan Result{}
			for _, v := range issued {
				ch := make(chan Result, 1)
				done[v] = ch
				go func() { ch <- c.Check(ctx, validation.FieldUsername, v) }()
				require.Equal(t, v, <-started)
			}

			latestSeen := false
			for _, v := range tt.order {
				close(release[v])
				r := <-done[v]

				if v == "alice" {
					latestSeen = true
					assert.False(t, r.Superseded)
				} else {
					assert.True(t, r.Superseded, v)
				}

				st := c.Status(validation.FieldUsername)
				if latestSeen {
					assert.Equal(t, Error, st.Status, "after %s", v)
					assert.Equal(t, "alice", st.Value, "after %s", v)
				} else {
					assert.Equal(t, Neutral, st.Status, "after %s", v)
				}
			}
		})
	}
}

func TestReset_DropsInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &clienttest.Fake{CheckUsernameFn: func(ctx context.Context, token, username string) (*models.Availability, error) {
		close(started)
		<-release
		return &models.Availability{Available: true}, nil
	}}
	c := NewChecker(api, staticToken("tok"))

	done := make(chan Result)
	go func() { done <- c.Check(context.Background(), validation.FieldUsername, "someone") }()
	<-started
	c.Reset()
	close(release)

	r := <-done
	assert.True(t, r.Superseded)
	assert.Equal(t, Neutral, c.Status(validation.FieldUsername).Status)
}

func TestGate(t *testing.T) {
	api := &clienttest.Fake{
		CheckUsernameFn: func(ctx context.Context, token, username string) (*models.Availability, error) {
			return &models.Availability{Available: true}, nil
		},
		CheckProfileURLFn: func(ctx context.Context, token, profileURL string) (*models.Availability, error) {
			return &models.Availability{Available: false, Reason: "This profile URL is already taken."}, nil
		},
	}
	c := NewChecker(api, staticToken("tok"))

	errs := c.Gate(context.Background(), "newname", "taken-url")
	assert.Equal(t, validation.Errors{validation.FieldProfileURL: "This profile URL is already taken."}, errs)
}
