// Package availability checks whether a username or profile URL can be
// claimed. Checks can overlap freely; only the newest check per field
// commits its status.
package availability

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/fence"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

// Status is the outcome shown next to a field.
type Status string

const (
	Neutral Status = "neutral"
	Success Status = "success"
	Error   Status = "error"
)

// Reserved handles can never be claimed.
var Reserved = map[string]struct{}{
	"admin":         {},
	"support":       {},
	"profilespaces": {},
	"profile":       {},
	"settings":      {},
}

// Result is the outcome of one check.
type Result struct {
	Field   validation.Field
	Value   string
	Status  Status
	Message string

	// Superseded is set when a newer check for the same field was issued
	// before this one finished. Its status was not committed.
	Superseded bool
}

// TokenSource yields the current session token, "" when signed out.
type TokenSource interface {
	Token() string
}

// SavedFunc returns the saved value of field.
type SavedFunc func(field validation.Field) string

// Checker runs availability checks for validation.FieldUsername and
// validation.FieldProfileURL.
type Checker struct {
	api    client.Client
	tokens TokenSource
	saved  SavedFunc
	log    logging.Logger

	seq fence.Sequencer[validation.Field]

	mu     sync.RWMutex
	status map[validation.Field]Result
}

// Option customizes a Checker.
type Option func(*Checker)

// WithSaved sets the lookup of saved values; a value equal to the saved one
// is always available.
func WithSaved(fn SavedFunc) Option {
	return func(c *Checker) { c.saved = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Checker) { c.log = l }
}

func NewChecker(api client.Client, tokens TokenSource, opts ...Option) *Checker {
	c := &Checker{
		api:    api,
		tokens: tokens,
		saved:  func(validation.Field) string { return "" },
		log:    logging.Nop(),
		status: make(map[validation.Field]Result),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Normalize trims and lower-cases a handle.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Check resolves the availability of raw for field and commits the status
// unless a newer check for the field was issued meanwhile.
func (c *Checker) Check(ctx context.Context, field validation.Field, raw string) Result {
	ticket := c.seq.Next(field)
	res := c.resolve(ctx, field, raw)

	committed := c.seq.Commit(ticket, func() {
		c.mu.Lock()
		c.status[field] = res
		c.mu.Unlock()
	})
	if !committed {
		res.Superseded = true
		c.log.Debug(ctx, "availability result superseded", "field", string(field), "value", res.Value)
	}
	return res
}

// Status returns the committed result for field. Fields never checked are
// Neutral.
func (c *Checker) Status(field validation.Field) Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.status[field]; ok {
		return r
	}
	return Result{Field: field, Status: Neutral}
}

// Reset clears all statuses and supersedes in-flight checks.
func (c *Checker) Reset() {
	c.seq.Invalidate(validation.FieldUsername)
	c.seq.Invalidate(validation.FieldProfileURL)

	c.mu.Lock()
	c.status = make(map[validation.Field]Result)
	c.mu.Unlock()
}

// Gate re-checks both handles before a profile save and returns an error
// per field that resolved to Error. The two checks run concurrently.
func (c *Checker) Gate(ctx context.Context, username, profileURL string) validation.Errors {
	var results [2]Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = c.Check(gctx, validation.FieldUsername, username)
		return nil
	})
	g.Go(func() error {
		results[1] = c.Check(gctx, validation.FieldProfileURL, profileURL)
		return nil
	})
	_ = g.Wait()

	errs := validation.Errors{}
	for _, r := range results {
		if r.Status == Error {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

func (c *Checker) resolve(ctx context.Context, field validation.Field, raw string) Result {
	value := Normalize(raw)
	res := Result{Field: field, Value: value, Status: Neutral}

	if value == "" || !validation.IsHandle(value) {
		return res
	}

	label := labelOf(field)
	if strings.EqualFold(value, strings.TrimSpace(c.saved(field))) {
		res.Status = Success
		res.Message = "This is your current " + strings.ToLower(label) + "."
		return res
	}
	if _, ok := Reserved[value]; ok {
		res.Status = Error
		res.Message = "That " + strings.ToLower(label) + " is reserved."
		return res
	}

	token := c.tokens.Token()
	if token == "" {
		return res
	}

	var (
		a   *models.Availability
		err error
	)
	switch field {
	case validation.FieldUsername:
		a, err = c.api.CheckUsername(ctx, token, value)
	case validation.FieldProfileURL:
		a, err = c.api.CheckProfileURL(ctx, token, value)
	default:
		return res
	}
	if err != nil {
		c.log.Debug(ctx, "availability lookup failed", "field", string(field), "error", err)
		return res
	}

	if a.Available {
		res.Status = Success
		res.Message = label + " is available."
		return res
	}
	res.Status = Error
	res.Message = a.Reason
	if res.Message == "" {
		res.Message = "This " + strings.ToLower(label) + " is already taken."
	}
	return res
}

func labelOf(field validation.Field) string {
	if field == validation.FieldProfileURL {
		return "Profile URL"
	}
	return "Username"
}
