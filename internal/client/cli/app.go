package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/client/nav"
	"github.com/dmitrijs2005/profilespaces/internal/client/services"
	"github.com/dmitrijs2005/profilespaces/internal/client/settings"
	"github.com/dmitrijs2005/profilespaces/internal/client/toast"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

// App is the terminal front end. It implements the navigation, prompt,
// focus and theme contracts the state holders call back into.
type App struct {
	api      client.Client
	session  *services.SessionService
	account  *services.AccountService
	settings *settings.Machine
	toasts   *toast.Notifier
	log      logging.Logger

	shareBase     string
	toastDuration time.Duration

	reader *bufio.Reader
	out    io.Writer
	secret func(prompt string) (string, error)

	mu          sync.Mutex
	view        nav.Destination
	viewChanged bool
	// afterDiscard finishes a command held by the unsaved-changes prompt.
	afterDiscard func(context.Context) error
	theme       models.Theme
	userID      int64
}

// Option customizes an App.
type Option func(*App)

// WithInput reads commands and answers from r. Secrets are read as plain
// lines, which suits scripts and tests.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(r)
		a.secret = a.lineSecret
	}
}

// WithOutput writes everything the user sees to w.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = &lockedWriter{w: w} }
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithToastDuration sets how long a toast stays current.
func WithToastDuration(d time.Duration) Option {
	return func(a *App) { a.toastDuration = d }
}

// WithShareBase sets the web origin used to build shareable profile links.
func WithShareBase(base string) Option {
	return func(a *App) { a.shareBase = base }
}

// NewApp wires the session store, account service, settings machine and
// toasts around api and store.
func NewApp(api client.Client, store services.Persister, opts ...Option) *App {
	a := &App{
		api:           api,
		log:           logging.Nop(),
		toastDuration: toast.DefaultDuration,
		reader:        bufio.NewReader(os.Stdin),
		out:           &lockedWriter{w: os.Stdout},
		view:          nav.Login,
		userID:        noUser,
	}
	a.secret = a.terminalSecret
	for _, o := range opts {
		o(a)
	}

	a.toasts = toast.NewNotifier(toast.WithDuration(a.toastDuration))
	a.toasts.OnChange(a.printToast)

	a.session = services.NewSessionService(api, store,
		services.WithThemeApplier(a),
		services.WithNavigator(a),
		services.WithLogger(a.log))
	a.session.OnChange(a.sessionChanged)

	a.account = services.NewAccountService(api, a.session)
	a.settings = settings.New(api, a.session, a.toasts,
		settings.WithNavigator(a),
		settings.WithPrompter(a),
		settings.WithFocuser(a),
		settings.WithLogger(a.log))
	return a
}

// Run restores the stored session and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "restore session", "error", err)
	}

	a.println("Welcome to profilespaces (type 'help' for commands)")
	if a.isLoggedIn() {
		a.Navigate(nav.Profile)
	} else {
		a.Navigate(nav.Login)
	}
	a.render(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
	a.toasts.Dismiss()
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated()
}

// status is shown in the prompt: user, open settings section and a star
// when the section has unsaved changes.
func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Username
	if section, ok := a.openSection(); ok {
		s += " settings/" + string(section)
		if a.settings.HasSectionChanges(section) {
			s += "*"
		}
	}
	return s
}

// openSection returns the settings section on screen, if any.
func (a *App) openSection() (settings.Section, bool) {
	a.mu.Lock()
	view := a.view
	a.mu.Unlock()

	for _, s := range settings.Sections {
		if s.Destination() == view {
			return s, true
		}
	}
	return "", false
}

// Navigate implements nav.Navigator. The view is drawn after the current
// command returns.
func (a *App) Navigate(dest nav.Destination) {
	a.mu.Lock()
	a.view = dest
	a.viewChanged = true
	a.mu.Unlock()
}

// PromptDiscard implements nav.Prompter.
func (a *App) PromptDiscard(section string, pending nav.Destination) {
	a.printf("You have unsaved changes in %s settings. Type 'discard' to continue to %s or 'keep' to keep editing.\n",
		section, pending)
}

// Focus implements nav.Focuser.
func (a *App) Focus(trigger string) {
	if section, ok := a.openSection(); ok {
		a.printf("Still editing %s settings (%s was cancelled).\n", section, trigger)
	}
}

// ApplyTheme implements services.ThemeApplier.
func (a *App) ApplyTheme(theme models.Theme) {
	a.mu.Lock()
	changed := a.theme != theme
	a.theme = theme
	a.mu.Unlock()

	if changed && theme != "" {
		a.printf("Theme: %s\n", theme)
	}
}

// ClearTheme implements services.ThemeApplier.
func (a *App) ClearTheme() {
	a.mu.Lock()
	a.theme = ""
	a.mu.Unlock()
}

const noUser int64 = -1

// sessionChanged reseeds the settings machine when a different user (or
// nobody) is signed in. Updates of the same user keep the drafts.
func (a *App) sessionChanged(st services.SessionState) {
	id := noUser
	if st.User != nil {
		id = st.User.ID
	}

	a.mu.Lock()
	same := a.userID == id
	a.userID = id
	a.mu.Unlock()
	if same {
		return
	}

	if st.User != nil {
		a.settings.Load(*st.User)
	} else {
		a.settings.Load(models.User{})
	}
}

func (a *App) printToast(t *toast.Toast) {
	if t == nil {
		return
	}
	a.printf("[%s] %s\n", t.Kind, t.Message)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) text(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) confirm(prompt string) (bool, error) {
	return GetConfirm(a.reader, prompt, a.out)
}

func (a *App) terminalSecret(prompt string) (string, error) {
	if !isTerminal() {
		return a.lineSecret(prompt)
	}
	return GetPassword(prompt, a.out)
}

func (a *App) lineSecret(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt+": "); err != nil {
		return "", err
	}
	return readLine(a.reader)
}

// lockedWriter serializes writes from toast timers and the REPL.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
