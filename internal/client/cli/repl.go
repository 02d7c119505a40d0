package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
	Whoami(ctx context.Context) error
	ResetRequest(ctx context.Context) error
	Reset(ctx context.Context) error

	Profile(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Check(ctx context.Context, args []string) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
	Discard(ctx context.Context) error
	Keep(ctx context.Context) error
	Photo(ctx context.Context, args []string) error

	Password(ctx context.Context) error
	Email(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	// render draws the view after a command moved the user elsewhere.
	render(ctx context.Context)
}

const (
	helpSignedOut = "Available commands: login, signup, reset-request, reset, help, exit"
	helpSignedIn  = "Available commands: whoami, profile, settings <section>, set <field> <value>, " +
		"check <username|profile_url> <value>, save, cancel, discard, keep, photo <path>|remove, " +
		"password, email, delete-account, logout, logout-all, help, exit"
)

// runREPL starts a read–eval–print loop for the profilespaces CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		prompt := "ps> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("ps (%s)> ", s)
		}
		fmt.Fprint(w, prompt)

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}

		case "login":
			_ = a.Login(ctx)
		case "signup":
			_ = a.Signup(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "logout-all":
			_ = a.LogoutAll(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "reset-request":
			_ = a.ResetRequest(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "profile":
			_ = a.Profile(ctx)
		case "settings":
			_ = a.Settings(ctx, args)
		case "set":
			_ = a.Set(ctx, args)
		case "check":
			_ = a.Check(ctx, args)
		case "save":
			_ = a.Save(ctx)
		case "cancel":
			_ = a.Cancel(ctx)
		case "discard":
			_ = a.Discard(ctx)
		case "keep":
			_ = a.Keep(ctx)
		case "photo":
			_ = a.Photo(ctx, args)

		case "password":
			_ = a.Password(ctx)
		case "email":
			_ = a.Email(ctx)
		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		a.render(ctx)
	}
}
