// Package cli provides the interactive profilespaces terminal client.
//
// It wires configuration, local session storage, the API client and the
// client state holders (session store, settings machine, toasts) into a
// REPL. The App doubles as the view layer: it implements the navigation,
// discard-prompt, focus and theme callbacks and prints toasts as they
// appear.
//
// Commands are listed by 'help'. Settings are edited per section:
//
//	settings profile
//	set display_name Ada Lovelace
//	set interests maths, engines
//	save
//
// Leaving a section with unsaved changes holds the navigation until the
// user answers with 'discard' or 'keep'.
package cli
