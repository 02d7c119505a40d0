// Package nav defines the navigation contracts between the state holders
// and the view layer.
package nav

// Destination names a place the view layer can show.
type Destination string

const (
	Login    Destination = "login"
	Signup   Destination = "signup"
	Profile  Destination = "profile"
	Settings Destination = "settings"
	Home     Destination = "home"
)

// SettingsSection returns the destination of a settings section.
func SettingsSection(section string) Destination {
	return Destination("settings/" + section)
}

// Navigator moves the view to a destination.
type Navigator interface {
	Navigate(dest Destination)
}

// Prompter asks the user to confirm discarding unsaved changes. The answer
// comes back through the settings machine's ConfirmDiscard or KeepEditing.
type Prompter interface {
	PromptDiscard(section string, pending Destination)
}

// Focuser returns input focus to the control that triggered a navigation.
type Focuser interface {
	Focus(trigger string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(dest Destination)

func (f NavigatorFunc) Navigate(dest Destination) { f(dest) }

// Discard is a Navigator that ignores every call.
var Discard Navigator = NavigatorFunc(func(Destination) {})
