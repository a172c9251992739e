// Package notify defines the user-facing sinks the stores talk to: a
// Notifier for success/error/info messages and a Navigator for post-action
// redirects.
package notify

import "log"

// Notifier surfaces messages to the user. Implementations must accept any
// string, including ones extracted from error payloads.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Navigator performs post-action redirects. Routes are the application's
// view paths ("/login", "/recipes/my", ...).
type Navigator interface {
	NavigateTo(route string)
}

// LogNotifier writes notifications to the process log. Used by the CLI.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Printf("ok: %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("error: %s", msg) }
func (LogNotifier) Info(msg string)    { log.Printf("info: %s", msg) }

// NopNavigator ignores redirects. The CLI has no routes to move between.
type NopNavigator struct{}

func (NopNavigator) NavigateTo(string) {}
