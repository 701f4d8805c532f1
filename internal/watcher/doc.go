// Package watcher turns filesystem activity under ordering roots into
// debounced pass triggers.
//
// Changes to a root's .order or .gitignore always trigger. Writes to any
// other non-ignored file trigger when Options.AllSaves is set. Attribute
// changes never trigger, so the timestamps written by a pass do not start
// another one.
package watcher
