// Package watch reports changes to a single file.
//
// The watcher observes the file's parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// seen. Rapid bursts of changes are coalesced into one Event after a quiet
// period.
package watch
