package watch

import "errors"

var (
	ErrEmptyWatchList = errors.New("watch list has no entries")
	ErrEmptyNamespace = errors.New("watch entry has empty namespace")
	ErrEmptyName      = errors.New("watch entry has empty name")
)
