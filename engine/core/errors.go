package core

import (
	"errors"
)

var (
	// ErrMalformedDocument is wrapped by every structural failure while decoding a scene document.
	ErrMalformedDocument   = errors.New("malformed scene document")
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrNoLoader            = errors.New("no loader registered for resource type")
	ErrWatcherClosed       = errors.New("asset watcher already closed")
)
