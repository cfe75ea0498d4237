package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingChannel is returned before any network call when the
	// channel id is empty.
	ErrMissingChannel = errors.New("catalog: missing channel id")
	// ErrChannelNotFound means the metadata lookup returned no channel.
	ErrChannelNotFound = errors.New("catalog: channel not found")
	// ErrUploadsNotFound means the channel exists but exposes no
	// uploads playlist.
	ErrUploadsNotFound = errors.New("catalog: uploads playlist not found")
)

// PageError reports a failed membership-page or detail-batch fetch.
// It is non-fatal: records accumulated before the failure remain valid.
type PageError struct {
	Stage string // "page" or "details"
	Token string // continuation token of the failed page, if any
	Err   error
}

func (e *PageError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("catalog: %s fetch at token %q: %v", e.Stage, e.Token, e.Err)
	}
	return fmt.Sprintf("catalog: %s fetch: %v", e.Stage, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }
