package core

import "errors"

// Messages returned to API clients. They are part of the public contract
// and must not change.
const (
	MsgMissingURL  = "Please provide an Instagram Reel URL."
	MsgVideoMiss   = "❌ Unable to fetch video. Reels may be private or Instagram changed their format."
	MsgServerError = "Server error. Try another reel link."
)

var (
	// ErrVideoNotFound means the page was fetched but no video URL could be recovered.
	ErrVideoNotFound = errors.New(MsgVideoMiss)
	// ErrUnexpectedStatus wraps non-2xx upstream responses.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
)
