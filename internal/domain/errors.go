package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested playlist or track does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates the Spotify API is unreachable
	ErrServerOffline = errors.New("spotify api is unreachable")

	// ErrAuthFailed indicates the access token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNotAuthorized indicates no token has been obtained yet
	ErrNotAuthorized = errors.New("not authorized, run the setup flow")

	// ErrRateLimited indicates the API asked us to back off
	ErrRateLimited = errors.New("rate limited by spotify api")

	// ErrNoActiveDevice indicates playback has no device to start on
	ErrNoActiveDevice = errors.New("no active playback device")

	// ErrMalformedPage indicates a page would rewind the page-sequence counter
	ErrMalformedPage = errors.New("malformed page")
)
