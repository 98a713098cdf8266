package domain

import "errors"

var (
	// ErrPostNotFound is returned when a referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrMissingField is returned when a required post field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrMissingSchedule is returned when a scheduled post has no schedule time.
	ErrMissingSchedule = errors.New("scheduled post missing schedule time")

	// ErrNotAuthenticated indicates no active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotAuthorized indicates the session bearer is not an administrator.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists indicates a duplicate auth-user registration.
	ErrUserExists = errors.New("user already exists")

	// ErrAlreadySubscribed indicates the address is already active.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrSubscriberNotFound indicates no row for the given address.
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrAlreadyAnnounced indicates a second fan-out attempt for the same post.
	ErrAlreadyAnnounced = errors.New("post already announced")
)
