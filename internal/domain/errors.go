package domain

import "errors"

// Failure kinds surfaced by the store and the relationship engine. The HTTP
// layer maps these to status codes with errors.Is, so they must stay stable.
var (
	// ErrUserNotFound is returned when a referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when a create or rename collides with
	// an existing username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrSelfLink is returned when a link is attempted between a user and itself.
	ErrSelfLink = errors.New("cannot link a user to itself")

	// ErrAlreadyLinked is returned when the two users are already friends.
	ErrAlreadyLinked = errors.New("users are already linked")

	// ErrNotLinked is returned when an unlink targets a pair that is not linked.
	ErrNotLinked = errors.New("users are not currently linked")

	// ErrHasActiveRelationships guards deletion: a user with friends cannot be
	// removed until every link is undone.
	ErrHasActiveRelationships = errors.New("user still has active relationships")

	// ErrStoreUnavailable wraps storage I/O failures. The enclosing transaction
	// is rolled back wholesale before this is returned.
	ErrStoreUnavailable = errors.New("storage unavailable")
)
