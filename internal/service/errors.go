package service

import "errors"

// Expected outcomes the caller can act on. Handlers map each onto a distinct
// response code; anything else is an infrastructure failure and surfaces as
// an opaque 500.
var (
	// ErrInvalidRequest: malformed caller input (missing recipient or body).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFriends: identity proven but the relationship is insufficient.
	ErrNotFriends = errors.New("users are not friends")
	// ErrAlreadyRequestedOrFriends: a request or friendship already exists
	// for the pair, in either orientation.
	ErrAlreadyRequestedOrFriends = errors.New("friend request already exists or users are already friends")
	// ErrNotificationNotFound: the notification does not exist, is not
	// addressed to the responder, or is not a friend request.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrRequestNotFound: no matching pending request (possibly already
	// settled by a concurrent response).
	ErrRequestNotFound = errors.New("friend request not found")
	// ErrInvalidDecision: the decision is neither accept nor refuse.
	ErrInvalidDecision = errors.New("decision must be ACCEPT or REFUSE")
)
