// Package api provides the HTTP client and types for the Love Monster API.
package api

import (
	"strings"
	"time"
)

// User represents a user which can send and receive loves.
//
// Instances returned by the parser may be shared through the user cache;
// treat them as read-only after parsing, since mutating a cached User
// would silently corrupt future lookups.
type User struct {
	// Email is the user's email address. Required.
	Email string
	// Username is the user's login name. Required. Two Users with the
	// same username are considered the same entity.
	Username string
	// Name is the user's display name. Optional; empty when absent.
	Name string
	// ProfileImageURL is derived from the username, never transmitted.
	ProfileImageURL string
}

// Same reports whether both users refer to the same entity. Identity is
// defined by username alone.
func (u *User) Same(other *User) bool {
	return other != nil && u.Username == other.Username
}

// Love represents a recognition message sent from one user (the lover) to
// another (the lovee).
type Love struct {
	// Reason is the note for why this love was sent. Required.
	Reason string
	// Lover is the sending user. Required.
	Lover *User
	// Lovee is the receiving user. Required.
	Lovee *User
	// Message is an optional personalized note; empty when absent.
	Message string
	// IsPrivate marks a privately sent love. Defaults to false.
	IsPrivate bool
	// CreatedAt is when the love was sent, in UTC. Required.
	CreatedAt time.Time
}

// HasMessage reports whether the love carries a non-blank message.
func (l Love) HasMessage() bool {
	return strings.TrimSpace(l.Message) != ""
}

// Association constrains a love listing to loves sent by, received by, or
// either, a given user.
type Association string

// Association values. The zero value means no association filter.
const (
	AssociationAll   Association = "all"
	AssociationLover Association = "lover"
	AssociationLovee Association = "lovee"
)

// LoveListHandler receives the outcome of a ListLoves call. Exactly one of
// the three callbacks fires, exactly once. Nil callbacks are skipped.
type LoveListHandler struct {
	OnSuccess               func(loves []Love, totalPages int)
	OnFail                  func(messages []string)
	OnAuthenticationFailure func()
}

// LoveHandler receives the outcome of a MakeLove call.
type LoveHandler struct {
	OnSuccess               func(love Love)
	OnFail                  func(messages []string)
	OnAuthenticationFailure func()
}

// AuthenticationHandler receives the outcome of an Authenticate call.
type AuthenticationHandler struct {
	OnSuccess               func(user *User)
	OnFail                  func(messages []string)
	OnAuthenticationFailure func()
}
