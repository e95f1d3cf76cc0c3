package api

import (
	"fmt"
	"unicode"

	"github.com/ometa/lovemonster-cli-go/internal/cache"
	"github.com/ometa/lovemonster-cli-go/internal/core"
)

// ResponseParser converts raw JSON payloads into model objects.
//
// A parser owns a small LRU cache which deduplicates User objects by email
// across parse calls. The cache is not synchronized; callers parsing from
// multiple goroutines must serialize access themselves.
type ResponseParser struct {
	useUserCache          bool
	profileImageURLFormat string
	userCache             *cache.LRU[*User]
}

// NewResponseParser creates a parser with user caching enabled.
func NewResponseParser(profileImageURLFormat string) *ResponseParser {
	return NewResponseParserWithCache(true, profileImageURLFormat)
}

// NewResponseParserWithCache creates a parser with explicit control over
// user caching. Disabling the cache makes every ParseUser call return a
// freshly parsed instance.
func NewResponseParserWithCache(useUserCache bool, profileImageURLFormat string) *ResponseParser {
	return &ResponseParser{
		useUserCache:          useUserCache,
		profileImageURLFormat: profileImageURLFormat,
		userCache:             cache.NewLRU[*User](core.UserCacheSize),
	}
}

// ParseLoveList parses the loves from a response envelope. May return an
// empty slice, but never nil. Elements which cannot be parsed are excluded
// from the result rather than failing the whole list: partial data beats
// total failure for a page of loves.
func (p *ResponseParser) ParseLoveList(envelope map[string]interface{}) []Love {
	loves := make([]Love, 0)

	if envelope == nil {
		return loves
	}

	raw, ok := envelope["data"].([]interface{})
	if !ok {
		return loves
	}

	for _, element := range raw {
		obj, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		if love, ok := p.parseLove(obj); ok {
			loves = append(loves, love)
		}
	}

	return loves
}

// parseLove parses a single love record. If any required field (reason,
// user_from, user_to, created_at) cannot be parsed the whole record is
// discarded; there are no partial Love values. Optional fields are applied
// only once construction has succeeded.
func (p *ResponseParser) parseLove(obj map[string]interface{}) (Love, bool) {
	reason, ok := parseString(obj, "reason")
	if !ok {
		return Love{}, false
	}

	lover := p.ParseUser(childObject(obj, "user_from"))
	if lover == nil {
		return Love{}, false
	}

	lovee := p.ParseUser(childObject(obj, "user_to"))
	if lovee == nil {
		return Love{}, false
	}

	createdRaw, ok := parseString(obj, "created_at")
	if !ok {
		return Love{}, false
	}
	createdAt, err := core.ParseTimestamp(createdRaw)
	if err != nil {
		return Love{}, false
	}

	love := Love{
		Reason:    reason,
		Lover:     lover,
		Lovee:     lovee,
		CreatedAt: createdAt,
	}

	love.Message, _ = parseString(obj, "message")
	if private, ok := obj["private_message"].(bool); ok {
		love.IsPrivate = private
	}

	return love, true
}

// ParseUser parses a user record. Returns nil if the required email or
// username fields cannot be parsed. With caching enabled, a previously
// parsed user with the same email is returned as-is without re-validating
// the new payload; this identity stabilization means later fields can go
// stale relative to newer payloads.
func (p *ResponseParser) ParseUser(obj map[string]interface{}) *User {
	if obj == nil {
		return nil
	}

	email, ok := parseString(obj, "email")
	if !ok {
		return nil
	}

	if p.useUserCache {
		if user, ok := p.userCache.Get(email); ok {
			return user
		}
	}

	username, ok := parseString(obj, "username")
	if !ok {
		return nil
	}

	user := &User{Email: email, Username: username}
	user.Name, _ = parseString(obj, "name")
	user.ProfileImageURL = fmt.Sprintf(p.profileImageURLFormat, username)

	if p.useUserCache {
		p.userCache.Put(email, user)
	}

	return user
}

// parseString extracts a non-blank string attribute. A value is blank, and
// treated as absent, when stripping all whitespace leaves zero characters.
// The returned value keeps its original whitespace.
func parseString(obj map[string]interface{}, key string) (string, bool) {
	value, ok := obj[key].(string)
	if !ok {
		return "", false
	}

	for _, r := range value {
		if !unicode.IsSpace(r) {
			return value, true
		}
	}

	return "", false
}

// childObject returns the named child as an object, or nil.
func childObject(obj map[string]interface{}, key string) map[string]interface{} {
	child, _ := obj[key].(map[string]interface{})
	return child
}
