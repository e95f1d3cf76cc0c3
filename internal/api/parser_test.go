package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfileImageURLFormat = "https://love.example.com/avatars/%s.png"

func newTestParser() *ResponseParser {
	return NewResponseParser(testProfileImageURLFormat)
}

func userJSON(email, username string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"username": username,
	}
}

func loveJSON() map[string]interface{} {
	return map[string]interface{}{
		"reason":     "helped me ship",
		"created_at": "2020-01-01T00:00:00",
		"user_from":  userJSON("a@x.com", "a"),
		"user_to":    userJSON("b@x.com", "b"),
	}
}

func envelope(loves ...interface{}) map[string]interface{} {
	return map[string]interface{}{"data": loves}
}

func TestParseLoveList(t *testing.T) {
	loves := newTestParser().ParseLoveList(envelope(loveJSON()))

	require.Len(t, loves, 1)
	love := loves[0]
	assert.Equal(t, "helped me ship", love.Reason)
	assert.Equal(t, "a", love.Lover.Username)
	assert.Equal(t, "b", love.Lovee.Username)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), love.CreatedAt)
	assert.False(t, love.IsPrivate)
	assert.False(t, love.HasMessage())
	assert.Empty(t, love.Message)
}

func TestParseLoveListOptionalFields(t *testing.T) {
	record := loveJSON()
	record["message"] = "thanks again"
	record["private_message"] = true

	loves := newTestParser().ParseLoveList(envelope(record))

	require.Len(t, loves, 1)
	assert.Equal(t, "thanks again", loves[0].Message)
	assert.True(t, loves[0].HasMessage())
	assert.True(t, loves[0].IsPrivate)
}

func TestParseLoveListSkipsRecordsMissingRequiredFields(t *testing.T) {
	for _, missing := range []string{"reason", "user_from", "user_to", "created_at"} {
		t.Run("missing "+missing, func(t *testing.T) {
			record := loveJSON()
			delete(record, missing)

			loves := newTestParser().ParseLoveList(envelope(record, loveJSON()))

			// The malformed record is excluded; the good one survives.
			assert.Len(t, loves, 1)
		})
	}
}

func TestParseLoveListSkipsUnparseableCreatedAt(t *testing.T) {
	record := loveJSON()
	record["created_at"] = "last tuesday"

	assert.Empty(t, newTestParser().ParseLoveList(envelope(record)))
}

func TestParseLoveListBlankMessageTreatedAsAbsent(t *testing.T) {
	for _, blank := range []string{"", " ", "\t\n  "} {
		record := loveJSON()
		record["message"] = blank

		loves := newTestParser().ParseLoveList(envelope(record))

		require.Len(t, loves, 1)
		assert.False(t, loves[0].HasMessage(), "message %q should be absent", blank)
		assert.Empty(t, loves[0].Message)
	}
}

func TestParseLoveListEmptyInputs(t *testing.T) {
	parser := newTestParser()

	assert.NotNil(t, parser.ParseLoveList(nil))
	assert.Empty(t, parser.ParseLoveList(nil))
	assert.Empty(t, parser.ParseLoveList(map[string]interface{}{}))
	assert.Empty(t, parser.ParseLoveList(map[string]interface{}{"data": "not an array"}))
}

func TestParseLoveListSkipsNonObjectElements(t *testing.T) {
	loves := newTestParser().ParseLoveList(envelope("bogus", loveJSON(), float64(7)))

	assert.Len(t, loves, 1)
}

func TestParseUser(t *testing.T) {
	record := userJSON("carol@x.com", "carol")
	record["name"] = "Carol Chen"

	user := newTestParser().ParseUser(record)

	require.NotNil(t, user)
	assert.Equal(t, "carol@x.com", user.Email)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, "Carol Chen", user.Name)
	assert.Equal(t, "https://love.example.com/avatars/carol.png", user.ProfileImageURL)
}

func TestParseUserRequiredFields(t *testing.T) {
	parser := newTestParser()

	assert.Nil(t, parser.ParseUser(nil))
	assert.Nil(t, parser.ParseUser(map[string]interface{}{"username": "a"}))
	assert.Nil(t, parser.ParseUser(map[string]interface{}{"email": "a@x.com"}))
	assert.Nil(t, parser.ParseUser(userJSON("  \t ", "a")))
	assert.Nil(t, parser.ParseUser(userJSON("a@x.com", "")))
}

func TestParseUserCacheReturnsSameInstance(t *testing.T) {
	parser := newTestParser()

	first := parser.ParseUser(userJSON("a@x.com", "a"))
	require.NotNil(t, first)

	// A later payload for the same email short-circuits to the cached
	// instance; the differing fields in the new payload are ignored.
	changed := userJSON("a@x.com", "renamed")
	changed["name"] = "Somebody Else"
	second := parser.ParseUser(changed)

	assert.Same(t, first, second)
	assert.Equal(t, "a", second.Username)
}

func TestParseUserCacheDisabled(t *testing.T) {
	parser := NewResponseParserWithCache(false, testProfileImageURLFormat)

	first := parser.ParseUser(userJSON("a@x.com", "a"))
	second := parser.ParseUser(userJSON("a@x.com", "a"))

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
}

func TestParseLoveListSharesCachedUsersAcrossRecords(t *testing.T) {
	parser := newTestParser()

	loves := parser.ParseLoveList(envelope(loveJSON(), loveJSON()))

	require.Len(t, loves, 2)
	assert.Same(t, loves[0].Lover, loves[1].Lover)
	assert.Same(t, loves[0].Lovee, loves[1].Lovee)
}

func TestUserIdentityByUsername(t *testing.T) {
	a := &User{Email: "a@x.com", Username: "shared"}
	b := &User{Email: "b@x.com", Username: "shared", Name: "Different"}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(&User{Username: "other"}))
	assert.False(t, a.Same(nil))
}
