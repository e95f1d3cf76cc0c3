package api

import "strings"

// oktaCookiePrefixes are the cookies the backend's SSO layer needs to
// recognize an authenticated session.
var oktaCookiePrefixes = []string{
	"SimpleSAMLAuthToken=",
	"SimpleSAMLSessionID=",
	"og_cookie=",
	"ogwall-pcookie=",
}

// FilterAuthCookies reduces a raw Cookie header value from the web login
// flow to just the auth cookies, formatted for the Cookie header.
func FilterAuthCookies(rawCookies string) string {
	var builder strings.Builder
	for _, cookie := range strings.Split(rawCookies, ";") {
		if isAuthCookie(cookie) {
			builder.WriteString(strings.TrimSpace(cookie))
			builder.WriteString(";")
		}
	}
	return builder.String()
}

func isAuthCookie(cookie string) bool {
	trimmed := strings.TrimSpace(cookie)
	for _, prefix := range oktaCookiePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
