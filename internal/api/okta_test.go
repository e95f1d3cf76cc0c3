package api

import "testing"

func TestFilterAuthCookies(t *testing.T) {
	raw := "SimpleSAMLAuthToken=tok; tracking=xyz; SimpleSAMLSessionID=sid; _ga=123; og_cookie=og; ogwall-pcookie=pc"

	filtered := FilterAuthCookies(raw)

	expected := "SimpleSAMLAuthToken=tok;SimpleSAMLSessionID=sid;og_cookie=og;ogwall-pcookie=pc;"
	if filtered != expected {
		t.Errorf("Expected %q, got %q", expected, filtered)
	}
}

func TestFilterAuthCookiesNoMatches(t *testing.T) {
	if got := FilterAuthCookies("tracking=xyz; _ga=123"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestFilterAuthCookiesEmptyInput(t *testing.T) {
	if got := FilterAuthCookies(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
