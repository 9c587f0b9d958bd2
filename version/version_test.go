package version

import (
	"strings"
	"testing"
)

func TestShortIncludesVersion(t *testing.T) {
	if !strings.HasPrefix(Short(), Version) {
		t.Errorf("Short() = %q, want prefix %q", Short(), Version)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "fluent-lm/") {
		t.Errorf("UserAgent() = %q, want fluent-lm/ prefix", ua)
	}
	if strings.ContainsAny(ua, " \n") {
		t.Errorf("UserAgent() = %q contains whitespace", ua)
	}
}
