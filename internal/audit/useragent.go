package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// SummarizeUserAgent reduces a raw User-Agent header to "browser version/os".
func SummarizeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		name, _ := ua.Browser()
		return "bot/" + name
	}
	name, version := ua.Browser()
	browser := strings.TrimSpace(name + " " + majorVersion(version))
	os := ua.OS()
	if os == "" {
		os = "unknown"
	}
	if browser == "" {
		browser = "unknown"
	}
	return browser + "/" + os
}

func majorVersion(v string) string {
	if i := strings.IndexByte(v, '.'); i > 0 {
		return v[:i]
	}
	return v
}
