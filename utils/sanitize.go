package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// SanitizeHeaderFilename removes characters that can break headers.
func SanitizeHeaderFilename(name string) string {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "download"
	}
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.ReplaceAll(clean, "\n", "")
	clean = strings.ReplaceAll(clean, "\"", "")
	return clean
}

var (
	unsafeChars   = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	repeatedDots  = regexp.MustCompile(`\.{2,}`)
	nonASCIIChars = regexp.MustCompile(`[^\x20-\x7e]`)
)

// SanitizeStorageName normalizes a file base name for use inside a
// storage key. Everything outside [a-zA-Z0-9.-] becomes an
// underscore, dot runs collapse, and edge dots are trimmed.
func SanitizeStorageName(name string, maxLen int) string {
	clean := unsafeChars.ReplaceAllString(name, "_")
	clean = repeatedDots.ReplaceAllString(clean, ".")
	clean = strings.Trim(clean, ".")
	if maxLen > 0 && len(clean) > maxLen {
		clean = clean[:maxLen]
	}
	if clean == "" {
		return fmt.Sprintf("file_%d", time.Now().UnixMilli())
	}
	return clean
}

// AttachmentDisposition builds a Content-Disposition value with an
// ASCII fallback plus an RFC 5987 encoded full name.
func AttachmentDisposition(fileName string) string {
	safe := SanitizeHeaderFilename(fileName)
	fallback := nonASCIIChars.ReplaceAllString(safe, "_")
	if fallback == "" {
		fallback = "download"
	}
	encoded := url.PathEscape(safe)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, encoded)
}
