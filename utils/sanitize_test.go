package utils

import (
	"strings"
	"testing"
)

func TestSanitizeStorageName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report", "report"},
		{"my report", "my_report"},
		{"weird$chars%here", "weird_chars_here"},
		{"dots...everywhere..", "dots.everywhere"},
		{"..leading", "leading"},
		{"trailing..", "trailing"},
		{"ok-name.v2", "ok-name.v2"},
	}
	for _, tc := range cases {
		if got := SanitizeStorageName(tc.in, 255); got != tc.want {
			t.Errorf("SanitizeStorageName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeStorageNameFallback(t *testing.T) {
	got := SanitizeStorageName("...", 255)
	if !strings.HasPrefix(got, "file_") {
		t.Errorf("all-dot name should fall back to timestamped name, got %q", got)
	}
}

func TestSanitizeStorageNameLength(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := SanitizeStorageName(long, 255)
	if len(got) != 255 {
		t.Errorf("len = %d, want 255", len(got))
	}
}

func TestSanitizeHeaderFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "download"},
		{"  ", "download"},
		{"plain.txt", "plain.txt"},
		{"evil\r\nheader.txt", "evilheader.txt"},
		{`quo"ted.txt`, "quoted.txt"},
	}
	for _, tc := range cases {
		if got := SanitizeHeaderFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeHeaderFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	got := AttachmentDisposition("report.pdf")
	if !strings.HasPrefix(got, `attachment; filename="report.pdf"`) {
		t.Errorf("disposition = %q", got)
	}
	if !strings.Contains(got, "filename*=UTF-8''") {
		t.Errorf("disposition missing RFC 5987 part: %q", got)
	}

	got = AttachmentDisposition("résumé.pdf")
	if strings.Contains(strings.SplitN(got, "filename*", 2)[0], "é") {
		t.Errorf("ascii fallback still has non-ascii bytes: %q", got)
	}
}
