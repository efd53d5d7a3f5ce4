package service

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildStorageKey(t *testing.T) {
	key := BuildStorageKey("My Report (final).pdf")

	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("storage key %q should keep the extension", key)
	}
	if strings.ContainsAny(key, " ()") {
		t.Errorf("storage key %q should not contain unsafe characters", key)
	}
	// 36 UUID chars plus the separator dash.
	if len(key) < 38 {
		t.Errorf("storage key %q too short to carry a UUID prefix", key)
	}
	if key == BuildStorageKey("My Report (final).pdf") {
		t.Error("two uploads of the same name must get distinct keys")
	}
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		size     int64
		wantCode string
	}{
		{"ok pdf", "report.pdf", 100, ""},
		{"ok image", "photo.JPG", 100, ""},
		{"empty name", "", 100, "NO_FILE"},
		{"zero bytes", "empty.txt", 0, "NO_FILE"},
		{"no extension", "README", 100, "INVALID_FILE_TYPE"},
		{"blocked extension", "payload.exe", 100, "INVALID_FILE_TYPE"},
		{"path separator", "../etc/passwd.txt", 100, "INVALID_NAME"},
		{"too long", strings.Repeat("a", 300) + ".txt", 100, "NAME_TOO_LONG"},
		{"too large", "big.zip", 200 * 1024 * 1024, "FILE_TOO_LARGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateUpload(tc.fileName, tc.size)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var svcErr *Error
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected service error, got %v", err)
			}
			if svcErr.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", svcErr.Code, tc.wantCode)
			}
		})
	}
}

func TestValidateUploadExtensionCase(t *testing.T) {
	ext, err := ValidateUpload("ARCHIVE.ZIP", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext != ".zip" {
		t.Errorf("extension = %q, want lowercase .zip", ext)
	}
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("hello"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q, want %q", data, "hello")
	}

	_, err = ReadLimited(strings.NewReader("this is too long"), 4)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != "FILE_TOO_LARGE" {
		t.Errorf("expected FILE_TOO_LARGE, got %v", err)
	}
}
