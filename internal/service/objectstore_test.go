package service

import (
	"testing"
	"time"
)

func TestObjectMetadataCarriesCatalogAttributes(t *testing.T) {
	uploadedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	expiresAt := uploadedAt.Add(time.Hour)

	metadata := objectMetadata(ObjectAttrs{
		UserID:       "user-1",
		OriginalName: "report.pdf",
		Duration:     DurationHour,
		UploadedAt:   uploadedAt,
		ExpiresAt:    &expiresAt,
	})

	if metadata["user-id"] != "user-1" {
		t.Errorf("user-id = %q", metadata["user-id"])
	}
	if metadata["original-name"] != "report.pdf" {
		t.Errorf("original-name = %q", metadata["original-name"])
	}
	if metadata["duration"] != DurationHour {
		t.Errorf("duration = %q", metadata["duration"])
	}
	if metadata["uploaded-at"] != "2026-08-28T12:00:00Z" {
		t.Errorf("uploaded-at = %q", metadata["uploaded-at"])
	}
	if metadata["expires-at"] != "2026-08-28T13:00:00Z" {
		t.Errorf("expires-at = %q", metadata["expires-at"])
	}
}

func TestObjectMetadataUnlimitedOmitsExpiry(t *testing.T) {
	metadata := objectMetadata(ObjectAttrs{
		UserID:       "user-1",
		OriginalName: "note.txt",
		Duration:     DurationUnlimited,
		UploadedAt:   time.Now(),
	})
	if _, ok := metadata["expires-at"]; ok {
		t.Error("expires-at should be absent for unlimited retention")
	}
}

func TestGetContentType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"doc.pdf", "application/pdf"},
		{"notes.txt", "text/plain; charset=utf-8"},
		{"clip.mp4", "video/mp4"},
		{"song.mp3", "audio/mpeg"},
		{"archive.zip", "application/zip"},
		{"binary.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := GetContentType(tc.in); got != tc.want {
			t.Errorf("GetContentType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsPreviewable(t *testing.T) {
	previewable := []string{"a.jpg", "b.png", "c.pdf", "d.txt", "e.mp4", "f.mp3"}
	for _, name := range previewable {
		if !IsPreviewable(name) {
			t.Errorf("%q should be previewable", name)
		}
	}

	notPreviewable := []string{"a.zip", "b.docx", "c.exe", "d.tar", "noext"}
	for _, name := range notPreviewable {
		if IsPreviewable(name) {
			t.Errorf("%q should not be previewable", name)
		}
	}
}
