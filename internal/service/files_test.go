package service

import (
	"FlowVault/config"
	"FlowVault/model"
	"strings"
	"testing"
	"time"
)

func TestClampPageLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 10},
		{-5, 10},
		{1, 1},
		{10, 10},
		{100, 100},
		{101, 100},
		{100000, 100},
	}
	for _, tc := range cases {
		if got := ClampPageLimit(tc.in); got != tc.want {
			t.Errorf("ClampPageLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, totalPages, want int
	}{
		{0, 5, 1},
		{-1, 5, 1},
		{1, 5, 1},
		{5, 5, 5},
		{6, 5, 5},
		{3, 0, 3},
	}
	for _, tc := range cases {
		if got := ClampPage(tc.page, tc.totalPages); got != tc.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tc.page, tc.totalPages, got, tc.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
		{101, 100, 2},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestToFileView(t *testing.T) {
	uploadedAt := time.Now()
	expiresAt := uploadedAt.Add(time.Hour)
	record := &model.FileRecord{
		ID:           "rec-1",
		UserID:       "user-1",
		OriginalName: "report.pdf",
		StorageKey:   "abc-report.pdf",
		Size:         1234,
		MimeType:     "application/pdf",
		Extension:    ".pdf",
		UploadedAt:   uploadedAt,
		ExpiresAt:    &expiresAt,
		Duration:     "1h",
		DownloadURL:  "/api/download/abc-report.pdf",
	}

	view := ToFileView(record)
	if view.ID != record.ID {
		t.Errorf("view ID = %q, want %q", view.ID, record.ID)
	}
	if view.FileName != record.StorageKey {
		t.Errorf("view FileName = %q, want storage key %q", view.FileName, record.StorageKey)
	}
	if view.OriginalName != record.OriginalName {
		t.Errorf("view OriginalName = %q, want %q", view.OriginalName, record.OriginalName)
	}
	if view.ExpiresAt == nil || !view.ExpiresAt.Equal(expiresAt) {
		t.Errorf("view ExpiresAt = %v, want %v", view.ExpiresAt, expiresAt)
	}
	base := strings.TrimRight(config.AppConfig.AppBaseURL, "/")
	if want := base + "/api/download/abc-report.pdf"; view.DownloadURL != want {
		t.Errorf("view DownloadURL = %q, want %q", view.DownloadURL, want)
	}
}

func TestDownloadPath(t *testing.T) {
	got := DownloadPath("abc-report v2.pdf")
	if want := "/api/download/abc-report%20v2.pdf"; got != want {
		t.Errorf("DownloadPath = %q, want %q", got, want)
	}
}

func TestAbsoluteDownloadURLFallsBackToStorageKey(t *testing.T) {
	record := &model.FileRecord{StorageKey: "abc-note.txt"}
	base := strings.TrimRight(config.AppConfig.AppBaseURL, "/")
	if got, want := absoluteDownloadURL(record), base+"/api/download/abc-note.txt"; got != want {
		t.Errorf("absoluteDownloadURL = %q, want %q", got, want)
	}
}
