package dto

import "time"

// FileView is the public shape of a catalog record.
type FileView struct {
	ID           string     `json:"id"`
	FileName     string     `json:"file_name"`
	OriginalName string     `json:"original_name"`
	Size         int64      `json:"size"`
	MimeType     string     `json:"mime_type"`
	Extension    string     `json:"extension"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	Duration     string     `json:"duration"`
	DownloadURL  string     `json:"download_url"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

type FileListResponse struct {
	Files      []FileView `json:"files"`
	Pagination Pagination `json:"pagination"`
}

type UploadResponse struct {
	File FileView `json:"file"`
}

// KeyView is the public shape of an API key. The raw key is only
// present on the create response.
type KeyView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	Key        string     `json:"key,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	RevokedAt  *time.Time `json:"revoked_at"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CleanupSummary is the result of one expiry sweep.
type CleanupSummary struct {
	ProcessedCount int `json:"processedCount"`
	DeletedCount   int `json:"deletedCount"`
	ErrorCount     int `json:"errorCount"`
}
