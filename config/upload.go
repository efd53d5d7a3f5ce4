package config

import "sync"

// UploadConfig holds the upload policy: size cap and extension allow-list.
type UploadConfig struct {
	MaxFileSize       int64    `json:"max_file_size"`
	AllowedExtensions []string `json:"allowed_extensions"`
}

const defaultMaxFileSize = 100 * 1024 * 1024 // 100MB

var defaultAllowedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp",
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".odt", ".ods", ".odp",
	".txt", ".csv", ".json", ".xml", ".md",
	".zip", ".rar", ".7z", ".tar", ".gz",
	".mp3", ".mp4", ".avi", ".mov", ".wav", ".flv", ".wmv", ".mkv",
	".js", ".ts", ".html", ".css", ".php", ".py", ".java", ".cpp",
}

var UploadConfigInstance *UploadConfig
var uploadConfigOnce sync.Once

// InitUploadConfig initializes the upload policy.
func InitUploadConfig() {
	uploadConfigOnce.Do(func() {
		UploadConfigInstance = &UploadConfig{
			MaxFileSize:       getEnvInt64("UPLOAD_MAX_FILE_SIZE", defaultMaxFileSize),
			AllowedExtensions: defaultAllowedExtensions,
		}
	})
}
