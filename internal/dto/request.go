package dto

type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Name          string `json:"name" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateKeyRequest struct {
	Name string `json:"name"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// UploadOptions are the optional metadata fields accepted alongside
// the multipart file part.
type UploadOptions struct {
	Duration string `json:"duration"`
}

type CleanupTrigger struct {
	Reason      string `json:"reason"`
	RequestedAt int64  `json:"requested_at"`
}
