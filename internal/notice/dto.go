package notice

import (
	"time"

	"github.com/investmetic/investmetic/internal/shared"
)

// AttachmentRequest declares one file the author intends to upload.
type AttachmentRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileSize int64  `json:"file_size" validate:"required,min=1"`
}

type CreateRequest struct {
	Title   string              `json:"title" validate:"required,max=200"`
	Content string              `json:"content" validate:"required,max=8000"`
	Files   []AttachmentRequest `json:"files" validate:"omitempty,max=10,dive"`
}

type UpdateRequest struct {
	Title   string              `json:"title" validate:"required,max=200"`
	Content string              `json:"content" validate:"required,max=8000"`
	Files   []AttachmentRequest `json:"files" validate:"omitempty,max=10,dive"`
}

// UploadTarget pairs a declared filename with the presigned URL the client
// PUTs the bytes to.
type UploadTarget struct {
	FileName  string `json:"file_name"`
	UploadURL string `json:"upload_url"`
}

type CreateResponse struct {
	NoticeID int64          `json:"notice_id"`
	Uploads  []UploadTarget `json:"uploads,omitempty"`
}

type FileResponse struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

type DetailResponse struct {
	NoticeID  int64          `json:"notice_id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Files     []FileResponse `json:"files,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Row struct {
	NoticeID  int64     `json:"notice_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Page struct {
	Notices    []Row             `json:"notices"`
	Pagination shared.Pagination `json:"pagination"`
}
