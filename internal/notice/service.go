package notice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/investmetic/investmetic/internal/files"
	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/users"
)

// Service orchestrates announcement lifecycle. Attachments live in object
// storage; the database keeps only names, URLs and keys.
type Service struct {
	repo    RepositoryPort
	storage files.Storage
	logger  *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, storage files.Storage, logger *slog.Logger) *Service {
	return &Service{repo: repo, storage: storage, logger: logger}
}

// Create persists a notice with its attachment records and returns presigned
// upload targets for the declared files.
func (s *Service) Create(ctx context.Context, authorID int64, role users.Role, req CreateRequest) (*CreateResponse, error) {
	if !role.IsAdminClass() {
		return nil, httpx.ErrForbidden
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content required", httpx.ErrValidation)
	}

	attachments, uploads, err := s.prepareAttachments(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	n := &Notice{AuthorID: authorID, Title: title, Content: content}
	if err := s.repo.Save(ctx, n, attachments); err != nil {
		return nil, fmt.Errorf("save notice: %w", err)
	}
	return &CreateResponse{NoticeID: n.ID, Uploads: uploads}, nil
}

// Update replaces the notice body and its attachment set. Only the original
// author may edit; old objects are removed from storage.
func (s *Service) Update(ctx context.Context, noticeID, callerID int64, req UpdateRequest) (*CreateResponse, error) {
	current, oldFiles, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return nil, fmt.Errorf("resolve notice: %w", err)
	}
	if current.AuthorID != callerID {
		return nil, httpx.ErrForbidden
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content required", httpx.ErrValidation)
	}

	attachments, uploads, err := s.prepareAttachments(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	current.Title = title
	current.Content = content
	if err := s.repo.Update(ctx, current, attachments); err != nil {
		return nil, fmt.Errorf("update notice: %w", err)
	}
	s.removeObjects(ctx, oldFiles)
	return &CreateResponse{NoticeID: current.ID, Uploads: uploads}, nil
}

// Get returns the notice detail with its attachments. Notices are public.
func (s *Service) Get(ctx context.Context, noticeID int64) (*DetailResponse, error) {
	n, attachments, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return nil, fmt.Errorf("resolve notice: %w", err)
	}
	resp := &DetailResponse{
		NoticeID:  n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	for _, f := range attachments {
		resp.Files = append(resp.Files, FileResponse{FileName: f.FileName, FileURL: f.FileURL})
	}
	return resp, nil
}

// List returns a page of notices, optionally filtered by a title or content
// keyword.
func (s *Service) List(ctx context.Context, keyword string, page shared.PageRequest) (*Page, error) {
	page = page.Normalize()
	notices, total, err := s.repo.List(ctx, keyword, page)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	rows := make([]Row, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, Row{NoticeID: n.ID, Title: n.Title, CreatedAt: n.CreatedAt})
	}
	return &Page{
		Notices:    rows,
		Pagination: shared.NewPagination(page.Page, page.PerPage, total),
	}, nil
}

// Delete removes a notice. The author or any admin may delete; attachments
// are removed from storage after the rows are gone.
func (s *Service) Delete(ctx context.Context, noticeID, callerID int64, role users.Role) error {
	n, attachments, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("resolve notice: %w", err)
	}
	if n.AuthorID != callerID && !role.IsAdminClass() {
		return httpx.ErrForbidden
	}
	if err := s.repo.Delete(ctx, noticeID); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	s.removeObjects(ctx, attachments)
	return nil
}

func (s *Service) prepareAttachments(ctx context.Context, reqs []AttachmentRequest) ([]File, []UploadTarget, error) {
	var attachments []File
	var uploads []UploadTarget
	for _, f := range reqs {
		if err := files.Validate(files.KindNotice, f.FileName, f.FileSize); err != nil {
			return nil, nil, err
		}
		key, err := files.BuildKey(files.KindNotice, f.FileName)
		if err != nil {
			return nil, nil, err
		}
		uploadURL, err := s.storage.PresignUpload(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("presign upload: %w", err)
		}
		attachments = append(attachments, File{
			FileName: f.FileName,
			FileURL:  s.storage.ObjectURL(key),
			Key:      key,
		})
		uploads = append(uploads, UploadTarget{FileName: f.FileName, UploadURL: uploadURL})
	}
	return attachments, uploads, nil
}

// removeObjects is best effort: a stranded object costs storage, a failed
// request must not fail the mutation that already committed.
func (s *Service) removeObjects(ctx context.Context, attachments []File) {
	for _, f := range attachments {
		if err := s.storage.Delete(ctx, f.Key); err != nil {
			s.logger.Warn("orphaned storage object", "key", f.Key, "error", err)
		}
	}
}
