package notice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/users"
)

type memoryRepo struct {
	notices map[int64]*Notice
	files   map[int64][]File
	nextID  int64
	base    time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		notices: make(map[int64]*Notice),
		files:   make(map[int64][]File),
		base:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepo) Save(ctx context.Context, n *Notice, attachments []File) error {
	m.nextID++
	n.ID = m.nextID
	n.CreatedAt = m.base.Add(time.Duration(m.nextID) * time.Minute)
	n.UpdatedAt = n.CreatedAt
	clone := *n
	m.notices[n.ID] = &clone
	m.files[n.ID] = append([]File(nil), attachments...)
	return nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id int64) (*Notice, []File, error) {
	n, ok := m.notices[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: notice", httpx.ErrNotFound)
	}
	clone := *n
	return &clone, append([]File(nil), m.files[id]...), nil
}

func (m *memoryRepo) Update(ctx context.Context, n *Notice, attachments []File) error {
	stored, ok := m.notices[n.ID]
	if !ok {
		return fmt.Errorf("%w: notice", httpx.ErrNotFound)
	}
	stored.Title = n.Title
	stored.Content = n.Content
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
	m.files[n.ID] = append([]File(nil), attachments...)
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.notices[id]; !ok {
		return fmt.Errorf("%w: notice", httpx.ErrNotFound)
	}
	delete(m.notices, id)
	delete(m.files, id)
	return nil
}

func (m *memoryRepo) List(ctx context.Context, keyword string, page shared.PageRequest) ([]Notice, int, error) {
	var out []Notice
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for _, n := range m.notices {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(n.Title), keyword) &&
			!strings.Contains(strings.ToLower(n.Content), keyword) {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

// memoryStorage records presigned keys and deletions.
type memoryStorage struct {
	presigned []string
	deleted   []string
}

func (m *memoryStorage) PresignUpload(ctx context.Context, key string) (string, error) {
	m.presigned = append(m.presigned, key)
	return "https://upload.test/" + key, nil
}

func (m *memoryStorage) ObjectURL(key string) string {
	return "https://cdn.test/" + key
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

const (
	adminID    int64 = 1
	otherAdmin int64 = 2
	traderID   int64 = 3
)

func newService() (*Service, *memoryRepo, *memoryStorage) {
	repo := newMemoryRepo()
	storage := &memoryStorage{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, storage, logger), repo, storage
}

func TestCreateNotice(t *testing.T) {
	svc, repo, storage := newService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, adminID, users.RoleSuperAdmin, CreateRequest{
		Title:   " Maintenance window ",
		Content: "Sunday 02:00 UTC",
		Files:   []AttachmentRequest{{FileName: "plan.pdf", FileSize: 2048}},
	})
	require.NoError(t, err)
	require.NotZero(t, resp.NoticeID)
	require.Len(t, resp.Uploads, 1)
	assert.Equal(t, "plan.pdf", resp.Uploads[0].FileName)
	assert.Contains(t, resp.Uploads[0].UploadURL, "notices/")
	require.Len(t, storage.presigned, 1)

	stored, attachments, err := repo.FindByID(ctx, resp.NoticeID)
	require.NoError(t, err)
	assert.Equal(t, "Maintenance window", stored.Title)
	require.Len(t, attachments, 1)
	assert.Contains(t, attachments[0].FileURL, "https://cdn.test/notices/")
}

func TestCreateNoticeForbiddenForNonAdmins(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Create(context.Background(), traderID, users.RoleTrader, CreateRequest{
		Title: "t", Content: "c",
	})
	require.ErrorIs(t, err, httpx.ErrForbidden)
	assert.Empty(t, repo.notices)
}

func TestCreateNoticeValidation(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Create(context.Background(), adminID, users.RoleInvestorAdmin, CreateRequest{
		Title: "   ", Content: "c",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
	assert.Empty(t, repo.notices)
}

func TestUpdateNotice(t *testing.T) {
	svc, _, storage := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminID, users.RoleSuperAdmin, CreateRequest{
		Title: "v1", Content: "c",
		Files: []AttachmentRequest{{FileName: "old.pdf", FileSize: 10}},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.NoticeID, adminID, UpdateRequest{
		Title: "v2", Content: "c",
		Files: []AttachmentRequest{{FileName: "new.pdf", FileSize: 10}},
	})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, created.NoticeID)
	require.NoError(t, err)
	assert.Equal(t, "v2", detail.Title)
	require.Len(t, detail.Files, 1)
	assert.Equal(t, "new.pdf", detail.Files[0].FileName)

	// the replaced object was removed from storage
	require.Len(t, storage.deleted, 1)
	assert.Contains(t, storage.deleted[0], "old.pdf")
}

func TestUpdateNoticeAuthorOnly(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminID, users.RoleSuperAdmin, CreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.NoticeID, otherAdmin, UpdateRequest{Title: "x", Content: "y"})
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestDeleteNotice(t *testing.T) {
	svc, _, storage := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminID, users.RoleSuperAdmin, CreateRequest{
		Title: "t", Content: "c",
		Files: []AttachmentRequest{{FileName: "doc.pdf", FileSize: 10}},
	})
	require.NoError(t, err)

	// a non-author non-admin may not delete
	err = svc.Delete(ctx, created.NoticeID, traderID, users.RoleTrader)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	// another admin may
	require.NoError(t, svc.Delete(ctx, created.NoticeID, otherAdmin, users.RoleInvestorAdmin))
	_, err = svc.Get(ctx, created.NoticeID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Len(t, storage.deleted, 1)
}

func TestListNotices(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	for _, title := range []string{"release 1.0", "maintenance", "release 1.1"} {
		_, err := svc.Create(ctx, adminID, users.RoleSuperAdmin, CreateRequest{Title: title, Content: "c"})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "", shared.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Pagination.Total)
	// newest first
	assert.Equal(t, "release 1.1", all.Notices[0].Title)

	filtered, err := svc.List(ctx, "release", shared.PageRequest{PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.Pagination.Total)
	assert.Len(t, filtered.Notices, 1)
}
