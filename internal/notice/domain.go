package notice

import "time"

// Notice is a platform-wide announcement posted by an admin.
type Notice struct {
	ID        int64
	AuthorID  int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// File is an attachment on a notice. FileURL is the public object URL, Key
// the storage key used for deletion.
type File struct {
	ID       int64
	NoticeID int64
	FileName string
	FileURL  string
	Key      string
}
