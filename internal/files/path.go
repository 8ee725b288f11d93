package files

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

// Kind decides the object key prefix and the validation rules applied to an
// upload.
type Kind string

const (
	KindUserProfile   Kind = "USER_PROFILE"
	KindStrategyExcel Kind = "STRATEGY_EXCEL"
	KindStrategyImage Kind = "STRATEGY_IMAGE"
	KindNotice        Kind = "NOTICE"
	KindQna           Kind = "QNA"
)

const (
	maxImageSize = 2 << 20   // 2 MiB
	maxExcelSize = 500 << 20 // 500 MiB
)

var prefixes = map[Kind]string{
	KindUserProfile:   "users/profile/",
	KindStrategyExcel: "strategies/excel/",
	KindStrategyImage: "strategies/image/",
	KindNotice:        "notices/",
	KindQna:           "qna/",
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
var excelExts = map[string]bool{".xls": true, ".xlsx": true}

// Validate checks a declared filename and size against the rules for the
// kind. Attachments for notices and inquiries carry no restrictions.
func Validate(kind Kind, filename string, size int64) error {
	ext := strings.ToLower(path.Ext(filename))
	switch kind {
	case KindUserProfile, KindStrategyImage:
		if !imageExts[ext] {
			return fmt.Errorf("%w: image must be jpg, jpeg or png", httpx.ErrValidation)
		}
		if size >= maxImageSize {
			return fmt.Errorf("%w: image exceeds 2MiB", httpx.ErrValidation)
		}
	case KindStrategyExcel:
		if !excelExts[ext] {
			return fmt.Errorf("%w: spreadsheet must be xls or xlsx", httpx.ErrValidation)
		}
		if size >= maxExcelSize {
			return fmt.Errorf("%w: spreadsheet exceeds 500MiB", httpx.ErrValidation)
		}
	case KindNotice, KindQna:
		// unrestricted
	default:
		return fmt.Errorf("%w: unknown file kind %q", httpx.ErrValidation, kind)
	}
	return nil
}

// BuildKey derives a collision-free object key for an upload. The original
// filename is kept as a suffix so downloads stay recognizable.
func BuildKey(kind Kind, filename string) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown file kind %q", httpx.ErrValidation, kind)
	}
	name := strings.TrimSpace(path.Base(filename))
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: filename required", httpx.ErrValidation)
	}
	return prefix + uuid.NewString() + "-" + name, nil
}
