package email

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

const (
	codeTTL    = 5 * time.Minute
	codeDigits = 6
	keyPrefix  = "email:authcode:"
)

// CodeService issues and verifies short-lived email verification codes.
type CodeService struct {
	rdb *redis.Client
}

// NewCodeService builds CodeService instance.
func NewCodeService(rdb *redis.Client) *CodeService {
	return &CodeService{rdb: rdb}
}

// IssueCode generates a fresh 6-digit code for the address and stores it for
// five minutes. Re-issuing replaces the previous code.
func (s *CodeService) IssueCode(ctx context.Context, address string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+address, code, codeTTL).Err(); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// VerifyCode checks the submitted code against the stored one and consumes
// it on success. Expired or never-issued codes report not found; a mismatch
// keeps the stored code so the user may retry.
func (s *CodeService) VerifyCode(ctx context.Context, address, code string) error {
	stored, err := s.rdb.Get(ctx, keyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: verification code", httpx.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}
	if stored != code {
		return fmt.Errorf("%w: verification code mismatch", httpx.ErrValidation)
	}
	if err := s.rdb.Del(ctx, keyPrefix+address).Err(); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}

func randomCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
