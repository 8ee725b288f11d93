package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("INVESTMETIC_TEST_MODE") == "" {
			_ = os.Setenv("INVESTMETIC_TEST_MODE", "1")
		}
	})
}
