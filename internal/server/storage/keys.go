package storage

import (
	"crypto/rand"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// KeyGenerator builds object keys of the form
// users/<uid>/<yyyy>/<mm>/<dd>/<ulid><ext>. Keys minted by one generator
// sort in creation order.
type KeyGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *KeyGenerator) Key(userID, filename string, now time.Time) string {
	now = now.UTC()

	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), g.entropy)
	g.mu.Unlock()

	return fmt.Sprintf("users/%s/%04d/%02d/%02d/%s%s",
		userID, now.Year(), int(now.Month()), now.Day(), id, strings.ToLower(path.Ext(filename)))
}

// OwnedBy reports whether key lives under userID's prefix.
func OwnedBy(key, userID string) bool {
	return userID != "" && strings.HasPrefix(key, "users/"+userID+"/")
}
