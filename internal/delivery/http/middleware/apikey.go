package middleware

import (
	"strings"
	"sync"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyMiddleware guards the intake with a shared key checked against a
// bcrypt hash. An empty hash disables the check.
type APIKeyMiddleware struct {
	hash []byte

	mu       sync.RWMutex
	verified map[string]struct{}
}

func NewAPIKeyMiddleware(hash string) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		hash:     []byte(strings.TrimSpace(hash)),
		verified: make(map[string]struct{}),
	}
}

func (m *APIKeyMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(m.hash) == 0 {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("apikey"))
		if key == "" {
			key, _ = BearerToken(c.Get("Authorization"))
		}
		if key == "" || !m.check(key) {
			return response.IntakeError(c, fiber.StatusUnauthorized, response.MessageUnauthorized)
		}
		return c.Next()
	}
}

// check remembers keys that already passed so bcrypt runs once per key.
func (m *APIKeyMiddleware) check(key string) bool {
	m.mu.RLock()
	_, ok := m.verified[key]
	m.mu.RUnlock()
	if ok {
		return true
	}

	if bcrypt.CompareHashAndPassword(m.hash, []byte(key)) != nil {
		return false
	}

	m.mu.Lock()
	m.verified[key] = struct{}{}
	m.mu.Unlock()
	return true
}
