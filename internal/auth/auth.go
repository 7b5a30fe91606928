// Package auth guards the two entry points of the app: parents log in with a
// password and receive a bearer token for the dashboard; learners enter the
// quiz area with a per-learner secret key.
package auth

import (
	"fmt"
	"sync"
	"time"

	"gamified-learning-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenManager issues and verifies HS256 bearer tokens for parent sessions.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue mints a token whose subject is the parent name.
func (m *TokenManager) Issue(parent string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   parent,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token and returns the parent name it was issued to.
func (m *TokenManager) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// Service checks parent passwords and learner secret keys against bcrypt
// hashes. Profiles come from configuration; registration flows live in the
// outer management UI, not here.
type Service struct {
	tokens   *TokenManager
	mu       sync.RWMutex
	parents  map[string]string // name -> bcrypt hash
	learners map[string]string // name -> bcrypt hash
}

func NewService(tokens *TokenManager) *Service {
	return &Service{
		tokens:   tokens,
		parents:  make(map[string]string),
		learners: make(map[string]string),
	}
}

// AddParent registers a parent with a pre-hashed password.
func (s *Service) AddParent(name, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents[name] = passwordHash
}

// AddLearner registers a learner with a pre-hashed secret key.
func (s *Service) AddLearner(name, secretKeyHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.learners[name] = secretKeyHash
}

// ParentLogin verifies the password and returns a bearer token.
func (s *Service) ParentLogin(name, password string) (string, error) {
	s.mu.RLock()
	hash, ok := s.parents[name]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(name)
}

// VerifyToken checks a parent bearer token.
func (s *Service) VerifyToken(raw string) (string, error) {
	return s.tokens.Verify(raw)
}

// VerifyLearnerKey checks a learner's secret key before a quiz session.
func (s *Service) VerifyLearnerKey(name, key string) error {
	s.mu.RLock()
	hash, ok := s.learners[name]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrLearnerUnknown
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// HashSecret bcrypt-hashes a password or secret key for storage.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
