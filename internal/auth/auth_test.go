package auth

import (
	"strings"
	"testing"
	"time"

	"gamified-learning-service/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	tokens, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return NewService(tokens)
}

func TestParentLoginAndVerify(t *testing.T) {
	service := newTestService(t)
	hash, err := HashSecret("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	service.AddParent("Priya", hash)

	token, err := service.ParentLogin("Priya", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	name, err := service.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if name != "Priya" {
		t.Fatalf("expected subject Priya, got %q", name)
	}
}

func TestParentLoginRejectsBadCredentials(t *testing.T) {
	service := newTestService(t)
	hash, _ := HashSecret("hunter2")
	service.AddParent("Priya", hash)

	if _, err := service.ParentLogin("Priya", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if _, err := service.ParentLogin("Nobody", "hunter2"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected credentials error for unknown parent, got %v", err)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	service := newTestService(t)
	hash, _ := HashSecret("hunter2")
	service.AddParent("Priya", hash)

	token, err := service.ParentLogin("Priya", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := service.VerifyToken(tampered); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected rejection of tampered token, got %v", err)
	}
	if _, err := service.VerifyToken("not-a-token"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected rejection of garbage token, got %v", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	other, err := NewTokenManager("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	token, err := other.Issue("Priya")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	service := newTestService(t)
	if _, err := service.VerifyToken(token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected rejection of foreign token, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := tokens.Issue("Priya")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens.now = time.Now
	if _, err := tokens.Verify(token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected expiry rejection, got %v", err)
	}
}

func TestVerifyLearnerKey(t *testing.T) {
	service := newTestService(t)
	hash, _ := HashSecret("brave-lion-4821")
	service.AddLearner("Asha", hash)

	if err := service.VerifyLearnerKey("Asha", "brave-lion-4821"); err != nil {
		t.Fatalf("verify key: %v", err)
	}
	if err := service.VerifyLearnerKey("Asha", "wrong-key"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if err := service.VerifyLearnerKey("Unknown", "brave-lion-4821"); err != domain.ErrLearnerUnknown {
		t.Fatalf("expected unknown-learner error, got %v", err)
	}
}

func TestGenerateSecretKeyShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		key, err := GenerateSecretKey()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		parts := strings.Split(key, "-")
		if len(parts) != 3 {
			t.Fatalf("expected adjective-noun-suffix, got %q", key)
		}
		if len(parts[2]) != 4 {
			t.Fatalf("expected 4-character suffix, got %q", key)
		}
		seen[key] = true
	}
	if len(seen) < 2 {
		t.Fatalf("keys are not varying")
	}
}
