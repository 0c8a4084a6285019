package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-please-rotate"

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)
	raw, exp, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if until := time.Until(exp); until < 23*time.Hour {
		t.Errorf("expiry in %s, want about 24h", until)
	}
	subject, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", subject)
	}
}

func TestVerifyAfterExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	svc := NewTokenService(testSecret, 24*time.Hour).WithClock(func() time.Time { return clock })

	raw, _, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock = issued.Add(23 * time.Hour)
	if _, err := svc.Verify(raw); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	clock = issued.Add(25 * time.Hour)
	if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("verify after expiry = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	raw, _, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// flip a byte inside the signature segment
	i := strings.LastIndex(raw, ".") + 1
	sig := []byte(raw[i:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := raw[:i] + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("verify tampered = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	raw, _, err := NewTokenService("key-one", time.Hour).Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenService("key-two", time.Hour).Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("verify with wrong key = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrTokenMalformed", raw, err)
		}
	}
}

func TestIssueWithoutKey(t *testing.T) {
	svc := NewTokenService("", time.Hour)
	if _, _, err := svc.Issue("alice@example.com"); !errors.Is(err, ErrSigningKey) {
		t.Errorf("issue without key = %v, want ErrSigningKey", err)
	}
}
