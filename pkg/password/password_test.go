package password

import (
	"strings"
	"testing"
)

func TestHash_Length(t *testing.T) {
	h := Hash("secret", NewSalt(SaltLength))
	if len(h) != HashLength {
		t.Fatalf("expected hash length %d, got %d", HashLength, len(h))
	}
}

func TestHash_Deterministic(t *testing.T) {
	salt := NewSalt(SaltLength)
	if Hash("secret", salt) != Hash("secret", salt) {
		t.Fatalf("same password and salt must produce the same hash")
	}
}

func TestHash_SaltChangesDigest(t *testing.T) {
	if Hash("secret", NewSalt(SaltLength)) == Hash("secret", NewSalt(SaltLength)) {
		t.Fatalf("different salts must produce different hashes")
	}
}

func TestVerify(t *testing.T) {
	salt := NewSalt(SaltLength)
	stored := Hash("old-pwd", salt)

	if !Verify("old-pwd", salt, stored) {
		t.Fatalf("correct password rejected")
	}
	if Verify("new-pwd", salt, stored) {
		t.Fatalf("wrong password accepted")
	}
}

func TestNewSalt(t *testing.T) {
	salt := NewSalt(SaltLength)
	if len(salt) != SaltLength {
		t.Fatalf("expected salt length %d, got %d", SaltLength, len(salt))
	}
	for _, r := range salt {
		if !strings.ContainsRune(saltAlphabet, r) {
			t.Fatalf("unexpected salt character %q", r)
		}
	}
	if NewSalt(SaltLength) == salt {
		t.Fatalf("two salts should not collide")
	}
}
