package node

import (
	"regexp"
	"testing"
)

// TestIdentifierFormat verifies that the node identifier is the 64 character
// hex encoding of the public key, a value usable as a transaction recipient.
func TestIdentifierFormat(t *testing.T) {
	identity, err := NewIdentity()
	if err != nil {
		t.Fatalf("failed to generate identity: %v", err)
	}

	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(identity.String()) {
		t.Fatalf("expected 64 lowercase hex characters, got %q", identity.String())
	}
	if identity.String() != identity.String() {
		t.Fatal("identifier changed between calls")
	}
}

// TestNewIdentityDistinct verifies that independently generated identities
// differ, so two nodes never collect each other's rewards.
func TestNewIdentityDistinct(t *testing.T) {
	first, err := NewIdentity()
	if err != nil {
		t.Fatalf("failed to generate identity: %v", err)
	}
	second, err := NewIdentity()
	if err != nil {
		t.Fatalf("failed to generate identity: %v", err)
	}

	if first.String() == second.String() {
		t.Fatalf("two fresh identities share the identifier %q", first.String())
	}
}
