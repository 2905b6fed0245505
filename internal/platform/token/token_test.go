package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	issued, err := Issue(Claims{UserID: 42, Context: "user"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := Verify(issued)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: got=%d want=42", claims.UserID)
	}
	if claims.Context != ContextUser {
		t.Fatalf("unexpected context: got=%q want=%q", claims.Context, ContextUser)
	}
}

func TestIssue_DefaultsContext(t *testing.T) {
	t.Parallel()

	issued, err := Issue(Claims{UserID: 7})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := Verify(issued)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Context != ContextUser {
		t.Fatalf("expected context to default to %q, got %q", ContextUser, claims.Context)
	}
}

func TestIssue_TokenShape(t *testing.T) {
	t.Parallel()

	issued, err := Issue(Claims{UserID: 1})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	segments := strings.Split(issued, ".")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d (%q)", len(segments), issued)
	}
	if segments[2] != "" {
		t.Fatalf("expected empty signature segment, got %q", segments[2])
	}
	if _, err := base64.RawURLEncoding.DecodeString(segments[0]); err != nil {
		t.Fatalf("header segment is not base64url: %v", err)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"not-a-token",
		"one.two.three.four",
		"!!!.???.",
		base64.RawURLEncoding.EncodeToString([]byte("not json")) + "." + base64.RawURLEncoding.EncodeToString([]byte("also not json")) + ".",
	}

	for _, raw := range inputs {
		if _, err := Verify(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %q, got %v", raw, err)
		}
	}
}
