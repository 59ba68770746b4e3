package access

import (
	"errors"
	"testing"

	"solarpulse/backend/services/energy-service/internal/auth"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name      string
		requester auth.Identity
		subjectID string
		allow     bool
	}{
		{"admin any subject", auth.Identity{SubjectID: "admin-1", Role: auth.RoleAdmin}, "client-9", true},
		{"admin nonexistent subject", auth.Identity{SubjectID: "admin-1", Role: auth.RoleAdmin}, "no-such-client", true},
		{"client self", auth.Identity{SubjectID: "client-1", Role: auth.RoleClient}, "client-1", true},
		{"client other", auth.Identity{SubjectID: "client-1", Role: auth.RoleClient}, "client-2", false},
		{"client nonexistent subject", auth.Identity{SubjectID: "client-1", Role: auth.RoleClient}, "no-such-client", false},
		{"client empty subject", auth.Identity{SubjectID: "client-1", Role: auth.RoleClient}, "", false},
		{"unknown role", auth.Identity{SubjectID: "x", Role: "superuser"}, "y", false},
		{"empty identity", auth.Identity{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.requester, tc.subjectID)
			if tc.allow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allow {
				if !errors.Is(err, ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
			}
		})
	}
}
