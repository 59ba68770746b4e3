package access

import (
	"errors"

	"solarpulse/backend/services/energy-service/internal/auth"
)

// ErrForbidden signals an authorization denial. It is returned before
// any store access so a denied caller learns nothing about whether the
// subject exists.
var ErrForbidden = errors.New("access: forbidden")

// Authorize decides whether the requester may read or write telemetry
// belonging to subjectID. Admins may target any subject; clients only
// themselves.
func Authorize(requester auth.Identity, subjectID string) error {
	if requester.IsAdmin() {
		return nil
	}
	if requester.SubjectID != "" && requester.SubjectID == subjectID {
		return nil
	}
	return ErrForbidden
}
