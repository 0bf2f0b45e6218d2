package requests

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("request not found")
	ErrForbidden    = errors.New("not authorized for this request")
	ErrInvalidState = errors.New("invalid request state")
	ErrConflict     = errors.New("request state changed concurrently")
)

// CanEdit gates non-status field edits: requester only, while OPEN.
func CanEdit(r *Request, userID string) error {
	if r.RequesterID != userID {
		return ErrForbidden
	}
	if r.Status != StatusOpen {
		return fmt.Errorf("%w: cannot update request that is not open", ErrInvalidState)
	}
	return nil
}

// CanCancel gates the OPEN -> CANCELLED transition: requester only, while OPEN.
func CanCancel(r *Request, userID string) error {
	if r.RequesterID != userID {
		return ErrForbidden
	}
	if r.Status != StatusOpen {
		return fmt.Errorf("%w: cannot cancel request that is not open", ErrInvalidState)
	}
	return nil
}

// CanSetStatus gates the direct status override. The requester may set any of
// the four statuses at any time; this deliberately bypasses the OPEN-only gate
// that other field edits enforce.
func CanSetStatus(r *Request, userID string) error {
	if r.RequesterID != userID {
		return ErrForbidden
	}
	return nil
}

// CanFulfill gates the OPEN -> IN_PROGRESS transition. These checks run
// against a possibly stale read; Repo.Fulfill re-validates inside the
// transaction and reports ErrConflict on a lost race.
func CanFulfill(r *Request, userID string) error {
	if r.Status != StatusOpen {
		return fmt.Errorf("%w: request is not available for fulfillment", ErrInvalidState)
	}
	if r.RequesterID == userID {
		return fmt.Errorf("%w: cannot fulfill your own request", ErrInvalidState)
	}
	if r.FulfillerID != nil && *r.FulfillerID == userID {
		return fmt.Errorf("%w: you are already fulfilling this request", ErrInvalidState)
	}
	return nil
}

// CanDelete gates the hard delete: requester only, any status.
func CanDelete(r *Request, userID string) error {
	if r.RequesterID != userID {
		return ErrForbidden
	}
	return nil
}
