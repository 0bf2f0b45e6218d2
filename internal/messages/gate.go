package messages

import (
	"github.com/carrylink/carrylink-backend/internal/requests"
)

// Thread is the slice of a request the gate needs: who its participants are
// and whether the conversation is still writable.
type Thread struct {
	RequestID   string
	RequesterID string
	FulfillerID *string
	Status      requests.Status
}

// CanAccess reports whether the user may read the thread: participants only.
func (t Thread) CanAccess(userID string) bool {
	if userID == t.RequesterID {
		return true
	}
	return t.FulfillerID != nil && *t.FulfillerID == userID
}

// CanPost reports whether the user may write to the thread. Writing requires
// participation and a non-cancelled request.
func (t Thread) CanPost(userID string) bool {
	return t.CanAccess(userID) && t.Status != requests.StatusCancelled
}
