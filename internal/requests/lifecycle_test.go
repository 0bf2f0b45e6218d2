package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func openRequest() *Request {
	return &Request{ID: "r-1", Status: StatusOpen, RequesterID: "u-1"}
}

func TestCanEdit(t *testing.T) {
	r := openRequest()

	assert.NoError(t, CanEdit(r, "u-1"))
	assert.ErrorIs(t, CanEdit(r, "u-2"), ErrForbidden)

	r.Status = StatusInProgress
	assert.ErrorIs(t, CanEdit(r, "u-1"), ErrInvalidState)

	r.Status = StatusCompleted
	assert.ErrorIs(t, CanEdit(r, "u-1"), ErrInvalidState)
}

func TestCanCancel(t *testing.T) {
	r := openRequest()

	assert.NoError(t, CanCancel(r, "u-1"))
	assert.ErrorIs(t, CanCancel(r, "u-2"), ErrForbidden)

	r.Status = StatusCancelled
	assert.ErrorIs(t, CanCancel(r, "u-1"), ErrInvalidState)
}

func TestCanSetStatus_BypassesOpenGate(t *testing.T) {
	r := openRequest()
	r.Status = StatusCompleted

	// the direct override ignores the current status entirely
	assert.NoError(t, CanSetStatus(r, "u-1"))
	assert.ErrorIs(t, CanSetStatus(r, "u-2"), ErrForbidden)
}

func TestCanFulfill(t *testing.T) {
	r := openRequest()

	assert.NoError(t, CanFulfill(r, "u-2"))

	// requester cannot fulfill their own request
	assert.ErrorIs(t, CanFulfill(r, "u-1"), ErrInvalidState)

	// already claimed
	fulfiller := "u-2"
	r.Status = StatusInProgress
	r.FulfillerID = &fulfiller
	assert.ErrorIs(t, CanFulfill(r, "u-2"), ErrInvalidState)

	// third party against a non-open request
	assert.ErrorIs(t, CanFulfill(r, "u-3"), ErrInvalidState)
}

func TestCanDelete_AnyStatus(t *testing.T) {
	r := openRequest()

	for _, st := range []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled} {
		r.Status = st
		assert.NoError(t, CanDelete(r, "u-1"), "status %s", st)
		assert.ErrorIs(t, CanDelete(r, "u-2"), ErrForbidden, "status %s", st)
	}
}
