package messages

import (
	"testing"

	"github.com/carrylink/carrylink-backend/internal/requests"
	"github.com/stretchr/testify/assert"
)

func TestThreadCanAccess(t *testing.T) {
	fulfiller := "u-2"
	thread := Thread{
		RequestID:   "r-1",
		RequesterID: "u-1",
		FulfillerID: &fulfiller,
		Status:      requests.StatusInProgress,
	}

	assert.True(t, thread.CanAccess("u-1"))
	assert.True(t, thread.CanAccess("u-2"))
	assert.False(t, thread.CanAccess("u-3"))
}

func TestThreadCanAccess_NoFulfiller(t *testing.T) {
	thread := Thread{RequestID: "r-1", RequesterID: "u-1", Status: requests.StatusOpen}

	assert.True(t, thread.CanAccess("u-1"))
	assert.False(t, thread.CanAccess("u-2"))
}

func TestThreadCanPost(t *testing.T) {
	fulfiller := "u-2"
	thread := Thread{
		RequestID:   "r-1",
		RequesterID: "u-1",
		FulfillerID: &fulfiller,
		Status:      requests.StatusInProgress,
	}

	assert.True(t, thread.CanPost("u-1"))
	assert.True(t, thread.CanPost("u-2"))
	assert.False(t, thread.CanPost("u-3"))

	// cancelled threads are read-only even for participants
	thread.Status = requests.StatusCancelled
	assert.False(t, thread.CanPost("u-1"))
	assert.False(t, thread.CanPost("u-2"))
	assert.True(t, thread.CanAccess("u-1"), "read access survives cancellation")
}
