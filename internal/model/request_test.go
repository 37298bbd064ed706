package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCanceled} {
		assert.True(t, IsValidStatus(status), status)
	}
	assert.False(t, IsValidStatus("SHIPPED"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("pending"), "enum values are case-sensitive")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusCompleted, StatusPending, false},
		{StatusCanceled, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsFinalized(t *testing.T) {
	assert.False(t, IsFinalized(StatusPending))
	assert.False(t, IsFinalized(StatusApproved))
	assert.True(t, IsFinalized(StatusRejected))
	assert.True(t, IsFinalized(StatusCompleted))
	assert.True(t, IsFinalized(StatusCanceled))
	assert.ElementsMatch(t, []string{StatusRejected, StatusCompleted, StatusCanceled}, FinalizedStatuses())
}
