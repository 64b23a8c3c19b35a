package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from EnrollmentStatus
		to   EnrollmentStatus
		want bool
	}{
		{"pending to approved", EnrollmentPending, EnrollmentApproved, true},
		{"pending to rejected", EnrollmentPending, EnrollmentRejected, true},
		{"pending to pending", EnrollmentPending, EnrollmentPending, false},
		{"approved is terminal", EnrollmentApproved, EnrollmentRejected, false},
		{"rejected is terminal", EnrollmentRejected, EnrollmentApproved, false},
		{"approved cannot go back to pending", EnrollmentApproved, EnrollmentPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEnrollmentStatusTerminal(t *testing.T) {
	assert.False(t, EnrollmentPending.Terminal())
	assert.True(t, EnrollmentApproved.Terminal())
	assert.True(t, EnrollmentRejected.Terminal())
}
