// file: internals/features/lesson/classes/service/conflict_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lesprivat_backend/internals/constants"
)

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(0), at(60), at(0), at(60), true},
		{"partial overlap", at(0), at(60), at(30), at(90), true},
		{"contained", at(0), at(60), at(15), at(45), true},
		{"containing", at(15), at(45), at(0), at(60), true},
		{"back-to-back after", at(0), at(60), at(60), at(120), false},
		{"back-to-back before", at(60), at(120), at(0), at(60), false},
		{"disjoint", at(0), at(60), at(90), at(150), false},
		{"one minute overlap", at(0), at(60), at(59), at(120), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestActiveStatusFilterExcludesTerminal(t *testing.T) {
	assert.ElementsMatch(t, []string{
		constants.ClassStatusScheduled,
		constants.ClassStatusOngoing,
		constants.ClassStatusRescheduled,
	}, constants.ActiveClassStatuses)
	assert.NotContains(t, constants.ActiveClassStatuses, constants.ClassStatusCancelled)
	assert.NotContains(t, constants.ActiveClassStatuses, constants.ClassStatusCompleted)
}
