// file: internals/features/lesson/videos/service/compliance_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lesprivat_backend/internals/constants"
	"lesprivat_backend/internals/features/lesson/classes/model"
)

func completedClass(deadline time.Time) *model.ClassModel {
	return &model.ClassModel{
		ClassStatus:        constants.ClassStatusCompleted,
		ClassVideoDeadline: &deadline,
	}
}

func TestIsOverdue(t *testing.T) {
	deadline := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	t.Run("before deadline", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.False(t, IsOverdue(cls, deadline.Add(-1*time.Hour)))
	})

	t.Run("exactly at deadline", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.False(t, IsOverdue(cls, deadline))
	})

	t.Run("past deadline", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.True(t, IsOverdue(cls, deadline.Add(1*time.Minute)))
	})

	t.Run("uploaded never overdue", func(t *testing.T) {
		cls := completedClass(deadline)
		uploaded := deadline.Add(-2 * time.Hour)
		cls.ClassVideoUploadedAt = &uploaded
		assert.False(t, IsOverdue(cls, deadline.Add(1*time.Hour)))
	})

	t.Run("no deadline set", func(t *testing.T) {
		cls := &model.ClassModel{ClassStatus: constants.ClassStatusScheduled}
		assert.False(t, IsOverdue(cls, deadline))
	})
}

func TestNeedsReminder(t *testing.T) {
	deadline := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	t.Run("inside reminder window", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.True(t, NeedsReminder(cls, deadline.Add(-20*time.Minute), 30))
	})

	t.Run("outside reminder window", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.False(t, NeedsReminder(cls, deadline.Add(-2*time.Hour), 30))
	})

	t.Run("past deadline still needs reminder", func(t *testing.T) {
		cls := completedClass(deadline)
		assert.True(t, NeedsReminder(cls, deadline.Add(1*time.Hour), 30))
	})

	t.Run("already uploaded", func(t *testing.T) {
		cls := completedClass(deadline)
		uploaded := deadline.Add(-1 * time.Hour)
		cls.ClassVideoUploadedAt = &uploaded
		assert.False(t, NeedsReminder(cls, deadline.Add(-20*time.Minute), 30))
	})

	t.Run("class not completed", func(t *testing.T) {
		cls := completedClass(deadline)
		cls.ClassStatus = constants.ClassStatusOngoing
		assert.False(t, NeedsReminder(cls, deadline.Add(-20*time.Minute), 30))
	})
}
