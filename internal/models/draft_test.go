package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftStatusGuards(t *testing.T) {
	cases := []struct {
		status      DraftStatus
		canEdit     bool
		canPublish  bool
		canSchedule bool
		terminal    bool
	}{
		{DraftStatusDraft, true, true, true, false},
		{DraftStatusPending, false, false, false, false},
		{DraftStatusPublished, false, false, false, false},
		{DraftStatusScheduled, false, false, false, false},
		{DraftStatusArchived, false, false, false, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.canEdit, tc.status.CanEdit(), "%s CanEdit", tc.status)
		assert.Equal(t, tc.canPublish, tc.status.CanPublish(), "%s CanPublish", tc.status)
		assert.Equal(t, tc.canSchedule, tc.status.CanSchedule(), "%s CanSchedule", tc.status)
		assert.Equal(t, tc.terminal, tc.status.IsTerminal(), "%s IsTerminal", tc.status)
	}
}
