package settlement

import (
	"testing"

	"gise-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusForAction(t *testing.T) {
	cases := []struct {
		action ReviewAction
		status models.SettlementStatus
		ok     bool
	}{
		{ActionApprove, models.StatusApproved, true},
		{ActionReject, models.StatusRejected, true},
		{ActionRevise, models.StatusPendingRevision, true},
		{ReviewAction("delete"), "", false},
		{ReviewAction(""), "", false},
	}

	for _, tc := range cases {
		status, ok := StatusForAction(tc.action)
		assert.Equal(t, tc.ok, ok, string(tc.action))
		assert.Equal(t, tc.status, status, string(tc.action))
	}
}

func TestCanReview(t *testing.T) {
	assert.True(t, CanReview(models.RoleAdmin))
	assert.True(t, CanReview(models.RoleSupervisor))
	assert.True(t, CanReview(models.RoleResponsible))
	assert.False(t, CanReview(models.RoleDesk))
}

func TestCanUpdateOnlyPendingRevision(t *testing.T) {
	assert.True(t, CanUpdate(models.StatusPendingRevision))

	for _, status := range []models.SettlementStatus{
		models.StatusDraft, models.StatusSubmitted, models.StatusApproved,
		models.StatusRejected, models.StatusRevised,
	} {
		assert.False(t, CanUpdate(status), string(status))
	}
}

func TestCanDelete(t *testing.T) {
	deletable := []models.SettlementStatus{
		models.StatusDraft, models.StatusRejected, models.StatusRevised, models.StatusPendingRevision,
	}
	for _, status := range deletable {
		assert.True(t, CanDelete(status), string(status))
	}

	assert.False(t, CanDelete(models.StatusSubmitted))
	assert.False(t, CanDelete(models.StatusApproved))
}

func TestCanUpdateAs(t *testing.T) {
	record := &models.SettlementRecord{SubmittedBy: 7}

	assert.True(t, CanUpdateAs(models.RoleAdmin, 1, record))
	assert.True(t, CanUpdateAs(models.RoleSupervisor, 1, record))
	assert.True(t, CanUpdateAs(models.RoleDesk, 7, record))
	assert.False(t, CanUpdateAs(models.RoleDesk, 8, record))
	assert.False(t, CanUpdateAs(models.RoleResponsible, 7, record))
}

func TestOwnsOrPrivileged(t *testing.T) {
	record := &models.SettlementRecord{SubmittedBy: 7}

	assert.True(t, OwnsOrPrivileged(models.RoleDesk, 7, record))
	assert.False(t, OwnsOrPrivileged(models.RoleDesk, 8, record))
	assert.True(t, OwnsOrPrivileged(models.RoleResponsible, 8, record))
	assert.True(t, OwnsOrPrivileged(models.RoleAdmin, 8, record))
}

func TestActiveStatusesPerKind(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.SettlementStatus{models.StatusSubmitted, models.StatusApproved},
		ActiveStatuses(models.SettlementDesk))

	// Bayi akışında revize edilen kayıt hâlâ aktif sayılır.
	assert.ElementsMatch(t,
		[]models.SettlementStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRevised},
		ActiveStatuses(models.SettlementDealer))
}
