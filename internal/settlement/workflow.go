package settlement

import "gise-backend/internal/models"

// Durum makinesi:
//
//	(yok) --save--> draft --submit--> submitted --approve--> approved
//	                                            --reject---> rejected
//	                                            --revise---> pending_revision --update--> revised
//
// revised kayıtlar submitted gibi tekrar incelenebilir. submitted ve approved
// kayıtlar hiçbir koşulda silinemez.

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
	ActionRevise  ReviewAction = "revise"
)

// StatusForAction: inceleme aksiyonunun hedef durumu.
func StatusForAction(action ReviewAction) (models.SettlementStatus, bool) {
	switch action {
	case ActionApprove:
		return models.StatusApproved, true
	case ActionReject:
		return models.StatusRejected, true
	case ActionRevise:
		return models.StatusPendingRevision, true
	}
	return "", false
}

// CanReview: sadece admin, supervisor ve responsible inceleme yapabilir.
func CanReview(role models.UserRole) bool {
	switch role {
	case models.RoleAdmin, models.RoleSupervisor, models.RoleResponsible:
		return true
	}
	return false
}

// CanUpdate: güncelleme yalnızca revize bekleyen kayıtlara yapılabilir.
func CanUpdate(status models.SettlementStatus) bool {
	return status == models.StatusPendingRevision
}

// CanDelete: teslim edilmiş veya onaylanmış kayıtlar silinemez.
func CanDelete(status models.SettlementStatus) bool {
	switch status {
	case models.StatusDraft, models.StatusRejected, models.StatusRevised, models.StatusPendingRevision:
		return true
	}
	return false
}

// CanUpdateAs: gişe rolü sadece kendi kaydını güncelleyebilir; admin ve
// supervisor herkesinkini günceller.
func CanUpdateAs(role models.UserRole, actorID uint, record *models.SettlementRecord) bool {
	switch role {
	case models.RoleAdmin, models.RoleSupervisor:
		return true
	case models.RoleDesk:
		return record.SubmittedBy == actorID
	}
	return false
}

// OwnsOrPrivileged: gişe rolü için sahiplik kontrolü; diğer roller her kaydı
// görebilir ve silebilir.
func OwnsOrPrivileged(role models.UserRole, actorID uint, record *models.SettlementRecord) bool {
	if role == models.RoleDesk {
		return record.SubmittedBy == actorID
	}
	return true
}

// ActiveStatuses: aynı (kullanıcı, tarih) için ikinci teslimi engelleyen
// durumlar. Gişe akışında revised kayıt yeniden teslim edilebilir sayılır,
// bayi akışında sayılmaz.
func ActiveStatuses(kind models.SettlementKind) []models.SettlementStatus {
	if kind == models.SettlementDealer {
		return []models.SettlementStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRevised}
	}
	return []models.SettlementStatus{models.StatusSubmitted, models.StatusApproved}
}
