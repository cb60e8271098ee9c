package leave

import (
	"errors"
	"fmt"
	"time"

	"gise-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("kayıt bulunamadı")
	ErrConflict      = errors.New("çakışan kayıt var")
	ErrInvalidState  = errors.New("kayıt bu durumda bu işleme izin vermiyor")
	ErrQuotaExceeded = errors.New("yetersiz izin hakkı")
)

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type EmployeeInput struct {
	FirstName  string
	LastName   string
	TCNo       string
	Email      string
	Phone      string
	Department string
	Position   string
	StartDate  string
	IsActive   *bool
}

// CreateEmployee: çalışanı ve içinde bulunulan yılın izin hakkını tek
// transaction içinde oluşturur.
func (s *Store) CreateEmployee(in EmployeeInput) (*models.Employee, error) {
	var existing models.Employee
	err := s.db.First(&existing, "tc_no = ?", in.TCNo).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	emp := models.Employee{
		ID:         uuid.NewString(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		TCNo:       in.TCNo,
		Email:      in.Email,
		Phone:      in.Phone,
		Department: in.Department,
		Position:   in.Position,
		StartDate:  in.StartDate,
		IsActive:   true,
	}
	if in.IsActive != nil {
		emp.IsActive = *in.IsActive
	}

	now := s.now()
	totalDays := AnnualLeaveDays(in.StartDate, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&emp).Error; err != nil {
			return err
		}
		ent := models.LeaveEntitlement{
			ID:            uuid.NewString(),
			EmployeeID:    emp.ID,
			Year:          now.Year(),
			TotalDays:     totalDays,
			UsedDays:      0,
			RemainingDays: totalDays,
		}
		return tx.Create(&ent).Error
	})
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee: işe başlama tarihi değişirse içinde bulunulan yılın izin
// hakkı yeniden hesaplanır (kullanılan günler korunur).
func (s *Store) UpdateEmployee(id string, in EmployeeInput, fields map[string]bool) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if fields["firstName"] {
		emp.FirstName = in.FirstName
	}
	if fields["lastName"] {
		emp.LastName = in.LastName
	}
	if fields["tcNo"] {
		emp.TCNo = in.TCNo
	}
	if fields["email"] {
		emp.Email = in.Email
	}
	if fields["phone"] {
		emp.Phone = in.Phone
	}
	if fields["department"] {
		emp.Department = in.Department
	}
	if fields["position"] {
		emp.Position = in.Position
	}
	if fields["startDate"] {
		emp.StartDate = in.StartDate
	}
	if fields["isActive"] && in.IsActive != nil {
		emp.IsActive = *in.IsActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&emp).Error; err != nil {
			return err
		}
		if !fields["startDate"] {
			return nil
		}

		now := s.now()
		totalDays := AnnualLeaveDays(emp.StartDate, now)

		var ent models.LeaveEntitlement
		err := tx.First(&ent, "employee_id = ? AND year = ?", emp.ID, now.Year()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ent.TotalDays = totalDays
		ent.RemainingDays = totalDays - ent.UsedDays
		return tx.Save(&ent).Error
	})
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeactivateEmployee: kalıcı silme yok, isActive=false.
func (s *Store) DeactivateEmployee(id string) error {
	result := s.db.Model(&models.Employee{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type RequestInput struct {
	EmployeeID  string
	LeaveType   string
	StartDate   string
	EndDate     string
	Description string
}

// CreateRequest: iş günü sayısını hesaplar, yıllık izinde kalan hak ve
// bekleyen/onaylı taleplerle çakışma kontrolü yapar.
func (s *Store) CreateRequest(in RequestInput) (*models.LeaveRequest, error) {
	if in.StartDate > in.EndDate {
		return nil, fmt.Errorf("%w: bitiş tarihi başlangıç tarihinden önce olamaz", ErrInvalidState)
	}

	totalDays, err := Workdays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	if in.LeaveType == "annual" {
		var ent models.LeaveEntitlement
		err := s.db.First(&ent, "employee_id = ? AND year = ?", in.EmployeeID, s.now().Year()).Error
		if err == nil && ent.RemainingDays < totalDays {
			return nil, fmt.Errorf("%w: kalan %d gün, talep %d gün", ErrQuotaExceeded, ent.RemainingDays, totalDays)
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var active []models.LeaveRequest
	err = s.db.
		Where("employee_id = ? AND status IN ?", in.EmployeeID, []models.LeaveStatus{models.LeavePending, models.LeaveApproved}).
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	for _, existing := range active {
		if overlaps(in.StartDate, in.EndDate, existing.StartDate, existing.EndDate) {
			return nil, ErrConflict
		}
	}

	req := models.LeaveRequest{
		ID:          uuid.NewString(),
		EmployeeID:  in.EmployeeID,
		LeaveType:   in.LeaveType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		TotalDays:   totalDays,
		Status:      models.LeavePending,
		Description: in.Description,
		RequestedAt: s.now(),
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

type RequestFilter struct {
	EmployeeID string
	Status     string
	Year       string
}

func (s *Store) ListRequests(filter RequestFilter) ([]models.LeaveRequest, error) {
	query := s.db.Model(&models.LeaveRequest{}).Order("requested_at DESC")
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Year != "" {
		query = query.Where("start_date >= ? AND start_date <= ?", filter.Year+"-01-01", filter.Year+"-12-31")
	}

	var rows []models.LeaveRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Review: approve/reject. Onayda izin hakkı düşümü talep güncellemesiyle
// aynı transaction içinde yapılır.
func (s *Store) Review(id string, approve bool, reviewerID uint, reviewerEmail, notes string) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != models.LeavePending {
		return nil, fmt.Errorf("%w: sadece bekleyen izin talepleri incelenebilir", ErrInvalidState)
	}

	now := s.now()
	req.Status = models.LeaveRejected
	if approve {
		req.Status = models.LeaveApproved
	}
	req.ReviewedBy = &reviewerID
	req.ReviewedByEmail = reviewerEmail
	req.ReviewNotes = notes
	req.ReviewedAt = &now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if !approve {
			return nil
		}
		return s.adjustEntitlement(tx, req.EmployeeID, req.TotalDays)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Cancel: bekleyen veya onaylı talep iptal edilir; onaylıysa düşülen izin
// hakkı aynı transaction içinde iade edilir.
func (s *Store) Cancel(id string) error {
	var req models.LeaveRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if req.Status != models.LeavePending && req.Status != models.LeaveApproved {
		return fmt.Errorf("%w: sadece bekleyen veya onaylanmış izin talepleri iptal edilebilir", ErrInvalidState)
	}

	wasApproved := req.Status == models.LeaveApproved
	req.Status = models.LeaveCancelled

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if !wasApproved {
			return nil
		}
		return s.adjustEntitlement(tx, req.EmployeeID, -req.TotalDays)
	})
}

// adjustEntitlement: içinde bulunulan yılın hakkından days kadar düşer
// (negatif days iade eder). Hak kaydı yoksa sessizce geçer. Bakiye
// aritmetiği veritabanında yapılır; oku-hesapla-yaz deseni eşzamanlı iki
// onayda ikinci yazımın ilkini ezmesine yol açar.
func (s *Store) adjustEntitlement(tx *gorm.DB, employeeID string, days int) error {
	return tx.Model(&models.LeaveEntitlement{}).
		Where("employee_id = ? AND year = ?", employeeID, s.now().Year()).
		Updates(map[string]interface{}{
			"used_days":      gorm.Expr("used_days + ?", days),
			"remaining_days": gorm.Expr("remaining_days - ?", days),
		}).Error
}

func (s *Store) ListEntitlements(employeeID, year string) ([]models.LeaveEntitlement, error) {
	query := s.db.Model(&models.LeaveEntitlement{})
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if year != "" {
		query = query.Where("year = ?", year)
	}

	var rows []models.LeaveEntitlement
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
