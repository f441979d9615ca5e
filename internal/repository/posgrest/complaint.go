package posgrest

import (
	"context"
	"strings"

	"github.com/gracelabs/verification-service/internal/models"
	"gorm.io/gorm"
)

type ComplaintStore struct {
	db *gorm.DB
}

func NewComplaintStore(db *gorm.DB) *ComplaintStore {
	return &ComplaintStore{db: db}
}

// ComplaintsForPayee sums the complaint counts of every ledger entry whose
// payee name appears, case-insensitively, inside the document's payee name.
// Ledger entries carry canonical merchant names; documents carry variants.
func (s *ComplaintStore) ComplaintsForPayee(ctx context.Context, payeeName string) (int, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.ComplaintRecord{}).
		Where("? LIKE '%' || LOWER(payee_name) || '%'", strings.ToLower(payeeName)).
		Select("COALESCE(SUM(complaints), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return int(total), nil
}
