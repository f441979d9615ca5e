package posgrest

import (
	"context"
	"errors"
	"time"

	"github.com/gracelabs/verification-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScamStore struct {
	db *gorm.DB
}

func NewScamStore(db *gorm.DB) *ScamStore {
	return &ScamStore{db: db}
}

func (s *ScamStore) GetSignature(ctx context.Context, fingerprint string) (*models.ScamSignature, error) {
	var signature models.ScamSignature
	err := s.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).First(&signature).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &signature, nil
}

// RecordSignature creates the signature on first report and increments its
// counter on every later one. The row lock serializes concurrent reports of
// the same fingerprint; the unique index on fingerprint backstops the
// first-report race.
func (s *ScamStore) RecordSignature(ctx context.Context, fingerprint string, kind models.FingerprintKind) (models.ScamSignature, error) {
	var signature models.ScamSignature
	now := time.Now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fingerprint = ?", fingerprint).
			First(&signature).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			signature = models.ScamSignature{
				Fingerprint: fingerprint,
				Kind:        kind,
				ReportCount: 1,
				FirstSeenAt: now,
				LastSeenAt:  now,
			}
			return tx.Create(&signature).Error
		}
		if err != nil {
			return err
		}

		signature.ReportCount++
		signature.LastSeenAt = now

		return tx.Model(&signature).Updates(map[string]interface{}{
			"report_count": signature.ReportCount,
			"last_seen_at": signature.LastSeenAt,
		}).Error
	})
	if err != nil {
		return models.ScamSignature{}, err
	}

	return signature, nil
}
