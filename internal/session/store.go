package session

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/models"
)

// Store persists one snapshot row per session token.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load returns the snapshot for a token. A missing row or a corrupt blob is
// not an error condition: the user simply starts fresh.
func (s *Store) Load(token string) Snapshot {
	var row models.MoveSession
	if err := s.db.Where("token = ?", token).First(&row).Error; err != nil {
		return NewSnapshot()
	}
	return DecodeSnapshot([]byte(row.Snapshot))
}

// Save upserts the snapshot for a token.
func (s *Store) Save(token string, snap Snapshot) error {
	raw, err := snap.Encode()
	if err != nil {
		return err
	}
	var row models.MoveSession
	err = s.db.Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.MoveSession{Token: token, Snapshot: string(raw)}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&row).Update("snapshot", string(raw)).Error
}

// Reset drops the saved state for a token (new move session).
func (s *Store) Reset(token string) error {
	return s.db.Where("token = ?", token).Delete(&models.MoveSession{}).Error
}
