package session

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MagnunAVF/shortlinks/internal"
)

// GormStore persists session rows in the durable layer.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, row *internal.Session) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*internal.Session, error) {
	var row internal.Session
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&internal.Session{}).Error
}
