package link

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MagnunAVF/shortlinks/internal"
)

// GormStore backs the Store port with the relational durable layer.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, row *internal.Link) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *GormStore) FindByShortCode(ctx context.Context, shortCode string) (*internal.Link, error) {
	var row internal.Link
	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) UpdateVisits(ctx context.Context, id int64, visits int64) error {
	return s.db.WithContext(ctx).
		Model(&internal.Link{}).
		Where("id = ?", id).
		UpdateColumn("visits_count", visits).Error
}

func (s *GormStore) InsertEvent(ctx context.Context, row *internal.AnalyticsEvent) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&internal.Link{}, id).Error
}
