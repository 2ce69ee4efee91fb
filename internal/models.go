package internal

import (
	"time"
)

type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Name         string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}

type Session struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
}

// Link holds everything about a short link except the destination URL:
// the cache layer owns the short-code -> destination mapping.
type Link struct {
	ID          int64  `gorm:"primaryKey;type:bigint"`
	ShortCode   string `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID      string `gorm:"type:varchar(36);index"`
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	VisitsCount int64 `gorm:"default:0"`
}

type AnalyticsEvent struct {
	ID        int64 `gorm:"primaryKey;type:bigint"`
	LinkID    int64 `gorm:"index;not null"`
	Timestamp time.Time
	UserAgent string `gorm:"type:text"`
	IPAddress string `gorm:"type:varchar(45)"`
	Location  string `gorm:"type:varchar(64)"`
}
