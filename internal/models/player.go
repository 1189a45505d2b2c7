package models

import "time"

// Player is one roster entry with its accumulated season stats.
// Stats are plain counters updated wholesale on edit; no per-match history.
type Player struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:128;not null"`
	Position  string    `gorm:"size:32"`
	Number    int       `gorm:"default:0"`
	Goals     int       `gorm:"default:0"`
	Assists   int       `gorm:"default:0"`
	Matches   int       `gorm:"default:0"`
	Active    bool      `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
