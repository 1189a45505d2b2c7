package models

import "time"

// Client is one address-book entry. Name is the only required field.
type Client struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:128;not null"`
	Email     string    `gorm:"size:128"`
	Phone     string    `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
