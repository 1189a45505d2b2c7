package models

import "time"

// Schedule types.
const (
	ScheduleDaily    = "daily"
	ScheduleWeekdays = "weekdays"
	ScheduleMonthly  = "monthly"
)

// Measure types.
const (
	MeasureBoolean = "boolean"
	MeasureNumeric = "numeric"
)

// Habit is a recurring tracked activity.
// Weekdays holds a Monday-first mask like "1,0,1,0,1,0,0" and is only
// meaningful when ScheduleType is "weekdays".
type Habit struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"index;not null"`
	Name         string    `gorm:"size:128;not null"`
	ScheduleType string    `gorm:"size:16;not null"` // daily / weekdays / monthly
	Weekdays     string    `gorm:"size:32"`
	MeasureType  string    `gorm:"size:16;not null"` // boolean / numeric
	TargetCount  int       `gorm:"default:0"`        // monthly goal for boolean habits
	TargetValue  float64   `gorm:"default:0"`        // monthly goal for numeric habits
	Active       bool      `gorm:"default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// HabitLog records progress for one habit on one calendar day.
// HabitID + LogDate carry a unique index so a second write for the same day
// overwrites instead of duplicating.
type HabitLog struct {
	ID        uint      `gorm:"primaryKey"`
	HabitID   uint      `gorm:"not null;index;uniqueIndex:idx_habit_log_day"`
	LogDate   string    `gorm:"size:10;not null;uniqueIndex:idx_habit_log_day"` // YYYY-MM-DD
	Done      bool      `gorm:"not null;default:false"`
	Value     float64   `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Habit Habit `gorm:"constraint:OnDelete:CASCADE"`
}
