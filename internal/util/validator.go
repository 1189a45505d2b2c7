package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDate checks a calendar date string (must be YYYY-MM-DD).
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth checks a month string (must be YYYY-MM).
func ValidateMonth(monthStr string) error {
	if monthStr == "" {
		return fmt.Errorf("month is empty")
	}
	_, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}

// ValidateWeekdaysMask checks a Monday-first mask like "1,0,1,0,1,0,0":
// exactly seven comma-separated entries, each "0" or "1".
func ValidateWeekdaysMask(mask string) error {
	parts := strings.Split(mask, ",")
	if len(parts) != 7 {
		return fmt.Errorf("weekdays mask must have 7 entries, got %d", len(parts))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p != "0" && p != "1" {
			return fmt.Errorf("weekdays mask entry %d must be 0 or 1, got %q", i, p)
		}
	}
	return nil
}
