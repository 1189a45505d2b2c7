package util

import (
	"testing"
)

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2024-02-29", // leap day
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01", // bad month
		"2024-01-32", // bad day
		"2023-02-29", // leap day outside leap year
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateMonth_Valid(t *testing.T) {
	testCases := []string{"2024-01", "2024-12", "2025-06"}

	for _, month := range testCases {
		err := ValidateMonth(month)
		if err != nil {
			t.Errorf("ValidateMonth(%q) error = %v, want nil", month, err)
		}
	}
}

func TestValidateMonth_Invalid(t *testing.T) {
	testCases := []string{"", "2024", "2024-13", "2024-1", "2024-01-01", "jan-2024"}

	for _, month := range testCases {
		err := ValidateMonth(month)
		if err == nil {
			t.Errorf("ValidateMonth(%q) error = nil, want error", month)
		}
	}
}

func TestValidateWeekdaysMask_Valid(t *testing.T) {
	testCases := []string{
		"1,0,1,0,1,0,0",
		"0,0,0,0,0,0,0",
		"1,1,1,1,1,1,1",
		"1, 0, 1, 0, 1, 0, 0", // spaces tolerated
	}

	for _, mask := range testCases {
		err := ValidateWeekdaysMask(mask)
		if err != nil {
			t.Errorf("ValidateWeekdaysMask(%q) error = %v, want nil", mask, err)
		}
	}
}

func TestValidateWeekdaysMask_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"1,0,1",
		"1,0,1,0,1,0",     // six entries
		"1,0,1,0,1,0,0,1", // eight entries
		"1,0,2,0,1,0,0",   // entry out of range
		"1,0,x,0,1,0,0",   // non-numeric entry
	}

	for _, mask := range testCases {
		err := ValidateWeekdaysMask(mask)
		if err == nil {
			t.Errorf("ValidateWeekdaysMask(%q) error = nil, want error", mask)
		}
	}
}
