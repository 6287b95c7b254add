package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty string returns local", "", false},
		{"Local returns local", "Local", false},
		{"valid timezone UTC", "UTC", false},
		{"valid timezone America/New_York", "America/New_York", false},
		{"invalid timezone", "Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2027-03-01 20:00 UTC is already March 2nd in Tokyo.
	instant := time.Date(2027, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := DayOf(instant, time.UTC); got != "2027-03-01" {
		t.Errorf("DayOf(UTC) = %q, want 2027-03-01", got)
	}
	if got := DayOf(instant, tokyo); got != "2027-03-02" {
		t.Errorf("DayOf(Tokyo) = %q, want 2027-03-02", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2028-02-28", 1, "2028-02-29"},
		{"2027-02-28", 1, "2027-03-01"},
		{"2027-01-01", -1, "2026-12-31"},
		{"2027-06-15", 0, "2027-06-15"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error: %v", tt.date, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("2027-13-01", 1); err == nil {
		t.Error("AddDays() accepted an invalid month")
	}
}

func TestDaysBetween(t *testing.T) {
	got, err := DaysBetween("2027-01-01", "2027-01-31")
	if err != nil {
		t.Fatalf("DaysBetween() error: %v", err)
	}
	if got != 30 {
		t.Errorf("DaysBetween() = %d, want 30", got)
	}

	got, _ = DaysBetween("2027-01-31", "2027-01-01")
	if got != -30 {
		t.Errorf("DaysBetween() reversed = %d, want -30", got)
	}
}

func TestDaysInYear(t *testing.T) {
	tests := map[int]int{
		2027: 365,
		2028: 366,
		1900: 365,
		2000: 366,
	}
	for year, want := range tests {
		if got := DaysInYear(year); got != want {
			t.Errorf("DaysInYear(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestWeekdayNumber(t *testing.T) {
	// 2027-01-04 is a Monday.
	monday := time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		if got := WeekdayNumber(day); got != i+1 {
			t.Errorf("WeekdayNumber(%s) = %d, want %d", day.Format("Mon"), got, i+1)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"Run a Marathon"}, "run-a-marathon"},
		{[]string{"Acme Corp", "Senior Engineer"}, "acme-corp-senior-engineer"},
		{[]string{"  Learn Go!! "}, "learn-go"},
		{[]string{""}, ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.parts...); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	a := UniqueSlug("Run a Marathon")
	b := UniqueSlug("Run a Marathon")

	if a == b {
		t.Errorf("UniqueSlug() returned the same slug twice: %q", a)
	}
	if len(a) != len("run-a-marathon-")+8 {
		t.Errorf("UniqueSlug() = %q, unexpected length", a)
	}
}
