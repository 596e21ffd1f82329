package util

import (
	"testing"
	"time"
)

func TestCalculateActualDate_ClampsToMonthEnd(t *testing.T) {
	// Day 31 in February of a non-leap year
	d := CalculateActualDate(2025, time.February, 31)
	if d.Day() != 28 {
		t.Errorf("Expected day 28, got %d", d.Day())
	}

	// Leap year
	d = CalculateActualDate(2024, time.February, 31)
	if d.Day() != 29 {
		t.Errorf("Expected day 29, got %d", d.Day())
	}
}

func TestAddPeriod_Monthly(t *testing.T) {
	jan31, _ := ParseDate("2025-01-31")
	next := AddPeriod(jan31, "monthly")
	if FormatDate(next) != "2025-02-28" {
		t.Errorf("Expected 2025-02-28, got %s", FormatDate(next))
	}
}

func TestAddPeriod_MonthlyDecemberRollsYear(t *testing.T) {
	dec15, _ := ParseDate("2025-12-15")
	next := AddPeriod(dec15, "monthly")
	if FormatDate(next) != "2026-01-15" {
		t.Errorf("Expected 2026-01-15, got %s", FormatDate(next))
	}
}

func TestAddPeriod_DailyWeeklyYearly(t *testing.T) {
	d, _ := ParseDate("2025-03-01")

	if got := FormatDate(AddPeriod(d, "daily")); got != "2025-03-02" {
		t.Errorf("daily: got %s", got)
	}
	if got := FormatDate(AddPeriod(d, "weekly")); got != "2025-03-08" {
		t.Errorf("weekly: got %s", got)
	}
	if got := FormatDate(AddPeriod(d, "yearly")); got != "2026-03-01" {
		t.Errorf("yearly: got %s", got)
	}
}

func TestAddPeriod_YearlyLeapDay(t *testing.T) {
	feb29, _ := ParseDate("2024-02-29")
	next := AddPeriod(feb29, "yearly")
	if FormatDate(next) != "2025-02-28" {
		t.Errorf("Expected 2025-02-28, got %s", FormatDate(next))
	}
}

func TestMonthsAgo(t *testing.T) {
	now, _ := ParseDate("2025-08-20")
	d := MonthsAgo(now, 6)
	if FormatDate(d) != "2025-02-01" {
		t.Errorf("Expected 2025-02-01, got %s", FormatDate(d))
	}
}
