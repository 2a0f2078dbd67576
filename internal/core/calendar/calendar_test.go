package calendar

import (
	"testing"
	"time"
)

func TestTimeOfDay_Until(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start, end string
		want       time.Duration
	}{
		{"06:00", "18:00", 12 * time.Hour},
		{"18:00", "06:00", 12 * time.Hour},
		{"08:00", "16:00", 8 * time.Hour},
		{"22:30", "10:30", 12 * time.Hour},
		{"07:00", "07:00", 24 * time.Hour},
	}

	for _, tc := range tests {
		start, err := ParseTimeOfDay(tc.start)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%s) error: %v", tc.start, err)
		}
		end, err := ParseTimeOfDay(tc.end)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%s) error: %v", tc.end, err)
		}
		if got := start.Until(end); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.start, tc.end, tc.want, got)
		}
	}
}

func TestTimeOfDay_AddWraps(t *testing.T) {
	t.Parallel()

	start := MustTimeOfDay(19, 0)
	if got := start.Add(12 * time.Hour).String(); got != "07:00" {
		t.Fatalf("expected 07:00, got %s", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	got, err := ParseTimeOfDay("06:30:59")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "06:30" {
		t.Fatalf("expected 06:30, got %s", got)
	}

	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-3", -3*60*60)
	instant := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	got := DateOf(instant, loc)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddDays(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, 2, 28, 15, 0, 0, 0, time.UTC)
	if got := AddDays(d, 1); !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next day %v", got)
	}
	if !SameDate(d, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected same date")
	}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestToday_FollowsClockLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-3", -3*60*60)
	clock := fixedClock{now: time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC).In(loc)}

	if got := Today(clock); !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected today %v", got)
	}
}
