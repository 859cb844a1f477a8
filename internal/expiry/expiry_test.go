package expiry

import (
	"testing"
	"time"
)

func TestEndOfMonth(t *testing.T) {
	cases := []struct {
		month, year int
		wantDay     int
	}{
		{2, 2030, 28}, // non-leap February
		{2, 2028, 29}, // leap February
		{4, 2030, 30},
		{12, 2029, 31},
	}
	for _, c := range cases {
		got, err := EndOfMonth(c.month, c.year, time.UTC)
		if err != nil {
			t.Fatalf("EndOfMonth(%d, %d): %v", c.month, c.year, err)
		}
		want := time.Date(c.year, time.Month(c.month), c.wantDay, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("EndOfMonth(%d, %d) got %v want %v", c.month, c.year, got, want)
		}
	}
}

func TestEndOfMonth_BadMonth(t *testing.T) {
	for _, m := range []int{0, 13, -1} {
		if _, err := EndOfMonth(m, 2030, time.UTC); err == nil {
			t.Fatalf("expected error for month %d", m)
		}
	}
}

func TestExpired(t *testing.T) {
	// Card expires 2030-02; last good day is Feb 28th.
	lastDay := time.Date(2030, time.February, 28, 23, 59, 0, 0, time.UTC)
	expired, err := Expired(2, 2030, lastDay)
	if err != nil || expired {
		t.Fatalf("expected not expired on last day, got expired=%v err=%v", expired, err)
	}

	firstOfNext := time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)
	expired, err = Expired(2, 2030, firstOfNext)
	if err != nil || !expired {
		t.Fatalf("expected expired on March 1st, got expired=%v err=%v", expired, err)
	}

	// Comparison is by calendar date, not instant: any time on the first
	// day after the month counts as expired, any time on the last day does not.
	earlyLastDay := time.Date(2030, time.February, 28, 0, 0, 0, 0, time.UTC)
	expired, err = Expired(2, 2030, earlyLastDay)
	if err != nil || expired {
		t.Fatalf("expected not expired at midnight of last day, got expired=%v err=%v", expired, err)
	}
}

func TestExpired_FutureAndPastYears(t *testing.T) {
	now := time.Date(2030, time.June, 15, 12, 0, 0, 0, time.UTC)
	if expired, _ := Expired(1, 2031, now); expired {
		t.Fatalf("next-year expiry reported expired")
	}
	if expired, _ := Expired(12, 2029, now); !expired {
		t.Fatalf("last-year expiry reported valid")
	}
}
