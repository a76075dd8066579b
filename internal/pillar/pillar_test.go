package pillar

import (
	"testing"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/lunar"
)

func dayNumber(t *testing.T, year, month, day int) int {
	t.Helper()
	n, err := lunar.DayNumber(year, month, day)
	if err != nil {
		t.Fatalf("DayNumber(%d-%d-%d) failed: %v", year, month, day, err)
	}
	return n
}

func computeSolar(t *testing.T, year, month, day, hour int) Pillars {
	t.Helper()
	n := dayNumber(t, year, month, day)
	p, err := Compute(lunar.FromDayNumber(n), n, hour, LeapSplit)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return p
}

func TestCompute_Example1990(t *testing.T) {
	p := computeSolar(t, 1990, 6, 15, 10)

	want := Pillars{
		Year:        gz.Pair{Stem: gz.Geng, Branch: gz.WuBranch},
		Month:       gz.Pair{Stem: gz.Ren, Branch: gz.WuBranch},
		Day:         gz.Pair{Stem: gz.Xin, Branch: gz.Hai},
		Hour:        gz.Pair{Stem: gz.Gui, Branch: gz.Si},
		MonthNumber: 5,
	}
	if p != want {
		t.Errorf("Compute = %+v, want %+v", p, want)
	}
}

func TestDayPair_KnownDays(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             gz.Pair
	}{
		{1900, 1, 31, gz.Pair{Stem: gz.Jia, Branch: gz.Chen}},
		{1949, 10, 1, gz.Pair{Stem: gz.Jia, Branch: gz.Zi}},
		{2000, 1, 1, gz.Pair{Stem: gz.Wu, Branch: gz.WuBranch}},
		{2024, 2, 10, gz.Pair{Stem: gz.Jia, Branch: gz.Chen}},
	}
	for _, tt := range tests {
		if got := DayPair(dayNumber(t, tt.year, tt.month, tt.day)); got != tt.want {
			t.Errorf("%d-%02d-%02d day pillar = %s, want %s", tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

func TestDayPair_ContinuousAcrossLeapMonth(t *testing.T) {
	// 2020 has a leap 4th month starting 2020-05-23.
	before := dayNumber(t, 2020, 5, 22)
	if got, want := DayPair(before+1), gz.PairFromIndex(DayPair(before).Index()+1); got != want {
		t.Errorf("first leap day pillar = %s, want %s", got, want)
	}
	if !lunar.FromDayNumber(before + 1).Leap {
		t.Error("2020-05-23 should open the leap month")
	}
}

func TestHourBranch(t *testing.T) {
	tests := []struct {
		hour int
		want gz.Branch
	}{
		{23, gz.Zi}, {0, gz.Zi}, {1, gz.Chou}, {2, gz.Chou}, {3, gz.Yin},
		{10, gz.Si}, {11, gz.WuBranch}, {12, gz.WuBranch}, {21, gz.Hai}, {22, gz.Hai},
	}
	for _, tt := range tests {
		got, err := HourBranch(tt.hour)
		if err != nil || got != tt.want {
			t.Errorf("HourBranch(%d) = %s, %v; want %s", tt.hour, got, err, tt.want)
		}
	}

	for _, bad := range []int{-1, 24} {
		if _, err := HourBranch(bad); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("HourBranch(%d) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestStemTablesAreTotal(t *testing.T) {
	for s := gz.Jia; s <= gz.Gui; s++ {
		for b := gz.Zi; b <= gz.Hai; b++ {
			if h := HourStem(s, b); !(gz.Pair{Stem: h, Branch: b}).Valid() {
				t.Errorf("hour stem %s for %s/%s breaks parity", h, s, b)
			}
			if m := MonthStem(s, b); !(gz.Pair{Stem: m, Branch: b}).Valid() {
				t.Errorf("month stem %s for %s/%s breaks parity", m, s, b)
			}
		}
		// Zi hour restarts the stem cycle every five day stems.
		if HourStem(s, gz.Zi) != HourStem(s.Add(5), gz.Zi) {
			t.Errorf("Zi hour stems of %s and %s differ", s, s.Add(5))
		}
		// Hours run on across days.
		if HourStem(s, gz.Hai).Add(1) != HourStem(s.Add(1), gz.Zi) {
			t.Errorf("hour stems break between %s Hai and %s Zi", s, s.Add(1))
		}
	}
}

func TestStemLookupMissPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"HourStem", func() { HourStem(gz.Stem(10), gz.Zi) }},
		{"MonthStem", func() { MonthStem(gz.Jia, gz.Branch(-1)) }},
		{"MonthBranch", func() { MonthBranch(13) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestEffectiveMonth(t *testing.T) {
	leapEarly := lunar.Date{Year: 2020, Month: 4, Leap: true, Day: 15}
	leapLate := lunar.Date{Year: 2020, Month: 4, Leap: true, Day: 16}
	leapTwelfth := lunar.Date{Year: 2033, Month: 12, Leap: true, Day: 20}
	plain := lunar.Date{Year: 2020, Month: 4, Day: 20}

	tests := []struct {
		name   string
		d      lunar.Date
		policy LeapPolicy
		want   int
	}{
		{"split first half", leapEarly, LeapSplit, 4},
		{"split second half", leapLate, LeapSplit, 5},
		{"current", leapLate, LeapCurrent, 4},
		{"next", leapEarly, LeapNext, 5},
		{"split wraps past twelfth", leapTwelfth, LeapSplit, 1},
		{"ordinary month", plain, LeapNext, 4},
	}
	for _, tt := range tests {
		if got := EffectiveMonth(tt.d, tt.policy); got != tt.want {
			t.Errorf("%s: EffectiveMonth = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseLeapPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want LeapPolicy
	}{
		{"", LeapSplit},
		{"next", LeapNext},
	}
	for _, tt := range tests {
		p, err := ParseLeapPolicy(tt.in)
		if err != nil || p != tt.want {
			t.Errorf("ParseLeapPolicy(%q) = %q, %v; want %q", tt.in, p, err, tt.want)
		}
	}
	if _, err := ParseLeapPolicy("previous"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("ParseLeapPolicy(previous) error = %v, want INVALID_INPUT", err)
	}
}

func TestCompute_LeapMonthChangesMonthPillar(t *testing.T) {
	// 2020-06-07 is leap 4th month day 16.
	n := dayNumber(t, 2020, 6, 7)
	d := lunar.FromDayNumber(n)
	if want := (lunar.Date{Year: 2020, Month: 4, Leap: true, Day: 16}); d != want {
		t.Fatalf("FromDayNumber = %+v, want %+v", d, want)
	}

	split, err := Compute(d, n, 12, LeapSplit)
	if err != nil {
		t.Fatalf("Compute split failed: %v", err)
	}
	current, err := Compute(d, n, 12, LeapCurrent)
	if err != nil {
		t.Fatalf("Compute current failed: %v", err)
	}

	if split.Month.Branch != gz.WuBranch || current.Month.Branch != gz.Si {
		t.Errorf("month branches = %s / %s, want Wu / Si", split.Month.Branch, current.Month.Branch)
	}
	if split.Day != current.Day {
		t.Error("leap policy moved the day pillar")
	}
}
