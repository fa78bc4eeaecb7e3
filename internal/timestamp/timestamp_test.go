package timestamp

import (
	"errors"
	"testing"
)

func TestParseFullForm(t *testing.T) {
	ts, err := Parse("01:23:45.123456789")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Hours() != 1 || ts.Minutes() != 23 || ts.Seconds() != 45 {
		t.Fatalf("unexpected components: %d:%d:%d", ts.Hours(), ts.Minutes(), ts.Seconds())
	}
	if ts.Nanoseconds() != 123456789 {
		t.Fatalf("unexpected nanoseconds: %d", ts.Nanoseconds())
	}
}

func TestParseMinutesSeconds(t *testing.T) {
	ts, err := Parse("23:45")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Hours() != 0 || ts.Minutes() != 23 || ts.Seconds() != 45 || ts.Nanoseconds() != 0 {
		t.Fatalf("unexpected components: %v", ts)
	}
	if ts.String() != "00:23:45" {
		t.Fatalf("unexpected string: %q", ts.String())
	}
}

func TestParseFractionRightPadded(t *testing.T) {
	ts, err := Parse("00:00:01.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Nanoseconds() != 500_000_000 {
		t.Fatalf("fraction must right-pad, got %d ns", ts.Nanoseconds())
	}
}

func TestParseExplicitZeroFraction(t *testing.T) {
	ts, err := Parse("01:23:45.0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Nanoseconds() != 0 {
		t.Fatalf("unexpected nanoseconds: %d", ts.Nanoseconds())
	}
	if ts.String() != "01:23:45" {
		t.Fatalf("unexpected string: %q", ts.String())
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not-a-timestamp",
		"123:00:00",
		"1:2:3:4",
		"01:02:03.",
		"01:02:03.1234567890",
		"1",
		"-1:02:03",
	}
	for _, input := range cases {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Parse(%q): expected ErrInvalidFormat, got %v", input, err)
		}
	}
}

func TestFromSecondsWholeAndFractional(t *testing.T) {
	ts, err := FromSeconds(5025)
	if err != nil {
		t.Fatalf("from seconds: %v", err)
	}
	if ts.Hours() != 1 || ts.Minutes() != 23 || ts.Seconds() != 45 || ts.Nanoseconds() != 0 {
		t.Fatalf("unexpected components: %v", ts)
	}

	ts, err = FromSeconds(1.75)
	if err != nil {
		t.Fatalf("from seconds: %v", err)
	}
	if ts.TotalSeconds() != 1 || ts.Nanoseconds() != 750_000_000 {
		t.Fatalf("unexpected fractional result: %v", ts)
	}
}

func TestFromComponentsBounds(t *testing.T) {
	if _, err := FromComponents(0, 60, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for minutes, got %v", err)
	}
	if _, err := FromComponents(0, 0, 60, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for seconds, got %v", err)
	}
	ts, err := FromComponents(100, 59, 59, 1)
	if err != nil {
		t.Fatalf("hours are unbounded: %v", err)
	}
	if ts.TotalSeconds() != 100*3600+59*60+59 {
		t.Fatalf("unexpected total seconds: %d", ts.TotalSeconds())
	}
}

func TestNewRejectsInvalidNanoseconds(t *testing.T) {
	if _, err := New(0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := New(0, 1_000_000_000); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := New(-1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestStringStripsTrailingFractionZeros(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12:34:56.789", "12:34:56.789"},
		{"01:01:01.100000000", "01:01:01.1"},
		{"00:00:00.000000001", "00:00:00.000000001"},
		{"5:06", "00:05:06"},
	}
	for _, tc := range cases {
		ts, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := ts.String(); got != tc.want {
			t.Fatalf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTripUnderEquality(t *testing.T) {
	cases := []Timestamp{
		MustNew(0, 0),
		MustNew(1, 500_000_000),
		MustNew(5025, 123456789),
		MustNew(359999, 999999999),
	}
	for _, ts := range cases {
		parsed, err := Parse(ts.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", ts.String(), err)
		}
		if !parsed.Equal(ts) {
			t.Fatalf("round trip mismatch: %v != %v", parsed, ts)
		}
	}
}

func TestOrdering(t *testing.T) {
	pairs := []struct {
		smaller string
		larger  string
	}{
		{"01:01:01.1", "01:01:01.2"},
		{"01:01:01.9", "01:01:02.0"},
		{"01:01:59", "01:02:00"},
		{"01:59:00", "02:00:00"},
	}
	for _, pair := range pairs {
		a, err := Parse(pair.smaller)
		if err != nil {
			t.Fatalf("parse %q: %v", pair.smaller, err)
		}
		b, err := Parse(pair.larger)
		if err != nil {
			t.Fatalf("parse %q: %v", pair.larger, err)
		}
		if !a.Less(b) || b.Less(a) {
			t.Fatalf("expected %v < %v", a, b)
		}
		if a.Compare(b) != -1 || b.Compare(a) != 1 {
			t.Fatalf("unexpected compare results for %v, %v", a, b)
		}
	}
}

func TestEqualityAcrossPrecision(t *testing.T) {
	a, err := Parse("01:01:01.1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse("01:01:01.100000000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	c, err := Parse("01:01:01.2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("expected %v != %v", a, c)
	}
}
