package timegrid

import (
	"reflect"
	"testing"

	"clinibook/utils"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"13:00", 780},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToMinutes_Malformed(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:30:00", "-1:00"} {
		_, err := ToMinutes(in)
		if err == nil {
			t.Fatalf("ToMinutes(%q): expected error", in)
		}
		if !utils.HasCode(err, utils.CodeFormat) {
			t.Fatalf("ToMinutes(%q): code = %q, want FORMAT_ERROR", in, utils.ErrorCode(err))
		}
	}
}

func TestFromMinutes_RoundTrip(t *testing.T) {
	for _, min := range []int{0, 1, 59, 60, 420, 1439} {
		back, err := ToMinutes(FromMinutes(min))
		if err != nil {
			t.Fatalf("round trip of %d: %v", min, err)
		}
		if back != min {
			t.Fatalf("round trip of %d: got %d", min, back)
		}
	}
}

func TestBuildSlots(t *testing.T) {
	got, err := BuildSlots("19:00", "21:00", 60)
	if err != nil {
		t.Fatalf("BuildSlots error: %v", err)
	}
	if want := []string{"19:00", "20:00"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildSlots = %v, want %v", got, want)
	}

	// A slot must fit entirely inside the window: 09:30 + 30min > 09:45.
	got, err = BuildSlots("09:00", "09:45", 30)
	if err != nil {
		t.Fatalf("BuildSlots error: %v", err)
	}
	if want := []string{"09:00"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildSlots = %v, want %v", got, want)
	}
}

func TestBuildSlots_Degenerate(t *testing.T) {
	if got, _ := BuildSlots("10:00", "10:00", 30); len(got) != 0 {
		t.Fatalf("start == end: got %v", got)
	}
	if got, _ := BuildSlots("11:00", "10:00", 30); len(got) != 0 {
		t.Fatalf("start > end: got %v", got)
	}
	if got := BuildSlotsMinutes(540, 660, 0); len(got) != 0 {
		t.Fatalf("step 0: got %v", got)
	}
	if got := BuildSlotsMinutes(540, 660, -15); len(got) != 0 {
		t.Fatalf("negative step: got %v", got)
	}
}

func TestBuildSlots_Deterministic(t *testing.T) {
	a, _ := BuildSlots("08:15", "12:00", 45)
	b, _ := BuildSlots("08:15", "12:00", 45)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two identical calls differ: %v vs %v", a, b)
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2025-06-10")
	if err != nil || got != "2025-06-10" {
		t.Fatalf("NormalizeDate plain day = %q, %v", got, err)
	}
	got, err = NormalizeDate("2025-06-10T14:30:00Z")
	if err != nil || got != "2025-06-10" {
		t.Fatalf("NormalizeDate timestamp = %q, %v", got, err)
	}
	if _, err := NormalizeDate("10/06/2025"); !utils.HasCode(err, utils.CodeFormat) {
		t.Fatalf("NormalizeDate garbage: code = %q, want FORMAT_ERROR", utils.ErrorCode(err))
	}
}
