package ganzhi

import (
	"encoding/json"
	"testing"
)

func TestPairIndexRoundTrip(t *testing.T) {
	seen := make(map[Pair]bool)
	for i := 0; i < 60; i++ {
		p := PairFromIndex(i)
		if !p.Valid() || p.Index() != i {
			t.Fatalf("PairFromIndex(%d) = %v, index %d", i, p, p.Index())
		}
		if seen[p] {
			t.Fatalf("pair %v repeated", p)
		}
		seen[p] = true
	}
}

func TestYearPair(t *testing.T) {
	tests := []struct {
		year int
		want Pair
	}{
		{1984, Pair{Jia, Zi}},
		{1990, Pair{Geng, WuBranch}},
		{2000, Pair{Geng, Chen}},
		{2024, Pair{Jia, Chen}},
		{1900, Pair{Geng, Zi}},
		{4, Pair{Jia, Zi}},
		{1, Pair{Xin, You}},
	}
	for _, tt := range tests {
		if got := YearPair(tt.year); got != tt.want {
			t.Errorf("YearPair(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestBranchGroup(t *testing.T) {
	counts := make(map[int]int)
	for b := Zi; b <= Hai; b++ {
		counts[b.Group()]++
		if b.Group() != b.Add(4).Group() {
			t.Errorf("%s and %s share a trine but not a group", b, b.Add(4))
		}
	}
	for g := 0; g < 4; g++ {
		if counts[g] != 3 {
			t.Errorf("group %d has %d branches, want 3", g, counts[g])
		}
	}
}

func TestStemBranchText(t *testing.T) {
	b, err := json.Marshal(Pair{Bing, Yin})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"stem":"Bing","branch":"Yin"}` {
		t.Errorf("marshal = %s", b)
	}

	var p Pair
	if err := json.Unmarshal(b, &p); err != nil || p != (Pair{Bing, Yin}) {
		t.Errorf("unmarshal = %v, %v", p, err)
	}
	if err := json.Unmarshal([]byte(`{"stem":"Nope","branch":"Yin"}`), &p); err == nil {
		t.Error("expected error for unknown stem")
	}
	if _, err := Stem(10).MarshalText(); err == nil {
		t.Error("expected error marshalling stem 10")
	}
}

func TestAddAndGlyph(t *testing.T) {
	if got := Zi.Add(-1); got != Hai {
		t.Errorf("Zi.Add(-1) = %s, want Hai", got)
	}
	if got := Zi.Add(6); got != WuBranch {
		t.Errorf("Zi.Add(6) = %s, want Wu", got)
	}
	if got := Gui.Add(1); got != Jia {
		t.Errorf("Gui.Add(1) = %s, want Jia", got)
	}
	if !Geng.IsYang() || Xin.IsYang() {
		t.Error("Geng should be yang and Xin yin")
	}
	if got := (Pair{Jia, Zi}).Glyph(); got != "甲子" {
		t.Errorf("Glyph = %q, want 甲子", got)
	}
}
