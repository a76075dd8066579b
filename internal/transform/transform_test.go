package transform

import (
	"testing"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
	"github.com/topasiaedu/nm-zwds-sub004/internal/star"
)

func place1990(t *testing.T) (*star.Placement, palace.Ring) {
	t.Helper()
	p := pillar.Pillars{
		Year:        gz.Pair{Stem: gz.Geng, Branch: gz.WuBranch},
		Month:       gz.Pair{Stem: gz.Ren, Branch: gz.WuBranch},
		Day:         gz.Pair{Stem: gz.Xin, Branch: gz.Hai},
		Hour:        gz.Pair{Stem: gz.Gui, Branch: gz.Si},
		MonthNumber: 5,
	}
	prof := profile.Derive(p, profile.Male)
	ring := palace.Build(p.Year.Stem, prof.LifeBranch)
	return star.Place(star.Input{Pillars: p, Profile: prof, Ring: ring, LunarDay: 23}), ring
}

func TestTable_Complete(t *testing.T) {
	for s := gz.Jia; s <= gz.Gui; s++ {
		seen := make(map[star.ID]bool)
		for _, id := range Targets(s) {
			if !id.Valid() {
				t.Errorf("stem %s transforms invalid star %d", s, int(id))
			}
			if seen[id] {
				t.Errorf("stem %s transforms %s twice", s, id)
			}
			seen[id] = true
		}
	}
}

func TestResolve_EveryStemGivesFourResolutions(t *testing.T) {
	p, ring := place1990(t)
	for s := gz.Jia; s <= gz.Gui; s++ {
		set, err := Resolve(s, NoHost, p, ring)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", s, err)
		}
		for i, r := range set {
			if r.Type != Types[i] || r.Star != Targets(s)[i] {
				t.Errorf("%s[%d] = %s %s, want %s %s", s, i, r.Type, r.Star, Types[i], Targets(s)[i])
			}
			if r.Branch != p.Where(r.Star) || ring.At(r.Palace).Branch != r.Branch {
				t.Errorf("%s %s landed on %s palace %d", s, r.Type, r.Branch, r.Palace)
			}
			if r.Self {
				t.Errorf("%s %s is Self without a host", s, r.Type)
			}
		}
	}
}

func TestResolve_Example1990(t *testing.T) {
	p, ring := place1990(t)
	set, err := Resolve(gz.Geng, NoHost, p, ring)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Geng: Lu tai_yang, Quan wu_qu, Ke tai_yin, Ji tian_tong.
	want := [4]star.ID{star.TaiYang, star.WuQu, star.TaiYin, star.TianTong}
	for i, r := range set {
		if r.Star != want[i] {
			t.Errorf("%s = %s, want %s", r.Type, r.Star, want[i])
		}
	}
	if lu := set[0]; lu.Palace != ring.IndexOf(p.Where(star.TaiYang)) {
		t.Errorf("Lu palace = %d, want the palace holding tai_yang", lu.Palace)
	}
}

func TestResolve_SelfFlag(t *testing.T) {
	p, ring := place1990(t)
	set, err := Resolve(gz.Geng, NoHost, p, ring)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	host := set[1].Palace
	hosted, err := Resolve(gz.Geng, host, p, ring)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !hosted[1].Self {
		t.Error("Quan should be Self in its own palace")
	}
	for _, r := range hosted {
		if r.Self != (r.Palace == host) {
			t.Errorf("%s Self = %v, palace %d host %d", r.Type, r.Self, r.Palace, host)
		}
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	p, ring := place1990(t)
	if _, err := Resolve(gz.Stem(10), NoHost, p, ring); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("bad stem error = %v, want INVALID_INPUT", err)
	}
	if _, err := Resolve(gz.Jia, 13, p, ring); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("bad host error = %v, want INVALID_INPUT", err)
	}
}

func TestSelfTransformations(t *testing.T) {
	p, ring := place1990(t)
	all, err := SelfTransformations(p, ring)
	if err != nil {
		t.Fatalf("SelfTransformations failed: %v", err)
	}
	for i, set := range all {
		slot := ring.At(i + 1)
		for j, r := range set {
			if r.Star != Targets(slot.Stem)[j] {
				t.Errorf("palace %d %s = %s, want %s", slot.Index, r.Type, r.Star, Targets(slot.Stem)[j])
			}
			if r.Self != (r.Palace == slot.Index) {
				t.Errorf("palace %d %s Self = %v", slot.Index, r.Type, r.Self)
			}
		}
	}
}
