// Package ganzhi defines the heavenly stems, earthly branches and the
// sexagenary stem-branch pair they form.
package ganzhi

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
)

// Stem is a heavenly stem, 0 (Jia) through 9 (Gui).
type Stem int

const (
	Jia Stem = iota
	Yi
	Bing
	Ding
	Wu
	Ji
	Geng
	Xin
	Ren
	Gui
)

// Branch is an earthly branch, 0 (Zi) through 11 (Hai).
type Branch int

const (
	Zi Branch = iota
	Chou
	Yin
	Mao
	Chen
	Si
	WuBranch
	Wei
	Shen
	You
	Xu
	Hai
)

var stemNames = [cyclic.Stems]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}

var stemGlyphs = [cyclic.Stems]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchNames = [cyclic.Branches]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}

var branchGlyphs = [cyclic.Branches]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= Jia && s <= Gui }

// Add returns the stem n steps after s.
func (s Stem) Add(n int) Stem { return Stem(cyclic.Add(int(s), n, cyclic.Stems)) }

// IsYang reports whether the stem is Yang (even index).
func (s Stem) IsYang() bool { return s%2 == 0 }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// Glyph returns the stem's character.
func (s Stem) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return stemGlyphs[s]
}

// MarshalText encodes the stem by name.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stem %d", int(s))
	}
	return []byte(stemNames[s]), nil
}

// UnmarshalText decodes a stem name.
func (s *Stem) UnmarshalText(b []byte) error {
	for i, n := range stemNames {
		if n == string(b) {
			*s = Stem(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stem %q", string(b))
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= Zi && b <= Hai }

// Add returns the branch n steps after b (negative n steps backwards).
func (b Branch) Add(n int) Branch { return Branch(cyclic.Add(int(b), n, cyclic.Branches)) }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// Glyph returns the branch's character.
func (b Branch) Glyph() string {
	if !b.Valid() {
		return "?"
	}
	return branchGlyphs[b]
}

// MarshalText encodes the branch by name.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid branch %d", int(b))
	}
	return []byte(branchNames[b]), nil
}

// UnmarshalText decodes a branch name.
func (b *Branch) UnmarshalText(text []byte) error {
	for i, n := range branchNames {
		if n == string(text) {
			*b = Branch(i)
			return nil
		}
	}
	return fmt.Errorf("unknown branch %q", string(text))
}

// Group returns the branch's trine (0: Shen-Zi-Chen, 1: Yin-Wu-Xu,
// 2: Si-You-Chou, 3: Hai-Mao-Wei). Several star tables key on it.
func (b Branch) Group() int {
	switch b {
	case Shen, Zi, Chen:
		return 0
	case Yin, WuBranch, Xu:
		return 1
	case Si, You, Chou:
		return 2
	default:
		return 3
	}
}

// Pair is one sexagenary stem-branch combination (a pillar).
type Pair struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// PairFromIndex returns the pair at position i of the sixty-term cycle,
// where 0 is Jia-Zi.
func PairFromIndex(i int) Pair {
	i = cyclic.Mod(i, cyclic.Sexagenary)
	return Pair{Stem: Stem(i % cyclic.Stems), Branch: Branch(i % cyclic.Branches)}
}

// Index returns the pair's position in the sixty-term cycle.
// Only pairs with matching stem and branch parity exist in the cycle.
func (p Pair) Index() int {
	return cyclic.Mod(6*int(p.Stem)-5*int(p.Branch), cyclic.Sexagenary)
}

// Valid reports whether the pair occurs in the sexagenary cycle.
func (p Pair) Valid() bool {
	return p.Stem.Valid() && p.Branch.Valid() && int(p.Stem)%2 == int(p.Branch)%2
}

func (p Pair) String() string {
	return p.Stem.String() + "-" + p.Branch.String()
}

// Glyph returns the two-character form of the pair.
func (p Pair) Glyph() string {
	return p.Stem.Glyph() + p.Branch.Glyph()
}

// YearPair returns the pillar of a lunar year number (1984 is Jia-Zi).
func YearPair(year int) Pair {
	return PairFromIndex(year - 4)
}
