// Package cyclic centralizes the wrap-safe modular arithmetic used by the
// ring, star and timing computations.
package cyclic

// Mod returns v mod n in the range [0, n). n must be positive.
func Mod(v, n int) int {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}

// Add returns (a + b) mod n.
func Add(a, b, n int) int {
	return Mod(a+b, n)
}

// Sub returns (a - b) mod n.
func Sub(a, b, n int) int {
	return Mod(a-b, n)
}

// Step returns (start + dir*k) mod n, where dir is +1 or -1.
func Step(start, dir, k, n int) int {
	return Mod(start+dir*k, n)
}

// Moduli used throughout the engine.
const (
	Stems      = 10
	Branches   = 12
	Sexagenary = 60
)

// Ring returns (v mod 12), the ring position of a branch-indexed value.
func Ring(v int) int {
	return Mod(v, Branches)
}
