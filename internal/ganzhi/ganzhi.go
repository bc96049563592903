// Package ganzhi models the sexagenary (stem-branch) cycle.
//
// A GanZhi pairs one of the 10 heavenly stems with one of the 12 earthly
// branches. Both components advance in lock-step, so only 60 of the 120
// combinations exist: those where stem and branch share parity.
package ganzhi

import (
	"errors"
	"fmt"
)

const (
	StemCount   = 10
	BranchCount = 12
	CycleLength = 60
)

var (
	// ErrParity is returned when a stem and a branch of different parity are paired.
	ErrParity = errors.New("stem and branch parity differ")

	// ErrUnknownName is returned when a name does not match any stem, branch or pair.
	ErrUnknownName = errors.New("unknown stem-branch name")
)

var stemNames = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchNames = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// -----------------------------------------------------------------------------
// Stem
// -----------------------------------------------------------------------------

// Stem is a heavenly stem, 0 (甲) through 9 (癸).
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

// Offset returns the stem n positions later in the cycle (n may be negative).
func (s Stem) Offset(n int) Stem {
	return Stem(mod(int(s)+n, StemCount))
}

// Difference returns how many steps forward from o reach s, in [0, 10).
func (s Stem) Difference(o Stem) int {
	return mod(int(s)-int(o), StemCount)
}

func (s Stem) Name() string {
	return stemNames[mod(int(s), StemCount)]
}

func (s Stem) String() string { return s.Name() }

// -----------------------------------------------------------------------------
// Branch
// -----------------------------------------------------------------------------

// Branch is an earthly branch, 0 (子) through 11 (亥).
type Branch int

const (
	Rat Branch = iota // 子
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
	Pig
)

// Offset returns the branch n positions later in the cycle (n may be negative).
func (b Branch) Offset(n int) Branch {
	return Branch(mod(int(b)+n, BranchCount))
}

// Difference returns how many steps forward from o reach b, in [0, 12).
func (b Branch) Difference(o Branch) int {
	return mod(int(b)-int(o), BranchCount)
}

func (b Branch) Name() string {
	return branchNames[mod(int(b), BranchCount)]
}

func (b Branch) String() string { return b.Name() }

// -----------------------------------------------------------------------------
// GanZhi
// -----------------------------------------------------------------------------

// GanZhi is a position in the 60-element cycle. The zero value is 甲子.
type GanZhi struct {
	index int
}

// JiaZi is the first pair of the cycle.
var JiaZi = GanZhi{}

// New pairs a stem with a branch. Pairs of mismatched parity do not exist.
func New(s Stem, b Branch) (GanZhi, error) {
	si, bi := mod(int(s), StemCount), mod(int(b), BranchCount)
	if si%2 != bi%2 {
		return GanZhi{}, fmt.Errorf("%w: %s%s", ErrParity, s.Name(), b.Name())
	}
	// Solve index ≡ si (mod 10) and index ≡ bi (mod 12).
	for i := si; i < CycleLength; i += StemCount {
		if i%BranchCount == bi {
			return GanZhi{index: i}, nil
		}
	}
	return GanZhi{}, fmt.Errorf("%w: %s%s", ErrParity, s.Name(), b.Name())
}

// MustNew is New for pairs known to be valid at compile time.
func MustNew(s Stem, b Branch) GanZhi {
	g, err := New(s, b)
	if err != nil {
		panic(err)
	}
	return g
}

// FromIndex returns the pair at position i of the cycle, wrapping modulo 60.
func FromIndex(i int) GanZhi {
	return GanZhi{index: mod(i, CycleLength)}
}

// Parse resolves a two-character name such as "甲子".
func Parse(name string) (GanZhi, error) {
	for i := 0; i < CycleLength; i++ {
		if g := FromIndex(i); g.Name() == name {
			return g, nil
		}
	}
	return GanZhi{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Index is the position in the cycle, in [0, 60).
func (g GanZhi) Index() int { return g.index }

func (g GanZhi) Stem() Stem { return Stem(g.index % StemCount) }

func (g GanZhi) Branch() Branch { return Branch(g.index % BranchCount) }

// Offset returns the pair n positions later (n may be negative).
func (g GanZhi) Offset(n int) GanZhi {
	return FromIndex(g.index + n)
}

// Difference returns how many steps forward from o reach g, in [0, 60).
func (g GanZhi) Difference(o GanZhi) int {
	return mod(g.index-o.index, CycleLength)
}

func (g GanZhi) Name() string {
	return g.Stem().Name() + g.Branch().Name()
}

func (g GanZhi) String() string { return g.Name() }

// MarshalText renders the pair by name so JSON and YAML output stay readable.
func (g GanZhi) MarshalText() ([]byte, error) {
	return []byte(g.Name()), nil
}

func (g *GanZhi) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
