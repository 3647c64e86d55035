package calendar

import (
	"encoding/json"
	"fmt"
)

// Stem is one of the ten heavenly stems, 0 (jia) through 9 (gui).
type Stem int

// Branch is one of the twelve earthly branches, 0 (zi) through 11 (hai).
type Branch int

// Element is one of the five phases.
type Element int

// Zodiac is one of the twelve animals, indexed like Branch.
type Zodiac int

// Five phases.
const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Zodiac animals.
const (
	Rat Zodiac = iota
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

var (
	stemNames    = [10]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}
	branchNames  = [12]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}
	elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}
	zodiacNames  = [12]string{"rat", "ox", "tiger", "rabbit", "dragon", "snake", "horse", "goat", "monkey", "rooster", "dog", "pig"}

	branchElements = [12]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

	// naYinElements is indexed by cycle index / 2 (hai zhong jin, lu zhong huo, ...).
	naYinElements = [30]Element{
		Metal, Fire, Wood, Earth, Metal, Fire, Water, Earth, Metal, Wood,
		Water, Earth, Fire, Wood, Water, Metal, Fire, Wood, Earth, Metal,
		Fire, Water, Earth, Metal, Wood, Water, Earth, Fire, Wood, Water,
	}
)

func (s Stem) String() string {
	if s < 0 || s > 9 {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// MarshalText encodes the stem by name.
func (s Stem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Element returns the stem's phase: two consecutive stems per phase.
func (s Stem) Element() Element { return Element(s / 2) }

// IsYang reports whether the stem is yang (even index).
func (s Stem) IsYang() bool { return s%2 == 0 }

func (b Branch) String() string {
	if b < 0 || b > 11 {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// MarshalText encodes the branch by name.
func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Element returns the branch's phase.
func (b Branch) Element() Element { return branchElements[b] }

// Zodiac returns the animal of the branch.
func (b Branch) Zodiac() Zodiac { return Zodiac(b) }

// Clash returns the opposing branch, six places away.
func (b Branch) Clash() Branch { return Branch(mod(int(b)+6, 12)) }

// Harmony returns the six-harmony partner (zi-chou, yin-hai, mao-xu, ...).
func (b Branch) Harmony() Branch { return Branch(mod(1-int(b), 12)) }

func (e Element) String() string {
	if e < 0 || e > 4 {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// MarshalText encodes the element by name.
func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (z Zodiac) String() string {
	if z < 0 || z > 11 {
		return fmt.Sprintf("Zodiac(%d)", int(z))
	}
	return zodiacNames[z]
}

// MarshalText encodes the zodiac by name.
func (z Zodiac) MarshalText() ([]byte, error) { return []byte(z.String()), nil }

// =============================================================================
// StemBranch
// =============================================================================

// StemBranch is a position in the sexagenary cycle. Stem and branch are both
// derived from the one cycle index, which is why the cycle has 60 members
// rather than 120.
type StemBranch struct {
	idx int
}

// StemBranchAt returns the cycle member at idx (taken mod 60).
func StemBranchAt(idx int) StemBranch {
	return StemBranch{idx: mod(idx, 60)}
}

// StemBranchOf finds the cycle member with the given stem and branch.
// Stem and branch must share polarity; jia-chou, for one, does not exist.
func StemBranchOf(s Stem, b Branch) (StemBranch, error) {
	if s < 0 || s > 9 || b < 0 || b > 11 {
		return StemBranch{}, invalidf("stem %d / branch %d out of range", s, b)
	}
	if int(s)%2 != int(b)%2 {
		return StemBranch{}, invalidf("stem %s and branch %s differ in polarity", s, b)
	}
	return StemBranchAt(6*int(s) - 5*int(b)), nil
}

// Index returns the cycle index in [0, 60).
func (sb StemBranch) Index() int { return sb.idx }

// Stem returns idx mod 10.
func (sb StemBranch) Stem() Stem { return Stem(sb.idx % 10) }

// Branch returns idx mod 12.
func (sb StemBranch) Branch() Branch { return Branch(sb.idx % 12) }

// Next returns the member n places later in the cycle.
func (sb StemBranch) Next(n int) StemBranch { return StemBranchAt(sb.idx + n) }

// NaYin returns the na-yin pair index in [0, 30); consecutive members share one.
func (sb StemBranch) NaYin() int { return sb.idx / 2 }

// NaYinElement returns the phase of the member's na-yin.
func (sb StemBranch) NaYinElement() Element { return naYinElements[sb.NaYin()] }

func (sb StemBranch) String() string {
	return sb.Stem().String() + "-" + sb.Branch().String()
}

type stemBranchView struct {
	Index  int    `json:"index" yaml:"index"`
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
}

func (sb StemBranch) view() stemBranchView {
	return stemBranchView{Index: sb.idx, Stem: sb.Stem(), Branch: sb.Branch()}
}

// MarshalJSON encodes the pillar as {"index", "stem", "branch"}.
func (sb StemBranch) MarshalJSON() ([]byte, error) {
	return json.Marshal(sb.view())
}

// MarshalYAML encodes the pillar like MarshalJSON.
func (sb StemBranch) MarshalYAML() (any, error) {
	return sb.view(), nil
}

// =============================================================================
// Pillars
// =============================================================================

// Anchors of the cycle.
const (
	// yearCycleEpoch is a jia-zi lunar year.
	yearCycleEpoch = 1984

	// dayCycleOffset puts 2000-01-07 (JDN 2451551) at jia-zi.
	dayCycleOffset = 49

	// firstMonthBranch: lunar month 1 is always a yin (tiger) month.
	firstMonthBranch = 2
)

// YearPillar returns the pillar of a lunar year.
func YearPillar(lunarYear int) StemBranch {
	return StemBranchAt(lunarYear - yearCycleEpoch)
}

// DayPillar returns the pillar of a day. It is the only pillar anchored
// directly to the continuous day axis.
func DayPillar(j JDN) StemBranch {
	return StemBranchAt(int(j) + dayCycleOffset)
}

// MonthPillar applies the five-tiger rule: the year stem's pairing
// (jia/ji, yi/geng, ...) fixes the stem of month 1, and each later month
// advances one place. A leap month shares the pillar of the ordinary month
// it follows, so isLeapMonth has no effect on the result.
func MonthPillar(yearStem Stem, lunarMonth int, isLeapMonth bool) (StemBranch, error) {
	if lunarMonth < 1 || lunarMonth > 12 {
		return StemBranch{}, invalidf("lunar month %d not in 1-12", lunarMonth)
	}
	first := mod(int(yearStem), 5)*12 + firstMonthBranch
	return StemBranchAt(first + lunarMonth - 1), nil
}

// HourBranch maps an hour of the day to its two-hour branch. Zi spans
// 23:00-00:59, so 23 wraps to zi.
func HourBranch(hour int) (Branch, error) {
	if hour < 0 || hour > 23 {
		return 0, invalidf("hour %d not in 0-23", hour)
	}
	return Branch(((hour + 1) / 2) % 12), nil
}

// HourPillar applies the five-rat rule: the day stem's pairing fixes the
// stem of the zi hour, and each later hour advances one place.
func HourPillar(dayStem Stem, hourBranch Branch) StemBranch {
	return StemBranchAt(mod(int(dayStem), 5)*12 + int(hourBranch))
}

// hourPillarOn returns the pillar of an hour on day j. The late zi hour
// (23:00-23:59) opens the next day's cycle, so its stem follows day j+1
// while the day pillar stays on the civil day.
func hourPillarOn(j JDN, hour int) (StemBranch, error) {
	branch, err := HourBranch(hour)
	if err != nil {
		return StemBranch{}, err
	}
	if hour == 23 {
		j++
	}
	return HourPillar(DayPillar(j).Stem(), branch), nil
}

// mod returns a mod n in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
