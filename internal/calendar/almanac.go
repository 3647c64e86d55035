package calendar

import (
	"fmt"
	"sort"
)

// Officer is one of the twelve day officers (jian chu), which decide a
// day's listed activities.
type Officer int

// The twelve day officers, in cycle order.
const (
	Establish Officer = iota
	Remove
	Full
	Balance
	Stable
	Initiate
	Destruction
	Danger
	Success
	Receive
	Open
	Close
)

var officerNames = [12]string{
	"establish", "remove", "full", "balance", "stable", "initiate",
	"destruction", "danger", "success", "receive", "open", "close",
}

func (o Officer) String() string {
	if o < 0 || o > 11 {
		return fmt.Sprintf("Officer(%d)", int(o))
	}
	return officerNames[o]
}

// MarshalText encodes the officer by name.
func (o Officer) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// OfficerFor returns the officer of a day: the day whose branch equals the
// solar month's branch is Establish, and each following branch advances one.
func OfficerFor(dayBranch, monthBranch Branch) Officer {
	return Officer(mod(int(dayBranch)-int(monthBranch), 12))
}

// Activity is an almanac activity tag.
type Activity int

// Activity tags.
const (
	Sacrifice Activity = iota
	Pray
	SeekHeirs
	Wedding
	Betrothal
	Travel
	TakeOffice
	MoveIn
	Relocate
	Groundbreaking
	Construction
	OpenBusiness
	Trade
	SignContract
	CollectWealth
	OpenGranary
	Burial
	Bathe
	Cleaning
	SeekMedicine
	Planting
	Livestock
	Hunting
	Demolition
	TailorClothes
	Consecrate
	Lawsuit
	DigWell
	PaveRoads
	Plaster
	SetUpBed
	BuildDikes
	Voyage

	activityCount
)

var activityNames = [activityCount]string{
	"sacrifice", "pray", "seek_heirs", "wedding", "betrothal", "travel",
	"take_office", "move_in", "relocate", "groundbreaking", "construction",
	"open_business", "trade", "sign_contract", "collect_wealth", "open_granary",
	"burial", "bathe", "cleaning", "seek_medicine", "planting", "livestock",
	"hunting", "demolition", "tailor_clothes", "consecrate", "lawsuit",
	"dig_well", "pave_roads", "plaster", "set_up_bed", "build_dikes", "voyage",
}

func (a Activity) String() string {
	if a < 0 || a >= activityCount {
		return fmt.Sprintf("Activity(%d)", int(a))
	}
	return activityNames[a]
}

// MarshalText encodes the activity by name.
func (a Activity) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Deity is a direction-bearing almanac deity.
type Deity int

// Deities with a daily direction.
const (
	JoyDeity Deity = iota
	WealthDeity
	FortuneDeity
)

var deityNames = [3]string{"joy", "wealth", "fortune"}

func (d Deity) String() string {
	if d < 0 || d > 2 {
		return fmt.Sprintf("Deity(%d)", int(d))
	}
	return deityNames[d]
}

// MarshalText encodes the deity by name.
func (d Deity) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Direction is one of the eight compass directions.
type Direction int

// Compass directions, clockwise from north.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [8]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func (d Direction) String() string {
	if d < 0 || d > 7 {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// LuckyDirection pairs a deity with the direction it occupies for the day.
type LuckyDirection struct {
	Deity     Deity     `json:"deity" yaml:"deity"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// AlmanacEntry is the almanac reading of one day.
type AlmanacEntry struct {
	Officer      Officer          `json:"officer" yaml:"officer"`
	Auspicious   []Activity       `json:"auspicious" yaml:"auspicious"`
	Inauspicious []Activity       `json:"inauspicious" yaml:"inauspicious"`
	Directions   []LuckyDirection `json:"directions" yaml:"directions"`
	LuckyHours   []Branch         `json:"lucky_hours" yaml:"lucky_hours"`
	NobleHours   []Branch         `json:"noble_hours" yaml:"noble_hours"`
	Clash        Zodiac           `json:"clash" yaml:"clash"`
	ShaDirection Direction        `json:"sha_direction" yaml:"sha_direction"`
	Harmony      Zodiac           `json:"harmony" yaml:"harmony"`
}

// Lookup reads the almanac for a day pillar within the solar month that
// term belongs to. Every slice in the result is freshly allocated.
func Lookup(day StemBranch, term SolarTerm) AlmanacEntry {
	stem, branch := day.Stem(), day.Branch()
	officer := OfficerFor(branch, term.MonthBranch())
	row := officerTable[officer]

	return AlmanacEntry{
		Officer:      officer,
		Auspicious:   append([]Activity(nil), row.auspicious...),
		Inauspicious: append([]Activity(nil), row.inauspicious...),
		Directions:   luckyDirections(stem),
		LuckyHours:   yellowPathHours(branch),
		NobleHours:   []Branch{nobleHours[stem][0], nobleHours[stem][1]},
		Clash:        branch.Clash().Zodiac(),
		ShaDirection: shaDirections[branch%4],
		Harmony:      branch.Harmony().Zodiac(),
	}
}

func luckyDirections(stem Stem) []LuckyDirection {
	return []LuckyDirection{
		{Deity: JoyDeity, Direction: joyDirections[stem%5]},
		{Deity: WealthDeity, Direction: wealthDirections[stem.Element()]},
		{Deity: FortuneDeity, Direction: fortuneDirections[stem%5]},
	}
}

// yellowPathHours returns the six auspicious hour branches of a day, in
// branch order. The green dragon hour starts at shen on zi and wu days and
// moves two branches per day branch.
func yellowPathHours(dayBranch Branch) []Branch {
	start := 8 + 2*(int(dayBranch)%6)
	hours := make([]Branch, 0, len(yellowPathOffsets))
	for _, off := range yellowPathOffsets {
		hours = append(hours, Branch(mod(start+off, 12)))
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i] < hours[j] })
	return hours
}
