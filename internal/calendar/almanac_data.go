package calendar

// Static almanac tables. Rows are selected by day officer, day stem or day
// branch; nothing here depends on the date itself.

type officerRow struct {
	auspicious   []Activity
	inauspicious []Activity
}

var officerTable = [12]officerRow{
	Establish: {
		auspicious:   []Activity{Travel, TakeOffice, Pray, SeekHeirs},
		inauspicious: []Activity{Groundbreaking, OpenGranary, Burial, DigWell},
	},
	Remove: {
		auspicious:   []Activity{Sacrifice, Bathe, Cleaning, SeekMedicine, Pray},
		inauspicious: []Activity{Wedding, Travel, MoveIn},
	},
	Full: {
		auspicious:   []Activity{Sacrifice, Pray, OpenBusiness, Trade, CollectWealth, TailorClothes},
		inauspicious: []Activity{Burial, TakeOffice, SeekMedicine, Planting},
	},
	Balance: {
		auspicious:   []Activity{Sacrifice, PaveRoads, Construction, Plaster},
		inauspicious: []Activity{Planting, DigWell, Groundbreaking},
	},
	Stable: {
		auspicious:   []Activity{Sacrifice, Wedding, Betrothal, Trade, SignContract, Livestock},
		inauspicious: []Activity{Lawsuit, Travel, SeekMedicine, Planting},
	},
	Initiate: {
		auspicious:   []Activity{Sacrifice, Hunting, Construction, CollectWealth},
		inauspicious: []Activity{OpenBusiness, Relocate, Travel, OpenGranary},
	},
	Destruction: {
		auspicious:   []Activity{SeekMedicine, Demolition},
		inauspicious: []Activity{Wedding, OpenBusiness, Travel, MoveIn, Groundbreaking, SignContract},
	},
	Danger: {
		auspicious:   []Activity{Sacrifice, Pray, SetUpBed, TailorClothes},
		inauspicious: []Activity{Voyage, Travel, Relocate},
	},
	Success: {
		auspicious:   []Activity{Wedding, OpenBusiness, MoveIn, Travel, SignContract, Trade, Consecrate},
		inauspicious: []Activity{Lawsuit},
	},
	Receive: {
		auspicious:   []Activity{CollectWealth, Planting, Hunting, Trade},
		inauspicious: []Activity{Burial, Travel, SeekMedicine},
	},
	Open: {
		auspicious:   []Activity{Sacrifice, Pray, Travel, OpenBusiness, MoveIn, Wedding, Consecrate, Groundbreaking},
		inauspicious: []Activity{Burial, Hunting},
	},
	Close: {
		auspicious:   []Activity{Burial, BuildDikes, Construction},
		inauspicious: []Activity{OpenBusiness, Travel, SeekMedicine, Groundbreaking, Consecrate},
	},
}

// Direction tables. Joy and fortune follow the stem pairing (jia/ji, yi/geng,
// bing/xin, ding/ren, wu/gui), indexed by stem mod 5; wealth follows the
// stem's element, indexed by stem / 2.
var (
	joyDirections     = [5]Direction{NorthEast, NorthWest, SouthWest, South, SouthEast}
	fortuneDirections = [5]Direction{North, SouthWest, NorthWest, SouthEast, NorthEast}
	wealthDirections  = [5]Direction{NorthEast, SouthWest, North, East, South}
)

// nobleHours lists the tian-yi noble branches per day stem.
var nobleHours = [10][2]Branch{
	{1, 7},  // jia: chou, wei
	{0, 8},  // yi: zi, shen
	{9, 11}, // bing: you, hai
	{9, 11}, // ding
	{1, 7},  // wu
	{0, 8},  // ji
	{1, 7},  // geng
	{2, 6},  // xin: yin, wu
	{3, 5},  // ren: mao, si
	{3, 5},  // gui
}

// yellowPathOffsets are the positions of the six auspicious hour deities
// (green dragon, bright hall, golden coffer, heavenly virtue, jade hall,
// life governor) counted from the green dragon hour.
var yellowPathOffsets = [6]int{0, 1, 4, 5, 7, 10}

// shaDirections is indexed by day branch mod 4: the shen-zi-chen triad has
// its sha in the south, si-you-chou in the east, and so on.
var shaDirections = [4]Direction{South, East, North, West}
