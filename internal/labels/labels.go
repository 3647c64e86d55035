// Package labels renders calendar values as Traditional Chinese text, the way
// a printed almanac page shows them.
package labels

import (
	"time"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

var (
	stems      = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	branches   = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	zodiacs    = [12]string{"鼠", "牛", "虎", "兔", "龍", "蛇", "馬", "羊", "猴", "雞", "狗", "豬"}
	elements   = [5]string{"木", "火", "土", "金", "水"}
	weekdays   = [7]string{"日", "一", "二", "三", "四", "五", "六"}
	officers   = [12]string{"建", "除", "滿", "平", "定", "執", "破", "危", "成", "收", "開", "閉"}
	deities    = [3]string{"喜神", "財神", "福神"}
	directions = [8]string{"北", "東北", "東", "東南", "南", "西南", "西", "西北"}

	solarTerms = [calendar.TermsPerYear]string{
		"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
		"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
		"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
		"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
	}

	lunarMonths = [12]string{"正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "臘"}
	digits      = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

	naYin = [30]string{
		"海中金", "爐中火", "大林木", "路旁土", "劍鋒金", "山頭火",
		"澗下水", "城頭土", "白蠟金", "楊柳木", "泉中水", "屋上土",
		"霹靂火", "松柏木", "長流水", "沙中金", "山下火", "平地木",
		"壁上土", "金箔金", "覆燈火", "天河水", "大驛土", "釵釧金",
		"桑柘木", "大溪水", "沙中土", "天上火", "石榴木", "大海水",
	}

	activities = map[calendar.Activity]string{
		calendar.Sacrifice:      "祭祀",
		calendar.Pray:           "祈福",
		calendar.SeekHeirs:      "求嗣",
		calendar.Wedding:        "嫁娶",
		calendar.Betrothal:      "納采",
		calendar.Travel:         "出行",
		calendar.TakeOffice:     "上任",
		calendar.MoveIn:         "入宅",
		calendar.Relocate:       "移徙",
		calendar.Groundbreaking: "動土",
		calendar.Construction:   "修造",
		calendar.OpenBusiness:   "開市",
		calendar.Trade:          "交易",
		calendar.SignContract:   "立券",
		calendar.CollectWealth:  "納財",
		calendar.OpenGranary:    "開倉",
		calendar.Burial:         "安葬",
		calendar.Bathe:          "沐浴",
		calendar.Cleaning:       "掃舍",
		calendar.SeekMedicine:   "求醫",
		calendar.Planting:       "栽種",
		calendar.Livestock:      "牧養",
		calendar.Hunting:        "畋獵",
		calendar.Demolition:     "破屋",
		calendar.TailorClothes:  "裁衣",
		calendar.Consecrate:     "開光",
		calendar.Lawsuit:        "詞訟",
		calendar.DigWell:        "開井",
		calendar.PaveRoads:      "平治道塗",
		calendar.Plaster:        "塗泥",
		calendar.SetUpBed:       "安床",
		calendar.BuildDikes:     "築堤防",
		calendar.Voyage:         "乘船",
	}
)

// Stem returns the character of a heavenly stem.
func Stem(s calendar.Stem) string { return stems[s] }

// Branch returns the character of an earthly branch.
func Branch(b calendar.Branch) string { return branches[b] }

// Zodiac returns the animal name.
func Zodiac(z calendar.Zodiac) string { return zodiacs[z] }

// Element returns the phase name.
func Element(e calendar.Element) string { return elements[e] }

// Pillar returns the two-character name of a stem-branch pair, e.g. 甲辰.
func Pillar(sb calendar.StemBranch) string {
	return Stem(sb.Stem()) + Branch(sb.Branch())
}

// NaYin returns the three-character na-yin of a pillar, e.g. 覆燈火.
func NaYin(sb calendar.StemBranch) string { return naYin[sb.NaYin()] }

// SolarTerm returns the term name.
func SolarTerm(t calendar.SolarTerm) string { return solarTerms[t] }

// Officer returns the single-character officer name.
func Officer(o calendar.Officer) string { return officers[o] }

// Activity returns the almanac wording of an activity.
func Activity(a calendar.Activity) string { return activities[a] }

// Deity returns the deity name.
func Deity(d calendar.Deity) string { return deities[d] }

// Direction returns the compass direction.
func Direction(d calendar.Direction) string { return directions[d] }

// Weekday returns 星期 followed by the day character.
func Weekday(w time.Weekday) string { return "星期" + weekdays[w] }

// LunarMonth names a lunar month: 正月 through 臘月, with 閏 for a leap month.
func LunarMonth(month int, isLeap bool) string {
	name := lunarMonths[month-1] + "月"
	if isLeap {
		return "閏" + name
	}
	return name
}

// LunarDay names a lunar day: 初一 through 初十, 十一 through 二十,
// 廿一 through 廿九, and 三十.
func LunarDay(day int) string {
	switch {
	case day <= 10:
		if day == 10 {
			return "初十"
		}
		return "初" + digits[day]
	case day < 20:
		return "十" + digits[day-10]
	case day == 20:
		return "二十"
	case day < 30:
		return "廿" + digits[day-20]
	}
	return "三十"
}
