package calendar

// Anniversaries returns the civil dates in civilYear on which a recurring
// lunar date falls, in order. A Gregorian year overlaps two lunar years, so
// there can be zero, one or two results.
//
// When the leap month is requested but the lunar year has none, the ordinary
// month is used. Day 30 in a 29-day month falls on day 29.
func (e *Engine) Anniversaries(month, day int, isLeapMonth bool, civilYear int) ([]CivilDate, error) {
	if month < 1 || month > 12 {
		return nil, invalidf("lunar month %d not in 1-12", month)
	}
	if day < 1 || day > 30 {
		return nil, invalidf("lunar day %d not in 1-30", day)
	}
	if !e.era.Contains(civilYear) {
		return nil, e.era.rangeError(CivilDate{Year: civilYear, Month: 1, Day: 1}.String())
	}

	var out []CivilDate
	for _, lunarYear := range []int{civilYear - 1, civilYear} {
		ly, err := e.lunar.Year(lunarYear)
		if err != nil {
			return nil, err
		}

		m, ok := findMonth(ly, month, isLeapMonth)
		if !ok {
			m, _ = findMonth(ly, month, false)
		}

		d := min(day, m.Days)
		civil := civilFromJDN(m.Start + JDN(d-1))
		if civil.Year == civilYear {
			out = append(out, civil)
		}
	}
	return out, nil
}

func findMonth(ly LunarYear, month int, isLeap bool) (LunarMonth, bool) {
	for _, m := range ly.Months {
		if m.Month == month && m.IsLeap == isLeap {
			return m, true
		}
	}
	return LunarMonth{}, false
}
