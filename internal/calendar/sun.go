package calendar

import "math"

// Solar position from truncated VSOP87 with IAU 1980 nutation: about one
// arcsecond over 1900-2100, i.e. well under a minute in the time of a term
// crossing.

const (
	j2000           = 2451545.0
	julianMillenium = 365250.0
	meanSolarMotion = 360.0 / 365.2422 // degrees per day
	arcsecond       = 1.0 / 3600       // degrees

	// cstOffset shifts UT to China Standard Time (UTC+8), in days.
	cstOffset = 8.0 / 24.0
)

// apparentSolarLongitude returns the sun's apparent ecliptic longitude in
// degrees [0, 360) at Julian Ephemeris Day jde.
func apparentSolarLongitude(jde float64) float64 {
	tau := (jde - j2000) / julianMillenium

	l := vsopSum(earthL, tau)
	r := vsopSum(earthR, tau)

	// Geocentric longitude is the heliocentric one turned half a circle,
	// then moved to the FK5 frame.
	lambda := l*180/math.Pi + 180 - 0.09033*arcsecond
	lambda += nutationLongitude(tau * 10)
	lambda -= 20.4898 * arcsecond / r // aberration

	return math.Mod(math.Mod(lambda, 360)+360, 360)
}

// vsopSum evaluates a VSOP87 series as sum(series[i] * tau^i), scaled from
// units of 1e-8.
func vsopSum(series [][]vsopTerm, tau float64) float64 {
	var total float64
	pow := 1.0
	for _, terms := range series {
		var s float64
		for _, t := range terms {
			s += t.a * math.Cos(t.b+t.c*tau)
		}
		total += s * pow
		pow *= tau
	}
	return total / 1e8
}

// nutationLongitude returns the nutation in longitude in degrees, t in Julian
// centuries from J2000.
func nutationLongitude(t float64) float64 {
	d := radians(297.85036 + 445267.111480*t - 0.0019142*t*t + t*t*t/189474)
	m := radians(357.52772 + 35999.050340*t - 0.0001603*t*t - t*t*t/300000)
	mp := radians(134.96298 + 477198.867398*t + 0.0086972*t*t + t*t*t/56250)
	f := radians(93.27191 + 483202.017538*t - 0.0036825*t*t + t*t*t/327270)
	om := radians(125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000)

	var psi float64
	for _, n := range nutationInLongitude {
		arg := float64(n.d)*d + float64(n.m)*m + float64(n.mp)*mp + float64(n.f)*f + float64(n.om)*om
		psi += (n.psi + n.psiT*t) * math.Sin(arg)
	}
	return psi * 1e-4 * arcsecond
}

// deltaT approximates TT - UT in seconds at decimal year y, using the
// Espenak-Meeus polynomials.
func deltaT(y float64) float64 {
	switch {
	case y < 1920:
		t := y - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case y < 1941:
		t := y - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case y < 1961:
		t := y - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case y < 1986:
		t := y - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case y < 2005:
		t := y - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t + 0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case y < 2050:
		t := y - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	default:
		u := (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)
	}
}

// longitudeCrossing returns the Julian Ephemeris Day at which the sun's
// apparent longitude reaches target degrees, starting the search at guess.
func longitudeCrossing(target, guess float64) float64 {
	jde := guess
	for i := 0; i < 50; i++ {
		diff := math.Mod(target-apparentSolarLongitude(jde)+540, 360) - 180
		jde += diff / meanSolarMotion
		if math.Abs(diff) < 1e-9 {
			break
		}
	}
	return jde
}

// termInstant returns the Julian Day (UT) at which term begins in the given
// Gregorian year.
func termInstant(year int, term SolarTerm) float64 {
	// Minor Cold falls around January 6; terms are about 15.2 days apart.
	newYear := float64(julianDayNumber(CivilDate{Year: year, Month: 1, Day: 1})) - 0.5
	guess := newYear + 5 + float64(term)*15.2184
	jde := longitudeCrossing(term.Longitude(), guess)

	y := float64(year) + (jde-newYear)/365.25
	return jde - deltaT(y)/86400
}

// termDay returns the JDN of the civil day (China Standard Time) on which
// term begins in the given Gregorian year.
func termDay(year int, term SolarTerm) JDN {
	return JDN(math.Floor(termInstant(year, term) + 0.5 + cstOffset))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
