package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day) }

type Lunar struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	IsLeapMonth bool `json:"is_leap_month"`
	Day         int  `json:"day"`
	MonthDays   int  `json:"month_days"`
}

func (l Lunar) String() string {
	leap := ""
	if l.IsLeapMonth {
		leap = "L"
	}
	return fmt.Sprintf("%04d-%s%02d-%02d", l.Year, leap, l.Month, l.Day)
}

type Pillar struct {
	Index  int    `json:"index"`
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
}

func (p Pillar) String() string { return p.Stem + "-" + p.Branch }

// DayResponse is the response for /almanac/date/{date} and /almanac/today
type DayResponse struct {
	Date            Date     `json:"date"`
	Lunar           Lunar    `json:"lunar"`
	YearPillar      Pillar   `json:"year_pillar"`
	MonthPillar     Pillar   `json:"month_pillar"`
	DayPillar       Pillar   `json:"day_pillar"`
	HourPillar      *Pillar  `json:"hour_pillar,omitempty"`
	SolarTerm       string   `json:"solar_term"`
	TermStart       Date     `json:"term_start"`
	TermStartsToday bool     `json:"term_starts_today"`
	Zodiac          string   `json:"zodiac"`
	Almanac         Almanac  `json:"almanac"`
	Observances     []Record `json:"observances"`
}

type Almanac struct {
	Officer      string   `json:"officer"`
	Auspicious   []string `json:"auspicious"`
	Inauspicious []string `json:"inauspicious"`
}

type Record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RangeResponse is the response for /almanac/range
type RangeResponse struct {
	Start Date          `json:"start"`
	End   Date          `json:"end"`
	Days  []DayResponse `json:"days"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
	Era    struct {
		MinYear int `json:"min_year"`
		MaxYear int `json:"max_year"`
	} `json:"era"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	year         int
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, year int, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
		year:    year,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Almanac API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testSpecificDates()
	tr.testDateRange()
	tr.testEdgeCases()
	tr.testYearWalk()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (era %d-%d)", health.Era.MinYear, health.Era.MaxYear))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	resp, err := tr.get("/api/v1/almanac/today")
	if err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	var data DayResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Today", err.Error())
		return
	}

	tr.recordSuccess(fmt.Sprintf("Today (%s): lunar %s, %s day", data.Date, data.Lunar, data.DayPillar))
	tr.printDayDetail(&data)

	// Card format
	resp, err = tr.get("/api/v1/almanac/today?format=card")
	if err != nil {
		tr.recordError("Today (card)", err.Error())
		return
	}
	var card map[string]any
	if err := tr.parseDataAs(resp, &card); err != nil {
		tr.recordError("Today (card)", err.Error())
		return
	}
	if _, ok := card["ganzhi_year"]; ok {
		tr.recordSuccess(fmt.Sprintf("Today card: %v %v%v", card["ganzhi_year"], card["lunar_month"], card["lunar_day"]))
	} else {
		tr.recordError("Today (card)", "card has no ganzhi_year")
	}
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		date        string
		lunar       string
		yearPillar  string
		dayPillar   string
		term        string
		termToday   bool
		description string
	}{
		{"1901-02-19", "1901-01-01", "xin-chou", "wu-chen", "rain_water", true, "First day of the era's first lunar year"},
		{"2000-01-01", "1999-11-25", "ji-mao", "wu-wu", "winter_solstice", false, "Millennium"},
		{"2024-02-04", "2023-12-25", "gui-mao", "wu-xu", "start_of_spring", true, "Start of spring before lunar new year"},
		{"2024-02-10", "2024-01-01", "jia-chen", "jia-chen", "start_of_spring", false, "Lunar new year 2024"},
		{"2025-07-25", "2025-L06-01", "yi-si", "yi-wei", "major_heat", false, "First day of a leap month"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/almanac/date/%s", tc.date))
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var data DayResponse
		if err := tr.parseDataAs(resp, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var diffs []string
		if got := data.Lunar.String(); got != tc.lunar {
			diffs = append(diffs, fmt.Sprintf("lunar %s, want %s", got, tc.lunar))
		}
		if got := data.YearPillar.String(); got != tc.yearPillar {
			diffs = append(diffs, fmt.Sprintf("year %s, want %s", got, tc.yearPillar))
		}
		if got := data.DayPillar.String(); got != tc.dayPillar {
			diffs = append(diffs, fmt.Sprintf("day %s, want %s", got, tc.dayPillar))
		}
		if data.SolarTerm != tc.term || data.TermStartsToday != tc.termToday {
			diffs = append(diffs, fmt.Sprintf("term %s/%v, want %s/%v", data.SolarTerm, data.TermStartsToday, tc.term, tc.termToday))
		}

		if len(diffs) == 0 {
			tr.recordSuccess(fmt.Sprintf("%s: %s %s (%s)", tc.date, data.Lunar, data.DayPillar, tc.description))
		} else {
			tr.recordError(tc.date, strings.Join(diffs, "; "))
		}

		if tr.verbose {
			tr.printDayDetail(&data)
		}
	}

	// Lunar conversion round trip
	resp, err := tr.get("/api/v1/lunar/2025/6/1?leap=true")
	if err != nil {
		tr.recordError("Convert leap", err.Error())
		return
	}
	var data DayResponse
	if err := tr.parseDataAs(resp, &data); err != nil {
		tr.recordError("Convert leap", err.Error())
		return
	}
	if data.Date.String() == "2025-07-25" {
		tr.recordSuccess("Leap 6/1 of 2025 converts to 2025-07-25")
	} else {
		tr.recordError("Convert leap", fmt.Sprintf("got %s", data.Date))
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	// Test a week range
	resp, err := tr.get("/api/v1/almanac/range?start=2025-12-21&end=2025-12-27")
	if err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	var rangeData RangeResponse
	if err := tr.parseDataAs(resp, &rangeData); err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}

	if len(rangeData.Days) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", len(rangeData.Days)))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(rangeData.Days)))
	}

	// Test range limit
	if status := tr.status("/api/v1/almanac/range?start=2025-01-01&end=2025-12-31"); status == 400 {
		tr.recordSuccess("Range limit enforced")
	} else {
		tr.recordError("Range limit", fmt.Sprintf("Should reject a year-long range, got HTTP %d", status))
	}

	// Test invalid range (end before start)
	if status := tr.status("/api/v1/almanac/range?start=2025-12-31&end=2025-01-01"); status == 400 {
		tr.recordSuccess("Invalid range rejected (end before start)")
	} else {
		tr.recordError("Invalid range", fmt.Sprintf("Should reject end < start, got HTTP %d", status))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		path   string
		status int
		what   string
	}{
		{"/api/v1/almanac/date/invalid", 400, "Invalid date format rejected"},
		{"/api/v1/almanac/date/2025-02-29", 400, "Nonexistent date rejected"},
		{"/api/v1/almanac/date/1900-06-15", 422, "Date before the era rejected"},
		{"/api/v1/almanac/date/2101-01-01", 422, "Date after the era rejected"},
		{"/api/v1/almanac/date/2024-02-10?hour=24", 400, "Hour 24 rejected"},
		{"/api/v1/almanac/range?start=2025-01-01", 400, "Missing end parameter rejected"},
		{"/api/v1/lunar/2024/6/1?leap=true", 400, "Missing leap month rejected"},
		{"/api/v1/almanac/date/2024-02-29", 200, "Leap year date (2024-02-29) handled"},
		{"/api/v1/almanac/date/2100-12-31", 200, "Last day of the era handled"},
	}

	for _, c := range cases {
		if status := tr.status(c.path); status == c.status {
			tr.recordSuccess(c.what)
		} else {
			tr.recordError(c.path, fmt.Sprintf("Expected HTTP %d, got %d", c.status, status))
		}
	}
}

// testYearWalk fetches a whole year in range-sized chunks and checks that
// consecutive days agree, counting the days spent in each solar term.
func (tr *TestRunner) testYearWalk() {
	tr.printSection(fmt.Sprintf("Full year %d", tr.year))

	start := time.Date(tr.year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(tr.year, 12, 31, 0, 0, 0, 0, time.UTC)

	var days []DayResponse
	for from := start; !from.After(end); from = from.AddDate(0, 0, 30) {
		to := from.AddDate(0, 0, 29)
		if to.After(end) {
			to = end
		}
		resp, err := tr.get(fmt.Sprintf("/api/v1/almanac/range?start=%s&end=%s",
			from.Format(time.DateOnly), to.Format(time.DateOnly)))
		if err != nil {
			tr.recordError(from.Format(time.DateOnly), err.Error())
			return
		}
		var chunk RangeResponse
		if err := tr.parseDataAs(resp, &chunk); err != nil {
			tr.recordError(from.Format(time.DateOnly), err.Error())
			return
		}
		days = append(days, chunk.Days...)
	}

	coverage := make(map[string]int)
	var order []string
	breaks := 0
	for i, d := range days {
		if _, seen := coverage[d.SolarTerm]; !seen {
			order = append(order, d.SolarTerm)
		}
		coverage[d.SolarTerm]++
		if i == 0 {
			continue
		}
		prev := days[i-1]
		if d.DayPillar.Index != (prev.DayPillar.Index+1)%60 {
			tr.recordError(d.Date.String(), fmt.Sprintf("day pillar %s does not follow %s", d.DayPillar, prev.DayPillar))
			breaks++
		}
		if d.Lunar.Day != prev.Lunar.Day+1 && !(d.Lunar.Day == 1 && prev.Lunar.Day == prev.Lunar.MonthDays) {
			tr.recordError(d.Date.String(), fmt.Sprintf("lunar %s does not follow %s", d.Lunar, prev.Lunar))
			breaks++
		}
	}

	if breaks == 0 {
		tr.recordSuccess(fmt.Sprintf("%d days walked without a break", len(days)))
	}

	if len(coverage) == 24 {
		tr.recordSuccess("All 24 solar terms covered")
	} else {
		tr.recordError("Term coverage", fmt.Sprintf("Expected 24 terms, saw %d", len(coverage)))
	}

	if tr.verbose {
		for _, term := range order {
			fmt.Printf("    %-24s %3d days\n", term, coverage[term])
		}
		fmt.Println()
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

// status returns the HTTP status of a GET, or 0 if the request failed.
func (tr *TestRunner) status(path string) int {
	resp, err := tr.getRaw(path)
	if err != nil {
		return 0
	}
	resp.Body.Close()
	return resp.StatusCode
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d *DayResponse) {
	if d == nil {
		return
	}
	fmt.Printf("    Pillars: %s %s %s\n", d.YearPillar, d.MonthPillar, d.DayPillar)
	fmt.Printf("    Term: %s since %s\n", d.SolarTerm, d.TermStart)
	fmt.Printf("    Officer: %s\n", d.Almanac.Officer)
	if len(d.Almanac.Auspicious) > 0 {
		fmt.Printf("    Auspicious: %v\n", d.Almanac.Auspicious)
	}
	if len(d.Almanac.Inauspicious) > 0 {
		fmt.Printf("    Inauspicious: %v\n", d.Almanac.Inauspicious)
	}
	for _, o := range d.Observances {
		fmt.Printf("    Observance: %s\n", o.Name)
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	year := flag.Int("year", time.Now().Year(), "Gregorian year to walk day by day")
	verbose := flag.Bool("v", false, "Verbose output (show day details and term coverage)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *year, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
