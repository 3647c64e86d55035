package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type DayResponse struct {
	Lunar struct {
		Year        int  `json:"year"`
		Month       int  `json:"month"`
		IsLeapMonth bool `json:"is_leap_month"`
		Day         int  `json:"day"`
		MonthDays   int  `json:"month_days"`
	} `json:"lunar"`
	DayPillar struct {
		Index int `json:"index"`
	} `json:"day_pillar"`
	SolarTerm       string `json:"solar_term"`
	TermStartsToday bool   `json:"term_starts_today"`
	Almanac         struct {
		Officer string `json:"officer"`
	} `json:"almanac"`
}

// TestResult holds the result for a single date
type TestResult struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	Term      string `json:"term,omitempty"`
	TermStart bool   `json:"term_start,omitempty"`
	Lunar     string `json:"lunar,omitempty"`
	DayIndex  int    `json:"day_index"`
	Officer   string `json:"officer,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TermStats tracks statistics for each solar term
type TermStats struct {
	Term        string   `json:"term"`
	TotalDays   int      `json:"total_days"`
	SuccessDays int      `json:"success_days"`
	FailedDays  int      `json:"failed_days"`
	Starts      int      `json:"starts"`
	FailedDates []string `json:"failed_dates,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to test")
	workers := flag.Int("c", 8, "Concurrent requests")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Almanac API - Full Coverage Test")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Total Years: %d\n", *years)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	// Test all dates
	results := testAllDates(client, *baseURL, *startYear, endYear, *workers)

	if *verbose {
		for _, r := range results {
			status := "✓"
			if !r.Success {
				status = "✗"
			}
			fmt.Printf("  %s %s: %s / %s [%d]\n", status, r.Date, r.Lunar, r.Term, r.DayIndex)
			if !r.Success {
				fmt.Printf("      Error: %s\n", r.Error)
			}
		}
		fmt.Println()
	}

	// Day-to-day checks need every result in date order
	checkSequence(results)

	// Analyze results
	analysis := analyzeResults(results)

	// Print summary
	printSummary(analysis, *startYear, endYear)

	// Print failures by term
	printFailuresByTerm(analysis)

	// Output to file if requested
	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func testAllDates(client *http.Client, baseURL string, startYear, endYear, workers int) []TestResult {
	first := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(last.Sub(first).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	results := make([]TestResult, totalDays)
	progress := make(chan struct{}, totalDays)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(workers, 1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		tested, lastProgress := 0, -1
		for range progress {
			tested++
			if p := tested * 100 / totalDays; p != lastProgress && p%5 == 0 {
				fmt.Printf("  Progress: %d%% (%d/%d)\n", p, tested, totalDays)
				lastProgress = p
			}
		}
	}()

	for i := range results {
		i := i
		dateStr := first.AddDate(0, 0, i).Format(time.DateOnly)
		g.Go(func() error {
			results[i] = testDate(ctx, client, baseURL, dateStr)
			progress <- struct{}{}
			return nil
		})
	}
	_ = g.Wait()
	close(progress)
	<-done

	fmt.Println()
	return results
}

func testDate(ctx context.Context, client *http.Client, baseURL, dateStr string) TestResult {
	result := TestResult{Date: dateStr}

	url := fmt.Sprintf("%s/api/v1/almanac/date/%s", baseURL, dateStr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("Request error: %v", err)
		return result
	}
	resp, err := client.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("Connection error: %v", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("Read error: %v", err)
		return result
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		result.Error = fmt.Sprintf("Parse error: %v", err)
		return result
	}

	if !apiResp.Success {
		errMsg := "Unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		result.Error = errMsg
		return result
	}

	var data DayResponse
	if err := json.Unmarshal(apiResp.Data, &data); err != nil {
		result.Error = fmt.Sprintf("Data parse error: %v", err)
		return result
	}

	leap := ""
	if data.Lunar.IsLeapMonth {
		leap = "L"
	}
	result.Lunar = fmt.Sprintf("%04d-%s%02d-%02d", data.Lunar.Year, leap, data.Lunar.Month, data.Lunar.Day)
	result.Term = data.SolarTerm
	result.TermStart = data.TermStartsToday
	result.DayIndex = data.DayPillar.Index
	result.Officer = data.Almanac.Officer

	switch {
	case data.Lunar.MonthDays != 29 && data.Lunar.MonthDays != 30:
		result.Error = fmt.Sprintf("Lunar month has %d days", data.Lunar.MonthDays)
	case data.Lunar.Day < 1 || data.Lunar.Day > data.Lunar.MonthDays:
		result.Error = fmt.Sprintf("Lunar day %d outside month of %d", data.Lunar.Day, data.Lunar.MonthDays)
	case data.Almanac.Officer == "":
		result.Error = "No officer in almanac entry"
	default:
		result.Success = true
	}

	return result
}

// checkSequence fails days whose pillar does not follow the day before.
func checkSequence(results []TestResult) {
	for i := 1; i < len(results); i++ {
		prev, cur := &results[i-1], &results[i]
		if !prev.Success || !cur.Success {
			continue
		}
		if cur.DayIndex != (prev.DayIndex+1)%60 {
			cur.Success = false
			cur.Error = fmt.Sprintf("Day pillar %d does not follow %d", cur.DayIndex, prev.DayIndex)
		}
	}
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByTerm       map[string]*TermStats
	ByYear       map[int]*YearStats
	AllFailures  []TestResult
}

type YearStats struct {
	Year        int
	TotalDays   int
	SuccessDays int
	FailedDays  int
	TermStarts  int
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByTerm: make(map[string]*TermStats),
		ByYear: make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		date, _ := time.Parse(time.DateOnly, r.Date)
		year := date.Year()

		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		analysis.ByYear[year].TotalDays++

		term := r.Term
		if term == "" {
			term = "(no term)"
		}
		if _, ok := analysis.ByTerm[term]; !ok {
			analysis.ByTerm[term] = &TermStats{Term: term}
		}
		analysis.ByTerm[term].TotalDays++
		if r.TermStart {
			analysis.ByTerm[term].Starts++
			analysis.ByYear[year].TermStarts++
		}

		if r.Success {
			analysis.TotalSuccess++
			analysis.ByYear[year].SuccessDays++
			analysis.ByTerm[term].SuccessDays++
		} else {
			analysis.TotalFailed++
			analysis.ByYear[year].FailedDays++
			analysis.ByTerm[term].FailedDays++
			analysis.ByTerm[term].FailedDates = append(analysis.ByTerm[term].FailedDates, r.Date)
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	// By year; every Gregorian year holds exactly 24 term starts
	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok {
			status := "✓"
			if stats.FailedDays > 0 || stats.TermStarts != 24 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d/%d days, %d term starts\n",
				status, year, stats.SuccessDays, stats.TotalDays, stats.TermStarts)
		}
	}
	fmt.Println()
}

func printFailuresByTerm(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY SOLAR TERM")
	fmt.Println("================================================================")

	// Sort terms by failure count
	var terms []*TermStats
	for _, stats := range analysis.ByTerm {
		if stats.FailedDays > 0 {
			terms = append(terms, stats)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].FailedDays > terms[j].FailedDays
	})

	for _, stats := range terms {
		fmt.Printf("\n%s: %d failures\n", stats.Term, stats.FailedDays)
		// Show up to 5 example dates
		for i, date := range stats.FailedDates {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(stats.FailedDates)-5)
				break
			}
			fmt.Printf("  - %s\n", date)
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string                `json:"generated_at"`
		Summary     map[string]any        `json:"summary"`
		ByTerm      map[string]*TermStats `json:"by_term"`
		Failures    []TestResult          `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]any{
			"total_days":    analysis.TotalDays,
			"total_success": analysis.TotalSuccess,
			"total_failed":  analysis.TotalFailed,
			"success_rate":  fmt.Sprintf("%.2f%%", float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100),
		},
		ByTerm:   analysis.ByTerm,
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
