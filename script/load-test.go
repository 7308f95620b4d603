package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// transactionPayload is the POST /transactions request body
type transactionPayload struct {
	BeneficiaryQR string `json:"beneficiaryQr"`
	StoreQR       string `json:"storeQr"`
	ProductName   string `json:"productName"`
	Amount        int64  `json:"amount"`
}

// apiError is the error envelope the API returns on failures
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testStats contains aggregated load-test statistics
type testStats struct {
	SuccessfulRequests int
	FailedRequests     int
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	Lock               sync.Mutex
}

// spendScenario is one redemption shape fired at the API
type spendScenario struct {
	Name   string
	Amount int64
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	beneficiariesStr := flag.String("b", "", "Comma-separated beneficiary QR codes to spend from")
	storesStr := flag.String("s", "", "Comma-separated store QR codes to spend at")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	token := flag.String("token", "", "Bearer token of a store-operator account")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	beneficiaries := splitCodes(*beneficiariesStr)
	stores := splitCodes(*storesStr)
	if len(beneficiaries) == 0 || len(stores) == 0 || *token == "" {
		fmt.Println("Usage: load-test -b HL_...,HL_... -s ST_...,ST_... -token <jwt>")
		return
	}

	scenarios := []spendScenario{
		{"Meal Small", 10},
		{"Meal Medium", 30},
		{"Meal Large", 60},
		{"Groceries", 100},
	}

	fmt.Printf("Load testing %d beneficiaries against %d stores\n", len(beneficiaries), len(stores))
	fmt.Printf("Concurrency: %d goroutines, total requests: %d, delay: %d ms\n",
		*concurrency, *totalRequests, *delayMs)

	stats := &testStats{
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
	}

	client := &http.Client{Timeout: 10 * time.Second}
	jobs := make(chan int)
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				scenario := scenarios[rand.Intn(len(scenarios))]
				payload := transactionPayload{
					BeneficiaryQR: beneficiaries[rand.Intn(len(beneficiaries))],
					StoreQR:       stores[rand.Intn(len(stores))],
					ProductName:   scenario.Name,
					Amount:        scenario.Amount,
				}
				fireRequest(client, *baseURL, *token, payload, stats)
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	printReport(stats, *totalRequests, elapsed)
}

func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func fireRequest(client *http.Client, baseURL, token string, payload transactionPayload, stats *testStats) {
	body, err := json.Marshal(payload)
	if err != nil {
		recordFailure(stats, "marshal: "+err.Error(), 0)
		return
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		recordFailure(stats, "request: "+err.Error(), 0)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	reqStart := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(reqStart)
	if err != nil {
		recordFailure(stats, "transport: "+err.Error(), elapsed)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		stats.Lock.Lock()
		stats.SuccessfulRequests++
		recordTiming(stats, elapsed)
		stats.Lock.Unlock()
		return
	}

	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	label := apiErr.Code
	if label == "" {
		label = fmt.Sprintf("http %d", resp.StatusCode)
	}
	recordFailure(stats, label, elapsed)
}

func recordFailure(stats *testStats, label string, elapsed time.Duration) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()
	stats.FailedRequests++
	stats.ErrorCounts[label]++
	if elapsed > 0 {
		recordTiming(stats, elapsed)
	}
}

// recordTiming must be called with the lock held
func recordTiming(stats *testStats, elapsed time.Duration) {
	stats.TotalResponseTime += elapsed
	stats.ResponseTimes = append(stats.ResponseTimes, elapsed)
	if elapsed < stats.MinResponseTime {
		stats.MinResponseTime = elapsed
	}
	if elapsed > stats.MaxResponseTime {
		stats.MaxResponseTime = elapsed
	}
}

func printReport(stats *testStats, total int, elapsed time.Duration) {
	fmt.Println("\n--- Results ---")
	fmt.Printf("Total time: %v\n", elapsed)
	fmt.Printf("Successful: %d / %d\n", stats.SuccessfulRequests, total)
	fmt.Printf("Failed:     %d\n", stats.FailedRequests)

	if len(stats.ResponseTimes) > 0 {
		avg := stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
		fmt.Printf("Response times: min=%v avg=%v max=%v p95=%v\n",
			stats.MinResponseTime, avg, stats.MaxResponseTime, percentile(stats.ResponseTimes, 95))
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("Errors by code:")
		for code, count := range stats.ErrorCounts {
			fmt.Printf("  %-28s %d\n", code, count)
		}
	}
}

func percentile(times []time.Duration, p int) time.Duration {
	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
