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

	"github.com/google/uuid"
)

// rpcRequest is a JSON-RPC tools/call envelope
type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      int            `json:"id"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

// rpcResponse carries just enough to tell tool failures apart
type rpcResponse struct {
	Result *struct {
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioTimes      map[string][]time.Duration
	Lock               sync.Mutex
}

// Scenario builds one read request against a user
type Scenario struct {
	Name  string
	Build func(baseURL, mcpPath, userID string, seq int) (*http.Request, error)
	// MCP scenarios inspect the JSON-RPC body instead of relying on the status code
	MCP bool
}

var (
	types      = []string{"SEND_MONEY", "FUND_WALLET", "WITHDRAW"}
	statuses   = []string{"PENDING", "SUCCESSFUL", "FAILED"}
	currencies = []string{"USD", "EUR", "CAD"}
)

func main() {
	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 200, "Total number of requests to make")
	userIDsStr := flag.String("u", "", "Comma-separated user UUIDs; empty discovers them from GET /users")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	mcpPath := flag.String("mcp", "/mcp/warrior", "Path of the public MCP server")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	userIDs, err := resolveUsers(client, *baseURL, *userIDsStr)
	if err != nil {
		fmt.Printf("Cannot resolve users: %v\n", err)
		return
	}

	// Every MCP call shares one session; a stateless server returns an empty id, which it also accepts
	sessionID, err := openSession(client, *baseURL+*mcpPath)
	if err != nil {
		fmt.Printf("Cannot open MCP session: %v\n", err)
		return
	}

	scenarios := readScenarios(sessionID)

	fmt.Printf("Load testing read path across %d users\n", len(userIDs))
	fmt.Printf("Scenarios: %d\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioTimes:   make(map[string][]time.Duration),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *mcpPath, *delayMs, userIDs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	var collected sync.WaitGroup
	collected.Add(1)
	go func() {
		defer collected.Done()
		for result := range results {
			record(stats, result)
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	collected.Wait()
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

// openSession sends initialize and returns the Mcp-Session-Id the server issued
func openSession(client *http.Client, url string) (string, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      0,
		Method:  "initialize",
		Params: map[string]any{
			"protocolVersion": "2025-06-18",
			"clientInfo":      map[string]any{"name": "load-read-path", "version": "1.0.0"},
		},
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("initialize returned status %d", resp.StatusCode)
	}
	return resp.Header.Get("Mcp-Session-Id"), nil
}

func readScenarios(sessionID string) []Scenario {
	get := func(path string) func(string, string, string, int) (*http.Request, error) {
		return func(baseURL, _, userID string, _ int) (*http.Request, error) {
			return http.NewRequest(http.MethodGet, baseURL+strings.ReplaceAll(path, "{id}", userID), nil)
		}
	}
	tool := func(name string, args func(userID string) map[string]any) func(string, string, string, int) (*http.Request, error) {
		return func(baseURL, mcpPath, userID string, seq int) (*http.Request, error) {
			body, err := json.Marshal(rpcRequest{
				JSONRPC: "2.0",
				ID:      seq,
				Method:  "tools/call",
				Params:  map[string]any{"name": name, "arguments": args(userID)},
			})
			if err != nil {
				return nil, err
			}
			req, err := http.NewRequest(http.MethodPost, baseURL+mcpPath, bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			if sessionID != "" {
				req.Header.Set("Mcp-Session-Id", sessionID)
			}
			return req, nil
		}
	}

	return []Scenario{
		{Name: "REST balance", Build: get("/users/{id}/balance")},
		{Name: "REST stats", Build: get("/users/{id}/stats")},
		{Name: "REST user txs", Build: get("/users/{id}/transactions")},
		{Name: "REST search", Build: func(baseURL, _, _ string, _ int) (*http.Request, error) {
			url := fmt.Sprintf("%s/transactions?type=%s&status=%s&currency=%s", baseURL,
				types[rand.Intn(len(types))], statuses[rand.Intn(len(statuses))], currencies[rand.Intn(len(currencies))])
			return http.NewRequest(http.MethodGet, url, nil)
		}},
		{Name: "MCP balance", MCP: true, Build: tool("get_user_balance", func(userID string) map[string]any {
			return map[string]any{"user_id": userID}
		})},
		{Name: "MCP stats", MCP: true, Build: tool("get_user_stats", func(userID string) map[string]any {
			return map[string]any{"user_id": userID}
		})},
		{Name: "MCP search", MCP: true, Build: tool("search_transactions", func(string) map[string]any {
			return map[string]any{"type": types[rand.Intn(len(types))]}
		})},
	}
}

// resolveUsers parses the flag or, when empty, lists the users the service knows
func resolveUsers(client *http.Client, baseURL, flagValue string) ([]string, error) {
	var userIDs []string
	if flagValue != "" {
		for _, raw := range strings.Split(flagValue, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid user id %q: %w", raw, err)
			}
			userIDs = append(userIDs, id.String())
		}
		return userIDs, nil
	}

	resp, err := client.Get(baseURL + "/users")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var users []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode /users: %w", err)
	}
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("no users found, seed demo data first")
	}
	return userIDs, nil
}

func worker(client *http.Client, baseURL, mcpPath string, delayMs int, userIDs []string,
	scenarios []Scenario, jobs <-chan int, results chan<- TestResult) {

	for seq := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]
		result := TestResult{Scenario: scenario.Name}

		req, err := scenario.Build(baseURL, mcpPath, userID, seq)
		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		startTime := time.Now()
		resp, err := client.Do(req)
		result.ResponseTime = time.Since(startTime)

		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
		if !result.Success {
			result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
		} else if scenario.MCP {
			var body rpcResponse
			switch {
			case json.NewDecoder(resp.Body).Decode(&body) != nil:
				result.Success, result.Error = false, fmt.Errorf("undecodable JSON-RPC body")
			case body.Error != nil:
				result.Success, result.Error = false, fmt.Errorf("JSON-RPC error %d", body.Error.Code)
			case body.Result != nil && body.Result.IsError:
				result.Success, result.Error = false, fmt.Errorf("tool error")
			}
		}
		_ = resp.Body.Close()

		results <- result
	}
}

func record(stats *TestStats, result TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	if result.Success {
		stats.SuccessfulRequests++
	} else {
		stats.FailedRequests++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		stats.ErrorCounts[errMsg]++
	}

	stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
	stats.ScenarioTimes[result.Scenario] = append(stats.ScenarioTimes[result.Scenario], result.ResponseTime)
	stats.TotalResponseTime += result.ResponseTime

	if result.ResponseTime < stats.MinResponseTime {
		stats.MinResponseTime = result.ResponseTime
	}
	if result.ResponseTime > stats.MaxResponseTime {
		stats.MaxResponseTime = result.ResponseTime
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func sortedCopy(times []time.Duration) []time.Duration {
	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func printResults(stats *TestStats) {
	rps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}
	sorted := sortedCopy(stats.ResponseTimes)

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f successful requests/s\n", rps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P95 Response:        %v\n", percentile(sorted, 95))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- PER SCENARIO -----------------")
	names := make([]string, 0, len(stats.ScenarioTimes))
	for name := range stats.ScenarioTimes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		times := sortedCopy(stats.ScenarioTimes[name])
		fmt.Printf("%-15s: %4d requests  p50 %-12v p95 %v\n", name, len(times), percentile(times, 50), percentile(times, 95))
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
