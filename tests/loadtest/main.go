package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	numWorkers   = 50
	testDuration = 10 * time.Second
	numSlots     = 96
)

var categories = []string{"Minidiswar", "Gali", "Desawar", "Faridabad", "Ghaziabad"}

var baseURL = "http://127.0.0.1:3000"

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	if u := os.Getenv("RESULTSD_URL"); u != "" {
		baseURL = strings.TrimRight(u, "/")
	}
	today := time.Now().Format("2006-01-02")

	fmt.Println("=== resultsd Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s\n\n", baseURL, numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding (upload-data + result-with-authcode) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.IntN(2) == 0 {
			return doUpload(rng, today)
		}
		return doReading(rng, today)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% writes, 50% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doUpload(rng, today)
		case r < 0.50:
			return doReading(rng, today)
		case r < 0.75:
			return doGet("GET /fetch-result-direct", "/api/fetch-result-direct")
		case r < 0.90:
			return doGet("GET /fetch-result-by-date", byDatePath(rng, today))
		default:
			return doGet("GET /fetch-category-direct", "/api/fetch-category-direct")
		}
	})

	// Reads dominate, so this phase mostly measures the response cache.
	fmt.Println("\n--- Phase 3: Read-heavy load (5% writes, 95% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doUpload(rng, today)
		case r < 0.60:
			return doGet("GET /fetch-result-direct", "/api/fetch-result-direct")
		case r < 0.90:
			return doGet("GET /fetch-result-by-date", byDatePath(rng, today))
		default:
			return doGet("GET /app-config", "/api/app-config")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(uint64(i) + 1)
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// slotTime picks one of the day's quarter-hour slots in 12-hour form.
func slotTime(rng *rand.Rand) string {
	minutes := rng.IntN(numSlots) * 15
	return time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("03:04 PM")
}

func byDatePath(rng *rand.Rand, date string) string {
	return fmt.Sprintf("/api/fetch-result-by-date/%s/%s/scraper", date, categories[rng.IntN(len(categories))])
}

func doUpload(rng *rand.Rand, date string) result {
	return doPost("POST /upload-data", "/api/upload-data", map[string]any{
		"categoryname": categories[rng.IntN(len(categories))],
		"date":         date,
		"time":         slotTime(rng),
		"number":       fmt.Sprintf("%02d", rng.IntN(100)),
		"mode":         "scraper",
	})
}

// doReading may hit an already stored slot; the duplicate answer is a 200 too.
func doReading(rng *rand.Rand, date string) result {
	return doPost("POST /result-with-authcode", "/api/result-with-authcode", map[string]any{
		"categoryname": categories[rng.IntN(len(categories))],
		"date":         date,
		"time":         slotTime(rng),
		"number":       fmt.Sprintf("%02d", rng.IntN(100)),
		"mode":         "auto",
	})
}

func doPost(endpoint, path string, body any) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode >= 300}
}

func doGet(endpoint, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
