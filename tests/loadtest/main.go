package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"go.uber.org/atomic"
)

const numWorkers = 50

var tracks = []string{"AI/ML Bootcamp", "Cyber Bootcamp", "Full-Stack Bootcamp", "Innovate-X Hackathon"}
var categories = []string{"aiml", "cyber", "fullstack"}
var queries = []string{"", "", "a", "team", "r1"}

var (
	baseURL      string
	testDuration time.Duration
)

var httpClient = &http.Client{
	Timeout: 20 * time.Second,
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
	pflag.StringVar(&baseURL, "url", "http://127.0.0.1:8080", "rollcall base URL")
	pflag.DurationVar(&testDuration, "duration", 10*time.Second, "length of each phase")
	pflag.Parse()

	fmt.Println("=== Rollcall Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", numWorkers, testDuration, baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			drain(resp)
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: cached reads, the dashboard and team lists
	fmt.Println("\n--- Phase 1: Reads (tracks, teams, dashboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doGet("GET /tracks", "/tracks")
		case r < 0.40:
			track := tracks[rng.Intn(len(tracks))]
			return doGet("GET /teams", "/teams?track="+urlQuery(track))
		default:
			cat := categories[rng.Intn(len(categories))]
			return doGet("GET /dashboard", "/dashboard/"+cat+"?q="+queries[rng.Intn(len(queries))])
		}
	})

	// Phase 2: scan sessions churn; nothing is sent to the backend
	fmt.Println("\n--- Phase 2: Scan sessions (open, detect, close) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doScanSession(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	totalOps := atomic.NewInt64(0)
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Inc()
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
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
	slices.Sort(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		slices.Sort(s.latencies)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, rps)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func urlQuery(s string) string {
	return strings.NewReplacer(" ", "+", "/", "%2F").Replace(s)
}

func doGet(endpoint, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	drain(resp)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func postJSON(path string, body any) (*http.Response, error) {
	data, _ := json.Marshal(body)
	return httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
}

// doScanSession measures one full scan session lifecycle.
func doScanSession(rng *rand.Rand) result {
	const endpoint = "POST /scan lifecycle"
	start := time.Now()

	resp, err := postJSON("/scan", map[string]any{"track": tracks[rng.Intn(len(tracks))], "day": 1})
	if err != nil {
		return result{endpoint, 0, time.Since(start), true}
	}
	var opened struct {
		ID string `json:"id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&opened)
	drain(resp)
	if err != nil || resp.StatusCode != http.StatusCreated {
		return result{endpoint, resp.StatusCode, time.Since(start), true}
	}

	detections := make([]map[string]string, rng.Intn(5)+1)
	for i := range detections {
		detections[i] = map[string]string{"text": fmt.Sprintf("RC%04d", rng.Intn(200))}
	}
	resp, err = postJSON("/scan/"+opened.ID+"/detect", map[string]any{"detections": detections})
	if err != nil {
		return result{endpoint, 0, time.Since(start), true}
	}
	drain(resp)

	resp, err = postJSON("/scan/"+opened.ID+"/close", nil)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	drain(resp)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusNoContent}
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
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
