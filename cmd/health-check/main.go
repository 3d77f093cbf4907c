// Package main provides a standalone health check command for Forkcast.
// It can be used for Docker health checks, monitoring scripts, and debugging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/forkcast/v1/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

type options struct {
	URL          string
	Timeout      time.Duration
	Verbose      bool
	OutputFormat string
	RetryCount   int
	RetryDelay   time.Duration
}

func main() {
	opts := parseFlags()
	os.Exit(run(opts))
}

func parseFlags() options {
	opts := options{}

	flag.StringVar(&opts.URL, "url", "", "Health check endpoint URL (e.g., http://localhost:8080/health)")
	flag.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")
	flag.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	flag.IntVar(&opts.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", 1*time.Second, "Delay between retries")

	flag.Parse()

	if opts.URL == "" {
		if url := os.Getenv("HEALTH_CHECK_URL"); url != "" {
			opts.URL = url
		} else {
			opts.URL = "http://localhost:8080/health"
		}
	}

	return opts
}

func run(opts options) int {
	client := &http.Client{Timeout: opts.Timeout}

	var lastError error
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			if opts.Verbose {
				fmt.Printf("Retrying in %v... (attempt %d/%d)\n", opts.RetryDelay, attempt, opts.RetryCount)
			}
			time.Sleep(opts.RetryDelay)
		}

		resp, err := client.Get(opts.URL)
		if err != nil {
			lastError = err
			if opts.Verbose {
				fmt.Printf("Request failed: %v\n", err)
			}
			continue
		}

		return handleResponse(resp, opts)
	}

	fmt.Printf("Health check failed after %d attempts: %v\n", opts.RetryCount+1, lastError)
	return exitCodeError
}

func handleResponse(resp *http.Response, opts options) int {
	defer resp.Body.Close()

	var response healthcheck.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		return exitCodeError
	}

	switch opts.OutputFormat {
	case "json":
		data, _ := json.MarshalIndent(response, "", "  ")
		fmt.Println(string(data))
	default:
		fmt.Printf("Status: %s\n", response.Status)
		fmt.Printf("Service: %s\n", response.Service)
		fmt.Printf("Version: %s\n", response.Version)

		if opts.Verbose && len(response.Checks) > 0 {
			fmt.Println("\nChecks:")
			for _, check := range response.Checks {
				fmt.Printf("  %s: %s", check.Name, check.Status)
				if check.Message != "" {
					fmt.Printf(" (%s)", check.Message)
				}
				fmt.Println()
			}
		}
	}

	if response.Status == healthcheck.StatusHealthy {
		return exitCodeSuccess
	}
	return exitCodeFailure
}
