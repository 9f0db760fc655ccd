package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Container healthcheck: probes /ready so a wedged database also
// fails the check, not just a dead HTTP listener.
func main() {
	port := os.Getenv("UNIBOT_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://localhost:%s/ready", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "not ready: %s\n", resp.Status)
		os.Exit(1)
	}
}
