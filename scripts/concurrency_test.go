//go:build ignore
// +build ignore

// Package main provides a manual concurrency stress test for the part
// checkout API.
//
// Usage:
//
//	go run ./scripts/concurrency_test.go <part_upc> <user1_id> [user2_id ...]
//
// Or use the convenience environment variables:
//
//	PART_UPC=<upc>  USER_IDS=<id1>,<id2>,...  go run ./scripts/concurrency_test.go
//
// What it does:
//  1. Fires N goroutines (one per user) all attempting to check out the same part simultaneously.
//  2. Prints how many won the checkout vs. got the current-holder response.
//  3. Exactly one winner is expected: the unique index on checked_out_part
//     means every other request must come back as PART_HOLDER.
//
// Prerequisites:
//   - Server must be running: DATABASE_URL must be set.
//   - The part and the N users must already exist in the DB.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultServerAddr = "http://localhost:8080"

type checkoutResult struct {
	UserID     string
	Status     string // "CHECKOUT_SUCCESS" or "PART_HOLDER"
	StatusCode int
	Err        error
}

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	// Collect part_upc and user_ids from cli args or env.
	partUPC := os.Getenv("PART_UPC")
	userIDsEnv := os.Getenv("USER_IDS")

	var userIDs []string
	if userIDsEnv != "" {
		userIDs = strings.Split(userIDsEnv, ",")
	}

	// Support positional args: script <part_upc> [user_ids...]
	args := os.Args[1:]
	if len(args) >= 1 {
		partUPC = args[0]
	}
	if len(args) >= 2 {
		userIDs = args[1:]
	}

	if partUPC == "" {
		log.Fatal("Usage: PART_UPC=<upc> USER_IDS=<u1,u2,...> go run ./scripts/concurrency_test.go\n" +
			"  or: go run ./scripts/concurrency_test.go <part_upc> <user1_id> [user2_id ...]")
	}
	if len(userIDs) == 0 {
		log.Fatal("At least one user ID must be provided via USER_IDS env or positional args")
	}

	fmt.Printf("=== Inventory Concurrency Test ===\n")
	fmt.Printf("Server : %s\n", serverAddr)
	fmt.Printf("Part   : %s\n", partUPC)
	fmt.Printf("Users  : %d\n\n", len(userIDs))

	results := make([]checkoutResult, len(userIDs))
	var wg sync.WaitGroup

	// Fire all goroutines simultaneously using a barrier.
	start := make(chan struct{})

	for i, uid := range userIDs {
		wg.Add(1)
		go func(idx int, userID string) {
			defer wg.Done()
			<-start // wait for the barrier
			results[idx] = attemptCheckout(serverAddr, partUPC, strings.TrimSpace(userID))
		}(i, uid)
	}

	// Release all goroutines at once.
	fmt.Println("Firing all requests simultaneously...")
	close(start)

	wg.Wait()
	fmt.Println("All requests completed.\n")

	// Tally results.
	var wins, held, failures int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Printf("  [ERR ] user=%-16s err=%v\n", r.UserID, r.Err)
		case r.Status == "CHECKOUT_SUCCESS":
			wins++
			fmt.Printf("  [WIN ] user=%-16s status=%d\n", r.UserID, r.StatusCode)
		case r.Status == "PART_HOLDER":
			held++
			fmt.Printf("  [HELD] user=%-16s status=%d\n", r.UserID, r.StatusCode)
		default:
			failures++
			fmt.Printf("  [FAIL] user=%-16s status=%d unexpected response\n", r.UserID, r.StatusCode)
		}
	}

	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Checkout won : %d\n", wins)
	fmt.Printf("Held by other: %d\n", held)
	fmt.Printf("Failures     : %d\n", failures)
	fmt.Printf("Total        : %d\n\n", len(userIDs))

	// Verify invariant: the unique index on part_locations.checked_out_part
	// admits at most one open checkout per part. Every loser's insert is
	// rejected at the database and surfaces as PART_HOLDER, so exactly one
	// request can win.
	fmt.Println("--- Invariant Check ---")
	fmt.Printf("Checkouts won: %d — anything other than exactly 1 means the unique index is broken.\n", wins)

	if wins != 1 {
		fmt.Printf("\n[WARNING] expected exactly 1 winner, got %d.\n", wins)
		os.Exit(1)
	}
	if failures > 0 {
		fmt.Printf("\n[WARNING] %d request(s) failed — check server logs for details.\n", failures)
		os.Exit(1)
	}
}

// attemptCheckout sends POST /parts/{upc}/checkout for the given userID and
// parses the JSON response status field. A 409 is the expected losing
// outcome, not an error.
func attemptCheckout(serverAddr, partUPC, userID string) checkoutResult {
	url := fmt.Sprintf("%s/parts/%s/checkout", serverAddr, partUPC)
	body := fmt.Sprintf(`{"user_id":"%s","force":false}`, userID)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return checkoutResult{UserID: userID, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return checkoutResult{UserID: userID, StatusCode: resp.StatusCode, Err: fmt.Errorf("bad JSON: %s", raw)}
	}

	statusVal, _ := parsed["status"].(string)
	return checkoutResult{
		UserID:     userID,
		Status:     statusVal,
		StatusCode: resp.StatusCode,
	}
}
