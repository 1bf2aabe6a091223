// Command shadow-compare replays read requests against this API and the
// legacy server it replaces and reports payload drift.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		ignoreKeys  string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file; built-in read endpoints when empty")
	flag.StringVar(&ignoreKeys, "ignore", "message", "Comma separated JSON keys excluded from body comparison")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	cmp := newComparer(&http.Client{Timeout: timeout}, goBase, legacyBase, strings.Split(ignoreKeys, ","))

	var (
		results  []comparison
		breaking int
		optional int
	)
	for _, t := range targets {
		res := cmp.compare(t)
		switch {
		case res.breaking():
			breaking++
		case res.differs():
			optional++
		}
		results = append(results, res)
	}

	printReport(os.Stdout, results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}
