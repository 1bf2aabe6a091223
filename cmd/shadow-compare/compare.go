package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

// target is one request replayed against both deployments.
type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

// defaultTargets covers the read endpoints whose payloads must not drift
// between the two servers.
var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/students", Critical: true},
	{Method: http.MethodGet, Path: "/classes", Critical: true},
	{Method: http.MethodGet, Path: "/payments", Critical: true},
	{Method: http.MethodGet, Path: "/consumed-classes", Critical: true},
	{Method: http.MethodGet, Path: "/statistics", Critical: true},
	{Method: http.MethodGet, Path: "/students/0"},
}

type comparison struct {
	Target       target
	LegacyStatus int
	GoStatus     int
	StatusMatch  bool
	BodyMatch    bool
	Error        error
	DurationGo   time.Duration
	DurationOld  time.Duration
}

func (c comparison) breaking() bool {
	if !c.Target.Critical {
		return false
	}
	return c.Error != nil || !c.StatusMatch || !c.BodyMatch
}

func (c comparison) differs() bool {
	return c.Error == nil && (!c.StatusMatch || !c.BodyMatch)
}

func loadTargets(path string) ([]target, error) {
	if path == "" {
		return defaultTargets, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

// comparer replays targets against the Go API and the legacy server.
type comparer struct {
	client     *http.Client
	goBase     string
	legacyBase string
	ignore     map[string]struct{}
}

func newComparer(client *http.Client, goBase, legacyBase string, ignoreKeys []string) *comparer {
	ignore := make(map[string]struct{}, len(ignoreKeys))
	for _, k := range ignoreKeys {
		if k = strings.TrimSpace(k); k != "" {
			ignore[k] = struct{}{}
		}
	}
	return &comparer{client: client, goBase: goBase, legacyBase: legacyBase, ignore: ignore}
}

func (c *comparer) compare(tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, err := c.fetch(c.goBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	oldStatus, oldBody, oldDur, err := c.fetch(c.legacyBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GoStatus, comp.LegacyStatus = goStatus, oldStatus
	comp.DurationGo, comp.DurationOld = goDur, oldDur
	comp.StatusMatch = goStatus == oldStatus
	comp.BodyMatch = c.bodiesEqual(goBody, oldBody)
	return comp
}

func (c *comparer) fetch(base string, tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// bodiesEqual compares two JSON payloads after dropping ignored keys at any
// depth. Whole floats compare equal to integers.
func (c *comparer) bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(c.normalize(aj), c.normalize(bj))
}

func (c *comparer) normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if _, skip := c.ignore[k]; skip {
				continue
			}
			out[k] = c.normalize(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = c.normalize(inner)
		}
		return out
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return v
	}
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if res.differs() {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		fmt.Fprintf(w, "  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationOld)
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
