// Command shadow_compare replays read requests against this API and the legacy
// Node service and reports status and body differences.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type target struct {
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Body         json.RawMessage `json:"body,omitempty"`
	Critical     bool            `json:"critical"`
	StatusOnly   bool            `json:"status_only"`
	IgnoreFields []string        `json:"ignore_fields"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

type options struct {
	goBase      string
	goPrefix    string
	legacyBase  string
	targetsPath string
	timeout     time.Duration
}

var (
	colorOK    = color.New(color.FgGreen)
	colorDiff  = color.New(color.FgYellow)
	colorError = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "shadow_compare",
		Short:         "Compare responses of the Go API with the legacy service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(out, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.goBase, "go-base", "http://localhost:3333", "Go API base URL")
	flags.StringVar(&opts.goPrefix, "go-prefix", "/api/v1", "Route prefix of the Go API")
	flags.StringVar(&opts.legacyBase, "legacy-base", "http://localhost:3334", "Legacy API base URL")
	flags.StringVar(&opts.targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Second, "HTTP client timeout")
	return cmd
}

func run(out io.Writer, opts options) error {
	targets, err := loadTargets(opts.targetsPath)
	if err != nil {
		return fmt.Errorf("load targets: %w", err)
	}

	client := &http.Client{Timeout: opts.timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		comp := compareTarget(client, strings.TrimRight(opts.goBase, "/")+opts.goPrefix, opts.legacyBase, t)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(out, comparisons)
	fmt.Fprintf(out, "Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		return fmt.Errorf("%d critical target(s) differ", breaking)
	}
	return nil
}

func loadTargets(path string) ([]target, error) {
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

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}
	goStatus, goBody, goDur, goErr := performRequest(client, goBase, tgt)
	legacyStatus, legacyBody, legacyDur, legacyErr := performRequest(client, legacyBase, tgt)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = tgt.StatusOnly || bodiesEqual(unwrapEnvelope(goBody), legacyBody, tgt.IgnoreFields)
	return comp
}

func performRequest(client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if len(tgt.Body) > 0 {
		body = bytes.NewReader(tgt.Body)
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return 0, nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, payload, time.Since(start), nil
}

// unwrapEnvelope returns the "data" member of a success envelope, or body unchanged.
func unwrapEnvelope(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Data) == 0 {
		return body
	}
	return env.Data
}

func bodiesEqual(a, b []byte, ignore []string) bool {
	if len(ignore) == 0 && bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, f := range ignore {
		skip[f] = struct{}{}
	}
	normalize(&aj, skip)
	normalize(&bj, skip)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}, skip map[string]struct{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if _, ok := skip[k]; ok {
				delete(val, k)
				continue
			}
			normalize(&v2, skip)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, skip)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(out io.Writer, results []comparison) {
	fmt.Fprintln(out, "Shadow Compare Report")
	fmt.Fprintln(out, "======================")
	for _, res := range results {
		switch {
		case res.Error != nil:
			colorError.Fprint(out, "[ERROR]")
		case !res.StatusMatch || !res.BodyMatch:
			colorDiff.Fprint(out, "[DIFF]")
		default:
			colorOK.Fprint(out, "[OK]")
		}
		fmt.Fprintf(out, " %s %s\n", res.Target.Method, res.Target.Path)
		fmt.Fprintf(out, "  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Fprintf(out, "  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Fprintf(out, "  Error: %v\n", res.Error)
		} else {
			fmt.Fprintf(out, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
