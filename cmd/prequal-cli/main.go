package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/prequalify/prequal/internal/auth"
	"github.com/prequalify/prequal/internal/underwriting"
)

const defaultAddr = "http://localhost:8080"

func main() {
	exitFn(run(os.Args, os.Stdout, os.Stderr))
}

var exitFn = os.Exit

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	switch args[1] {
	case "health":
		return handleHealth(args[2:], stdout, stderr)
	case "simulate":
		return handleEvaluate(args[2:], stdout, stderr, "/v1/simulate", false)
	case "submit":
		return handleEvaluate(args[2:], stdout, stderr, "/v1/applications", true)
	case "get":
		return handleGet(args[2:], stdout, stderr)
	case "list":
		return handleList(args[2:], stdout, stderr)
	case "rules":
		return handleRules(args[2:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func handleHealth(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("PREQUAL_ADDR", defaultAddr), "prequal API address")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}

	body, status, err := httpGet(http.DefaultClient, *addr+"/health", "")
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if status != http.StatusOK {
		fmt.Fprintf(stderr, "health check failed: %s\n", strings.TrimSpace(string(body)))
		return 1
	}
	fmt.Fprintln(stdout, "ok")
	return 0
}

// handleEvaluate covers both simulate and submit; the only differences are
// the endpoint and the success status code.
func handleEvaluate(args []string, stdout io.Writer, stderr io.Writer, path string, persisted bool) int {
	name := strings.TrimPrefix(path, "/v1/")
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("PREQUAL_ADDR", defaultAddr), "prequal API address")
	key := fs.String("key", os.Getenv("PREQUAL_API_KEY"), "API key")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	applicant := fs.String("name", "", "applicant name")
	income := fs.Float64("income", 0, "monthly income")
	debts := fs.Float64("debts", 0, "monthly debt payments")
	score := fs.Int("score", 0, "credit score")
	loan := fs.Float64("loan", 0, "requested loan amount")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}

	payload := map[string]any{
		"applicant_name": *applicant,
		"monthly_income": *income,
		"monthly_debts":  *debts,
		"credit_score":   *score,
		"loan_amount":    *loan,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	body, status, err := httpPost(http.DefaultClient, *addr+path, *key, raw)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	wantStatus := http.StatusOK
	if persisted {
		wantStatus = http.StatusCreated
	}
	if status != wantStatus {
		fmt.Fprintf(stderr, "%s failed: %s\n", name, strings.TrimSpace(string(body)))
		return 1
	}

	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var resp struct {
		ID       int64   `json:"id"`
		Decision string  `json:"decision"`
		Message  string  `json:"message"`
		DTIRatio float64 `json:"dti_ratio"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}

	if persisted {
		fmt.Fprintf(stdout, "id=%d decision=%s dti=%.2f message=%q\n", resp.ID, resp.Decision, resp.DTIRatio, resp.Message)
	} else {
		fmt.Fprintf(stdout, "decision=%s dti=%.2f message=%q\n", resp.Decision, resp.DTIRatio, resp.Message)
	}
	if resp.Decision == string(underwriting.OutcomeDeclined) {
		return 1
	}
	return 0
}

func handleGet(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("PREQUAL_ADDR", defaultAddr), "prequal API address")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "get requires <application_id>")
		fs.Usage()
		return 2
	}

	body, status, err := httpGet(http.DefaultClient, *addr+"/v1/applications/"+fs.Arg(0), "")
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if status != http.StatusOK {
		fmt.Fprintf(stderr, "get failed: %s\n", strings.TrimSpace(string(body)))
		return 1
	}

	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var resp struct {
		ID            int64   `json:"id"`
		ApplicantName string  `json:"applicant_name"`
		Decision      string  `json:"decision"`
		DTIRatio      float64 `json:"dti_ratio"`
		CreatedAt     string  `json:"created_at"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}
	fmt.Fprintf(stdout, "id=%d applicant=%q decision=%s dti=%.2f created_at=%s\n",
		resp.ID, resp.ApplicantName, resp.Decision, resp.DTIRatio, resp.CreatedAt)
	return 0
}

func handleList(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("PREQUAL_ADDR", defaultAddr), "prequal API address")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	limit := fs.Int("limit", 0, "max records to return")
	offset := fs.Int("offset", 0, "records to skip")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}

	url := fmt.Sprintf("%s/v1/applications?limit=%d&offset=%d", *addr, *limit, *offset)
	body, status, err := httpGet(http.DefaultClient, url, "")
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if status != http.StatusOK {
		fmt.Fprintf(stderr, "list failed: %s\n", strings.TrimSpace(string(body)))
		return 1
	}

	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var resp []struct {
		ID            int64  `json:"id"`
		ApplicantName string `json:"applicant_name"`
		Decision      string `json:"decision"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}
	for _, app := range resp {
		fmt.Fprintf(stdout, "id=%d applicant=%q decision=%s\n", app.ID, app.ApplicantName, app.Decision)
	}
	return 0
}

func handleRules(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "lint":
		fs := flag.NewFlagSet("rules lint", flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(args[1:]); err != nil {
			fs.Usage()
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "rules lint requires <rules_path>")
			fs.Usage()
			return 2
		}
		rules, err := underwriting.LoadRules(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		fmt.Fprintf(stdout, "ok min_credit_score=%d max_dti_percent=%g\n", rules.MinCreditScore, rules.MaxDTIPercent)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func httpGet(client *http.Client, url string, key string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if key != "" {
		req.Header.Set(auth.HeaderAPIKey, key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func httpPost(client *http.Client, url string, key string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(auth.HeaderAPIKey, key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func envOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func usage(w io.Writer) {
	fmt.Fprint(w, `prequal CLI

Usage:
  prequal health [--addr URL]
  prequal simulate --name NAME --income N --debts N --score N --loan N [--addr URL] [--key KEY] [--json]
  prequal submit --name NAME --income N --debts N --score N --loan N [--addr URL] [--key KEY] [--json]
  prequal get <application_id> [--addr URL] [--json]
  prequal list [--limit N] [--offset N] [--addr URL] [--json]
  prequal rules lint <rules_path>
`)
}
