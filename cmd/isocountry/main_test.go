package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hightemp/isocountry"
)

func TestRun(t *testing.T) {
	tests := []struct {
		args       []string
		code       int
		stdoutHas  string
		stderrHas  string
		stdoutRows int
	}{
		{[]string{"--alpha2", "IN"}, exitSuccess, "India\tIN\tIND\tNew Delhi\tAsia", "", 1},
		{[]string{"--capital", "London"}, exitSuccess, "United Kingdom", "", 1},
		{[]string{"--region", "Asia"}, exitSuccess, "Pakistan", "", 2},
		{[]string{"--alpha3", "BVT"}, exitSuccess, "Bouvet Island\tBV\tBVT\t-\tPolar", "", 1},
		{[]string{"--all"}, exitSuccess, "United States of America", "", 5},
		{[]string{"--name", "Indai"}, exitNotFound, "", "did you mean: India", 0},
		{[]string{"--name", "India", "--alpha2", "IN"}, exitInvalidInput, "", "only one lookup flag", 0},
		{nil, exitInvalidInput, "", "--alpha2", 0},
		{[]string{"--bogus"}, exitInvalidInput, "", "unknown flag", 0},
	}

	for _, tc := range tests {
		var stdout, stderr bytes.Buffer
		code := run(tc.args, &stdout, &stderr)

		if code != tc.code {
			t.Errorf("run(%v) = %d, expected %d (stderr %q)", tc.args, code, tc.code, stderr.String())
			continue
		}
		if !strings.Contains(stdout.String(), tc.stdoutHas) {
			t.Errorf("run(%v) stdout = %q, expected %q", tc.args, stdout.String(), tc.stdoutHas)
		}
		if !strings.Contains(stderr.String(), tc.stderrHas) {
			t.Errorf("run(%v) stderr = %q, expected %q", tc.args, stderr.String(), tc.stderrHas)
		}

		rows := 0
		if out := strings.TrimSpace(stdout.String()); out != "" {
			rows = len(strings.Split(out, "\n"))
		}
		if rows != tc.stdoutRows {
			t.Errorf("run(%v) printed %d rows, expected %d", tc.args, rows, tc.stdoutRows)
		}
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--region", "Polar", "--json"}, &stdout, &stderr); code != exitSuccess {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}

	var parsed struct {
		Kind      string                   `json:"kind"`
		Source    string                   `json:"source"`
		Countries []map[string]interface{} `json:"countries"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if parsed.Kind != "region" || parsed.Source != "builtin" {
		t.Errorf("kind=%q source=%q", parsed.Kind, parsed.Source)
	}
	if len(parsed.Countries) != 1 || parsed.Countries[0]["name"] != "Bouvet Island" {
		t.Errorf("countries = %v", parsed.Countries)
	}
}

func TestValues(t *testing.T) {
	regions := values(func(c isocountry.Country) string { return c.Region })
	expected := []string{"Asia", "Americas", "Europe", "Polar"}
	if strings.Join(regions, ",") != strings.Join(expected, ",") {
		t.Errorf("values(region) = %v, expected %v", regions, expected)
	}
}
