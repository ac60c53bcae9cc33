package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestCheckConsistency_Passed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ledger/consistency" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_expenses":3,"consistent_expenses":3}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	var buf bytes.Buffer
	if err := checkConsistency(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "PASSED") {
		t.Fatalf("expected PASSED in output, got:\n%s", out)
	}
	if !strings.Contains(out, "3 checked, 3 consistent") {
		t.Fatalf("expected counts in output, got:\n%s", out)
	}
}

func TestCheckConsistency_Discrepancies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_expenses":2,"consistent_expenses":1,"discrepancies":["exp-2"]}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	var buf bytes.Buffer
	err := checkConsistency(&buf)
	if err == nil {
		t.Fatal("expected error for inconsistent ledger")
	}

	if !strings.Contains(buf.String(), "discrepancy: exp-2") {
		t.Fatalf("expected discrepancy listing, got:\n%s", buf.String())
	}
}

func TestShowSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/plans/plan-1/snapshot" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plan_id":"plan-1","total_due":900}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	var buf bytes.Buffer
	if err := showSnapshot(&buf, "plan-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), `"plan_id": "plan-1"`) {
		t.Fatalf("expected indented snapshot, got:\n%s", buf.String())
	}
}
