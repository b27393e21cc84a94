package main

import (
	"encoding/json"
	"testing"

	"textpurge/internal/testsupport"
)

func TestSearchTable(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"a.txt": "The cat sits. The cat sat. A dog ran.",
	})

	out, _, err := runCLI(t, []string{"search", "The cat sat.", env.corpusDir}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Sentence")
	requireContains(t, out, "1.000")
	requireContains(t, out, "The cat sits.")
	if got := testsupport.ReadFile(t, env.file("a.txt")); got != "The cat sits. The cat sat. A dog ran." {
		t.Fatalf("search modified the corpus: %q", got)
	}
}

func TestSearchJSON(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"a.txt": "The cat sits. The cat sat. A dog ran.",
	})

	out, _, err := runCLI(t, []string{"search", "--json", "--top", "1", "The cat sat.", env.corpusDir}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var payload struct {
		Query     string  `json:"query"`
		Threshold float64 `json:"threshold"`
		Matches   []struct {
			File     string  `json:"file"`
			Sentence string  `json:"sentence"`
			Score    float64 `json:"score"`
			Index    int     `json:"index"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload.Query != "The cat sat." || payload.Threshold != 0.6 {
		t.Fatalf("unexpected header %+v", payload)
	}
	if len(payload.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(payload.Matches))
	}
	m := payload.Matches[0]
	if m.Sentence != "The cat sat." || m.Score != 1 || m.Index != 1 || m.File != env.file("a.txt") {
		t.Fatalf("unexpected match %+v", m)
	}
}

func TestSearchNoMatches(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"a.txt": "Completely different."})

	out, _, err := runCLI(t, []string{"search", "-t", "0.95", "The cat sat.", env.corpusDir}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "No sentences scored at or above 0.95")
}
