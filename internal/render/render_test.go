package render

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kordes/rolodex/internal/contact"
)

func sampleRecords(t *testing.T) []contact.Record {
	t.Helper()
	alice, err := contact.New("Alice", "+15551234567")
	if err != nil {
		t.Fatal(err)
	}
	bob, err := contact.New("Bob", "5559876543")
	if err != nil {
		t.Fatal(err)
	}
	return []contact.Record{alice, bob}
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error should name the bad format: %v", err)
	}
}

func TestTable_ContainsAllRecords(t *testing.T) {
	r, err := NewRenderer("table")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.Render(sampleRecords(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	for _, want := range []string{"NAME", "PHONE", "Alice", "+15551234567", "Bob", "5559876543"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestTable_Empty(t *testing.T) {
	r, _ := NewRenderer("table")
	out, err := r.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "no contacts") {
		t.Errorf("empty table output = %q", out)
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	r, _ := NewRenderer("json")
	out, err := r.Render(sampleRecords(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got []contact.Record
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Phone != "5559876543" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestJSON_EmptyIsArray(t *testing.T) {
	r, _ := NewRenderer("json")
	out, err := r.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.TrimSpace(string(out)) != "[]" {
		t.Errorf("empty JSON output = %q, want []", out)
	}
}

func TestYAML_RoundTrips(t *testing.T) {
	r, _ := NewRenderer("yaml")
	out, err := r.Render(sampleRecords(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got []contact.Record
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if len(got) != 2 || got[1].Name != "Bob" {
		t.Errorf("decoded = %+v", got)
	}
}
