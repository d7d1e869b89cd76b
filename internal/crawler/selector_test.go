package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

// --- ProfileSelector Tests ---

func TestProfileSelector_Matches(t *testing.T) {
	ps, err := NewProfileSelector("")
	if err != nil {
		t.Fatalf("NewProfileSelector() error = %v", err)
	}

	tests := []struct {
		href string
		want bool
	}{
		{"/athlete/jon-jones", true},
		{"https://www.ufc.com/athlete/jon-jones", true},
		{"/athlete/jon-jones?tab=bio", true},
		{"/athlete/jon-jones/bio", false},
		{"/athlete/", false},
		{"/athletes/all", false},
		{"/rankings", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := ps.Matches(tt.href); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.href, got, tt.want)
			}
		})
	}
}

func TestProfileSelector_CustomPrefix(t *testing.T) {
	ps, err := NewProfileSelector("/fighter")
	if err != nil {
		t.Fatalf("NewProfileSelector() error = %v", err)
	}

	if ps.Prefix != "/fighter/" {
		t.Errorf("expected prefix %q, got %q", "/fighter/", ps.Prefix)
	}
	if !ps.Matches("/fighter/amanda-nunes") {
		t.Error("expected custom prefix to match")
	}
	if ps.Matches("/athlete/amanda-nunes") {
		t.Error("expected default prefix not to match")
	}
}

func TestProfileSelector_ExtractLinks(t *testing.T) {
	html := readTestdata(t, "listing_page.html")
	ps, _ := NewProfileSelector(DefaultProfilePrefix)

	links, err := ps.ExtractLinks(html, "https://www.ufc.com/athletes/all?page=0")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}

	want := []string{
		"https://www.ufc.com/athlete/jon-jones",
		"https://www.ufc.com/athlete/alex-pereira",
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Errorf("ExtractLinks() mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileSelector_ExtractLinks_NoLinks(t *testing.T) {
	ps, _ := NewProfileSelector(DefaultProfilePrefix)

	links, err := ps.ExtractLinks(`<html><body><p>No athletes</p></body></html>`, "https://www.ufc.com/athletes/all")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}
