package extractor

import (
	"errors"
	"testing"
)

func TestExtract_EndToEndExample(t *testing.T) {
	e, err := New("https://site")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec, err := e.ExtractHTML(`<html><body>
		<div class="hero-profile">
			<h1 class="hero-profile__name">A B</h1>
			<img src="/images/B_A.png">
		</div>
	</body></html>`)
	if err != nil {
		t.Fatalf("ExtractHTML() error = %v", err)
	}

	want := Record{Name: "A B", ImageURL: "https://site/images/B_A.png"}
	if *rec != want {
		t.Errorf("expected %+v, got %+v", want, *rec)
	}
}

func TestExtract_FullProfile(t *testing.T) {
	e := newTestExtractor(t)

	rec, err := e.ExtractHTML(readTestdata(t, "profile_jones.html"))
	if err != nil {
		t.Fatalf("ExtractHTML() error = %v", err)
	}
	if rec.Name != "Jon Jones" {
		t.Errorf("unexpected name %q", rec.Name)
	}
	if !rec.HasImage() {
		t.Error("expected an image")
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestExtract_NameWithoutImage(t *testing.T) {
	e := newTestExtractor(t)

	rec, err := e.ExtractHTML(readTestdata(t, "profile_no_image.html"))
	if err != nil {
		t.Fatalf("ExtractHTML() error = %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record even without an image")
	}
	if rec.Name != "Khabib Nurmagomedov" || rec.ImageURL != "" {
		t.Errorf("expected partial record, got %+v", *rec)
	}
}

func TestExtract_NoName(t *testing.T) {
	e := newTestExtractor(t)

	rec, err := e.ExtractHTML(readTestdata(t, "no_name.html"))
	if !errors.Is(err, ErrNoName) {
		t.Fatalf("expected ErrNoName, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected no record, got %+v", *rec)
	}
}

func TestExtract_CustomTiers(t *testing.T) {
	tier := &countingTier{name: "only", match: true}
	e := newTestExtractor(t, WithTiers(tier))

	rec, err := e.ExtractHTML(`<html><body><h1>Jon Jones</h1></body></html>`)
	if err != nil {
		t.Fatalf("ExtractHTML() error = %v", err)
	}
	if rec.ImageURL != "https://cdn/only.png" || tier.calls != 1 {
		t.Errorf("expected injected tier to be used once, got %+v after %d calls", *rec, tier.calls)
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"name and image", Record{Name: "Jon Jones", ImageURL: "https://cdn/x.png"}, false},
		{"name only", Record{Name: "Jon Jones"}, false},
		{"missing name", Record{ImageURL: "https://cdn/x.png"}, true},
		{"relative image", Record{Name: "Jon Jones", ImageURL: "not a url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
