package extractor

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func selectImage(t *testing.T, html, name string) (CandidateImage, bool) {
	t.Helper()
	e := newTestExtractor(t)
	return e.Cascade().Select(parseHTML(t, html), NewTarget(name, testBase))
}

func TestDefaultTiers_Order(t *testing.T) {
	e := newTestExtractor(t)

	want := []string{
		TierNamedContainer,
		TierNamedField,
		TierFullBodyPattern,
		TierContainerPattern,
		TierLayoutKeyword,
		TierHeroImage,
		TierGlobalKeyword,
		TierLastResort,
	}
	if diff := cmp.Diff(want, e.Cascade().TierNames()); diff != "" {
		t.Errorf("tier order mismatch (-want +got):\n%s", diff)
	}
}

func TestCascade_NamedContainer_SkipsRival(t *testing.T) {
	c, ok := selectImage(t, readTestdata(t, "profile_jones.html"), "Jon Jones")
	if !ok {
		t.Fatal("expected an image")
	}

	if c.Tier != TierNamedContainer {
		t.Errorf("expected tier %s, got %s", TierNamedContainer, c.Tier)
	}
	if c.Position != 1 {
		t.Errorf("expected second container candidate, got position %d", c.Position)
	}
	want := "https://dmxg5wxfqgb4u.cloudfront.net/styles/event_fight_card_upper_body_of_standing_athlete/s3/2023-03/JONES_JON_L_BELT_03-04.png?itok=abc"
	if c.URL != want {
		t.Errorf("expected %q, got %q", want, c.URL)
	}
}

func TestCascade_NamedContainer_WeakFallback(t *testing.T) {
	html := `<html><body><div class="hero-profile"><img src="/images/default-hero.jpg"></div></body></html>`

	c, ok := selectImage(t, html, "Khabib Nurmagomedov")
	if !ok {
		t.Fatal("expected unvalidated container image to be accepted")
	}
	if c.URL != "https://www.ufc.com/images/default-hero.jpg" {
		t.Errorf("unexpected URL %q", c.URL)
	}
}

func TestCascade_NamedContainer_ListingCard(t *testing.T) {
	html := readTestdata(t, "listing_card.html")

	c, ok := selectImage(t, html, "Israel Adesanya")
	if !ok || c.Tier != TierNamedContainer {
		t.Fatalf("expected named-container match, got %+v (ok=%v)", c, ok)
	}

	// The weak fallback has no way to tell that this card belongs to
	// somebody else.
	other, ok := selectImage(t, html, "Jon Jones")
	if !ok || other.URL != c.URL {
		t.Errorf("expected weak fallback to accept the card image, got %+v", other)
	}
}

func TestCascade_NamedField(t *testing.T) {
	html := `<html><body>
		<div class="field--name-image"><img src="/images/other.png"></div>
		<div class="field--name-athlete-image"><img src="/s3/JONES_JON_L.png"></div>
	</body></html>`

	c, ok := selectImage(t, html, "Jon Jones")
	if !ok {
		t.Fatal("expected an image")
	}
	if c.Tier != TierNamedField || c.URL != "https://www.ufc.com/s3/JONES_JON_L.png" {
		t.Errorf("unexpected candidate %+v", c)
	}
}

func TestCascade_FullBodyPattern(t *testing.T) {
	html := `<html><body>
		<img src="/styles/ufc-fighter-container/profile-galery/fullbodyright-picture/SILVA_ANDERSON.png">
		<img src="/styles/ufc-fighter-container/profile-galery/fullbodyright-picture/JONES_JON.png">
	</body></html>`

	c, ok := selectImage(t, html, "Jon Jones")
	if !ok {
		t.Fatal("expected an image")
	}
	if c.Tier != TierFullBodyPattern {
		t.Errorf("expected tier %s, got %s", TierFullBodyPattern, c.Tier)
	}
	if c.URL != "https://www.ufc.com/styles/ufc-fighter-container/profile-galery/fullbodyright-picture/JONES_JON.png" {
		t.Errorf("unexpected URL %q", c.URL)
	}
}

func TestCascade_ContainerPattern(t *testing.T) {
	html := `<html><body><img src="/files/Hero-Main-Image/ADESANYA_ISRAEL.jpg"></body></html>`

	c, ok := selectImage(t, html, "Israel Adesanya")
	if !ok || c.Tier != TierContainerPattern {
		t.Fatalf("expected container-pattern match, got %+v (ok=%v)", c, ok)
	}
}

func TestCascade_LayoutKeyword(t *testing.T) {
	html := `<html><body>
		<div class="layout-content"><img src="/fighter/JONES_JON.png"></div>
	</body></html>`

	c, ok := selectImage(t, html, "Jon Jones")
	if !ok || c.Tier != TierLayoutKeyword {
		t.Fatalf("expected layout-keyword match, got %+v (ok=%v)", c, ok)
	}
}

func TestCascade_GlobalKeyword_RespectsNegatives(t *testing.T) {
	html := `<html><body>
		<img src="/images/athlete-thumb-JONES.png">
		<img src="/images/athlete/headshot/JONES_JON.png">
	</body></html>`

	c, ok := selectImage(t, html, "Jon Jones")
	if !ok {
		t.Fatal("expected an image")
	}
	if c.Tier != TierGlobalKeyword {
		t.Errorf("expected tier %s, got %s", TierGlobalKeyword, c.Tier)
	}
	if c.URL != "https://www.ufc.com/images/athlete/headshot/JONES_JON.png" {
		t.Errorf("thumbnail should be skipped, got %q", c.URL)
	}
}

func TestCascade_NoMatch(t *testing.T) {
	c, ok := selectImage(t, readTestdata(t, "profile_no_image.html"), "Khabib Nurmagomedov")
	if ok {
		t.Errorf("expected no image, got %+v", c)
	}
}

func TestCascade_LastResortRejectsSuspicious(t *testing.T) {
	html := `<html><body><div class="hero-profile"><img src="/images/SILVA_ANDERSON.png"></div></body></html>`

	if c, ok := selectImage(t, html, "Khabib Nurmagomedov"); ok {
		t.Errorf("expected rival image to be rejected by every tier, got %+v", c)
	}
}

func TestCascade_HeroImage(t *testing.T) {
	html := `<html><body><div class="hero-profile">
<img src="/images/SILVA_X.png"><img src="/images/JONES_JON.png">
</div></body></html>`

	c, ok := selectImage(t, html, "Jon Jones")
	if !ok {
		t.Fatal("expected an image")
	}
	if c.Tier != TierHeroImage {
		t.Errorf("expected tier %s, got %s", TierHeroImage, c.Tier)
	}
	if c.Position != 1 {
		t.Errorf("expected second hero candidate, got position %d", c.Position)
	}
	if c.URL != "https://www.ufc.com/images/JONES_JON.png" {
		t.Errorf("unexpected URL %q", c.URL)
	}
}

func TestCascade_LastResortAccepts(t *testing.T) {
	html := `<html><body><div class="hero-profile"><img src="/images/BORGX.png"></div></body></html>`

	c, ok := selectImage(t, html, "Khabib Nurmagomedov")
	if !ok {
		t.Fatal("expected last-resort tier to accept the container image")
	}
	if c.Tier != TierLastResort {
		t.Errorf("expected tier %s, got %s", TierLastResort, c.Tier)
	}
	if c.URL != "https://www.ufc.com/images/BORGX.png" {
		t.Errorf("unexpected URL %q", c.URL)
	}
}

// countingTier records how often the cascade consults it.
type countingTier struct {
	name  string
	match bool
	calls int
}

func (c *countingTier) Name() string { return c.name }

func (c *countingTier) Select(_ *goquery.Document, _ Target) (CandidateImage, bool) {
	c.calls++
	if !c.match {
		return CandidateImage{}, false
	}
	return CandidateImage{URL: "https://cdn/" + c.name + ".png", Tier: c.name}, true
}

func TestCascade_StopsAtFirstMatch(t *testing.T) {
	first := &countingTier{name: "first"}
	second := &countingTier{name: "second", match: true}
	third := &countingTier{name: "third", match: true}

	cascade := NewCascade(first, second, third)
	c, ok := cascade.Select(parseHTML(t, "<html></html>"), NewTarget("Jon Jones", testBase))
	if !ok {
		t.Fatal("expected a match")
	}
	if c.Tier != "second" {
		t.Errorf("expected second tier to win, got %s", c.Tier)
	}

	if first.calls != 1 || second.calls != 1 {
		t.Errorf("expected tiers one and two to run once, got %d and %d", first.calls, second.calls)
	}
	if third.calls != 0 {
		t.Errorf("lower tier evaluated %d times after a match", third.calls)
	}
}

func TestCascade_Name(t *testing.T) {
	cascade := NewCascade(&countingTier{name: "a"}, &countingTier{name: "b"})
	if got := cascade.Name(); got != "cascade(a->b)" {
		t.Errorf("unexpected name %q", got)
	}
}
