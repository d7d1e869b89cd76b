package extractor

import "testing"

func TestDenylist_RejectsRival(t *testing.T) {
	d := DefaultDenylist()

	if !d.RejectsRival("https://cdn/SILVA_ANDERSON.png", "Khabib Nurmagomedov") {
		t.Error("expected rival token to be rejected")
	}
	if d.RejectsRival("https://cdn/SILVA_ANDERSON.png", "Anderson Silva") {
		t.Error("rival token in the athlete's own name should not be rejected")
	}
	if d.RejectsRival("https://cdn/default-hero.jpg", "Khabib Nurmagomedov") {
		t.Error("URL without rival tokens should not be rejected")
	}
}

func TestDenylist_RejectsSuspicious(t *testing.T) {
	d := DefaultDenylist()

	rejected := []string{
		"https://cdn/BORG_RAY.png",
		"https://cdn/mcgregor_conor.png",
		"https://cdn/DIAZ_NATE.png",
	}
	for _, u := range rejected {
		if !d.RejectsSuspicious(u) {
			t.Errorf("expected %q to be rejected", u)
		}
	}

	if d.RejectsSuspicious("https://cdn/ADESANYA_ISRAEL.png") {
		t.Error("unlisted athlete should not be rejected")
	}
}

func TestDenylist_Empty(t *testing.T) {
	var d Denylist
	if d.RejectsRival("https://cdn/SILVA.png", "x") || d.RejectsSuspicious("https://cdn/SILVA_.png") {
		t.Error("empty denylist should reject nothing")
	}
}
