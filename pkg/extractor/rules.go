package extractor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules holds the selector and pattern tables driving name and image
// extraction. The defaults track the current athlete profile markup; a rules
// file can override any table when the markup changes.
type Rules struct {
	// Name extraction
	NameSelectors  []string `json:"name_selectors" yaml:"name_selectors"`
	TitleSeparator string   `json:"title_separator" yaml:"title_separator"`

	// Image tiers, in cascade order
	Containers        []string `json:"containers" yaml:"containers"`
	Fields            []string `json:"fields" yaml:"fields"`
	FullBodyPatterns  []string `json:"full_body_patterns" yaml:"full_body_patterns"`
	ContainerPatterns []string `json:"container_patterns" yaml:"container_patterns"`
	LayoutClass       string   `json:"layout_class" yaml:"layout_class"`
	LayoutKeywords    []string `json:"layout_keywords" yaml:"layout_keywords"`
	HeroSelectors     []string `json:"hero_selectors" yaml:"hero_selectors"`
	PositiveKeywords  []string `json:"positive_keywords" yaml:"positive_keywords"`
	NegativeKeywords  []string `json:"negative_keywords" yaml:"negative_keywords"`

	Denylist Denylist `json:"denylist" yaml:"denylist"`
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return Rules{
		NameSelectors: []string{
			"h1.hero-profile__name",
			"h1.c-hero__headline",
			".hero-profile__name",
			".c-hero__headline",
			"h1",
			".fighter-name",
			".athlete-name",
		},
		TitleSeparator: "|",
		Containers: []string{
			".c-listing-athlete__bgimg",
			".c-listing-athlete-flipcard__back",
			".hero-profile",
			".c-hero",
			".athlete-hero",
			".fighter-profile",
		},
		Fields: []string{
			".field--name-image-body-right",
			".field--name-image",
			".field--name-athlete-image",
		},
		FullBodyPatterns: []string{
			`event_fight_card_upper_body_of_standing_athlete`,
			`ufc-fighter-container.*profile-galery.*fullbodyright-picture`,
			`ufc-fighter-container.*profile-gallery.*fullbodyright-picture`,
			`profile-galery.*fullbodyright-picture`,
			`profile-gallery.*fullbodyright-picture`,
			`fullbodyright-picture`,
		},
		ContainerPatterns: []string{
			`ufc-fighter-container`,
			`profile.*picture`,
			`athlete.*image`,
			`hero.*image`,
		},
		LayoutClass:    `layout.*content`,
		LayoutKeywords: []string{"fighter", "athlete", "profile"},
		HeroSelectors: []string{
			".hero-profile img",
			".c-hero img",
			".athlete-hero img",
			".fighter-profile img",
		},
		PositiveKeywords: []string{"fighter", "athlete", "profile", "headshot", "portrait"},
		NegativeKeywords: []string{"logo", "icon", "banner", "background", "thumb"},
		Denylist:         DefaultDenylist(),
	}
}

// LoadRules reads a JSON or YAML rules file. Tables missing from the file
// keep their default values.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- rules path is supplied by the operator
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &rules); err != nil {
			return Rules{}, fmt.Errorf("failed to parse JSON rules: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return Rules{}, fmt.Errorf("failed to parse YAML rules: %w", err)
		}
	default:
		return Rules{}, fmt.Errorf("unsupported rules file format: %s", ext)
	}

	if _, err := rules.compile(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// compiledRules holds the regular expressions derived from Rules.
type compiledRules struct {
	fullBody    []*regexp.Regexp
	containers  []*regexp.Regexp
	layoutClass *regexp.Regexp
}

func (r Rules) compile() (compiledRules, error) {
	var c compiledRules
	var err error

	if c.fullBody, err = compilePatterns(r.FullBodyPatterns); err != nil {
		return c, fmt.Errorf("invalid full body pattern: %w", err)
	}
	if c.containers, err = compilePatterns(r.ContainerPatterns); err != nil {
		return c, fmt.Errorf("invalid container pattern: %w", err)
	}
	if r.LayoutClass != "" {
		if c.layoutClass, err = regexp.Compile(r.LayoutClass); err != nil {
			return c, fmt.Errorf("invalid layout class pattern: %w", err)
		}
	}
	return c, nil
}

// compilePatterns compiles case-insensitive src patterns.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
