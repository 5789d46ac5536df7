// Package category maps application names to productivity categories
// and computes weighted productivity scores.
package category

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
)

// Categorizer resolves application names to categories. Lookups
// consult user overrides before the built-in defaults, falling back
// to a substring scan and finally to Neutral. All matching is
// case-insensitive.
type Categorizer struct {
	defaults  map[string]session.Category
	overrides map[string]session.Category
	// names keeps the casing the user wrote each override with, so
	// the saved rules file and listings show "My App" rather than the
	// lowercased lookup key.
	names     map[string]string
	rulesPath string
}

// Rule is a single app-to-category override.
type Rule struct {
	App      string
	Category session.Category
}

// Group accumulates the applications resolved to one category.
type Group struct {
	Apps      []session.AppUsage `json:"apps"`
	TotalTime time.Duration      `json:"total_time"`
}

// New creates a Categorizer with the built-in default table and any
// overrides found in the rules file at rulesPath. A missing or
// malformed rules file is ignored and the defaults are used alone.
func New(rulesPath string) *Categorizer {
	c := &Categorizer{
		defaults:  make(map[string]session.Category),
		overrides: make(map[string]session.Category),
		names:     make(map[string]string),
		rulesPath: rulesPath,
	}

	for cat, apps := range defaultCategories {
		for _, app := range apps {
			c.defaults[strings.ToLower(app)] = cat
		}
	}

	if rulesPath != "" {
		c.loadRules()
	}

	return c
}

// GetCategory returns the category for an application. Resolution
// order: exact override match, exact default match, substring match
// in either direction (longest rule key wins, ties broken
// lexicographically, overrides before defaults), then Neutral.
func (c *Categorizer) GetCategory(appName string) session.Category {
	name := strings.ToLower(appName)

	if cat, ok := c.overrides[name]; ok {
		return cat
	}

	if cat, ok := c.defaults[name]; ok {
		return cat
	}

	if cat, ok := substringMatch(c.overrides, name); ok {
		return cat
	}

	if cat, ok := substringMatch(c.defaults, name); ok {
		return cat
	}

	return session.Neutral
}

// substringMatch scans rules for keys that contain the name or are
// contained in it. The longest matching key wins so that more
// specific rules shadow generic ones.
func substringMatch(
	rules map[string]session.Category,
	name string,
) (session.Category, bool) {
	var best string

	for key := range rules {
		if !strings.Contains(key, name) && !strings.Contains(name, key) {
			continue
		}

		if len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}

	if best == "" {
		return "", false
	}

	return rules[best], true
}

// SetCategory stores or overwrites an override rule for an
// application. The existing rules are left untouched when the
// category is not one of the three known values.
func (c *Categorizer) SetCategory(
	appName string,
	cat session.Category,
) error {
	if !cat.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}

	key := strings.ToLower(appName)

	c.overrides[key] = cat
	c.names[key] = appName

	return nil
}

// displayName recovers the casing an override was written with.
func (c *Categorizer) displayName(key string) string {
	if name, ok := c.names[key]; ok {
		return name
	}

	return key
}

// CalculateProductivityScore computes a 0-100 score weighting
// productive time at 1.0, neutral at 0.5, and distracting at 0.
// The result rounds halves away from zero and is 0 when no time was
// tracked at all.
func (c *Categorizer) CalculateProductivityScore(
	productive, neutral, distracting time.Duration,
) int {
	total := productive + neutral + distracting
	if total == 0 {
		return 0
	}

	weighted := productive.Seconds() + neutral.Seconds()*0.5

	return timeutil.Round(weighted / total.Seconds() * 100)
}

// GroupByCategory partitions applications by their resolved category,
// summing durations per group. All three categories are always
// present in the result.
func (c *Categorizer) GroupByCategory(
	apps []session.AppUsage,
) map[session.Category]Group {
	grouped := make(map[session.Category]Group, len(session.Categories))

	for _, cat := range session.Categories {
		grouped[cat] = Group{}
	}

	for _, app := range apps {
		cat := c.GetCategory(app.Name)

		group := grouped[cat]
		group.Apps = append(group.Apps, app)
		group.TotalTime += app.Duration
		grouped[cat] = group
	}

	return grouped
}

// Rules returns the override rules in natural name order.
func (c *Categorizer) Rules() []Rule {
	rules := make([]Rule, 0, len(c.overrides))

	for app, cat := range c.overrides {
		rules = append(rules, Rule{App: c.displayName(app), Category: cat})
	}

	sort.Slice(rules, func(i, j int) bool {
		return natural.Less(rules[i].App, rules[j].App)
	})

	return rules
}
