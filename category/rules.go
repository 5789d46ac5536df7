package category

import (
	"errors"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/spf13/viper"

	"github.com/ayodele/tempo/internal/session"
)

// ErrInvalidCategory is returned when a rule names a category outside
// the three known values.
var ErrInvalidCategory = errors.New(
	"category must be one of: productive, neutral, distracting",
)

// loadRules reads override rules from the rules file. Unreadable or
// malformed files are ignored so a bad rules file can never break
// categorization.
func (c *Categorizer) loadRules() {
	v := viper.New()

	v.SetConfigFile(c.rulesPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return
	}

	for _, cat := range session.Categories {
		apps := v.GetStringSlice("categories." + string(cat))

		for _, app := range apps {
			key := strings.ToLower(app)

			c.overrides[key] = cat
			c.names[key] = app
		}
	}
}

// SaveRules writes the override rules back to the rules file, grouped
// by category with app names in natural order. Names are written with
// the casing they were set with, not the lowercased lookup key.
func (c *Categorizer) SaveRules() error {
	if c.rulesPath == "" {
		return nil
	}

	grouped := make(map[string][]string, len(session.Categories))

	for _, cat := range session.Categories {
		grouped[string(cat)] = []string{}
	}

	for app, cat := range c.overrides {
		grouped[string(cat)] = append(grouped[string(cat)], c.displayName(app))
	}

	for _, apps := range grouped {
		sort.Slice(apps, func(i, j int) bool {
			return natural.Less(apps[i], apps[j])
		})
	}

	v := viper.New()

	v.SetConfigFile(c.rulesPath)
	v.SetConfigType("yaml")
	v.Set("categories", grouped)

	return v.WriteConfigAs(c.rulesPath)
}
