package ui

import (
	"testing"

	"github.com/ayodele/tempo/internal/session"
)

func TestCategoryColorDispatch(t *testing.T) {
	cases := []struct {
		cat      session.Category
		expected string
	}{
		{session.Productive, Green("1h 0m")},
		{session.Distracting, Red("1h 0m")},
		{session.Neutral, Cyan("1h 0m")},
		// Unknown categories take the neutral color.
		{"sleeping", Cyan("1h 0m")},
	}

	for _, tc := range cases {
		if got := Category(tc.cat, "1h 0m"); got != tc.expected {
			t.Errorf(
				"expected %q to be colored as %q, but got: %q",
				tc.cat,
				tc.expected,
				got,
			)
		}
	}
}
