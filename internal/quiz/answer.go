package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Answer is either a single string or a list of strings. Lists are
// compared as sets, scalars exactly.
type Answer struct {
	values []string
	multi  bool
}

// Single returns a scalar answer.
func Single(s string) Answer {
	return Answer{values: []string{s}}
}

// Multi returns a list answer.
func Multi(vs ...string) Answer {
	return Answer{values: append([]string{}, vs...), multi: true}
}

// IsMulti reports whether the answer is a list.
func (a Answer) IsMulti() bool { return a.multi }

// IsZero reports whether no answer was given.
func (a Answer) IsZero() bool { return len(a.values) == 0 && !a.multi }

// Values returns a copy of the answer's strings.
func (a Answer) Values() []string { return append([]string{}, a.values...) }

// String joins list answers with commas.
func (a Answer) String() string {
	if a.multi {
		return strings.Join(a.values, ", ")
	}
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Matches reports whether given satisfies a as the correct answer.
func (a Answer) Matches(given Answer) bool {
	if given.IsZero() {
		return false
	}
	if a.multi {
		if !given.multi {
			return false
		}
		want := slices.Clone(a.values)
		got := slices.Clone(given.values)
		slices.Sort(want)
		slices.Sort(got)
		return slices.Equal(want, got)
	}
	return !given.multi && given.values[0] == a.values[0]
}

// MarshalJSON writes a list as a JSON array and a scalar as a string.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		return json.Marshal(a.values)
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("decode answer list: %w", err)
		}
		*a = Multi(vs...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	*a = Single(s)
	return nil
}
