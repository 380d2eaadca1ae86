package ingredients

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Distinct splits every ingredients block on line breaks, trims each line and
// returns the non-empty lines once each, sorted. Matching is case sensitive
// and quantities are not parsed, so "Tomato" and "tomato" stay separate.
func Distinct(blocks ...string) []string {
	set := make(map[string]struct{})
	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			set[line] = struct{}{}
		}
	}
	names := maps.Keys(set)
	sort.Strings(names)
	return names
}
