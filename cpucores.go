package facecam

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseCPUCores parses a list of CPU core numbers and ranges, eg: "0,4-7"
func ParseCPUCores(s string) ([]int, error) {

	seen := make(map[int]bool)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")

		first, err := strconv.Atoi(strings.TrimSpace(lo))

		if err != nil || first < 0 {
			return nil, fmt.Errorf("invalid CPU core %q", part)
		}

		last := first

		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(hi))

			if err != nil || last < first {
				return nil, fmt.Errorf("invalid CPU core range %q", part)
			}
		}

		for core := first; core <= last; core++ {
			seen[core] = true
		}
	}

	cores := make([]int, 0, len(seen))

	for core := range seen {
		cores = append(cores, core)
	}

	sort.Ints(cores)

	return cores, nil
}
