package gpu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parseCounterValue extracts a single float from performance-counter command
// output. PowerShell formats numbers per the user locale, so a lone decimal
// comma is normalized before parsing. Anything else malformed is an error the
// resolver treats as strategy failure rather than a crash.
func parseCounterValue(out string) (float64, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return 0, errors.New("empty counter output")
	}
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed counter value %q", s)
	}
	return v, nil
}
