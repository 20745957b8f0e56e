package input

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNotNumber  = errors.New("input: not a number")
	ErrNotInteger = errors.New("input: not an integer")
)

// maxIntegerLen caps integer input so it always fits an int32.
const maxIntegerLen = 10

// piAlias matches the fixed multiples of pi accepted as bounds: pi, -pi,
// 2pi, pi/2, -3pi/4 and so on.
var piAlias = regexp.MustCompile(`^([+-]?)(\d*)\s*pi(?:\s*/\s*(\d+))?$`)

// ParseFloat reads a finite bound. A comma is accepted as the decimal
// separator.
func ParseFloat(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrNotNumber
	}

	if m := piAlias.FindStringSubmatch(s); m != nil {
		v := math.Pi
		if m[2] != "" {
			k, err := strconv.Atoi(m[2])
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
			}
			v *= float64(k)
		}
		if m[3] != "" {
			d, err := strconv.Atoi(m[3])
			if err != nil || d == 0 {
				return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
			}
			v /= float64(d)
		}
		if m[1] == "-" {
			v = -v
		}
		return v, nil
	}

	for _, c := range s {
		if !strings.ContainsRune("0123456789.-,", c) {
			return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
		}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return v, nil
}

func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxIntegerLen {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789-", c) {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return v, nil
}

// ValidIntervals reports whether n is a positive even integer.
func ValidIntervals(n int) bool {
	return n > 0 && n%2 == 0
}
