// Package timex parses human-friendly durations used in configuration,
// such as a token lifetime of "1d".
package timex

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// ParseDuration accepts everything time.ParseDuration does, plus "d" (day)
// and "w" (week) units and bare integers meaning seconds. Day and week
// counts may be fractional. "1d", "1.5d", "1d12h", "2w", "90m" and "3600"
// are all valid; spelled-out units such as "2 days" are not. Values that do
// not fit in a time.Duration are an error.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return scale(float64(secs), time.Second, s)
	}

	var total time.Duration
	rest := s
	for _, unit := range []struct {
		suffix byte
		size   time.Duration
	}{{'w', Week}, {'d', Day}} {
		i := strings.IndexByte(rest, unit.suffix)
		if i < 0 {
			continue
		}
		n, err := strconv.ParseFloat(rest[:i], 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d, err := scale(n, unit.size, s)
		if err != nil {
			return 0, err
		}
		if total, err = add(total, d, s); err != nil {
			return 0, err
		}
		rest = rest[i+1:]
	}

	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		if total, err = add(total, d, s); err != nil {
			return 0, err
		}
	}

	return total, nil
}

// scale returns n units, failing when the result overflows time.Duration.
func scale(n float64, unit time.Duration, src string) (time.Duration, error) {
	v := n * float64(unit)
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("duration %q out of range", src)
	}
	return time.Duration(v), nil
}

func add(a, b time.Duration, src string) (time.Duration, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("duration %q out of range", src)
	}
	return sum, nil
}

// Duration is a time.Duration that decodes from JSON and YAML as either a
// string understood by ParseDuration or an integer number of seconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		parsed, err := scale(value, time.Second, string(b))
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	case string:
		parsed, err := ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration at line %d", node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
