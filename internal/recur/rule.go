// Package recur expands recurrence rules into concrete occurrences.
package recur

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Rule parsing errors.
var (
	ErrEmptyRule       = errors.New("recurrence rule is empty")
	ErrMissingFreq     = errors.New("recurrence rule has no FREQ")
	ErrUnknownFreq     = errors.New("unknown recurrence frequency")
	ErrBadInterval     = errors.New("recurrence interval must be a positive integer")
	ErrBadUntil        = errors.New("recurrence UNTIL date is invalid")
	ErrUnknownRulePart = errors.New("unknown recurrence rule part")
)

// Freq is a recurrence step unit.
type Freq int

const (
	Daily Freq = iota
	Weekly
	Monthly
	Yearly
)

// rruleFreq maps our restricted frequencies onto rrule-go's.
func (f Freq) rruleFreq() rrule.Frequency {
	switch f {
	case Daily:
		return rrule.DAILY
	case Weekly:
		return rrule.WEEKLY
	case Monthly:
		return rrule.MONTHLY
	default:
		return rrule.YEARLY
	}
}

func (f Freq) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	default:
		return "YEARLY"
	}
}

// Rule is a parsed recurrence rule in the restricted grammar
// FREQ=...;INTERVAL=...;UNTIL=... that the editor emits.
type Rule struct {
	Freq     Freq
	Interval int       // skip factor, always >= 1
	Until    time.Time // zero value means unbounded
}

// String renders the rule back into its grammar form.
func (r Rule) String() string {
	s := "FREQ=" + r.Freq.String()
	if r.Interval > 1 {
		s += ";INTERVAL=" + strconv.Itoa(r.Interval)
	}
	if !r.Until.IsZero() {
		s += ";UNTIL=" + r.Until.UTC().Format("20060102T150405Z")
	}
	return s
}

// ParseRule parses a restricted RFC-5545-style rule string. Stray semicolons
// and an optional leading "RRULE:" prefix are tolerated; rules that are empty
// after cleanup return ErrEmptyRule so callers can fall back to treating the
// event as non-recurring.
func ParseRule(s string) (Rule, error) {
	rule := Rule{Interval: 1}

	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "RRULE:"))
	var parts []string
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	if len(parts) == 0 {
		return rule, ErrEmptyRule
	}

	seenFreq := false
	for _, part := range parts {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return rule, fmt.Errorf("%w: %q", ErrUnknownRulePart, part)
		}
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FREQ":
			freq, err := parseFreq(value)
			if err != nil {
				return rule, err
			}
			rule.Freq = freq
			seenFreq = true
		case "INTERVAL":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 1 {
				return rule, fmt.Errorf("%w: %q", ErrBadInterval, value)
			}
			rule.Interval = n
		case "UNTIL":
			until, err := parseUntil(value)
			if err != nil {
				return rule, err
			}
			rule.Until = until
		default:
			return rule, fmt.Errorf("%w: %q", ErrUnknownRulePart, key)
		}
	}

	if !seenFreq {
		return rule, ErrMissingFreq
	}
	return rule, nil
}

func parseFreq(s string) (Freq, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY":
		return Daily, nil
	case "WEEKLY":
		return Weekly, nil
	case "MONTHLY":
		return Monthly, nil
	case "YEARLY":
		return Yearly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFreq, s)
	}
}

// untilFormats are accepted UNTIL encodings: iCalendar basic date, basic
// datetime with and without Z, and RFC 3339 as an escape hatch.
var untilFormats = []string{
	"20060102",
	"20060102T150405Z0700",
	"20060102T150405",
	time.RFC3339,
}

func parseUntil(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range untilFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadUntil, s)
}
