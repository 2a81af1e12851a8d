// Package quickadd turns free text like "lunch tomorrow 2pm for 1 hour" into
// structured event data. The date/time phrase is recognized with the
// olebedev/when rule engine; duration extraction and subject cleanup are a
// small grammar of our own.
package quickadd

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DefaultSubject is used when nothing remains of the text after the date and
// duration phrases are removed.
const DefaultSubject = "Untitled Event"

// DefaultDuration applies when the text carries neither an explicit end nor a
// duration.
const DefaultDuration = time.Hour

// Parsed is the structured result of parsing free text. A nil Start means no
// date/time phrase was found: the text is not yet a valid event and the
// caller should keep the creation UI open rather than guess.
type Parsed struct {
	Subject string
	Start   *time.Time
	End     *time.Time
}

// SubjectOrDefault returns the subject, or DefaultSubject when empty.
func (p Parsed) SubjectOrDefault() string {
	if p.Subject == "" {
		return DefaultSubject
	}
	return p.Subject
}

// Parser recognizes date/time phrases in English free text.
type Parser struct {
	w *when.Parser
}

// New creates a Parser with the English and common rule sets.
func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// durationRe matches "(for|in)? <number> <hour|hr|minute|min|day>(s)?",
// case-insensitively, with fractional amounts.
var durationRe = regexp.MustCompile(`(?i)(?:(?:for|in)\s+)?(\d+(?:\.\d+)?)\s*(hour|hr|minute|min|day)s?`)

// rangeConnectorRe matches a range connector immediately after the start
// phrase ("2pm to 4pm", "2pm - 4pm").
var rangeConnectorRe = regexp.MustCompile(`^\s*(?:to|until|till|-)\s+`)

// Parse extracts a subject, start and end from text, resolving relative
// phrases against now and preferring future-dated resolution over past.
func (p *Parser) Parse(text string, now time.Time) Parsed {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Parsed{}
	}

	r, err := p.w.Parse(trimmed, now)
	if err != nil || r == nil {
		return Parsed{Subject: trimmed}
	}

	start := preferFuture(r.Time, now)
	leading := trimmed[:r.Index]
	trailing := trimmed[r.Index+len(r.Text):]

	// A connector right after the start phrase may introduce an explicit
	// end ("2pm to 4pm").
	var end *time.Time
	if loc := rangeConnectorRe.FindStringIndex(trailing); loc != nil {
		rest := trailing[loc[1]:]
		if er, err := p.w.Parse(rest, start); err == nil && er != nil && er.Index == 0 {
			endTime := er.Time
			if endTime.After(start) {
				end = &endTime
				trailing = rest[len(er.Text):]
			}
		}
	}

	remainder := strings.TrimSpace(leading + " " + trailing)

	// Duration applies only when the phrase did not already express an end.
	remainder, duration := extractDuration(remainder)
	if end == nil {
		e := start.Add(DefaultDuration)
		if duration > 0 {
			e = start.Add(duration)
		}
		end = &e
	}

	return Parsed{
		Subject: collapseWhitespace(remainder),
		Start:   &start,
		End:     end,
	}
}

// preferFuture rolls a bare-time resolution that already passed today forward
// one day, so "2pm" typed on a Monday evening means Tuesday. Phrases that
// resolved to a different calendar day said so explicitly and stay put.
func preferFuture(t, now time.Time) time.Time {
	if t.Before(now) && t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.AddDate(0, 0, 1)
	}
	return t
}

// extractDuration removes the first duration expression from text and returns
// the remainder plus the parsed duration (0 when absent).
func extractDuration(text string) (string, time.Duration) {
	m := durationRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, 0
	}

	amount, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
	if err != nil {
		return text, 0
	}

	var unit time.Duration
	switch strings.ToLower(text[m[4]:m[5]]) {
	case "hour", "hr":
		unit = time.Hour
	case "minute", "min":
		unit = time.Minute
	case "day":
		unit = 24 * time.Hour
	}

	remainder := text[:m[0]] + text[m[1]:]
	return remainder, time.Duration(amount * float64(unit))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
