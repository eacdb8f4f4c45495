package caldav

import (
	"fmt"
	"strings"
	"time"
)

// Minimal iCalendar codec for the VEVENT subset this tool reads and writes:
// UID, SUMMARY, DESCRIPTION, LOCATION, DTSTART, DTEND. Handles RFC 5545
// line folding, text escaping, and the three DATE-TIME forms seen in the
// wild (UTC "Z", TZID-qualified local, and all-day VALUE=DATE).

const (
	icalTimeUTC   = "20060102T150405Z"
	icalTimeLocal = "20060102T150405"
	icalDate      = "20060102"
)

// EncodeEvent serializes ev as a VCALENDAR. Times are written in UTC.
func EncodeEvent(ev Event, now time.Time) string {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//openwebui-tools//caldav-tool//EN")
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+escapeText(ev.UID))
	writeLine(&b, "DTSTAMP:"+now.UTC().Format(icalTimeUTC))
	writeLine(&b, "DTSTART:"+ev.Start.UTC().Format(icalTimeUTC))
	writeLine(&b, "DTEND:"+ev.End.UTC().Format(icalTimeUTC))
	writeLine(&b, "SUMMARY:"+escapeText(ev.Summary))
	if ev.Description != "" {
		writeLine(&b, "DESCRIPTION:"+escapeText(ev.Description))
	}
	if ev.Location != "" {
		writeLine(&b, "LOCATION:"+escapeText(ev.Location))
	}
	writeLine(&b, "END:VEVENT")
	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// ParseEvents extracts every VEVENT from an iCalendar payload. Components
// without a parseable DTSTART are skipped, matching the tolerant reads of
// the upstream data this replaces.
func ParseEvents(data string) []Event {
	lines := unfold(data)
	var events []Event
	var cur *Event
	for _, line := range lines {
		name, params, value := splitProperty(line)
		switch name {
		case "BEGIN":
			if strings.EqualFold(value, "VEVENT") {
				cur = &Event{}
			}
		case "END":
			if strings.EqualFold(value, "VEVENT") && cur != nil {
				if !cur.Start.IsZero() {
					events = append(events, *cur)
				}
				cur = nil
			}
		}
		if cur == nil {
			continue
		}
		switch name {
		case "UID":
			cur.UID = unescapeText(value)
		case "SUMMARY":
			cur.Summary = unescapeText(value)
		case "DESCRIPTION":
			cur.Description = unescapeText(value)
		case "LOCATION":
			cur.Location = unescapeText(value)
		case "DTSTART":
			if t, err := parseICalTime(value, params); err == nil {
				cur.Start = t
			}
		case "DTEND":
			if t, err := parseICalTime(value, params); err == nil {
				cur.End = t
			}
		}
	}
	return events
}

// parseICalTime handles "Z"-suffixed UTC, TZID-qualified local, and
// VALUE=DATE forms, always returning UTC.
func parseICalTime(value string, params map[string]string) (time.Time, error) {
	if t, err := time.Parse(icalTimeUTC, value); err == nil {
		return t, nil
	}
	loc := time.UTC
	if tzid, ok := params["TZID"]; ok {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}
	if t, err := time.ParseInLocation(icalTimeLocal, value, loc); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(icalDate, value, loc); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable ical time %q", value)
}

// splitProperty divides "NAME;PARAM=V;PARAM2=V2:value" into its parts.
func splitProperty(line string) (name string, params map[string]string, value string) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return strings.ToUpper(line), nil, ""
	}
	head, value := line[:colon], line[colon+1:]
	parts := strings.Split(head, ";")
	name = strings.ToUpper(parts[0])
	if len(parts) > 1 {
		params = make(map[string]string, len(parts)-1)
		for _, p := range parts[1:] {
			if eq := strings.Index(p, "="); eq > 0 {
				params[strings.ToUpper(p[:eq])] = strings.Trim(p[eq+1:], `"`)
			}
		}
	}
	return name, params, value
}

// unfold joins RFC 5545 folded lines (continuation lines start with a space
// or tab) and normalizes line endings.
func unfold(data string) []string {
	raw := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	var lines []string
	for _, l := range raw {
		if l == "" {
			continue
		}
		if (l[0] == ' ' || l[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// writeLine appends a CRLF-terminated, 75-octet-folded content line.
func writeLine(b *strings.Builder, line string) {
	const limit = 75
	for len(line) > limit {
		b.WriteString(line[:limit])
		b.WriteString("\r\n ")
		line = line[limit:]
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func unescapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
