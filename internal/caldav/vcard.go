package caldav

import "strings"

// Minimal vCard codec covering the fields the original tool maps: FN,
// EMAIL, TEL, ORG, UID. Shares the line folding and escaping rules with the
// iCalendar codec.

// EncodeContact serializes a vCard 3.0 payload.
func EncodeContact(c Contact) string {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCARD")
	writeLine(&b, "VERSION:3.0")
	writeLine(&b, "FN:"+escapeText(c.FullName))
	writeLine(&b, "N:"+escapeText(c.FullName)+";;;;")
	if c.Email != "" {
		writeLine(&b, "EMAIL;TYPE=INTERNET:"+escapeText(c.Email))
	}
	if c.Phone != "" {
		writeLine(&b, "TEL:"+escapeText(c.Phone))
	}
	if c.Organization != "" {
		writeLine(&b, "ORG:"+escapeText(c.Organization))
	}
	writeLine(&b, "UID:"+escapeText(c.UID))
	writeLine(&b, "END:VCARD")
	return b.String()
}

// ParseContact reads the first vCard in data. Returns ok=false when no
// VCARD block is present.
func ParseContact(data string) (Contact, bool) {
	var c Contact
	seen := false
	for _, line := range unfold(data) {
		name, _, value := splitProperty(line)
		switch name {
		case "BEGIN":
			if strings.EqualFold(value, "VCARD") {
				seen = true
			}
		case "FN":
			c.FullName = unescapeText(value)
		case "EMAIL":
			if c.Email == "" {
				c.Email = unescapeText(value)
			}
		case "TEL":
			if c.Phone == "" {
				c.Phone = unescapeText(value)
			}
		case "ORG":
			if c.Organization == "" {
				// ORG is structured; the first component is the name.
				c.Organization = unescapeText(strings.SplitN(value, ";", 2)[0])
			}
		case "UID":
			c.UID = unescapeText(value)
		}
	}
	return c, seen
}
