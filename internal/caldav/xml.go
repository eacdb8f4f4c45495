package caldav

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// DAV request bodies. These mirror the PROPFIND/REPORT payloads the
// Nextcloud DAV endpoints expect.

const propfindCollectionsXML = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav" xmlns:card="urn:ietf:params:xml:ns:carddav">
    <d:prop>
        <d:displayname/>
        <d:resourcetype/>
    </d:prop>
</d:propfind>`

const addressbookQueryXML = `<?xml version="1.0" encoding="utf-8"?>
<card:addressbook-query xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
    <d:prop>
        <d:getetag/>
        <card:address-data/>
    </d:prop>
</card:addressbook-query>`

// calendarQueryXML filters VEVENTs to a UTC time range. Times use the
// basic DATE-TIME Z form, e.g. 20251020T000000Z.
func calendarQueryXML(startUTC, endUTC string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<c:calendar-query xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
    <d:prop>
        <d:getetag/>
        <c:calendar-data/>
    </d:prop>
    <c:filter>
        <c:comp-filter name="VCALENDAR">
            <c:comp-filter name="VEVENT">
                <c:time-range start="%s" end="%s"/>
            </c:comp-filter>
        </c:comp-filter>
    </c:filter>
</c:calendar-query>`, startUTC, endUTC)
}

// multistatus is the 207 response envelope shared by PROPFIND and REPORT.
type multistatus struct {
	XMLName   xml.Name      `xml:"DAV: multistatus"`
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href     string     `xml:"href"`
	Propstat []propstat `xml:"propstat"`
}

type propstat struct {
	Status string  `xml:"status"`
	Prop   davProp `xml:"prop"`
}

type davProp struct {
	DisplayName  string       `xml:"displayname"`
	ResourceType resourceType `xml:"resourcetype"`
	CalendarData string       `xml:"urn:ietf:params:xml:ns:caldav calendar-data"`
	AddressData  string       `xml:"urn:ietf:params:xml:ns:carddav address-data"`
	ETag         string       `xml:"getetag"`
}

type resourceType struct {
	Calendar    *struct{} `xml:"urn:ietf:params:xml:ns:caldav calendar"`
	Addressbook *struct{} `xml:"urn:ietf:params:xml:ns:carddav addressbook"`
}

func parseMultistatus(body []byte) (*multistatus, error) {
	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil {
		return nil, fmt.Errorf("parse multistatus: %w", err)
	}
	return &ms, nil
}

// okProp returns the prop from the 200-status propstat, if any.
func (r davResponse) okProp() (davProp, bool) {
	for _, ps := range r.Propstat {
		if strings.Contains(ps.Status, "200") {
			return ps.Prop, true
		}
	}
	if len(r.Propstat) == 1 && r.Propstat[0].Status == "" {
		return r.Propstat[0].Prop, true
	}
	return davProp{}, false
}

// collectionID extracts the last path segment of a collection href,
// e.g. ".../calendars/user/personal/" -> "personal".
func collectionID(href string) string {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
