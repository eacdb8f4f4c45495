// Package caldav talks CalDAV and CardDAV to a Nextcloud-style DAV server:
// collection discovery via PROPFIND, ranged event reads via REPORT
// calendar-query, contact reads via REPORT addressbook-query, and writes
// via PUT/DELETE on {uid}.ics / {uid}.vcf resources.
package caldav

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/retry"
)

type credentials struct {
	username string
	password string
}

// Client is the DAV client shared by the calendar and contact operations.
type Client struct {
	calendarHome    string
	addressbookHome string
	serverRoot      string

	caldavAuth  credentials
	carddavAuth credentials

	httpc *http.Client
	exec  *retry.Executor
	log   *slog.Logger
	now   func() time.Time
}

// NewClient builds a Client from config. URL conventions follow Nextcloud:
// calendars live under remote.php/dav/calendars/{user}/ and addressbooks
// under remote.php/dav/addressbooks/users/{user}/.
func NewClient(cfg config.CalDAVConfig, exec *retry.Executor, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	calBase := davBase(cfg.URL)
	cardBase := davBase(cfg.CardDAVURL)

	u, err := url.Parse(calBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("CALDAV_URL %q is not a valid URL", cfg.URL)
	}

	return &Client{
		calendarHome:    calBase + "/remote.php/dav/calendars/" + cfg.Username + "/",
		addressbookHome: cardBase + "/remote.php/dav/addressbooks/users/" + cfg.CardDAVUsername + "/",
		serverRoot:      u.Scheme + "://" + u.Host,
		caldavAuth:      credentials{cfg.Username, cfg.Password},
		carddavAuth:     credentials{cfg.CardDAVUsername, cfg.CardDAVPassword},
		httpc:           &http.Client{Timeout: timeout},
		exec:            exec,
		log:             log,
		now:             time.Now,
	}, nil
}

// davBase strips a trailing remote.php/dav so both bare hosts and full DAV
// endpoints are accepted, as the original deployment env allowed either.
func davBase(raw string) string {
	base := strings.TrimSuffix(raw, "/")
	base = strings.TrimSuffix(base, "/remote.php/dav")
	return base
}

// ListCalendars discovers the calendars visible to the account.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var cals []Calendar
	err := c.exec.Do(ctx, "caldav PROPFIND calendars", func() error {
		body, err := c.dav(ctx, c.caldavAuth, "PROPFIND", c.calendarHome, propfindCollectionsXML, "1")
		if err != nil {
			return err
		}
		ms, err := parseMultistatus(body)
		if err != nil {
			return err
		}
		cals = cals[:0]
		for _, r := range ms.Responses {
			prop, ok := r.okProp()
			if !ok || prop.ResourceType.Calendar == nil {
				continue
			}
			name := prop.DisplayName
			if name == "" {
				name = collectionID(r.Href)
			}
			cals = append(cals, Calendar{Name: name, URL: r.Href, ID: collectionID(r.Href)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cals, nil
}

// resolveCalendar picks the named calendar, or the first one when name is
// empty, mirroring the original tool's default.
func (c *Client) resolveCalendar(ctx context.Context, name string) (Calendar, error) {
	cals, err := c.ListCalendars(ctx)
	if err != nil {
		return Calendar{}, err
	}
	if len(cals) == 0 {
		return Calendar{}, apperr.NotFound("no calendars found")
	}
	if name == "" {
		return cals[0], nil
	}
	for _, cal := range cals {
		if cal.Name == name || cal.ID == name {
			return cal, nil
		}
	}
	return Calendar{}, apperr.NotFound("calendar %q not found", name)
}

// ListEvents returns the events overlapping [startUTC, endUTC) in the named
// calendar (first calendar when name is empty).
func (c *Client) ListEvents(ctx context.Context, calendarName string, startUTC, endUTC time.Time) ([]Event, error) {
	cal, err := c.resolveCalendar(ctx, calendarName)
	if err != nil {
		return nil, err
	}
	query := calendarQueryXML(startUTC.UTC().Format(icalTimeUTC), endUTC.UTC().Format(icalTimeUTC))
	var events []Event
	err = c.exec.Do(ctx, "caldav REPORT events", func() error {
		body, err := c.dav(ctx, c.caldavAuth, "REPORT", c.serverRoot+cal.URL, query, "1")
		if err != nil {
			return err
		}
		ms, err := parseMultistatus(body)
		if err != nil {
			return err
		}
		events = events[:0]
		for _, r := range ms.Responses {
			prop, ok := r.okProp()
			if !ok || prop.CalendarData == "" {
				continue
			}
			events = append(events, ParseEvents(prop.CalendarData)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// eventURL places an event at {calendar}/{uid}.ics. Events created by this
// tool always live there; update and delete rely on that convention.
func (c *Client) eventURL(cal Calendar, uid string) string {
	return c.serverRoot + cal.URL + url.PathEscape(uid) + ".ics"
}

// PutEvent creates or replaces an event resource.
func (c *Client) PutEvent(ctx context.Context, calendarName string, ev Event) error {
	cal, err := c.resolveCalendar(ctx, calendarName)
	if err != nil {
		return err
	}
	payload := EncodeEvent(ev, c.now())
	return c.exec.Do(ctx, "caldav PUT event", func() error {
		_, err := c.put(ctx, c.caldavAuth, c.eventURL(cal, ev.UID), payload, "text/calendar")
		return err
	})
}

// GetEvent fetches one event by uid.
func (c *Client) GetEvent(ctx context.Context, calendarName, uid string) (Event, error) {
	cal, err := c.resolveCalendar(ctx, calendarName)
	if err != nil {
		return Event{}, err
	}
	var ev Event
	err = c.exec.Do(ctx, "caldav GET event", func() error {
		body, err := c.dav(ctx, c.caldavAuth, http.MethodGet, c.eventURL(cal, uid), "", "")
		if err != nil {
			return err
		}
		events := ParseEvents(string(body))
		if len(events) == 0 {
			return apperr.NotFound("event %s not found", uid)
		}
		ev = events[0]
		if ev.UID == "" {
			ev.UID = uid
		}
		return nil
	})
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

// DeleteEvent removes an event by uid.
func (c *Client) DeleteEvent(ctx context.Context, calendarName, uid string) error {
	cal, err := c.resolveCalendar(ctx, calendarName)
	if err != nil {
		return err
	}
	return c.exec.Do(ctx, "caldav DELETE event", func() error {
		_, err := c.dav(ctx, c.caldavAuth, http.MethodDelete, c.eventURL(cal, uid), "", "")
		return err
	})
}

// ListAddressbooks discovers the account's CardDAV addressbooks.
func (c *Client) ListAddressbooks(ctx context.Context) ([]Addressbook, error) {
	var books []Addressbook
	err := c.exec.Do(ctx, "carddav PROPFIND addressbooks", func() error {
		body, err := c.dav(ctx, c.carddavAuth, "PROPFIND", c.addressbookHome, propfindCollectionsXML, "1")
		if err != nil {
			return err
		}
		ms, err := parseMultistatus(body)
		if err != nil {
			return err
		}
		books = books[:0]
		for _, r := range ms.Responses {
			prop, ok := r.okProp()
			if !ok || prop.ResourceType.Addressbook == nil {
				continue
			}
			name := prop.DisplayName
			if name == "" {
				name = collectionID(r.Href)
			}
			books = append(books, Addressbook{Name: name, URL: r.Href, ID: collectionID(r.Href)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListContacts returns every contact in the named addressbook ("contacts"
// is the conventional default, applied by the caller).
func (c *Client) ListContacts(ctx context.Context, addressbook string) ([]Contact, error) {
	bookURL := c.addressbookHome + url.PathEscape(addressbook) + "/"
	var contacts []Contact
	err := c.exec.Do(ctx, "carddav REPORT contacts", func() error {
		body, err := c.dav(ctx, c.carddavAuth, "REPORT", bookURL, addressbookQueryXML, "1")
		if err != nil {
			return err
		}
		ms, err := parseMultistatus(body)
		if err != nil {
			return err
		}
		contacts = contacts[:0]
		for _, r := range ms.Responses {
			prop, ok := r.okProp()
			if !ok || prop.AddressData == "" {
				continue
			}
			if contact, ok := ParseContact(prop.AddressData); ok {
				contacts = append(contacts, contact)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// PutContact creates a contact resource at {addressbook}/{uid}.vcf.
func (c *Client) PutContact(ctx context.Context, addressbook string, contact Contact) error {
	target := c.addressbookHome + url.PathEscape(addressbook) + "/" + url.PathEscape(contact.UID) + ".vcf"
	payload := EncodeContact(contact)
	return c.exec.Do(ctx, "carddav PUT contact", func() error {
		_, err := c.put(ctx, c.carddavAuth, target, payload, "text/vcard")
		return err
	})
}

// Ping measures server reachability with a depth-0 PROPFIND on the
// calendar home, bypassing the retry loop.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	started := time.Now()
	_, err := c.dav(ctx, c.caldavAuth, "PROPFIND", c.calendarHome, propfindCollectionsXML, "0")
	return time.Since(started), err
}

func (c *Client) put(ctx context.Context, auth credentials, target, payload, contentType string) ([]byte, error) {
	return c.request(ctx, auth, http.MethodPut, target, payload, map[string]string{"Content-Type": contentType})
}

func (c *Client) dav(ctx context.Context, auth credentials, method, target, payload, depth string) ([]byte, error) {
	headers := map[string]string{}
	if payload != "" {
		headers["Content-Type"] = "application/xml"
	}
	if depth != "" {
		headers["Depth"] = depth
	}
	return c.request(ctx, auth, method, target, payload, headers)
}

// request performs one attempt and classifies the outcome the same way the
// task client does: 404 not_found, other 4xx upstream_rejected with the
// body kept to logs, 5xx/429 retryable.
func (c *Client) request(ctx context.Context, auth credentials, method, target, payload string, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if payload != "" {
		reqBody = strings.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(auth.username, auth.password)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dav request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		he := &retry.HTTPError{Status: resp.StatusCode, Body: clip(body, 200)}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				he.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return nil, he
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("resource not found")
	case resp.StatusCode >= 400:
		c.log.Error("dav server rejected request",
			"method", method, "url", target,
			"status", resp.StatusCode, "body", clip(body, 200))
		return nil, apperr.UpstreamRejected("DAV server rejected the request",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, clip(body, 200)))
	}
	return body, nil
}

func clip(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
