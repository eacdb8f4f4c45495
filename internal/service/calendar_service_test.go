package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/cache"
	"github.com/dante4567/openwebui-sub000/internal/caldav"
	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/retry"
)

// davStub is a single-calendar, single-addressbook DAV server for service
// tests. It counts REPORTs and PUTs so cache and invariant behavior can be
// asserted from the outside.
type davStub struct {
	mu       sync.Mutex
	events   map[string]string
	contacts map[string]string

	reportCalls atomic.Int32
	putCalls    atomic.Int32
}

func newDAVStub() *davStub {
	return &davStub{events: map[string]string{}, contacts: map[string]string{}}
}

func (d *davStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case r.Method == "PROPFIND" && strings.Contains(r.URL.Path, "/calendars/"):
		writeMultistatus(w, `<d:response>
  <d:href>/remote.php/dav/calendars/u/personal/</d:href>
  <d:propstat>
    <d:prop><d:displayname>Personal</d:displayname>
      <d:resourcetype><d:collection/><cal:calendar/></d:resourcetype></d:prop>
    <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
</d:response>`)
	case r.Method == "PROPFIND" && strings.Contains(r.URL.Path, "/addressbooks/"):
		writeMultistatus(w, `<d:response>
  <d:href>/remote.php/dav/addressbooks/users/u/contacts/</d:href>
  <d:propstat>
    <d:prop><d:displayname>Contacts</d:displayname>
      <d:resourcetype><d:collection/><card:addressbook/></d:resourcetype></d:prop>
    <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
</d:response>`)
	case r.Method == "REPORT" && strings.Contains(r.URL.Path, "/calendars/"):
		d.reportCalls.Add(1)
		var sb strings.Builder
		for uid, ics := range d.events {
			fmt.Fprintf(&sb, `<d:response>
  <d:href>/remote.php/dav/calendars/u/personal/%s.ics</d:href>
  <d:propstat>
    <d:prop><cal:calendar-data>%s</cal:calendar-data></d:prop>
    <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
</d:response>`, uid, strings.ReplaceAll(ics, "<", "&lt;"))
		}
		writeMultistatus(w, sb.String())
	case r.Method == "REPORT" && strings.Contains(r.URL.Path, "/addressbooks/"):
		d.reportCalls.Add(1)
		var sb strings.Builder
		for uid, vcf := range d.contacts {
			fmt.Fprintf(&sb, `<d:response>
  <d:href>/remote.php/dav/addressbooks/users/u/contacts/%s.vcf</d:href>
  <d:propstat>
    <d:prop><card:address-data>%s</card:address-data></d:prop>
    <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
</d:response>`, uid, strings.ReplaceAll(vcf, "<", "&lt;"))
		}
		writeMultistatus(w, sb.String())
	case r.Method == http.MethodPut:
		d.putCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		uid := strings.TrimSuffix(strings.TrimSuffix(lastSegment(r.URL.Path), ".ics"), ".vcf")
		if strings.HasSuffix(r.URL.Path, ".vcf") {
			d.contacts[uid] = string(body)
		} else {
			d.events[uid] = string(body)
		}
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, ".ics"):
		uid := strings.TrimSuffix(lastSegment(r.URL.Path), ".ics")
		ics, ok := d.events[uid]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(ics))
	case r.Method == http.MethodDelete:
		uid := strings.TrimSuffix(lastSegment(r.URL.Path), ".ics")
		delete(d.events, uid)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeMultistatus(w http.ResponseWriter, inner string) {
	w.WriteHeader(http.StatusMultiStatus)
	fmt.Fprintf(w, `<?xml version="1.0"?>
<d:multistatus xmlns:d="DAV:" xmlns:cal="urn:ietf:params:xml:ns:caldav" xmlns:card="urn:ietf:params:xml:ns:carddav">%s</d:multistatus>`, inner)
}

func lastSegment(p string) string {
	parts := strings.Split(p, "/")
	return parts[len(parts)-1]
}

func newCalendarService(t *testing.T) (*CalendarService, *davStub) {
	t.Helper()
	stub := newDAVStub()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	exec := retry.New(nil)
	exec.SetSleep(func(context.Context, time.Duration) error { return nil })
	client, err := caldav.NewClient(config.CalDAVConfig{
		URL: srv.URL, Username: "u", Password: "p",
		CardDAVURL: srv.URL, CardDAVUsername: "u", CardDAVPassword: "p",
	}, exec, nil)
	require.NoError(t, err)

	manager := cache.NewManager(cache.NewMemoryStore(), time.Minute, nil)
	svc := NewCalendarService(client, manager, nil)
	svc.SetClock(func() time.Time { return time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC) })
	return svc, stub
}

func TestListEventsDefaultWindow(t *testing.T) {
	svc, _ := newCalendarService(t)

	_, dq, err := svc.ListEvents(context.Background(), EventQuery{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), dq.StartUTC)
	assert.Equal(t, time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC), dq.EndUTC,
		"no range parameters means a thirty day window from today")
}

func TestListEventsCachedWithinTTL(t *testing.T) {
	svc, stub := newCalendarService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, EventInput{
		Summary: "Standup", Start: "2025-10-21T09:00:00Z", End: "2025-10-21T09:15:00Z",
	})
	require.NoError(t, err)

	q := EventQuery{Start: "today", DaysAhead: 7, UseCache: true}
	first, _, err := svc.ListEvents(ctx, q)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, _, err := svc.ListEvents(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), stub.reportCalls.Load(),
		"second identical read within the TTL must come from cache")
}

func TestListEventsSortedAndLimited(t *testing.T) {
	svc, _ := newCalendarService(t)
	ctx := context.Background()

	for i, start := range []string{"2025-10-23T09:00:00Z", "2025-10-21T09:00:00Z", "2025-10-22T09:00:00Z"} {
		_, err := svc.CreateEvent(ctx, EventInput{
			Summary: fmt.Sprintf("ev%d", i), Start: start,
			End: strings.Replace(start, "09:", "10:", 1),
		})
		require.NoError(t, err)
	}

	events, _, err := svc.ListEvents(ctx, EventQuery{Start: "today", DaysAhead: 7, Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Start.Before(events[1].Start), "events are sorted by start time")
	assert.Equal(t, "ev1", events[0].Summary)
}

func TestCreateEventValidation(t *testing.T) {
	svc, stub := newCalendarService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, EventInput{Summary: " ", Start: "2025-10-21T09:00:00Z", End: "2025-10-21T10:00:00Z"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateEvent(ctx, EventInput{Summary: "x", Start: "not a time", End: "2025-10-21T10:00:00Z"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateEvent(ctx, EventInput{Summary: "x", Start: "2025-10-21T10:00:00Z", End: "2025-10-21T09:00:00Z"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Equal(t, int32(0), stub.putCalls.Load(), "invalid events must never be written upstream")
}

func TestCreateEventAssignsUID(t *testing.T) {
	svc, _ := newCalendarService(t)

	ev, err := svc.CreateEvent(context.Background(), EventInput{
		Summary: "Review", Start: "2025-10-21T09:00:00Z", End: "2025-10-21T10:00:00Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.UID)
}

func TestUpdateEventInvariantBlocksWrite(t *testing.T) {
	svc, stub := newCalendarService(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, EventInput{
		Summary: "Review", Start: "2025-10-21T09:00:00Z", End: "2025-10-21T10:00:00Z",
	})
	require.NoError(t, err)
	putsAfterCreate := stub.putCalls.Load()

	badEnd := "2025-10-21T08:00:00Z"
	_, err = svc.UpdateEvent(ctx, ev.UID, EventPatch{End: &badEnd})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, putsAfterCreate, stub.putCalls.Load(),
		"a violated invariant must not reach upstream")
}

func TestUpdateEventMergesPatch(t *testing.T) {
	svc, _ := newCalendarService(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, EventInput{
		Summary: "Review", Location: "Room 1",
		Start: "2025-10-21T09:00:00Z", End: "2025-10-21T10:00:00Z",
	})
	require.NoError(t, err)

	summary := "Design review"
	updated, err := svc.UpdateEvent(ctx, ev.UID, EventPatch{Summary: &summary})
	require.NoError(t, err)
	assert.Equal(t, "Design review", updated.Summary)
	assert.Equal(t, "Room 1", updated.Location, "untouched fields survive the patch")
	assert.Equal(t, ev.Start, updated.Start)
}

func TestDeleteEventInvalidatesCache(t *testing.T) {
	svc, stub := newCalendarService(t)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, EventInput{
		Summary: "Gone soon", Start: "2025-10-21T09:00:00Z", End: "2025-10-21T10:00:00Z",
	})
	require.NoError(t, err)

	q := EventQuery{Start: "today", DaysAhead: 7, UseCache: true}
	events, _, err := svc.ListEvents(ctx, q)
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, svc.DeleteEvent(ctx, "", ev.UID))

	events, _, err = svc.ListEvents(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int32(2), stub.reportCalls.Load())
}

func TestContactsDefaultAddressbook(t *testing.T) {
	svc, stub := newCalendarService(t)
	ctx := context.Background()

	created, err := svc.CreateContact(ctx, ContactInput{FullName: "Ada Lovelace", Email: "ada@example.org"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Contains(t, stub.contacts, created.UID)

	contacts, err := svc.Contacts(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada Lovelace", contacts[0].FullName)
}

func TestCreateContactRequiresName(t *testing.T) {
	svc, stub := newCalendarService(t)

	_, err := svc.CreateContact(context.Background(), ContactInput{FullName: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, int32(0), stub.putCalls.Load())
}

func TestCalendarsListed(t *testing.T) {
	svc, _ := newCalendarService(t)

	cals, err := svc.Calendars(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, cals, 1)
	assert.Equal(t, "Personal", cals[0].Name)
}
