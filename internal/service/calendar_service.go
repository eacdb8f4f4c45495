package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
	"github.com/dante4567/openwebui-sub000/internal/cache"
	"github.com/dante4567/openwebui-sub000/internal/caldav"
	"github.com/dante4567/openwebui-sub000/internal/dates"

	"github.com/google/uuid"
)

const (
	eventCachePrefix    = "events:"
	calendarCachePrefix = "calendars:"
	contactCachePrefix  = "contacts:"

	// DefaultDaysAhead is the window applied when a list request names no
	// range at all.
	DefaultDaysAhead = 30

	defaultAddressbook = "contacts"
)

// CalendarService exposes calendar and contact operations over the CalDAV
// server. Date expressions are resolved before the cache key is computed,
// so "today" and the equivalent absolute date share one entry.
type CalendarService struct {
	client *caldav.Client
	cache  *cache.Manager
	log    *slog.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(client *caldav.Client, c *cache.Manager, log *slog.Logger) *CalendarService {
	if log == nil {
		log = slog.Default()
	}
	return &CalendarService{client: client, cache: c, log: log, now: time.Now}
}

// SetClock overrides the time source used for relative dates. Test hook.
func (s *CalendarService) SetClock(now func() time.Time) { s.now = now }

// EventQuery is the raw list request before date resolution.
type EventQuery struct {
	Start     string
	End       string
	DaysAhead int
	Timezone  string
	Calendar  string
	Limit     int
	UseCache  bool
}

// ListEvents resolves the date range, then serves from cache or upstream.
// The returned Query carries the resolved UTC range and any timezone
// warning for the response layer.
func (s *CalendarService) ListEvents(ctx context.Context, q EventQuery) ([]caldav.Event, dates.Query, error) {
	daysAhead := q.DaysAhead
	if q.Start == "" && q.End == "" && daysAhead == 0 {
		daysAhead = DefaultDaysAhead
	}
	dq, err := dates.Resolve(q.Start, q.End, daysAhead, q.Timezone, s.now())
	if err != nil {
		return nil, dates.Query{}, err
	}
	limit, err := normalizeLimit(q.Limit)
	if err != nil {
		return nil, dates.Query{}, err
	}

	// The key uses the resolved UTC range, not the display timezone: the
	// same logical window shares one entry regardless of how it is shown.
	key := cache.Key(eventCachePrefix+"list", map[string]string{
		"calendar": q.Calendar,
		"start":    dq.StartUTC.Format(time.RFC3339),
		"end":      dq.EndUTC.Format(time.RFC3339),
		"limit":    strconv.Itoa(limit),
	})
	var events []caldav.Event
	if q.UseCache && s.cache.GetJSON(ctx, key, &events) {
		return events, dq, nil
	}

	events, err = s.client.ListEvents(ctx, q.Calendar, dq.StartUTC, dq.EndUTC)
	if err != nil {
		return nil, dates.Query{}, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	if len(events) > limit {
		events = events[:limit]
	}
	if events == nil {
		events = []caldav.Event{}
	}

	if q.UseCache {
		s.cache.SetJSON(ctx, key, events)
	}
	return events, dq, nil
}

// EventInput is the create payload. Start and End accept RFC3339 or a
// naive "2006-01-02T15:04:05" (treated as UTC).
type EventInput struct {
	Summary     string
	Start       string
	End         string
	Description string
	Location    string
	Calendar    string
}

// CreateEvent validates the invariant start < end, generates the uid, and
// writes the event upstream before invalidating cached event lists.
func (s *CalendarService) CreateEvent(ctx context.Context, in EventInput) (caldav.Event, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return caldav.Event{}, apperr.Validation("summary is required")
	}
	start, err := parseEventTime(in.Start)
	if err != nil {
		return caldav.Event{}, apperr.Validation("start: %v", err)
	}
	end, err := parseEventTime(in.End)
	if err != nil {
		return caldav.Event{}, apperr.Validation("end: %v", err)
	}
	if !end.After(start) {
		return caldav.Event{}, apperr.Validation("end must be after start")
	}

	ev := caldav.Event{
		UID:         uuid.NewString(),
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start:       start,
		End:         end,
	}
	if err := s.client.PutEvent(ctx, in.Calendar, ev); err != nil {
		return caldav.Event{}, err
	}
	s.cache.InvalidatePrefix(ctx, eventCachePrefix)
	return ev, nil
}

// EventPatch is a partial update; nil fields are left unchanged.
type EventPatch struct {
	Summary     *string
	Start       *string
	End         *string
	Description *string
	Location    *string
	Calendar    string
}

// UpdateEvent reads the stored event, merges the patch, re-validates
// start < end, and writes it back. An invariant violation performs no
// upstream write.
func (s *CalendarService) UpdateEvent(ctx context.Context, uid string, patch EventPatch) (caldav.Event, error) {
	ev, err := s.client.GetEvent(ctx, patch.Calendar, uid)
	if err != nil {
		return caldav.Event{}, err
	}
	if patch.Summary != nil {
		ev.Summary = *patch.Summary
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}
	if patch.Start != nil {
		t, err := parseEventTime(*patch.Start)
		if err != nil {
			return caldav.Event{}, apperr.Validation("start: %v", err)
		}
		ev.Start = t
	}
	if patch.End != nil {
		t, err := parseEventTime(*patch.End)
		if err != nil {
			return caldav.Event{}, apperr.Validation("end: %v", err)
		}
		ev.End = t
	}
	if !ev.End.After(ev.Start) {
		return caldav.Event{}, apperr.Validation("end must be after start")
	}

	if err := s.client.PutEvent(ctx, patch.Calendar, ev); err != nil {
		return caldav.Event{}, err
	}
	s.cache.InvalidatePrefix(ctx, eventCachePrefix)
	return ev, nil
}

// DeleteEvent removes an event and invalidates cached lists.
func (s *CalendarService) DeleteEvent(ctx context.Context, calendar, uid string) error {
	if err := s.client.DeleteEvent(ctx, calendar, uid); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, eventCachePrefix)
	return nil
}

// Calendars lists the account's calendars.
func (s *CalendarService) Calendars(ctx context.Context, useCache bool) ([]caldav.Calendar, error) {
	key := calendarCachePrefix + "list"
	var cals []caldav.Calendar
	if useCache && s.cache.GetJSON(ctx, key, &cals) {
		return cals, nil
	}
	cals, err := s.client.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}
	if cals == nil {
		cals = []caldav.Calendar{}
	}
	if useCache {
		s.cache.SetJSON(ctx, key, cals)
	}
	return cals, nil
}

// Addressbooks lists the account's addressbooks.
func (s *CalendarService) Addressbooks(ctx context.Context, useCache bool) ([]caldav.Addressbook, error) {
	key := contactCachePrefix + "books"
	var books []caldav.Addressbook
	if useCache && s.cache.GetJSON(ctx, key, &books) {
		return books, nil
	}
	books, err := s.client.ListAddressbooks(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []caldav.Addressbook{}
	}
	if useCache {
		s.cache.SetJSON(ctx, key, books)
	}
	return books, nil
}

// Contacts lists an addressbook ("contacts" by default).
func (s *CalendarService) Contacts(ctx context.Context, addressbook string, useCache bool) ([]caldav.Contact, error) {
	if addressbook == "" {
		addressbook = defaultAddressbook
	}
	key := cache.Key(contactCachePrefix+"list", map[string]string{"addressbook": addressbook})
	var contacts []caldav.Contact
	if useCache && s.cache.GetJSON(ctx, key, &contacts) {
		return contacts, nil
	}
	contacts, err := s.client.ListContacts(ctx, addressbook)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []caldav.Contact{}
	}
	if useCache {
		s.cache.SetJSON(ctx, key, contacts)
	}
	return contacts, nil
}

// ContactInput is the contact create payload.
type ContactInput struct {
	FullName     string
	Email        string
	Phone        string
	Organization string
	Addressbook  string
}

// CreateContact writes a new vCard and invalidates cached contact lists.
func (s *CalendarService) CreateContact(ctx context.Context, in ContactInput) (caldav.Contact, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return caldav.Contact{}, apperr.Validation("full_name is required")
	}
	book := in.Addressbook
	if book == "" {
		book = defaultAddressbook
	}
	contact := caldav.Contact{
		UID:          uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Organization: in.Organization,
	}
	if err := s.client.PutContact(ctx, book, contact); err != nil {
		return caldav.Contact{}, err
	}
	s.cache.InvalidatePrefix(ctx, contactCachePrefix)
	return contact, nil
}

// parseEventTime accepts RFC3339 ("2026-03-01T10:00:00Z",
// "2026-03-01T10:00:00+01:00") and the naive form without offset, which is
// treated as UTC. Always returns UTC.
func parseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("use RFC3339 or YYYY-MM-DDTHH:MM:SS, got %q", s)
}
