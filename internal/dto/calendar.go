package dto

import (
	"time"

	"github.com/dante4567/openwebui-sub000/internal/caldav"
)

// CreateEventRequest is the JSON body for POST /events. Start and End are
// RFC3339 or naive "2006-01-02T15:04:05" (UTC).
type CreateEventRequest struct {
	Summary     string `json:"summary" binding:"required,min=1"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Calendar    string `json:"calendar_name"`
}

// UpdateEventRequest is the JSON body for PATCH /events/{uid}; only
// supplied fields change.
type UpdateEventRequest struct {
	Summary     *string `json:"summary" binding:"omitempty,min=1"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Calendar    string  `json:"calendar_name"`
}

// EventResponse renders an event in the requested display timezone. This is
// the only place times leave UTC.
type EventResponse struct {
	UID         string `json:"uid"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// EventToResponse formats ev for display in loc.
func EventToResponse(ev caldav.Event, loc *time.Location) EventResponse {
	if loc == nil {
		loc = time.UTC
	}
	return EventResponse{
		UID:         ev.UID,
		Summary:     ev.Summary,
		Start:       ev.Start.In(loc).Format(time.RFC3339),
		End:         ev.End.In(loc).Format(time.RFC3339),
		Description: ev.Description,
		Location:    ev.Location,
	}
}

// EventsToResponses formats a list for display in loc.
func EventsToResponses(events []caldav.Event, loc *time.Location) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = EventToResponse(events[i], loc)
	}
	return out
}

// ListEventsResponse is the body for GET /events.
type ListEventsResponse struct {
	Items    []EventResponse `json:"items"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Timezone string          `json:"timezone"`
	Warning  string          `json:"warning,omitempty"`
}

// CreatedResponse is the 201 body for event and contact creation, carrying
// the generated uid.
type CreatedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// CreateContactRequest is the JSON body for POST /contacts.
type CreateContactRequest struct {
	FullName     string `json:"full_name" binding:"required,min=1"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	Addressbook  string `json:"addressbook_name"`
}

// ContactResponse mirrors the original tool's contact shape.
type ContactResponse struct {
	UID          string `json:"uid"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ContactToResponse maps a parsed vCard.
func ContactToResponse(c caldav.Contact) ContactResponse {
	return ContactResponse{
		UID:          c.UID,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		Organization: c.Organization,
	}
}

// ContactsToResponses maps a list.
func ContactsToResponses(list []caldav.Contact) []ContactResponse {
	out := make([]ContactResponse, len(list))
	for i := range list {
		out[i] = ContactToResponse(list[i])
	}
	return out
}
