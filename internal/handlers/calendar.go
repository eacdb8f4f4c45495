package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dante4567/openwebui-sub000/internal/dto"
	"github.com/dante4567/openwebui-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CalendarHandler serves the calendar/contact tool routes.
type CalendarHandler struct {
	svc *service.CalendarService
	log *slog.Logger
}

// NewCalendarHandler returns a new CalendarHandler.
func NewCalendarHandler(svc *service.CalendarService, log *slog.Logger) *CalendarHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CalendarHandler{svc: svc, log: log}
}

// Calendars godoc
// @Summary      List calendars
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        use_cache  query  bool  false  "Serve from cache (default true)"
// @Success      200  {array}  caldav.Calendar
// @Router       /calendars [get]
func (h *CalendarHandler) Calendars(c *gin.Context) {
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	cals, err := h.svc.Calendars(requestContext(c), useCache)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cals)
}

// ListEvents godoc
// @Summary      List events in a date range
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        start_date     query  string  false  "YYYY-MM-DD, RFC3339, today, tomorrow, yesterday, next week, last week"
// @Param        end_date       query  string  false  "Range end (its day is excluded)"
// @Param        days_ahead     query  int     false  "Days from start (1-365)"
// @Param        timezone       query  string  false  "IANA timezone for resolution and display"
// @Param        calendar_name  query  string  false  "Calendar (default: first)"
// @Param        limit          query  int     false  "Max results (1-500, default 50)"
// @Param        use_cache      query  bool    false  "Serve from cache (default true)"
// @Success      200  {object}  dto.ListEventsResponse
// @Failure      400  {object}  apperr.Body
// @Router       /events [get]
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	daysAhead, err := queryInt(c, "days_ahead")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	events, dq, err := h.svc.ListEvents(requestContext(c), service.EventQuery{
		Start:     c.Query("start_date"),
		End:       c.Query("end_date"),
		DaysAhead: daysAhead,
		Timezone:  c.Query("timezone"),
		Calendar:  c.Query("calendar_name"),
		Limit:     limit,
		UseCache:  useCache,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListEventsResponse{
		Items:    dto.EventsToResponses(events, dq.Location),
		Start:    dq.StartUTC.In(dq.Location).Format("2006-01-02T15:04:05Z07:00"),
		End:      dq.EndUTC.In(dq.Location).Format("2006-01-02T15:04:05Z07:00"),
		Timezone: dq.Timezone,
		Warning:  dq.Warning,
	})
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateEventRequest  true  "Event body"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  apperr.Body
// @Router       /events [post]
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	ev, err := h.svc.CreateEvent(requestContext(c), service.EventInput{
		Summary:     req.Summary,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
		Location:    req.Location,
		Calendar:    req.Calendar,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Status:  "success",
		Message: "Event created",
		UID:     ev.UID,
	})
}

// UpdateEvent godoc
// @Summary      Update an event
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path      string  true  "Event UID"
// @Param        body  body      dto.UpdateEventRequest  true  "Fields to change"
// @Success      200   {object}  dto.EventResponse
// @Failure      400   {object}  apperr.Body
// @Failure      404   {object}  apperr.Body
// @Router       /events/{uid} [patch]
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	ev, err := h.svc.UpdateEvent(requestContext(c), c.Param("uid"), service.EventPatch{
		Summary:     req.Summary,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
		Location:    req.Location,
		Calendar:    req.Calendar,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.EventToResponse(ev, nil))
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path  string  true  "Event UID"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  apperr.Body
// @Router       /events/{uid} [delete]
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	uid := c.Param("uid")
	if err := h.svc.DeleteEvent(requestContext(c), c.Query("calendar_name"), uid); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success", Message: "Event " + uid + " deleted"})
}

// Addressbooks godoc
// @Summary      List addressbooks
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        use_cache  query  bool  false  "Serve from cache (default true)"
// @Success      200  {array}  caldav.Addressbook
// @Router       /addressbooks [get]
func (h *CalendarHandler) Addressbooks(c *gin.Context) {
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	books, err := h.svc.Addressbooks(requestContext(c), useCache)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Contacts godoc
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        addressbook_name  query  string  false  "Addressbook (default: contacts)"
// @Param        use_cache         query  bool    false  "Serve from cache (default true)"
// @Success      200  {array}  dto.ContactResponse
// @Router       /contacts [get]
func (h *CalendarHandler) Contacts(c *gin.Context) {
	useCache, err := queryBool(c, "use_cache", true)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	contacts, err := h.svc.Contacts(requestContext(c), c.Query("addressbook_name"), useCache)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContactsToResponses(contacts))
}

// CreateContact godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateContactRequest  true  "Contact body"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  apperr.Body
// @Router       /contacts [post]
func (h *CalendarHandler) CreateContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}
	contact, err := h.svc.CreateContact(requestContext(c), service.ContactInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Addressbook:  req.Addressbook,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Status:  "success",
		Message: "Contact created",
		UID:     contact.UID,
	})
}
