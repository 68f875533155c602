package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/classroom-reservation/internal/booking"
    "github.com/iliyamo/classroom-reservation/internal/model"
    "github.com/iliyamo/classroom-reservation/internal/queue"
    queue_publisher "github.com/iliyamo/classroom-reservation/internal/service"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
    Store *booking.Store
}

func NewReservationHandler(store *booking.Store) *ReservationHandler {
    return &ReservationHandler{Store: store}
}

// ----- DTOs -----

type createReservationReq struct {
    Kind        string `json:"kind"` // CLASS | EVENT | PRACTICAL
    RoomCode    string `json:"room_code"`
    Date        string `json:"date"`  // YYYY-MM-DD
    Start       string `json:"start"` // HH:MM
    End         string `json:"end"`   // HH:MM
    Responsible string `json:"responsible"`

    Subject  string `json:"subject"`  // CLASS
    Students int    `json:"students"` // CLASS

    Category  string `json:"category"`  // EVENT
    Attendees int    `json:"attendees"` // EVENT

    Description string `json:"description"` // PRACTICAL
    Equipment   int    `json:"equipment"`   // PRACTICAL
}

type modifyReservationReq struct {
    Date        string `json:"date"`
    Start       string `json:"start"`
    End         string `json:"end"`
    Responsible string `json:"responsible"`
}

// CreateReservation handles POST /v1/reservations.  The request is
// validated in three stages: the room must exist, the kind-specific
// rule must hold, and the slot must be free.  On success the new
// reservation is returned with its assigned identifier and a
// confirmation event is published to the broker.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    candidate, err := h.buildCandidate(req)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    created, err := h.Store.Register(candidate)
    if err != nil {
        return reservationError(c, err)
    }

    // Publish best-effort: a broker outage must not fail the booking.
    _ = queue_publisher.PublishReservationConfirmed(c.Request().Context(), h.eventFor(created))

    return c.JSON(http.StatusCreated, created)
}

// ModifyReservation handles PATCH /v1/reservations/:id.  Omitted fields
// keep their current value; the new slot is conflict-checked against
// every other active reservation.
func (h *ReservationHandler) ModifyReservation(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    var req modifyReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    current, ok := h.Store.FindByID(id)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }

    date := current.Date
    if s := strings.TrimSpace(req.Date); s != "" {
        var err error
        if date, err = model.ParseDate(s); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
    }
    start := current.Start
    if s := strings.TrimSpace(req.Start); s != "" {
        var err error
        if start, err = model.ParseTimeOfDay(s); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
    }
    end := current.End
    if s := strings.TrimSpace(req.End); s != "" {
        var err error
        if end, err = model.ParseTimeOfDay(s); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
    }
    responsible := current.Responsible
    if s := strings.TrimSpace(req.Responsible); s != "" {
        responsible = s
    }

    updated, err := h.Store.Modify(id, date, start, end, responsible)
    if err != nil {
        return reservationError(c, err)
    }
    return c.JSON(http.StatusOK, updated)
}

// CancelReservation handles POST /v1/reservations/:id/cancel.  The
// record is kept with a cancelled status; cancelling twice is an error.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    cancelled, err := h.Store.Cancel(id)
    if err != nil {
        return reservationError(c, err)
    }

    _ = queue_publisher.PublishReservationCancelled(c.Request().Context(), h.eventFor(cancelled))

    return c.JSON(http.StatusOK, cancelled)
}

// ListReservations handles GET /v1/reservations.  Supports ?sort=
// (id|date|room|responsible), ?order=asc|desc, and ?responsible= for a
// case-insensitive substring search over the responsible party.
func (h *ReservationHandler) ListReservations(c echo.Context) error {
    if q := strings.TrimSpace(c.QueryParam("responsible")); q != "" {
        items := h.Store.FindByResponsible(q)
        return c.JSON(http.StatusOK, echo.Map{"items": items})
    }
    field := strings.ToLower(strings.TrimSpace(c.QueryParam("sort")))
    if field == "" {
        field = "id"
    }
    switch field {
    case "id", "date", "room", "responsible":
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sort field"})
    }
    ascending := !strings.EqualFold(c.QueryParam("order"), "desc")
    items := h.Store.ListSorted(field, ascending)
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    r, ok := h.Store.FindByID(id)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }
    return c.JSON(http.StatusOK, r)
}

// buildCandidate parses and validates the request fields into a
// reservation candidate.  Domain validation (room existence, rules,
// conflicts) happens later inside the store.
func (h *ReservationHandler) buildCandidate(req createReservationReq) (model.Reservation, error) {
    var r model.Reservation

    kind, err := model.ParseReservationKind(req.Kind)
    if err != nil {
        return r, err
    }
    date, err := model.ParseDate(strings.TrimSpace(req.Date))
    if err != nil {
        return r, err
    }
    start, err := model.ParseTimeOfDay(strings.TrimSpace(req.Start))
    if err != nil {
        return r, err
    }
    end, err := model.ParseTimeOfDay(strings.TrimSpace(req.End))
    if err != nil {
        return r, err
    }
    responsible := strings.TrimSpace(req.Responsible)
    if responsible == "" {
        return r, errors.New("responsible is required")
    }

    r = model.Reservation{
        RoomCode:    strings.TrimSpace(req.RoomCode),
        Date:        date,
        Start:       start,
        End:         end,
        Responsible: responsible,
        Kind:        kind,
    }
    switch kind {
    case model.KindClass:
        r.Subject = strings.TrimSpace(req.Subject)
        r.Students = req.Students
    case model.KindEvent:
        category, err := model.ParseEventCategory(req.Category)
        if err != nil {
            return r, err
        }
        r.Category = category
        r.Attendees = req.Attendees
    case model.KindPractical:
        r.Description = strings.TrimSpace(req.Description)
        r.Equipment = req.Equipment
    }
    return r, nil
}

// eventFor builds the broker payload for a reservation.
func (h *ReservationHandler) eventFor(r model.Reservation) queue.ReservationEvent {
    roomName := ""
    if room, ok := h.Store.FindRoom(r.RoomCode); ok {
        roomName = room.Name
    }
    return queue.ReservationEvent{
        ReservationID: r.ID,
        Kind:          string(r.Kind),
        RoomCode:      r.RoomCode,
        RoomName:      roomName,
        Date:          r.Date.String(),
        Start:         r.Start.String(),
        End:           r.End.String(),
        Responsible:   r.Responsible,
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    }
}

// reservationError maps domain sentinels onto HTTP responses.
func reservationError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, booking.ErrRoomNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, booking.ErrRuleViolation):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    case errors.Is(err, booking.ErrScheduleConflict), errors.Is(err, booking.ErrAlreadyCancelled):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, booking.ErrTimeOrderInvalid), errors.Is(err, booking.ErrPastDate):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
