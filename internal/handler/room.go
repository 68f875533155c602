package handler // handler package contains room management handlers

import (
    "errors"   // errors.Is for sentinel comparisons
    "net/http" // http provides status code constants
    "strings"  // strings offers trimming utilities

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/classroom-reservation/internal/booking" // booking holds the in-memory reservation core
    "github.com/iliyamo/classroom-reservation/internal/model"   // model defines rooms and reservations
)

// RoomHandler exposes the room registry over HTTP.
type RoomHandler struct {
    Store *booking.Store
}

func NewRoomHandler(store *booking.Store) *RoomHandler {
    return &RoomHandler{Store: store}
}

// CreateRoom handles POST /v1/rooms and registers a new room.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
    var body struct { // anonymous struct to bind incoming JSON
        Code     string `json:"code"`     // unique room code, e.g. "A101"
        Name     string `json:"name"`     // display name
        Capacity int    `json:"capacity"` // seat capacity, must be positive
        Type     string `json:"type"`     // THEORETICAL | LABORATORY | AUDITORIUM
    }
    if err := c.Bind(&body); err != nil { // attempt to bind the request body into the struct
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    code := strings.TrimSpace(body.Code)
    if code == "" { // code is mandatory
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "code is required"})
    }
    roomType, err := model.ParseRoomType(body.Type) // validate the room type string
    if err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
    }
    room, err := h.Store.RegisterRoom(code, strings.TrimSpace(body.Name), body.Capacity, roomType)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrDuplicateCode): // code already registered
            return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
        case errors.Is(err, booking.ErrInvalidCapacity): // capacity must be > 0
            return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create room"})
    }
    return c.JSON(http.StatusCreated, room) // return 201 and the created room on success
}

// UpdateRoom handles PUT /v1/rooms/:code and updates name, capacity and
// type of an existing room.  The code itself is immutable.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
    code := strings.TrimSpace(c.Param("code")) // room code from the URL
    if code == "" {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "code is required"})
    }
    var body struct {
        Name     string `json:"name"`
        Capacity int    `json:"capacity"`
        Type     string `json:"type"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    roomType, err := model.ParseRoomType(body.Type)
    if err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
    }
    room, err := h.Store.UpdateRoom(code, strings.TrimSpace(body.Name), body.Capacity, roomType)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrRoomNotFound): // unknown room code
            return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
        case errors.Is(err, booking.ErrInvalidCapacity):
            return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, room) // return the updated room with OK status
}

// ListRooms handles GET /v1/rooms and returns all registered rooms in
// registration order.
func (h *RoomHandler) ListRooms(c echo.Context) error {
    items := h.Store.Rooms()
    return c.JSON(http.StatusOK, map[string]any{"items": items}) // return the list wrapped in a JSON object
}

// GetRoom handles GET /v1/rooms/:code and returns a single room.
func (h *RoomHandler) GetRoom(c echo.Context) error {
    code := strings.TrimSpace(c.Param("code"))
    room, ok := h.Store.FindRoom(code)
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "room not found"})
    }
    return c.JSON(http.StatusOK, room)
}
