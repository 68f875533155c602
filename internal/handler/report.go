package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/classroom-reservation/internal/booking"
)

// ReportHandler serves the plain-text usage reports.  Each call computes
// the report from the current collection and exports a copy through the
// storage backend before returning it.
type ReportHandler struct {
    Store *booking.Store
}

func NewReportHandler(store *booking.Store) *ReportHandler {
    return &ReportHandler{Store: store}
}

// TopRooms handles GET /v1/reports/top-rooms: the three most reserved
// rooms by total active minutes.
func (h *ReportHandler) TopRooms(c echo.Context) error {
    return c.String(http.StatusOK, h.Store.TopRoomsReport())
}

// Occupancy handles GET /v1/reports/occupancy: total reserved minutes
// grouped by room type.
func (h *ReportHandler) Occupancy(c echo.Context) error {
    return c.String(http.StatusOK, h.Store.OccupancyReport())
}

// Distribution handles GET /v1/reports/distribution: reservation counts
// per kind, cancelled included.
func (h *ReportHandler) Distribution(c echo.Context) error {
    return c.String(http.StatusOK, h.Store.DistributionReport())
}
