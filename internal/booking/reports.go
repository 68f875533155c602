package booking

import (
    "fmt"
    "log"
    "strings"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// Report names double as export file names on the file backend and as
// primary keys on the SQL backend.
const (
    ReportTopRooms     = "top_rooms_report.txt"
    ReportOccupancy    = "occupancy_by_type_report.txt"
    ReportDistribution = "distribution_by_kind_report.txt"
)

// TopRoomsReport sums reserved minutes of active reservations per room
// (grouped by code and name) and reports the top three, descending by
// total minutes.  Ties keep the order rooms first appeared in the
// collection.  The text is exported through the storage boundary; an
// export failure is logged and the text is still returned.
func (s *Store) TopRoomsReport() string {
    s.mu.RLock()
    type group struct {
        label   string
        minutes int
    }
    groups := make([]*group, 0)
    index := make(map[string]*group)
    for _, r := range s.reservations {
        if r.Status != model.StatusActive {
            continue
        }
        label := r.RoomCode
        if room := s.findRoomLocked(r.RoomCode); room != nil {
            label = room.Code + " - " + room.Name
        }
        g, ok := index[label]
        if !ok {
            g = &group{label: label}
            index[label] = g
            groups = append(groups, g)
        }
        g.minutes += r.Minutes()
    }
    s.mu.RUnlock()

    // Stable selection sort of the top three keeps first-appearance
    // order among equal totals.
    for i := 0; i < len(groups) && i < 3; i++ {
        best := i
        for j := i + 1; j < len(groups); j++ {
            if groups[j].minutes > groups[best].minutes {
                best = j
            }
        }
        g := groups[best]
        copy(groups[i+1:best+1], groups[i:best])
        groups[i] = g
    }
    if len(groups) > 3 {
        groups = groups[:3]
    }

    var b strings.Builder
    b.WriteString("=== Top 3 Rooms by Reserved Hours (Active) ===")
    if len(groups) == 0 {
        b.WriteString("\nNo active reservations.")
    }
    for _, g := range groups {
        fmt.Fprintf(&b, "\n- %s: %d hours (total min: %d)", g.label, g.minutes/60, g.minutes)
    }
    return s.export(ReportTopRooms, b.String())
}

// OccupancyReport sums reserved minutes of active reservations grouped
// by room type.  Every type with at least one active reservation is
// reported; there is no truncation.
func (s *Store) OccupancyReport() string {
    s.mu.RLock()
    minutes := make(map[model.RoomType]int)
    for _, r := range s.reservations {
        if r.Status != model.StatusActive {
            continue
        }
        room := s.findRoomLocked(r.RoomCode)
        if room == nil {
            continue
        }
        minutes[room.Type] += r.Minutes()
    }
    s.mu.RUnlock()

    var b strings.Builder
    b.WriteString("=== Room Occupancy by Type (Active) ===")
    if len(minutes) == 0 {
        b.WriteString("\nNo active reservations.")
    }
    for _, t := range []model.RoomType{model.RoomTheoretical, model.RoomLaboratory, model.RoomAuditorium} {
        if m, ok := minutes[t]; ok {
            fmt.Fprintf(&b, "\n- Type %s: %d hours (total min: %d)", t, m/60, m)
        }
    }
    return s.export(ReportOccupancy, b.String())
}

// DistributionReport counts reservations per kind.  Unlike the other two
// reports it is not filtered by status: cancelled reservations count.
func (s *Store) DistributionReport() string {
    s.mu.RLock()
    counts := make(map[model.ReservationKind]int)
    total := len(s.reservations)
    for _, r := range s.reservations {
        counts[r.Kind]++
    }
    s.mu.RUnlock()

    var b strings.Builder
    b.WriteString("=== Reservation Count by Kind ===")
    if total == 0 {
        b.WriteString("\nNo reservations recorded.")
    }
    for _, k := range []model.ReservationKind{model.KindClass, model.KindEvent, model.KindPractical} {
        if n, ok := counts[k]; ok {
            fmt.Fprintf(&b, "\n- %s: %d", k, n)
        }
    }
    return s.export(ReportDistribution, b.String())
}

// export hands the report to the storage boundary.  Export failure is
// not fatal to report generation: the text still goes back to the
// caller.
func (s *Store) export(name, body string) string {
    if err := s.storage.ExportReport(name, body); err != nil {
        log.Printf("booking: export report %s failed: %v", name, err)
    }
    return body
}
