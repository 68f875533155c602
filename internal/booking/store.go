package booking

import (
    "fmt"
    "log"
    "sort"
    "strconv"
    "strings"
    "sync"

    "github.com/iliyamo/classroom-reservation/internal/model"
    "github.com/iliyamo/classroom-reservation/internal/storage"
)

// Store owns the room and reservation collections.  It is the single
// mutual-exclusion boundary of the system: every mutating operation
// (room register/update, reservation register/modify/cancel) holds the
// write lock across validation, commit and the write-through save, so
// the conflict scan and the subsequent insert are atomic together.
// Readers take the read lock and work against a consistent snapshot.
type Store struct {
    mu           sync.RWMutex
    rooms        []*model.Room
    reservations []*model.Reservation
    nextID       int
    storage      storage.Store
    clock        Clock
}

// NewStore loads both collections from the storage backend and builds
// the store.  Reservations whose room code cannot be resolved against
// the loaded room set are dropped with a warning; the id counter is
// seeded from the maximum numeric suffix among the surviving ids.  A
// save runs right after load so backing files that do not exist yet get
// created at startup.
func NewStore(st storage.Store, clock Clock) (*Store, error) {
    rooms, err := st.LoadRooms()
    if err != nil {
        return nil, fmt.Errorf("load rooms: %w", err)
    }
    loaded, err := st.LoadReservations()
    if err != nil {
        return nil, fmt.Errorf("load reservations: %w", err)
    }

    s := &Store{storage: st, clock: clock}
    for i := range rooms {
        r := rooms[i]
        s.rooms = append(s.rooms, &r)
    }
    for i := range loaded {
        r := loaded[i]
        if s.findRoomLocked(r.RoomCode) == nil {
            log.Printf("booking: dropping reservation %s: room %s not found", r.ID, r.RoomCode)
            continue
        }
        s.reservations = append(s.reservations, &r)
    }
    s.nextID = s.initNextID()
    s.persistLocked()
    return s, nil
}

// initNextID computes 1 + the maximum numeric suffix parsed from the
// loaded reservation ids.  Malformed ids contribute 0 so they can never
// push the counter below 1 or crash initialization.
func (s *Store) initNextID() int {
    maxID := 0
    for _, r := range s.reservations {
        if n := parseIDSuffix(r.ID); n > maxID {
            maxID = n
        }
    }
    return maxID + 1
}

// parseIDSuffix extracts the numeric part of an "R<n>" identifier,
// returning 0 when the id is malformed.
func parseIDSuffix(id string) int {
    if len(id) < 2 {
        return 0
    }
    n, err := strconv.Atoi(id[1:])
    if err != nil || n < 0 {
        return 0
    }
    return n
}

// NextID previews the identifier the next successful registration will
// receive.
func (s *Store) NextID() string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return fmt.Sprintf("R%d", s.nextID)
}

// Register validates and commits a new reservation.  The candidate's
// Kind, RoomCode, Date, Start, End, Responsible and kind payload fields
// must be populated; ID and Status are assigned here.  Validation order:
// room resolution, kind rule, conflict detection.  Ids are sequential
// and never reused, even after cancellation.
func (s *Store) Register(candidate model.Reservation) (model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    candidate.RoomCode = strings.ToUpper(strings.TrimSpace(candidate.RoomCode))
    room := s.findRoomLocked(candidate.RoomCode)
    if room == nil {
        return model.Reservation{}, fmt.Errorf("%w: %s", ErrRoomNotFound, candidate.RoomCode)
    }
    if err := checkRules(*room, candidate); err != nil {
        return model.Reservation{}, err
    }
    if err := s.checkConflictLocked(candidate.RoomCode, candidate.Date, candidate.Start, candidate.End, ""); err != nil {
        return model.Reservation{}, err
    }

    candidate.ID = fmt.Sprintf("R%d", s.nextID)
    candidate.Status = model.StatusActive
    s.nextID++
    s.reservations = append(s.reservations, &candidate)
    s.persistLocked()
    return candidate, nil
}

// Modify updates the schedule fields of an existing reservation: date,
// start, end and responsible.  The kind payload and room are untouched,
// so the kind rule is not re-run; only schedule legality is re-checked,
// excluding the reservation's own current interval from the scan.
func (s *Store) Modify(id string, date model.Date, start, end model.TimeOfDay, responsible string) (model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    r := s.findByIDLocked(id)
    if r == nil {
        return model.Reservation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
    }
    if r.Status == model.StatusCancelled {
        return model.Reservation{}, fmt.Errorf("%w: %s", ErrAlreadyCancelled, r.ID)
    }
    if err := s.checkConflictLocked(r.RoomCode, date, start, end, r.ID); err != nil {
        return model.Reservation{}, err
    }
    r.Date = date
    r.Start = start
    r.End = end
    r.Responsible = responsible
    s.persistLocked()
    return *r, nil
}

// Cancel marks a reservation cancelled.  The record stays in the
// collection permanently; it only stops participating in conflict
// scans and in the active-only reports.
func (s *Store) Cancel(id string) (model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    r := s.findByIDLocked(id)
    if r == nil {
        return model.Reservation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
    }
    if r.Status == model.StatusCancelled {
        return model.Reservation{}, fmt.Errorf("%w: %s", ErrAlreadyCancelled, r.ID)
    }
    r.Status = model.StatusCancelled
    s.persistLocked()
    return *r, nil
}

// FindByID returns the reservation with the given id, matched
// case-insensitively.
func (s *Store) FindByID(id string) (model.Reservation, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if r := s.findByIDLocked(id); r != nil {
        return *r, true
    }
    return model.Reservation{}, false
}

// FindByResponsible returns the reservations whose responsible field
// contains the given substring, case-insensitively, in storage order.
func (s *Store) FindByResponsible(substring string) []model.Reservation {
    s.mu.RLock()
    defer s.mu.RUnlock()
    needle := strings.ToLower(substring)
    out := make([]model.Reservation, 0)
    for _, r := range s.reservations {
        if strings.Contains(strings.ToLower(r.Responsible), needle) {
            out = append(out, *r)
        }
    }
    return out
}

// ListSorted returns a copy of the reservations ordered by the given
// field: "id", "date", "room" or "responsible".  Unknown fields fall
// back to id.  Date ordering uses (date, start) as a compound key so
// same-day entries are deterministic.  The sort is stable: equal keys
// keep the store's natural enumeration order, in both directions.
func (s *Store) ListSorted(field string, ascending bool) []model.Reservation {
    s.mu.RLock()
    out := make([]model.Reservation, 0, len(s.reservations))
    for _, r := range s.reservations {
        out = append(out, *r)
    }
    s.mu.RUnlock()

    var less func(a, b model.Reservation) bool
    switch strings.ToLower(field) {
    case "date":
        less = func(a, b model.Reservation) bool {
            if !a.Date.Equal(b.Date.Time) {
                return a.Date.Before(b.Date.Time)
            }
            return a.Start < b.Start
        }
    case "room":
        less = func(a, b model.Reservation) bool { return a.RoomCode < b.RoomCode }
    case "responsible":
        less = func(a, b model.Reservation) bool { return a.Responsible < b.Responsible }
    default: // "id" and anything unrecognized
        less = func(a, b model.Reservation) bool { return a.ID < b.ID }
    }
    sort.SliceStable(out, func(i, j int) bool {
        if ascending {
            return less(out[i], out[j])
        }
        return less(out[j], out[i])
    })
    return out
}

func (s *Store) findByIDLocked(id string) *model.Reservation {
    for _, r := range s.reservations {
        if strings.EqualFold(r.ID, id) {
            return r
        }
    }
    return nil
}

// persistLocked writes both collections through to storage.  Failures
// are logged and swallowed: a mutation that passed validation is
// logically committed in memory even when the save fails.  Callers must
// hold at least the read lock.
func (s *Store) persistLocked() {
    rooms := make([]model.Room, 0, len(s.rooms))
    for _, r := range s.rooms {
        rooms = append(rooms, *r)
    }
    if err := s.storage.SaveRooms(rooms); err != nil {
        log.Printf("booking: save rooms failed: %v", err)
    }
    reservations := make([]model.Reservation, 0, len(s.reservations))
    for _, r := range s.reservations {
        reservations = append(reservations, *r)
    }
    if err := s.storage.SaveReservations(reservations); err != nil {
        log.Printf("booking: save reservations failed: %v", err)
    }
}
