package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// memStorage is an in-memory storage.Store used across the package
// tests.  It records everything saved through it so write-through
// behavior can be asserted.
type memStorage struct {
    rooms        []model.Room
    reservations []model.Reservation
    savedRooms   [][]model.Room
    savedResvs   [][]model.Reservation
    exports      map[string]string
}

func (m *memStorage) LoadRooms() ([]model.Room, error)               { return m.rooms, nil }
func (m *memStorage) LoadReservations() ([]model.Reservation, error) { return m.reservations, nil }

func (m *memStorage) SaveRooms(rooms []model.Room) error {
    m.savedRooms = append(m.savedRooms, rooms)
    return nil
}

func (m *memStorage) SaveReservations(rs []model.Reservation) error {
    m.savedResvs = append(m.savedResvs, rs)
    return nil
}

func (m *memStorage) ExportReport(name, body string) error {
    if m.exports == nil {
        m.exports = map[string]string{}
    }
    m.exports[name] = body
    return nil
}

// fixedClock pins "today" so past-date checks are deterministic.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// today is the fixed current day used by every test in this package.
var today = time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *memStorage) {
    t.Helper()
    st := &memStorage{}
    s, err := NewStore(st, fixedClock{today})
    require.NoError(t, err)

    _, err = s.RegisterRoom("A101", "Main Lecture Hall", 40, model.RoomTheoretical)
    require.NoError(t, err)
    _, err = s.RegisterRoom("L201", "Chemistry Lab", 25, model.RoomLaboratory)
    require.NoError(t, err)
    _, err = s.RegisterRoom("AUD1", "Grand Auditorium", 300, model.RoomAuditorium)
    require.NoError(t, err)
    return s, st
}

func mustDate(t *testing.T, s string) model.Date {
    t.Helper()
    d, err := model.ParseDate(s)
    require.NoError(t, err)
    return d
}

func mustTime(t *testing.T, s string) model.TimeOfDay {
    t.Helper()
    tod, err := model.ParseTimeOfDay(s)
    require.NoError(t, err)
    return tod
}

func classReservation(t *testing.T, room, date, start, end, responsible string, students int) model.Reservation {
    t.Helper()
    return model.Reservation{
        RoomCode:    room,
        Date:        mustDate(t, date),
        Start:       mustTime(t, start),
        End:         mustTime(t, end),
        Responsible: responsible,
        Kind:        model.KindClass,
        Subject:     "Algorithms",
        Students:    students,
    }
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
    s, _ := newTestStore(t)

    first, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)
    second, err := s.Register(classReservation(t, "L201", "2026-03-10", "08:00", "10:00", "Prof. Souza", 20))
    require.NoError(t, err)

    assert.Equal(t, "R1", first.ID)
    assert.Equal(t, "R2", second.ID)
    assert.Equal(t, model.StatusActive, first.Status)
    assert.Equal(t, model.StatusActive, second.Status)
}

func TestRegisterUnknownRoom(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "NOPE", "2026-03-10", "08:00", "10:00", "Prof. Silva", 10))
    assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegisterRejectsOverlap(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    // Overlapping interval on the same room and date.
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "09:00", "11:00", "Prof. Souza", 10))
    assert.ErrorIs(t, err, ErrScheduleConflict)

    // Same interval on a different room is fine.
    _, err = s.Register(classReservation(t, "L201", "2026-03-10", "09:00", "11:00", "Prof. Souza", 10))
    assert.NoError(t, err)

    // Same room and interval on a different date is fine.
    _, err = s.Register(classReservation(t, "A101", "2026-03-11", "09:00", "11:00", "Prof. Souza", 10))
    assert.NoError(t, err)
}

func TestRegisterBackToBackIsNotAConflict(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    // [10:00,12:00) starts exactly where [08:00,10:00) ends.
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "10:00", "12:00", "Prof. Souza", 10))
    assert.NoError(t, err)
}

func TestRegisterRejectsInvalidInterval(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "A101", "2026-03-10", "10:00", "08:00", "Prof. Silva", 10))
    assert.ErrorIs(t, err, ErrTimeOrderInvalid)

    // Zero-length intervals are rejected too.
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "10:00", "10:00", "Prof. Silva", 10))
    assert.ErrorIs(t, err, ErrTimeOrderInvalid)
}

func TestRegisterRejectsPastDate(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "A101", "2026-02-28", "08:00", "10:00", "Prof. Silva", 10))
    assert.ErrorIs(t, err, ErrPastDate)

    // The clock's current day itself is allowed regardless of the hour.
    _, err = s.Register(classReservation(t, "A101", "2026-03-01", "08:00", "10:00", "Prof. Silva", 10))
    assert.NoError(t, err)
}

func TestCancelledReservationFreesTheSlot(t *testing.T) {
    s, _ := newTestStore(t)

    first, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    _, err = s.Cancel(first.ID)
    require.NoError(t, err)

    replacement, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Souza", 10))
    require.NoError(t, err)
    // Ids keep growing; cancelled ids are never reused.
    assert.Equal(t, "R2", replacement.ID)

    got, ok := s.FindByID(first.ID)
    require.True(t, ok)
    assert.Equal(t, model.StatusCancelled, got.Status)
}

func TestCancelTwiceFails(t *testing.T) {
    s, _ := newTestStore(t)

    r, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    _, err = s.Cancel(r.ID)
    require.NoError(t, err)
    _, err = s.Cancel(r.ID)
    assert.ErrorIs(t, err, ErrAlreadyCancelled)

    _, err = s.Cancel("R999")
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestModifyExcludesOwnInterval(t *testing.T) {
    s, _ := newTestStore(t)

    r, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    // Shifting within the reservation's own slot must not self-conflict.
    updated, err := s.Modify(r.ID, mustDate(t, "2026-03-10"), mustTime(t, "09:00"), mustTime(t, "11:00"), "Prof. Silva")
    require.NoError(t, err)
    assert.Equal(t, mustTime(t, "09:00"), updated.Start)
    assert.Equal(t, mustTime(t, "11:00"), updated.End)
}

func TestModifyStillConflictsWithOthers(t *testing.T) {
    s, _ := newTestStore(t)

    first, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "10:00", "12:00", "Prof. Souza", 10))
    require.NoError(t, err)

    _, err = s.Modify(first.ID, mustDate(t, "2026-03-10"), mustTime(t, "09:00"), mustTime(t, "11:00"), "Prof. Silva")
    assert.ErrorIs(t, err, ErrScheduleConflict)

    // The failed modify must not have touched the stored record.
    got, ok := s.FindByID(first.ID)
    require.True(t, ok)
    assert.Equal(t, mustTime(t, "08:00"), got.Start)
    assert.Equal(t, mustTime(t, "10:00"), got.End)
}

func TestModifyCancelledReservationFails(t *testing.T) {
    s, _ := newTestStore(t)

    r, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)
    _, err = s.Cancel(r.ID)
    require.NoError(t, err)

    _, err = s.Modify(r.ID, mustDate(t, "2026-03-11"), mustTime(t, "08:00"), mustTime(t, "10:00"), "Prof. Silva")
    assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestNextIDSeededFromLoadedData(t *testing.T) {
    st := &memStorage{
        rooms: []model.Room{{Code: "A101", Name: "Hall", Capacity: 40, Type: model.RoomTheoretical}},
        reservations: []model.Reservation{
            {ID: "R7", RoomCode: "A101", Date: mustDate(t, "2026-03-10"), Start: mustTime(t, "08:00"), End: mustTime(t, "10:00"), Responsible: "Prof. Silva", Status: model.StatusActive, Kind: model.KindClass},
            {ID: "bogus", RoomCode: "A101", Date: mustDate(t, "2026-03-11"), Start: mustTime(t, "08:00"), End: mustTime(t, "10:00"), Responsible: "Prof. Souza", Status: model.StatusActive, Kind: model.KindClass},
            {ID: "R3", RoomCode: "A101", Date: mustDate(t, "2026-03-12"), Start: mustTime(t, "08:00"), End: mustTime(t, "10:00"), Responsible: "Prof. Costa", Status: model.StatusCancelled, Kind: model.KindClass},
        },
    }
    s, err := NewStore(st, fixedClock{today})
    require.NoError(t, err)

    // Maximum surviving suffix is 7; malformed ids contribute 0.
    assert.Equal(t, "R8", s.NextID())
}

func TestLoadDropsReservationsWithUnknownRoom(t *testing.T) {
    st := &memStorage{
        rooms: []model.Room{{Code: "A101", Name: "Hall", Capacity: 40, Type: model.RoomTheoretical}},
        reservations: []model.Reservation{
            {ID: "R1", RoomCode: "A101", Date: mustDate(t, "2026-03-10"), Start: mustTime(t, "08:00"), End: mustTime(t, "10:00"), Responsible: "Prof. Silva", Status: model.StatusActive, Kind: model.KindClass},
            {ID: "R2", RoomCode: "GONE", Date: mustDate(t, "2026-03-10"), Start: mustTime(t, "08:00"), End: mustTime(t, "10:00"), Responsible: "Prof. Souza", Status: model.StatusActive, Kind: model.KindClass},
        },
    }
    s, err := NewStore(st, fixedClock{today})
    require.NoError(t, err)

    _, ok := s.FindByID("R1")
    assert.True(t, ok)
    _, ok = s.FindByID("R2")
    assert.False(t, ok)
}

func TestFindByIDIsCaseInsensitive(t *testing.T) {
    s, _ := newTestStore(t)

    r, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)

    got, ok := s.FindByID("r1")
    require.True(t, ok)
    assert.Equal(t, r.ID, got.ID)
}

func TestFindByResponsibleSubstring(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Maria Silva", 30))
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "L201", "2026-03-10", "08:00", "10:00", "Prof. João Souza", 20))
    require.NoError(t, err)

    got := s.FindByResponsible("silva")
    require.Len(t, got, 1)
    assert.Equal(t, "Prof. Maria Silva", got[0].Responsible)

    assert.Len(t, s.FindByResponsible("prof"), 2)
    assert.Empty(t, s.FindByResponsible("nobody"))
}

func TestListSorted(t *testing.T) {
    s, _ := newTestStore(t)

    // Register out of natural order on every axis.
    _, err := s.Register(classReservation(t, "L201", "2026-03-12", "10:00", "12:00", "Charlie", 10)) // R1
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "14:00", "16:00", "Alice", 10)) // R2
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Bob", 10)) // R3
    require.NoError(t, err)

    byID := s.ListSorted("id", true)
    assert.Equal(t, []string{"R1", "R2", "R3"}, ids(byID))

    byDate := s.ListSorted("date", true)
    // Same day entries break ties on start time.
    assert.Equal(t, []string{"R3", "R2", "R1"}, ids(byDate))

    byDateDesc := s.ListSorted("date", false)
    assert.Equal(t, []string{"R1", "R2", "R3"}, ids(byDateDesc))

    byRoom := s.ListSorted("room", true)
    assert.Equal(t, []string{"R2", "R3", "R1"}, ids(byRoom))

    byResponsible := s.ListSorted("responsible", true)
    assert.Equal(t, []string{"R2", "R3", "R1"}, ids(byResponsible))

    // Unknown fields fall back to id order.
    assert.Equal(t, []string{"R1", "R2", "R3"}, ids(s.ListSorted("bogus", true)))
}

func TestListSortedStableForEqualKeys(t *testing.T) {
    s, _ := newTestStore(t)

    // Three same-room reservations: equal room keys keep insertion order
    // in both directions.
    _, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "09:00", "Alice", 10)) // R1
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "A101", "2026-03-11", "08:00", "09:00", "Bob", 10)) // R2
    require.NoError(t, err)
    _, err = s.Register(classReservation(t, "A101", "2026-03-12", "08:00", "09:00", "Carol", 10)) // R3
    require.NoError(t, err)

    assert.Equal(t, []string{"R1", "R2", "R3"}, ids(s.ListSorted("room", true)))
    assert.Equal(t, []string{"R1", "R2", "R3"}, ids(s.ListSorted("room", false)))
}

func TestActiveReservationsNeverOverlap(t *testing.T) {
    s, _ := newTestStore(t)

    // Throw a mix of accepted and rejected registrations at one room and
    // verify the surviving active set is pairwise disjoint.
    slots := [][2]string{
        {"08:00", "10:00"},
        {"09:00", "11:00"}, // rejected
        {"10:00", "12:00"},
        {"11:30", "13:00"}, // rejected
        {"12:00", "14:00"},
        {"07:00", "08:30"}, // rejected
    }
    for _, slot := range slots {
        _, _ = s.Register(classReservation(t, "A101", "2026-03-10", slot[0], slot[1], "Prof. Silva", 10))
    }

    active := make([]model.Reservation, 0)
    for _, r := range s.ListSorted("id", true) {
        if r.Status == model.StatusActive {
            active = append(active, r)
        }
    }
    require.Len(t, active, 3)
    for i := 0; i < len(active); i++ {
        for j := i + 1; j < len(active); j++ {
            a, b := active[i], active[j]
            overlap := a.Start < b.End && b.Start < a.End
            assert.Falsef(t, overlap, "%s and %s overlap", a.ID, b.ID)
        }
    }
}

func TestMutationsWriteThrough(t *testing.T) {
    s, st := newTestStore(t)
    saves := len(st.savedResvs)

    r, err := s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 30))
    require.NoError(t, err)
    _, err = s.Cancel(r.ID)
    require.NoError(t, err)

    // Register and cancel each produce one save; the last snapshot holds
    // the cancelled record.
    require.Len(t, st.savedResvs, saves+2)
    last := st.savedResvs[len(st.savedResvs)-1]
    require.Len(t, last, 1)
    assert.Equal(t, model.StatusCancelled, last[0].Status)
}

func ids(rs []model.Reservation) []string {
    out := make([]string, 0, len(rs))
    for _, r := range rs {
        out = append(out, r.ID)
    }
    return out
}
