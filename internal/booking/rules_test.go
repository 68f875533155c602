package booking

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

func eventReservation(t *testing.T, room string, category model.EventCategory, attendees int) model.Reservation {
    t.Helper()
    return model.Reservation{
        RoomCode:    room,
        Date:        mustDate(t, "2026-03-10"),
        Start:       mustTime(t, "08:00"),
        End:         mustTime(t, "10:00"),
        Responsible: "Events Office",
        Kind:        model.KindEvent,
        Category:    category,
        Attendees:   attendees,
    }
}

func practicalReservation(t *testing.T, room string, equipment int) model.Reservation {
    t.Helper()
    return model.Reservation{
        RoomCode:    room,
        Date:        mustDate(t, "2026-03-10"),
        Start:       mustTime(t, "08:00"),
        End:         mustTime(t, "10:00"),
        Responsible: "Prof. Costa",
        Kind:        model.KindPractical,
        Description: "Titration practice",
        Equipment:   equipment,
    }
}

func TestClassRule(t *testing.T) {
    s, _ := newTestStore(t)

    // Classes cannot run in an auditorium.
    _, err := s.Register(classReservation(t, "AUD1", "2026-03-10", "08:00", "10:00", "Prof. Silva", 50))
    assert.ErrorIs(t, err, ErrRuleViolation)

    // Student count is bounded by room capacity (A101 holds 40).
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 41))
    assert.ErrorIs(t, err, ErrRuleViolation)
    _, err = s.Register(classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 40))
    assert.NoError(t, err)

    // Laboratories accept classes too.
    _, err = s.Register(classReservation(t, "L201", "2026-03-10", "08:00", "10:00", "Prof. Silva", 20))
    assert.NoError(t, err)
}

func TestEventRule(t *testing.T) {
    s, _ := newTestStore(t)

    // Conferences need an auditorium or a laboratory.
    _, err := s.Register(eventReservation(t, "A101", model.EventConference, 30))
    assert.ErrorIs(t, err, ErrRuleViolation)
    _, err = s.Register(eventReservation(t, "AUD1", model.EventConference, 200))
    assert.NoError(t, err)
    _, err = s.Register(eventReservation(t, "L201", model.EventWorkshop, 20))
    assert.NoError(t, err)

    // A laboratory satisfies the conference room-type rule too.
    r := eventReservation(t, "L201", model.EventConference, 15)
    r.Date = mustDate(t, "2026-03-11")
    _, err = s.Register(r)
    assert.NoError(t, err)

    // Meetings may use any room type.
    _, err = s.Register(eventReservation(t, "A101", model.EventMeeting, 30))
    assert.NoError(t, err)

    // Attendees are bounded by capacity for every category.
    _, err = s.Register(eventReservation(t, "AUD1", model.EventMeeting, 301))
    assert.ErrorIs(t, err, ErrRuleViolation)
}

func TestPracticalRule(t *testing.T) {
    s, _ := newTestStore(t)

    _, err := s.Register(practicalReservation(t, "A101", 10))
    assert.ErrorIs(t, err, ErrRuleViolation)
    _, err = s.Register(practicalReservation(t, "AUD1", 10))
    assert.ErrorIs(t, err, ErrRuleViolation)

    // Laboratories only; equipment count has no upper bound.
    _, err = s.Register(practicalReservation(t, "L201", 10_000))
    assert.NoError(t, err)
}

func TestUnknownKindRejected(t *testing.T) {
    s, _ := newTestStore(t)

    r := classReservation(t, "A101", "2026-03-10", "08:00", "10:00", "Prof. Silva", 10)
    r.Kind = model.ReservationKind("SEMINAR")
    _, err := s.Register(r)
    require.ErrorIs(t, err, ErrRuleViolation)
}

func TestRoomRegistry(t *testing.T) {
    s, _ := newTestStore(t)

    // Codes are unique case-insensitively and stored upper-cased.
    _, err := s.RegisterRoom("a101", "Duplicate", 10, model.RoomTheoretical)
    assert.ErrorIs(t, err, ErrDuplicateCode)

    _, err = s.RegisterRoom("B302", "Seminar Room", 0, model.RoomTheoretical)
    assert.ErrorIs(t, err, ErrInvalidCapacity)

    created, err := s.RegisterRoom(" b302 ", "Seminar Room", 15, model.RoomTheoretical)
    require.NoError(t, err)
    assert.Equal(t, "B302", created.Code)

    updated, err := s.UpdateRoom("b302", "Seminar Room II", 18, model.RoomLaboratory)
    require.NoError(t, err)
    assert.Equal(t, "B302", updated.Code)
    assert.Equal(t, 18, updated.Capacity)
    assert.Equal(t, model.RoomLaboratory, updated.Type)

    _, err = s.UpdateRoom("none", "x", 1, model.RoomTheoretical)
    assert.ErrorIs(t, err, ErrRoomNotFound)

    rooms := s.Rooms()
    require.Len(t, rooms, 4)
    assert.Equal(t, "B302", rooms[3].Code) // insertion order preserved
}
