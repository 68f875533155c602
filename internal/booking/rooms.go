package booking

import (
    "fmt"
    "strings"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// Room registry operations.  Rooms share the store's lock and
// write-through persistence with reservations: a room update and the
// save that records it happen under the same critical section.

// RegisterRoom adds a room to the registry.  Codes are unique
// case-insensitively and stored upper-cased; capacity must be positive.
func (s *Store) RegisterRoom(code, name string, capacity int, roomType model.RoomType) (model.Room, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    code = strings.ToUpper(strings.TrimSpace(code))
    if s.findRoomLocked(code) != nil {
        return model.Room{}, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
    }
    if capacity <= 0 {
        return model.Room{}, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
    }
    room := &model.Room{Code: code, Name: name, Capacity: capacity, Type: roomType}
    s.rooms = append(s.rooms, room)
    s.persistLocked()
    return *room, nil
}

// FindRoom looks a room up by code, case-insensitively.
func (s *Store) FindRoom(code string) (model.Room, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if r := s.findRoomLocked(code); r != nil {
        return *r, true
    }
    return model.Room{}, false
}

// UpdateRoom mutates a room's name, capacity and type in place.  The
// code itself is immutable once assigned.
func (s *Store) UpdateRoom(code, newName string, newCapacity int, newType model.RoomType) (model.Room, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    room := s.findRoomLocked(code)
    if room == nil {
        return model.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
    }
    if newCapacity <= 0 {
        return model.Room{}, fmt.Errorf("%w: got %d", ErrInvalidCapacity, newCapacity)
    }
    room.Name = newName
    room.Capacity = newCapacity
    room.Type = newType
    s.persistLocked()
    return *room, nil
}

// Rooms returns the registry in insertion order.
func (s *Store) Rooms() []model.Room {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Room, 0, len(s.rooms))
    for _, r := range s.rooms {
        out = append(out, *r)
    }
    return out
}

// findRoomLocked performs the case-insensitive registry scan.  Callers
// must hold the lock.
func (s *Store) findRoomLocked(code string) *model.Room {
    for _, r := range s.rooms {
        if strings.EqualFold(r.Code, code) {
            return r
        }
    }
    return nil
}
