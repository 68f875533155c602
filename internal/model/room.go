package model

import (
    "fmt"
    "strings"
)

// RoomType classifies what a room can host.  The three types drive the
// per-kind reservation rules: classes are excluded from auditoriums,
// conferences and workshops require an auditorium or a laboratory, and
// practical sessions are restricted to laboratories.
type RoomType string

const (
    RoomTheoretical RoomType = "THEORETICAL" // standard lecture room
    RoomLaboratory  RoomType = "LABORATORY"  // equipped lab room
    RoomAuditorium  RoomType = "AUDITORIUM"  // large-capacity auditorium
)

// ParseRoomType converts a case-insensitive string into a RoomType.  It
// returns an error for unknown values so persisted data and request
// payloads fail loudly instead of producing a silent zero value.
func ParseRoomType(s string) (RoomType, error) {
    switch RoomType(strings.ToUpper(strings.TrimSpace(s))) {
    case RoomTheoretical:
        return RoomTheoretical, nil
    case RoomLaboratory:
        return RoomLaboratory, nil
    case RoomAuditorium:
        return RoomAuditorium, nil
    }
    return "", fmt.Errorf("unknown room type %q", s)
}

// Room represents a reservable physical space.  The code is the unique,
// case-insensitive identifier and never changes once the room has been
// registered; name, capacity and type may be updated in place.
//
// Fields:
//  Code     – unique identifier, stored upper-cased.
//  Name     – human-readable display name.
//  Capacity – maximum occupancy, always positive.
//  Type     – one of the RoomType constants.
type Room struct {
    Code     string   `json:"code"`
    Name     string   `json:"name"`
    Capacity int      `json:"capacity"`
    Type     RoomType `json:"type"`
}
