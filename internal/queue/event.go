// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published when a reservation is confirmed or
// cancelled.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the service.
type ReservationEvent struct {
    ReservationID string `json:"reservation_id"`
    Kind          string `json:"kind"`
    RoomCode      string `json:"room_code"`
    RoomName      string `json:"room_name"`
    Date          string `json:"date"`
    Start         string `json:"start"`
    End           string `json:"end"`
    Responsible   string `json:"responsible"`
    OccurredAt    string `json:"occurred_at"`
}
