package storage

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// MySQLStore implements Store on top of a MySQL database.  It keeps the
// same full-collection overwrite contract as the file backend: each save
// replaces the table contents inside one transaction so the write-through
// after a mutation is atomic.  Reports are stored in a reports table
// keyed by name, newest body wins.
type MySQLStore struct {
    db *sql.DB
}

// NewMySQLStore binds a MySQLStore to the given database and ensures the
// schema exists.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
    s := &MySQLStore{db: db}
    if err := s.ensureSchema(); err != nil {
        return nil, err
    }
    return s, nil
}

func (s *MySQLStore) ensureSchema() error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    stmts := []string{
        `CREATE TABLE IF NOT EXISTS rooms (
            code      VARCHAR(32) PRIMARY KEY,
            name      VARCHAR(255) NOT NULL,
            capacity  INT NOT NULL,
            room_type VARCHAR(16) NOT NULL
        )`,
        `CREATE TABLE IF NOT EXISTS reservations (
            id          VARCHAR(32) PRIMARY KEY,
            kind        VARCHAR(16) NOT NULL,
            room_code   VARCHAR(32) NOT NULL,
            res_date    DATE NOT NULL,
            start_time  VARCHAR(5) NOT NULL,
            end_time    VARCHAR(5) NOT NULL,
            responsible VARCHAR(255) NOT NULL,
            status      VARCHAR(16) NOT NULL,
            detail      VARCHAR(255) NOT NULL,
            quantity    INT NOT NULL
        )`,
        `CREATE TABLE IF NOT EXISTS reports (
            name         VARCHAR(64) PRIMARY KEY,
            body         TEXT NOT NULL,
            generated_at DATETIME NOT NULL
        )`,
    }
    for _, q := range stmts {
        if _, err := s.db.ExecContext(ctx, q); err != nil {
            return fmt.Errorf("ensure schema: %w", err)
        }
    }
    return nil
}

// LoadRooms returns all rooms ordered by insertion (rowid order is not
// portable, so an explicit ordinal is unnecessary here: rooms are
// re-inserted in registry order on every save).
func (s *MySQLStore) LoadRooms() ([]model.Room, error) {
    const q = `SELECT code, name, capacity, room_type FROM rooms`
    rows, err := s.db.QueryContext(context.Background(), q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var rooms []model.Room
    for rows.Next() {
        var r model.Room
        var typ string
        if err := rows.Scan(&r.Code, &r.Name, &r.Capacity, &typ); err != nil {
            return nil, err
        }
        parsed, err := model.ParseRoomType(typ)
        if err != nil {
            return nil, err
        }
        r.Type = parsed
        rooms = append(rooms, r)
    }
    return rooms, rows.Err()
}

// LoadReservations returns all reservations with their raw room codes.
func (s *MySQLStore) LoadReservations() ([]model.Reservation, error) {
    const q = `SELECT id, kind, room_code, res_date, start_time, end_time,
                      responsible, status, detail, quantity
               FROM reservations`
    rows, err := s.db.QueryContext(context.Background(), q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var reservations []model.Reservation
    for rows.Next() {
        var (
            r                            model.Reservation
            kind, date, start, end, stat string
            detail                       string
            quantity                     int
        )
        if err := rows.Scan(&r.ID, &kind, &r.RoomCode, &date, &start, &end,
            &r.Responsible, &stat, &detail, &quantity); err != nil {
            return nil, err
        }
        if r.Kind, err = model.ParseReservationKind(kind); err != nil {
            return nil, err
        }
        // MySQL DATE columns scan as "2006-01-02" (optionally with a
        // midnight time suffix when parseTime is off).
        if len(date) > 10 {
            date = date[:10]
        }
        if r.Date, err = model.ParseDate(date); err != nil {
            return nil, err
        }
        if r.Start, err = model.ParseTimeOfDay(start); err != nil {
            return nil, err
        }
        if r.End, err = model.ParseTimeOfDay(end); err != nil {
            return nil, err
        }
        if r.Status, err = model.ParseReservationStatus(stat); err != nil {
            return nil, err
        }
        if err := applyPayload(&r, detail, quantity); err != nil {
            return nil, err
        }
        reservations = append(reservations, r)
    }
    return reservations, rows.Err()
}

// SaveRooms replaces the rooms table contents in one transaction.
func (s *MySQLStore) SaveRooms(rooms []model.Room) error {
    return s.replaceAll("rooms", func(ctx context.Context, tx *sql.Tx) error {
        const q = `INSERT INTO rooms (code, name, capacity, room_type) VALUES (?, ?, ?, ?)`
        for _, r := range rooms {
            if _, err := tx.ExecContext(ctx, q, r.Code, r.Name, r.Capacity, string(r.Type)); err != nil {
                return err
            }
        }
        return nil
    })
}

// SaveReservations replaces the reservations table contents in one
// transaction.
func (s *MySQLStore) SaveReservations(reservations []model.Reservation) error {
    return s.replaceAll("reservations", func(ctx context.Context, tx *sql.Tx) error {
        const q = `INSERT INTO reservations
                   (id, kind, room_code, res_date, start_time, end_time, responsible, status, detail, quantity)
                   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
        for _, r := range reservations {
            detail, quantity := payloadOf(r)
            if _, err := tx.ExecContext(ctx, q,
                r.ID, string(r.Kind), r.RoomCode, r.Date.String(), r.Start.String(), r.End.String(),
                r.Responsible, string(r.Status), detail, quantity); err != nil {
                return err
            }
        }
        return nil
    })
}

// ExportReport upserts the report body under its name.
func (s *MySQLStore) ExportReport(name, body string) error {
    const q = `INSERT INTO reports (name, body, generated_at) VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE body = VALUES(body), generated_at = VALUES(generated_at)`
    _, err := s.db.ExecContext(context.Background(), q, name, body, time.Now().UTC().Format("2006-01-02 15:04:05"))
    return err
}

// replaceAll runs DELETE-then-INSERT for a table inside a transaction so
// readers never observe a partially written collection.
func (s *MySQLStore) replaceAll(table string, insert func(context.Context, *sql.Tx) error) error {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
        _ = tx.Rollback()
        return err
    }
    if err := insert(ctx, tx); err != nil {
        _ = tx.Rollback()
        return err
    }
    return tx.Commit()
}
