package storage

import (
    "bufio"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

const (
    roomsFile        = "rooms.txt"
    reservationsFile = "reservations.txt"
)

// FileStore persists rooms and reservations as comma-separated lines in
// plain text files under a data directory.  It is the default backend and
// needs no external service.  Save operations rewrite the whole file;
// load operations skip malformed lines with a warning rather than
// aborting, so one corrupt record never takes down the rest of the data.
type FileStore struct {
    dir string
}

// NewFileStore returns a FileStore rooted at dir, creating the directory
// when it does not exist yet.
func NewFileStore(dir string) (*FileStore, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, fmt.Errorf("create data dir: %w", err)
    }
    return &FileStore{dir: dir}, nil
}

// LoadRooms reads the rooms file.  A missing file yields an empty slice;
// it will be created on the first save.
func (s *FileStore) LoadRooms() ([]model.Room, error) {
    lines, err := s.readLines(roomsFile)
    if err != nil {
        return nil, err
    }
    rooms := make([]model.Room, 0, len(lines))
    for _, line := range lines {
        // CODE,Name,Capacity,TYPE
        parts := strings.Split(line, ",")
        if len(parts) < 4 {
            log.Printf("storage: skipping short room line %q", line)
            continue
        }
        capacity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
        if err != nil {
            log.Printf("storage: skipping room line %q: %v", line, err)
            continue
        }
        roomType, err := model.ParseRoomType(parts[3])
        if err != nil {
            log.Printf("storage: skipping room line %q: %v", line, err)
            continue
        }
        rooms = append(rooms, model.Room{
            Code:     strings.ToUpper(strings.TrimSpace(parts[0])),
            Name:     parts[1],
            Capacity: capacity,
            Type:     roomType,
        })
    }
    return rooms, nil
}

// LoadReservations reads the reservations file.  Records keep their raw
// room code; resolving codes against the registry (and dropping the
// unresolvable ones) is the booking layer's job.
func (s *FileStore) LoadReservations() ([]model.Reservation, error) {
    lines, err := s.readLines(reservationsFile)
    if err != nil {
        return nil, err
    }
    reservations := make([]model.Reservation, 0, len(lines))
    for _, line := range lines {
        // KIND,id,roomCode,date,start,end,responsible,status,detail,quantity
        parts := strings.Split(line, ",")
        if len(parts) < 10 {
            log.Printf("storage: skipping short reservation line %q", line)
            continue
        }
        r, err := decodeReservation(parts)
        if err != nil {
            log.Printf("storage: skipping reservation line %q: %v", line, err)
            continue
        }
        reservations = append(reservations, r)
    }
    return reservations, nil
}

func decodeReservation(parts []string) (model.Reservation, error) {
    kind, err := model.ParseReservationKind(parts[0])
    if err != nil {
        return model.Reservation{}, err
    }
    date, err := model.ParseDate(strings.TrimSpace(parts[3]))
    if err != nil {
        return model.Reservation{}, err
    }
    start, err := model.ParseTimeOfDay(strings.TrimSpace(parts[4]))
    if err != nil {
        return model.Reservation{}, err
    }
    end, err := model.ParseTimeOfDay(strings.TrimSpace(parts[5]))
    if err != nil {
        return model.Reservation{}, err
    }
    status, err := model.ParseReservationStatus(parts[7])
    if err != nil {
        return model.Reservation{}, err
    }
    quantity, err := strconv.Atoi(strings.TrimSpace(parts[9]))
    if err != nil {
        return model.Reservation{}, err
    }
    r := model.Reservation{
        ID:          strings.TrimSpace(parts[1]),
        RoomCode:    strings.ToUpper(strings.TrimSpace(parts[2])),
        Date:        date,
        Start:       start,
        End:         end,
        Responsible: parts[6],
        Status:      status,
        Kind:        kind,
    }
    if err := applyPayload(&r, parts[8], quantity); err != nil {
        return model.Reservation{}, err
    }
    return r, nil
}

// SaveRooms overwrites the rooms file with the full collection.
func (s *FileStore) SaveRooms(rooms []model.Room) error {
    lines := make([]string, 0, len(rooms))
    for _, r := range rooms {
        lines = append(lines, fmt.Sprintf("%s,%s,%d,%s", r.Code, r.Name, r.Capacity, r.Type))
    }
    return s.writeLines(roomsFile, lines)
}

// SaveReservations overwrites the reservations file with the full
// collection.  Status is written for every kind so a reload reproduces
// the exact active/cancelled set.
func (s *FileStore) SaveReservations(reservations []model.Reservation) error {
    lines := make([]string, 0, len(reservations))
    for _, r := range reservations {
        detail, quantity := payloadOf(r)
        lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%d",
            r.Kind, r.ID, r.RoomCode, r.Date, r.Start, r.End, r.Responsible, r.Status, detail, quantity))
    }
    return s.writeLines(reservationsFile, lines)
}

// ExportReport writes a report body to its own file in the data
// directory.
func (s *FileStore) ExportReport(name, body string) error {
    path := filepath.Join(s.dir, name)
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        return fmt.Errorf("export report %s: %w", name, err)
    }
    return nil
}

func (s *FileStore) readLines(name string) ([]string, error) {
    f, err := os.Open(filepath.Join(s.dir, name))
    if err != nil {
        if os.IsNotExist(err) {
            log.Printf("storage: %s not found; it will be created on save", name)
            return nil, nil
        }
        return nil, err
    }
    defer f.Close()
    var lines []string
    sc := bufio.NewScanner(f)
    for sc.Scan() {
        if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
            lines = append(lines, line)
        }
    }
    return lines, sc.Err()
}

func (s *FileStore) writeLines(name string, lines []string) error {
    var b strings.Builder
    for _, line := range lines {
        b.WriteString(line)
        b.WriteByte('\n')
    }
    return os.WriteFile(filepath.Join(s.dir, name), []byte(b.String()), 0o644)
}
