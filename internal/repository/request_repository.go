package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/yashk-tech/matchmate/internal/model"
)

// RequestRepo provides persistence for connection requests. Requests
// are directed edges between two users; the UNIQUE index on
// (sender_id, receiver_id) keeps one request per ordered pair.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

const requestColumns = "id, sender_id, receiver_id, status, created_at, updated_at"

// Create inserts a pending request from sender to receiver. Self
// requests are rejected outright. When a request for the same ordered
// pair already exists, a DuplicateRequestError carrying the existing
// status is returned; the unique index catches the race where two
// identical sends arrive at once.
func (r *RequestRepo) Create(ctx context.Context, senderID, receiverID uint64) (model.Request, error) {
    var req model.Request
    if senderID == receiverID {
        return req, ErrSelfRequest
    }

    var existing string
    err := r.DB.QueryRowContext(ctx,
        "SELECT status FROM requests WHERE sender_id=? AND receiver_id=? LIMIT 1",
        senderID, receiverID).Scan(&existing)
    if err == nil {
        return req, &DuplicateRequestError{Status: existing}
    }
    if err != sql.ErrNoRows {
        return req, err
    }

    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO requests (sender_id, receiver_id, status) VALUES (?,?,?)",
        senderID, receiverID, model.StatusPending)
    if err != nil {
        if isDuplicate(err) {
            // Lost the race against an identical send; report whatever
            // status that request has by now.
            if e := r.DB.QueryRowContext(ctx,
                "SELECT status FROM requests WHERE sender_id=? AND receiver_id=? LIMIT 1",
                senderID, receiverID).Scan(&existing); e == nil {
                return req, &DuplicateRequestError{Status: existing}
            }
            return req, &DuplicateRequestError{Status: string(model.StatusPending)}
        }
        return req, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return req, err
    }
    req = model.Request{
        ID:         uint64(id),
        SenderID:   senderID,
        ReceiverID: receiverID,
        Status:     model.StatusPending,
    }
    return req, nil
}

// GetByID fetches a request by id. Returns ErrNotFound when absent.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
    var req model.Request
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1", id).
        Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
    if err == sql.ErrNoRows {
        return req, ErrNotFound
    }
    return req, err
}

// UpdateStatus sets the request's status. Receiver-only and enum
// checks happen in the handler, which has the caller identity and has
// already confirmed the request exists. No RowsAffected check here:
// the driver counts changed rows, so re-submitting the current status
// affects zero rows and is still a success.
func (r *RequestRepo) UpdateStatus(ctx context.Context, id uint64, status model.RequestStatus) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE requests SET status=? WHERE id=?", status, id)
    return err
}

// StatusBetween returns the status of the request from sender to
// receiver, or "none" when no such request exists. The lookup is
// directional; the reverse edge is a different request.
func (r *RequestRepo) StatusBetween(ctx context.Context, senderID, receiverID uint64) (string, error) {
    var status string
    err := r.DB.QueryRowContext(ctx,
        "SELECT status FROM requests WHERE sender_id=? AND receiver_id=? LIMIT 1",
        senderID, receiverID).Scan(&status)
    if err == sql.ErrNoRows {
        return "none", nil
    }
    if err != nil {
        return "", err
    }
    return status, nil
}

// HasAcceptedBetween reports whether an accepted request exists between
// the two users in either direction. This is the canonical check behind
// the phone-number visibility gate.
func (r *RequestRepo) HasAcceptedBetween(ctx context.Context, a, b uint64) (bool, error) {
    var one int
    err := r.DB.QueryRowContext(ctx,
        `SELECT 1 FROM requests
         WHERE status=? AND ((sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?))
         LIMIT 1`,
        model.StatusAccepted, a, b, b, a).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// Party is the public projection of one side of a request.
type Party struct {
    ID         uint64 `json:"id"`
    Name       string `json:"name"`
    ProfilePic string `json:"profilePic"`
}

// Contact extends Party with the phone number. Only queries restricted
// to accepted connections may select it.
type Contact struct {
    ID         uint64 `json:"id"`
    Name       string `json:"name"`
    ProfilePic string `json:"profilePic"`
    Phone      string `json:"phone"`
}

// AcceptedConnection is an accepted request joined with the contact
// details of both parties. Contact exposure is safe here because
// acceptance has already unlocked it for both sides.
type AcceptedConnection struct {
    ID        uint64    `json:"id"`
    Status    string    `json:"status"`
    Sender    Contact   `json:"sender"`
    Receiver  Contact   `json:"receiver"`
    CreatedAt time.Time `json:"createdAt"`
}

// ListAccepted returns the user's accepted connections, in either
// direction.
func (r *RequestRepo) ListAccepted(ctx context.Context, userID uint64) ([]AcceptedConnection, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT r.id, r.status, r.created_at,
          s.id, s.name, s.profile_pic, s.phone,
          t.id, t.name, t.profile_pic, t.phone
         FROM requests r
         JOIN users s ON s.id = r.sender_id
         JOIN users t ON t.id = r.receiver_id
         WHERE r.status=? AND (r.sender_id=? OR r.receiver_id=?)
         ORDER BY r.updated_at DESC`,
        model.StatusAccepted, userID, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []AcceptedConnection{}
    for rows.Next() {
        var c AcceptedConnection
        if err := rows.Scan(&c.ID, &c.Status, &c.CreatedAt,
            &c.Sender.ID, &c.Sender.Name, &c.Sender.ProfilePic, &c.Sender.Phone,
            &c.Receiver.ID, &c.Receiver.Name, &c.Receiver.ProfilePic, &c.Receiver.Phone); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// RequestDetail is a request joined with the public projection of both
// parties. Returned by ListByUser for the sent/received overview.
type RequestDetail struct {
    ID        uint64    `json:"id"`
    Status    string    `json:"status"`
    Sender    Party     `json:"sender"`
    Receiver  Party     `json:"receiver"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

// ListByUser returns every request the user is part of, any status,
// newest first. The handler partitions the result into sent and
// received halves.
func (r *RequestRepo) ListByUser(ctx context.Context, userID uint64) ([]RequestDetail, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT r.id, r.status, r.created_at, r.updated_at,
          s.id, s.name, s.profile_pic,
          t.id, t.name, t.profile_pic
         FROM requests r
         JOIN users s ON s.id = r.sender_id
         JOIN users t ON t.id = r.receiver_id
         WHERE r.sender_id=? OR r.receiver_id=?
         ORDER BY r.created_at DESC`,
        userID, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []RequestDetail{}
    for rows.Next() {
        var d RequestDetail
        if err := rows.Scan(&d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
            &d.Sender.ID, &d.Sender.Name, &d.Sender.ProfilePic,
            &d.Receiver.ID, &d.Receiver.Name, &d.Receiver.ProfilePic); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// ReceivedRequest is a request addressed to the user, joined with the
// sender's browse projection.
type ReceivedRequest struct {
    ID        uint64    `json:"id"`
    Status    string    `json:"status"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
    Sender    struct {
        ID         uint64 `json:"id"`
        Name       string `json:"name"`
        Gender     string `json:"gender"`
        Age        uint16 `json:"age"`
        ProfilePic string `json:"profilePic"`
    } `json:"sender"`
}

// ListReceived returns requests where the user is the receiver, most
// recently updated first.
func (r *RequestRepo) ListReceived(ctx context.Context, receiverID uint64) ([]ReceivedRequest, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT r.id, r.status, r.created_at, r.updated_at,
          s.id, s.name, s.gender, s.age, s.profile_pic
         FROM requests r
         JOIN users s ON s.id = r.sender_id
         WHERE r.receiver_id=?
         ORDER BY r.updated_at DESC`, receiverID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []ReceivedRequest{}
    for rows.Next() {
        var (
            d      ReceivedRequest
            gender sql.NullString
            age    sql.NullInt32
        )
        if err := rows.Scan(&d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
            &d.Sender.ID, &d.Sender.Name, &gender, &age, &d.Sender.ProfilePic); err != nil {
            return nil, err
        }
        d.Sender.Gender = gender.String
        if age.Valid {
            d.Sender.Age = uint16(age.Int32)
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// Delete removes the request permanently. The receiver-only and
// accepted-immutability guards live in the handler.
func (r *RequestRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM requests WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrNotFound
    }
    return nil
}
