package model

import "time"

// RequestStatus is the lifecycle state of a connection request.
// A request starts out pending and only the receiver may move it
// to accepted or rejected.
type RequestStatus string

const (
    // StatusPending is the initial state of every request.
    StatusPending RequestStatus = "pending"
    // StatusAccepted unlocks contact details between the two users.
    StatusAccepted RequestStatus = "accepted"
    // StatusRejected is set by a receiver who declines the request.
    StatusRejected RequestStatus = "rejected"
)

// ValidTransition reports whether s is a status a receiver may set
// via the update endpoint. Pending is creation-only.
func (s RequestStatus) ValidTransition() bool {
    return s == StatusAccepted || s == StatusRejected
}

// Request is a directed connection request between two users as
// stored in the `requests` table. The UNIQUE index on
// (sender_id, receiver_id) keeps at most one request per ordered
// pair; the reverse direction is a separate row.
//
// Fields:
//  ID         – primary key identifier.
//  SenderID   – user who sent the request.
//  ReceiverID – user the request is addressed to.
//  Status     – pending, accepted or rejected.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – timestamp of the last status change.
type Request struct {
    ID         uint64        // requests.id
    SenderID   uint64        // requests.sender_id
    ReceiverID uint64        // requests.receiver_id
    Status     RequestStatus // requests.status
    CreatedAt  time.Time     // requests.created_at
    UpdatedAt  time.Time     // requests.updated_at
}
