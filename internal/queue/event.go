// Package queue defines message payloads exchanged over the message broker.
package queue

// ConnectionAcceptedEvent is published when a receiver accepts a
// connection request. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ConnectionAcceptedEvent struct {
    RequestID    uint64 `json:"request_id"`
    SenderID     uint64 `json:"sender_id"`
    SenderName   string `json:"sender_name"`
    ReceiverID   uint64 `json:"receiver_id"`
    ReceiverName string `json:"receiver_name"`
    AcceptedAt   string `json:"accepted_at"`
}
