package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/queue"
    "github.com/yashk-tech/matchmate/internal/repository"
    queue_publisher "github.com/yashk-tech/matchmate/internal/service"
)

// RequestHandler serves the connection-request lifecycle: send, accept
// or reject, list and delete. Accepting publishes a broker event;
// Publish is a field so tests can intercept it.
type RequestHandler struct {
    Requests *repository.RequestRepo
    Users    *repository.UserRepo
    Publish  func(ctx context.Context, ev queue.ConnectionAcceptedEvent) error
}

func NewRequestHandler(r *repository.RequestRepo, u *repository.UserRepo) *RequestHandler {
    return &RequestHandler{
        Requests: r,
        Users:    u,
        Publish:  queue_publisher.PublishConnectionAccepted,
    }
}

// requestOut is the plain request projection returned on create.
type requestOut struct {
    ID         uint64    `json:"id"`
    SenderID   uint64    `json:"senderId"`
    ReceiverID uint64    `json:"receiverId"`
    Status     string    `json:"status"`
    CreatedAt  time.Time `json:"createdAt"`
}

// Send handles POST /api/request/send/:receiverId. Self requests and
// duplicates for the same ordered pair are rejected; the duplicate
// message reports the existing request's status.
func (h *RequestHandler) Send(c echo.Context) error {
    senderID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    receiverID, err := pathID(c, "receiverId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiver id missing or invalid"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // The receiver must exist; a dangling edge would poison the joins.
    if _, err := h.Users.GetByID(ctx, receiverID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
    }

    req, err := h.Requests.Create(ctx, senderID, receiverID)
    if err != nil {
        if err == repository.ErrSelfRequest {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "you cannot send request to yourself"})
        }
        var dup *repository.DuplicateRequestError
        if errors.As(err, &dup) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": dup.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "message": "request sent successfully",
        "request": requestOut{
            ID:         req.ID,
            SenderID:   req.SenderID,
            ReceiverID: req.ReceiverID,
            Status:     string(req.Status),
            CreatedAt:  req.CreatedAt,
        },
    })
}

type updateStatusReq struct {
    Status string `json:"status"`
}

// UpdateStatus handles PUT /api/request/update/:requestId. Only the
// receiver may transition a request, and only to accepted or rejected.
// A receiver may flip an earlier decision; the pair of terminal states
// stays reachable from each other. Accepting publishes a
// connection.accepted event; broker failures never fail the call.
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "requestId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
    }
    var body updateStatusReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status := model.RequestStatus(body.Status)
    if !status.ValidTransition() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be accepted or rejected"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    req, err := h.Requests.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if req.ReceiverID != callerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "only the receiver can update this request"})
    }

    if err := h.Requests.UpdateStatus(ctx, id, status); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }

    if status == model.StatusAccepted && h.Publish != nil {
        ev := queue.ConnectionAcceptedEvent{
            RequestID:  req.ID,
            SenderID:   req.SenderID,
            ReceiverID: req.ReceiverID,
            AcceptedAt: time.Now().UTC().Format(time.RFC3339),
        }
        if s, err := h.Users.GetByID(ctx, req.SenderID); err == nil {
            ev.SenderName = s.Name
        }
        if r, err := h.Users.GetByID(ctx, req.ReceiverID); err == nil {
            ev.ReceiverName = r.Name
        }
        go func() {
            pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
            defer pcancel()
            _ = h.Publish(pctx, ev)
        }()
    }

    return c.JSON(http.StatusOK, echo.Map{"message": "request " + string(status)})
}

// Status handles GET /api/request/status/:receiverId. The lookup is
// directional, caller as sender; "none" means no request exists.
func (h *RequestHandler) Status(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    receiverID, err := pathID(c, "receiverId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid receiver id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    status, err := h.Requests.StatusBetween(ctx, callerID, receiverID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status check failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": status})
}

// Accepted handles GET /api/request/accepted: the caller's accepted
// connections in either direction, with contact details of both sides.
func (h *RequestHandler) Accepted(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Requests.ListAccepted(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch accepted requests"})
    }
    return c.JSON(http.StatusOK, echo.Map{"requests": items})
}

// Mine handles GET /api/request/sent: every request the caller is part
// of, partitioned into sent and received for the client.
func (h *RequestHandler) Mine(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Requests.ListByUser(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch requests"})
    }
    sent := []repository.RequestDetail{}
    received := []repository.RequestDetail{}
    for _, it := range items {
        if it.Sender.ID == callerID {
            sent = append(sent, it)
        } else {
            received = append(received, it)
        }
    }
    return c.JSON(http.StatusOK, echo.Map{
        "sentRequests":     sent,
        "receivedRequests": received,
    })
}

// Received handles GET /api/request/received: requests addressed to
// the caller, newest activity first.
func (h *RequestHandler) Received(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Requests.ListReceived(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch requests"})
    }
    return c.JSON(http.StatusOK, echo.Map{"requests": items})
}

// Delete handles DELETE /api/request/delete/:requestId. Receiver only,
// and never while the request is accepted: an unlocked connection
// cannot be silently severed through this endpoint.
func (h *RequestHandler) Delete(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "requestId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    req, err := h.Requests.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    if req.ReceiverID != callerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "only the receiver can delete this request"})
    }
    if req.Status == model.StatusAccepted {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "accepted request cannot be deleted"})
    }

    if err := h.Requests.Delete(ctx, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "request deleted successfully"})
}
