package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/repository"
)

// PostHandler serves the roommate-post CRUD endpoints.
type PostHandler struct {
    Posts *repository.PostRepo
}

func NewPostHandler(p *repository.PostRepo) *PostHandler {
    return &PostHandler{Posts: p}
}

const dateLayout = "2006-01-02"

// ----- DTOs -----

type createPostReq struct {
    City             string   `json:"city"`
    Area             string   `json:"area"`
    LookingForGender string   `json:"lookingForGender"`
    FromDate         string   `json:"fromDate"`
    ToDate           string   `json:"toDate"`
    MinStayDuration  uint16   `json:"minStayDuration"` // months
    BudgetPerPerson  uint32   `json:"budgetPerPerson"`
    HasRoom          bool     `json:"hasRoom"`
    RoomImages       []string `json:"roomImages"`
    TotalRoomRent    *uint32  `json:"totalRoomRent"`
    RentPerRoommate  *uint32  `json:"rentPerRoommate"`
    RoomDescription  string   `json:"roomDescription"`
    Description      string   `json:"description"`
}

type postOut struct {
    ID               uint64    `json:"id"`
    UserID           uint64    `json:"userId"`
    City             string    `json:"city"`
    Area             string    `json:"area"`
    LookingForGender string    `json:"lookingForGender"`
    FromDate         string    `json:"fromDate"`
    ToDate           string    `json:"toDate"`
    MinStayDuration  uint16    `json:"minStayDuration"`
    BudgetPerPerson  uint32    `json:"budgetPerPerson"`
    HasRoom          bool      `json:"hasRoom"`
    RoomImages       []string  `json:"roomImages"`
    TotalRoomRent    *uint32   `json:"totalRoomRent"`
    RentPerRoommate  *uint32   `json:"rentPerRoommate"`
    RoomDescription  string    `json:"roomDescription"`
    Description      string    `json:"description"`
    IsActive         bool      `json:"isActive"`
    CreatedAt        time.Time `json:"createdAt"`
}

func postResp(p model.Post) postOut {
    return postOut{
        ID:               p.ID,
        UserID:           p.UserID,
        City:             p.City,
        Area:             p.Area,
        LookingForGender: p.LookingForGender,
        FromDate:         p.FromDate.Format(dateLayout),
        ToDate:           p.ToDate.Format(dateLayout),
        MinStayDuration:  p.MinStayMonths,
        BudgetPerPerson:  p.BudgetPerPerson,
        HasRoom:          p.HasRoom,
        RoomImages:       p.RoomImages,
        TotalRoomRent:    p.TotalRoomRent,
        RentPerRoommate:  p.RentPerRoommate,
        RoomDescription:  p.RoomDescription,
        Description:      p.Description,
        IsActive:         p.IsActive,
        CreatedAt:        p.CreatedAt,
    }
}

// browsePostOut joins the post with its owner's public details.
type browsePostOut struct {
    postOut
    User repository.PostOwner `json:"user"`
}

func validLookingFor(s string) bool {
    switch s {
    case model.LookingForMale, model.LookingForFemale, model.LookingForAny:
        return true
    }
    return false
}

// Create handles POST /api/user-post/create. Each user may hold one
// post at a time; the pre-check gives a friendly message and the
// unique index on posts.user_id closes the race the check leaves open.
func (h *PostHandler) Create(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createPostReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.City == "" || req.Area == "" || req.FromDate == "" || req.ToDate == "" ||
        req.MinStayDuration == 0 || req.BudgetPerPerson == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "required fields are missing"})
    }
    if req.LookingForGender != "" && !validLookingFor(req.LookingForGender) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lookingForGender"})
    }
    from, err := time.Parse(dateLayout, req.FromDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fromDate"})
    }
    to, err := time.Parse(dateLayout, req.ToDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid toDate"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    exists, err := h.Posts.HasByUser(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create post"})
    }
    if exists {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "you can create only one post, edit or delete it first"})
    }

    p := model.Post{
        UserID:           callerID,
        City:             req.City,
        Area:             req.Area,
        LookingForGender: req.LookingForGender,
        FromDate:         from,
        ToDate:           to,
        MinStayMonths:    req.MinStayDuration,
        BudgetPerPerson:  req.BudgetPerPerson,
        HasRoom:          req.HasRoom,
        RoomImages:       req.RoomImages,
        TotalRoomRent:    req.TotalRoomRent,
        RentPerRoommate:  req.RentPerRoommate,
        RoomDescription:  req.RoomDescription,
        Description:      req.Description,
    }
    if err := h.Posts.Create(ctx, &p); err != nil {
        if err == repository.ErrPostExists {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "you can create only one post, edit or delete it first"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create post"})
    }

    created, err := h.Posts.GetByID(ctx, p.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create post"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "roommate post created successfully",
        "post":    postResp(created),
    })
}

// AllPosts handles GET /api/user-post/all-posts: active posts from
// everyone but the caller, newest first, with owner details.
func (h *PostHandler) AllPosts(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Posts.ListAvailable(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch posts"})
    }
    out := make([]browsePostOut, 0, len(items))
    for _, it := range items {
        out = append(out, browsePostOut{postOut: postResp(it.Post), User: it.Owner})
    }
    return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// MyPosts handles GET /api/user-post/my-post.
func (h *PostHandler) MyPosts(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    posts, err := h.Posts.ListByUser(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch your posts"})
    }
    out := make([]postOut, 0, len(posts))
    for _, p := range posts {
        out = append(out, postResp(p))
    }
    return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// GetOne handles GET /api/user-post/get/:id. The owner sees their post
// in any state; everyone else only while it is active, so inactive
// posts are not fetchable by id.
func (h *PostHandler) GetOne(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Posts.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch post"})
    }
    if p.UserID != callerID && !p.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
    }
    return c.JSON(http.StatusOK, echo.Map{"post": postResp(p)})
}

// updatePostReq is the allow-listed patch. Pointer fields distinguish
// "absent" from zero values.
type updatePostReq struct {
    City             *string   `json:"city"`
    Area             *string   `json:"area"`
    LookingForGender *string   `json:"lookingForGender"`
    FromDate         *string   `json:"fromDate"`
    ToDate           *string   `json:"toDate"`
    MinStayDuration  *uint16   `json:"minStayDuration"`
    BudgetPerPerson  *uint32   `json:"budgetPerPerson"`
    HasRoom          *bool     `json:"hasRoom"`
    RoomImages       *[]string `json:"roomImages"`
    TotalRoomRent    *uint32   `json:"totalRoomRent"`
    RentPerRoommate  *uint32   `json:"rentPerRoommate"`
    RoomDescription  *string   `json:"roomDescription"`
    Description      *string   `json:"description"`
    IsActive         *bool     `json:"isActive"`
}

// Update handles PUT /api/user-post/update/:id. Only the owner may
// edit, and only the allow-listed fields apply.
func (h *PostHandler) Update(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req updatePostReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.LookingForGender != nil && !validLookingFor(*req.LookingForGender) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lookingForGender"})
    }
    for _, d := range []*string{req.FromDate, req.ToDate} {
        if d != nil {
            if _, err := time.Parse(dateLayout, *d); err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
            }
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Posts.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if p.UserID != callerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your post"})
    }

    updated, err := h.Posts.Update(ctx, id, repository.PostPatch{
        City:             req.City,
        Area:             req.Area,
        LookingForGender: req.LookingForGender,
        FromDate:         req.FromDate,
        ToDate:           req.ToDate,
        MinStayMonths:    req.MinStayDuration,
        BudgetPerPerson:  req.BudgetPerPerson,
        HasRoom:          req.HasRoom,
        RoomImages:       req.RoomImages,
        TotalRoomRent:    req.TotalRoomRent,
        RentPerRoommate:  req.RentPerRoommate,
        RoomDescription:  req.RoomDescription,
        Description:      req.Description,
        IsActive:         req.IsActive,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "post updated successfully",
        "post":    postResp(updated),
    })
}

// ToggleActive handles PUT /api/user-post/toggle/:id and flips the
// post's visibility.
func (h *PostHandler) ToggleActive(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Posts.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
    }
    if p.UserID != callerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your post"})
    }

    active, err := h.Posts.ToggleActive(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
    }
    msg := "post disabled successfully"
    if active {
        msg = "post enabled successfully"
    }
    return c.JSON(http.StatusOK, echo.Map{
        "isActive": active,
        "message":  msg,
    })
}

// Delete handles DELETE /api/user-post/delete/:id.
func (h *PostHandler) Delete(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Posts.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    if p.UserID != callerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your post"})
    }

    if err := h.Posts.Delete(ctx, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "post deleted successfully"})
}
