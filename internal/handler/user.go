package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/repository"
)

// UserHandler serves the browse-roommates and profile endpoints. It
// needs the request repository as well: the profile view consults the
// connection ledger to decide whether the phone number is visible.
type UserHandler struct {
    Users    *repository.UserRepo
    Requests *repository.RequestRepo
}

func NewUserHandler(u *repository.UserRepo, r *repository.RequestRepo) *UserHandler {
    return &UserHandler{Users: u, Requests: r}
}

// profileOut is the full profile projection: everything except the
// password hash. Phone carries omitempty so the profile view can drop
// it for viewers without an accepted connection.
type profileOut struct {
    ID                   uint64    `json:"id"`
    Email                string    `json:"email"`
    Name                 string    `json:"name"`
    Age                  uint16    `json:"age"`
    Gender               string    `json:"gender"`
    University           string    `json:"university"`
    Course               string    `json:"course"`
    Year                 uint8     `json:"year"`
    Phone                string    `json:"phone,omitempty"`
    City                 string    `json:"city"`
    State                string    `json:"state"`
    ProfilePic           string    `json:"profilePic"`
    SleepTime            string    `json:"sleepTime"`
    WakeTime             string    `json:"wakeTime"`
    Smoking              bool      `json:"smoking"`
    Drinking             bool      `json:"drinking"`
    CleanlinessLevel     string    `json:"cleanlinessLevel"`
    FoodPreference       string    `json:"foodPreference"`
    IntrovertOrExtrovert string    `json:"introvertOrExtrovert"`
    Personality          []string  `json:"personality"`
    Hobbies              []string  `json:"hobbies"`
    PreferredLanguages   []string  `json:"preferredLanguages"`
    RoommateExpectations string    `json:"roommateExpectations"`
    GuestsAllowed        string    `json:"guestsAllowed"`
    CreatedAt            time.Time `json:"createdAt"`
}

func profileResp(u model.User) profileOut {
    return profileOut{
        ID:                   u.ID,
        Email:                u.Email,
        Name:                 u.Name,
        Age:                  u.Age,
        Gender:               u.Gender,
        University:           u.University,
        Course:               u.Course,
        Year:                 u.Year,
        Phone:                u.Phone,
        City:                 u.City,
        State:                u.State,
        ProfilePic:           u.ProfilePic,
        SleepTime:            u.SleepTime,
        WakeTime:             u.WakeTime,
        Smoking:              u.Smoking,
        Drinking:             u.Drinking,
        CleanlinessLevel:     u.CleanlinessLevel,
        FoodPreference:       u.FoodPreference,
        IntrovertOrExtrovert: u.IntrovertOrExtrovert,
        Personality:          u.Personality,
        Hobbies:              u.Hobbies,
        PreferredLanguages:   u.PreferredLanguages,
        RoommateExpectations: u.RoommateExpectations,
        GuestsAllowed:        u.GuestsAllowed,
        CreatedAt:            u.CreatedAt,
    }
}

// publicUserOut is the browse projection: lifestyle and preference
// fields but no email, no signup date and no phone number. Contact
// details stay behind the accepted-request gate.
type publicUserOut struct {
    ID                   uint64   `json:"id"`
    Name                 string   `json:"name"`
    Age                  uint16   `json:"age"`
    Gender               string   `json:"gender"`
    City                 string   `json:"city"`
    State                string   `json:"state"`
    University           string   `json:"university"`
    Course               string   `json:"course"`
    Year                 uint8    `json:"year"`
    ProfilePic           string   `json:"profilePic"`
    SleepTime            string   `json:"sleepTime"`
    WakeTime             string   `json:"wakeTime"`
    Smoking              bool     `json:"smoking"`
    Drinking             bool     `json:"drinking"`
    CleanlinessLevel     string   `json:"cleanlinessLevel"`
    FoodPreference       string   `json:"foodPreference"`
    IntrovertOrExtrovert string   `json:"introvertOrExtrovert"`
    Hobbies              []string `json:"hobbies"`
    PreferredLanguages   []string `json:"preferredLanguages"`
    RoommateExpectations string   `json:"roommateExpectations"`
}

func publicUserResp(u model.User) publicUserOut {
    return publicUserOut{
        ID:                   u.ID,
        Name:                 u.Name,
        Age:                  u.Age,
        Gender:               u.Gender,
        City:                 u.City,
        State:                u.State,
        University:           u.University,
        Course:               u.Course,
        Year:                 u.Year,
        ProfilePic:           u.ProfilePic,
        SleepTime:            u.SleepTime,
        WakeTime:             u.WakeTime,
        Smoking:              u.Smoking,
        Drinking:             u.Drinking,
        CleanlinessLevel:     u.CleanlinessLevel,
        FoodPreference:       u.FoodPreference,
        IntrovertOrExtrovert: u.IntrovertOrExtrovert,
        Hobbies:              u.Hobbies,
        PreferredLanguages:   u.PreferredLanguages,
        RoommateExpectations: u.RoommateExpectations,
    }
}

// AllUsers handles GET /api/user/all-users and returns every user
// except the caller, in the public projection.
func (h *UserHandler) AllUsers(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.ListOthers(ctx, callerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch users"})
    }
    out := make([]publicUserOut, 0, len(users))
    for _, u := range users {
        out = append(out, publicUserResp(u))
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// ViewProfile handles GET /api/user/user-profile/:id. The response is
// the full profile minus the phone number, unless an accepted request
// exists between caller and target in either direction; the
// isRequestAccepted flag mirrors that check for the client.
func (h *UserHandler) ViewProfile(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    targetID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, targetID)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch profile"})
    }

    accepted := false
    if callerID != targetID {
        accepted, err = h.Requests.HasAcceptedBetween(ctx, callerID, targetID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch profile"})
        }
    }

    out := profileResp(u)
    if !accepted && callerID != targetID {
        out.Phone = ""
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user":              out,
        "isRequestAccepted": accepted,
    })
}

// profilePatchReq mirrors repository.ProfilePatch with the client's
// field names. Absent fields stay untouched; provided fields, empty or
// not, are written.
type profilePatchReq struct {
    Name                 *string   `json:"name"`
    Age                  *uint16   `json:"age"`
    Gender               *string   `json:"gender"`
    University           *string   `json:"university"`
    Course               *string   `json:"course"`
    Year                 *uint8    `json:"year"`
    Phone                *string   `json:"phone"`
    City                 *string   `json:"city"`
    State                *string   `json:"state"`
    ProfilePic           *string   `json:"profilePic"`
    SleepTime            *string   `json:"sleepTime"`
    WakeTime             *string   `json:"wakeTime"`
    Smoking              *bool     `json:"smoking"`
    Drinking             *bool     `json:"drinking"`
    CleanlinessLevel     *string   `json:"cleanlinessLevel"`
    FoodPreference       *string   `json:"foodPreference"`
    IntrovertOrExtrovert *string   `json:"introvertOrExtrovert"`
    Personality          *[]string `json:"personality"`
    Hobbies              *[]string `json:"hobbies"`
    PreferredLanguages   *[]string `json:"preferredLanguages"`
    RoommateExpectations *string   `json:"roommateExpectations"`
    GuestsAllowed        *string   `json:"guestsAllowed"`
}

// UpdateProfile handles PUT /api/user/profile and
// PUT /api/user/profile/:id. The target is always the session user; an
// id in the path is ignored so a caller can never edit someone else.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
    callerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req profilePatchReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Gender != nil {
        switch *req.Gender {
        case model.GenderMale, model.GenderFemale, model.GenderOther:
        default:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gender"})
        }
    }

    patch := repository.ProfilePatch{
        Name:                 req.Name,
        Age:                  req.Age,
        Gender:               req.Gender,
        University:           req.University,
        Course:               req.Course,
        Year:                 req.Year,
        Phone:                req.Phone,
        City:                 req.City,
        State:                req.State,
        ProfilePic:           req.ProfilePic,
        SleepTime:            req.SleepTime,
        WakeTime:             req.WakeTime,
        Smoking:              req.Smoking,
        Drinking:             req.Drinking,
        CleanlinessLevel:     req.CleanlinessLevel,
        FoodPreference:       req.FoodPreference,
        IntrovertOrExtrovert: req.IntrovertOrExtrovert,
        Personality:          req.Personality,
        Hobbies:              req.Hobbies,
        PreferredLanguages:   req.PreferredLanguages,
        RoommateExpectations: req.RoommateExpectations,
        GuestsAllowed:        req.GuestsAllowed,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    updated, err := h.Users.UpdateProfile(ctx, callerID, patch)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "profile updated successfully",
        "user":    profileResp(updated),
    })
}
