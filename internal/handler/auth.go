package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/yashk-tech/matchmate/internal/config"
    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/repository"
    "github.com/yashk-tech/matchmate/internal/utils"
)

// AuthHandler bundles dependencies for the signup/login/logout
// endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

// signupReq accepts the required identity fields plus the full optional
// profile, so a client can complete the profile in one step.
type signupReq struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Password string `json:"password"`
    Phone    string `json:"contact"`
    Gender   string `json:"gender"`
    Age      uint16 `json:"age"`

    University           string   `json:"university"`
    Course               string   `json:"course"`
    Year                 uint8    `json:"year"`
    City                 string   `json:"city"`
    State                string   `json:"state"`
    ProfilePic           string   `json:"profilePic"`
    SleepTime            string   `json:"sleepTime"`
    WakeTime             string   `json:"wakeTime"`
    Smoking              bool     `json:"smoking"`
    Drinking             bool     `json:"drinking"`
    CleanlinessLevel     string   `json:"cleanlinessLevel"`
    FoodPreference       string   `json:"foodPreference"`
    IntrovertOrExtrovert string   `json:"introvertOrExtrovert"`
    Personality          []string `json:"personality"`
    Hobbies              []string `json:"hobbies"`
    PreferredLanguages   []string `json:"preferredLanguages"`
    RoommateExpectations string   `json:"roommateExpectations"`
    GuestsAllowed        string   `json:"guestsAllowed"`
}

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// Signup creates the account and returns the stored profile. The
// response goes through the profile projection, so the password hash
// never reaches the client.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req signupReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Name == "" || req.Email == "" || req.Password == "" ||
        req.Phone == "" || req.Gender == "" || req.Age == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "all required fields must be filled"})
    }
    switch req.Gender {
    case model.GenderMale, model.GenderFemale, model.GenderOther:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gender"})
    }

    u := model.User{
        Email:                req.Email,
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

    if _, err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost); err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    created, err := h.Users.GetByID(ctx, u.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"user": profileResp(created)})
}

// Login verifies credentials and sets the HTTP-only session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email or password"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email or password"})
    }

    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }
    c.SetCookie(utils.SessionCookie(tok))

    return c.JSON(http.StatusOK, echo.Map{
        "message": "Welcome " + u.Name,
        "user":    profileResp(u),
    })
}

// Logout clears the session cookie. Idempotent: clearing an absent or
// expired session still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
    c.SetCookie(utils.ExpiredSessionCookie())
    return c.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}
