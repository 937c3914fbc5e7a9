package handler

import (
    "database/sql"
    "database/sql/driver"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
)

// newMockDB returns a sqlmock-backed *sql.DB and closes it when the
// test ends.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return db, mock
}

// newJSONContext builds an echo.Context for a JSON request with the
// given authenticated user already injected, the way the auth
// middleware would.
func newJSONContext(t *testing.T, method, path, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, path, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, path, nil)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if userID != 0 {
        c.Set("user_id", userID)
    }
    return c, rec
}

// profileRowCols matches the repository's profileColumns selection.
var profileRowCols = []string{
    "id", "email", "name", "age", "gender", "university", "course", "year", "phone",
    "city", "state", "profile_pic", "sleep_time", "wake_time", "smoking", "drinking",
    "cleanliness_level", "food_preference", "introvert_or_extrovert",
    "personality", "hobbies", "preferred_languages", "roommate_expectations",
    "guests_allowed", "created_at", "updated_at",
}

func profileRowVals(id uint64, name, phone string) []driver.Value {
    now := time.Now().UTC()
    return []driver.Value{
        id, "user" + name + "@example.com", name, 21, "Female", "DU", "B.Sc", 2, phone,
        "Delhi", "Delhi", "", "23:00", "07:00", false, false,
        "Average", "Veg", "Introvert",
        nil, nil, nil, "", "Yes", now, now,
    }
}

var postRowCols = []string{
    "id", "user_id", "city", "area", "looking_for_gender", "from_date", "to_date",
    "min_stay_months", "budget_per_person", "has_room", "room_images", "total_room_rent",
    "rent_per_roommate", "room_description", "description", "is_active", "created_at", "updated_at",
}

func postRowVals(id, userID uint64, active bool) []driver.Value {
    now := time.Now().UTC()
    from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
    return []driver.Value{
        id, userID, "Delhi", "Hauz Khas", "Any", from, from.AddDate(1, 0, 0),
        6, 9000, false, nil, nil, nil, "", "clean and quiet", active, now, now,
    }
}

var requestRowCols = []string{"id", "sender_id", "receiver_id", "status", "created_at", "updated_at"}

func requestRowVals(id, sender, receiver uint64, status string) []driver.Value {
    now := time.Now().UTC()
    return []driver.Value{id, sender, receiver, status, now, now}
}
