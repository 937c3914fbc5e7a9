package repository

import (
    "context"
    "database/sql/driver"
    "errors"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/yashk-tech/matchmate/internal/model"
)

var userCols = []string{
    "id", "email", "name", "age", "gender", "university", "course", "year", "phone",
    "city", "state", "profile_pic", "sleep_time", "wake_time", "smoking", "drinking",
    "cleanliness_level", "food_preference", "introvert_or_extrovert",
    "personality", "hobbies", "preferred_languages", "roommate_expectations",
    "guests_allowed", "created_at", "updated_at",
}

func userRow(t *testing.T, id uint64, email, name string) []driver.Value {
    t.Helper()
    now := time.Now().UTC()
    return []driver.Value{
        id, email, name, 21, "Female", "DU", "B.Sc", 2, "9876543210",
        "Delhi", "Delhi", "", "23:00", "07:00", false, false,
        "Average", "Veg", "Introvert",
        `["calm","organized"]`, nil, nil, "quiet and tidy",
        "Yes", now, now,
    }
}

func TestUserRepoCreate(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    t.Run("success returns new id and lowercases email", func(t *testing.T) {
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
            WillReturnResult(sqlmock.NewResult(7, 1))

        u := model.User{Email: "  Asha@Example.COM ", Name: "Asha", Age: 21, Gender: model.GenderFemale, Phone: "9876543210"}
        id, err := repo.Create(context.Background(), &u, "secret123", bcrypt.MinCost)
        require.NoError(t, err)
        assert.Equal(t, uint64(7), id)
        assert.Equal(t, "asha@example.com", u.Email)
    })

    t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
            WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'asha@example.com' for key 'users.uq_users_email'"))

        u := model.User{Email: "asha@example.com", Name: "Asha", Age: 21, Gender: model.GenderFemale, Phone: "9876543210"}
        _, err := repo.Create(context.Background(), &u, "secret123", bcrypt.MinCost)
        assert.ErrorIs(t, err, ErrEmailExists)
    })

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByEmail(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    t.Run("found includes hash and decoded lists", func(t *testing.T) {
        cols := append([]string{"password_hash"}, userCols...)
        rows := sqlmock.NewRows(cols)
        vals := append([]driver.Value{"$2a$10$hash"}, userRow(t, 1, "asha@example.com", "Asha")...)
        rows.AddRow(vals...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
            WithArgs("asha@example.com").
            WillReturnRows(rows)

        u, err := repo.GetByEmail(context.Background(), "Asha@Example.com")
        require.NoError(t, err)
        assert.Equal(t, "$2a$10$hash", u.PasswordHash)
        assert.Equal(t, uint64(1), u.ID)
        assert.Equal(t, []string{"calm", "organized"}, u.Personality)
        assert.Nil(t, u.Hobbies)
    })

    t.Run("missing maps to ErrNotFound", func(t *testing.T) {
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
            WithArgs("nobody@example.com").
            WillReturnRows(sqlmock.NewRows(append([]string{"password_hash"}, userCols...)))

        _, err := repo.GetByEmail(context.Background(), "nobody@example.com")
        assert.ErrorIs(t, err, ErrNotFound)
    })

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByID(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    rows := sqlmock.NewRows(userCols)
    rows.AddRow(userRow(t, 3, "ravi@example.com", "Ravi")...)
    mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
        WithArgs(uint64(3)).
        WillReturnRows(rows)

    u, err := repo.GetByID(context.Background(), 3)
    require.NoError(t, err)
    assert.Equal(t, "Ravi", u.Name)
    assert.Empty(t, u.PasswordHash)

    mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows(userCols))
    _, err = repo.GetByID(context.Background(), 99)
    assert.ErrorIs(t, err, ErrNotFound)

    // A row with NULL roommate_expectations still scans cleanly.
    nullRow := userRow(t, 5, "meera@example.com", "Meera")
    nullRow[22] = nil
    mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows(userCols).AddRow(nullRow...))
    u, err = repo.GetByID(context.Background(), 5)
    require.NoError(t, err)
    assert.Empty(t, u.RoommateExpectations)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoListOthers(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    rows := sqlmock.NewRows(userCols)
    rows.AddRow(userRow(t, 2, "b@example.com", "B")...)
    rows.AddRow(userRow(t, 3, "c@example.com", "C")...)
    mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id<>?")).
        WithArgs(uint64(1)).
        WillReturnRows(rows)

    users, err := repo.ListOthers(context.Background(), 1)
    require.NoError(t, err)
    require.Len(t, users, 2)
    assert.Equal(t, uint64(2), users[0].ID)
    assert.Equal(t, uint64(3), users[1].ID)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateProfile(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    t.Run("only provided fields are updated", func(t *testing.T) {
        city := "Mumbai"
        hobbies := []string{"chess"}
        mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET city=?, hobbies=? WHERE id=?")).
            WithArgs("Mumbai", `["chess"]`, uint64(5)).
            WillReturnResult(sqlmock.NewResult(0, 1))
        rows := sqlmock.NewRows(userCols)
        rows.AddRow(userRow(t, 5, "e@example.com", "E")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(5)).
            WillReturnRows(rows)

        _, err := repo.UpdateProfile(context.Background(), 5, ProfilePatch{City: &city, Hobbies: &hobbies})
        assert.NoError(t, err)
    })

    t.Run("empty patch is a plain read", func(t *testing.T) {
        rows := sqlmock.NewRows(userCols)
        rows.AddRow(userRow(t, 5, "e@example.com", "E")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(5)).
            WillReturnRows(rows)

        u, err := repo.UpdateProfile(context.Background(), 5, ProfilePatch{})
        require.NoError(t, err)
        assert.Equal(t, uint64(5), u.ID)
    })

    assert.NoError(t, mock.ExpectationsWereMet())
}
