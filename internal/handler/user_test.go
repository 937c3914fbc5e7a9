package handler

import (
    "encoding/json"
    "net/http"
    "regexp"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock) {
    db, mock := newMockDB(t)
    return NewUserHandler(repository.NewUserRepo(db), repository.NewRequestRepo(db)), mock
}

func TestAllUsersHidesContactDetails(t *testing.T) {
    h, mock := newUserHandler(t)

    rows := sqlmock.NewRows(profileRowCols).
        AddRow(profileRowVals(2, "Ravi", "1112223333")...).
        AddRow(profileRowVals(3, "Meera", "4445556666")...)
    mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id<>?")).
        WithArgs(uint64(1)).
        WillReturnRows(rows)

    c, rec := newJSONContext(t, http.MethodGet, "/api/user/all-users", "", 1)
    require.NoError(t, h.AllUsers(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    var resp struct {
        Users []map[string]interface{} `json:"users"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Len(t, resp.Users, 2)
    for _, u := range resp.Users {
        assert.NotContains(t, u, "phone")
        assert.NotContains(t, u, "email")
    }
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewProfilePhoneGate(t *testing.T) {
    t.Run("no accepted connection hides the phone", func(t *testing.T) {
        h, mock := newUserHandler(t)

        rows := sqlmock.NewRows(profileRowCols).AddRow(profileRowVals(2, "Ravi", "1112223333")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(2)).
            WillReturnRows(rows)
        mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM requests")).
            WithArgs(model.StatusAccepted, uint64(1), uint64(2), uint64(2), uint64(1)).
            WillReturnRows(sqlmock.NewRows([]string{"1"}))

        c, rec := newJSONContext(t, http.MethodGet, "/api/user/user-profile/2", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("2")
        require.NoError(t, h.ViewProfile(c))
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.NotContains(t, rec.Body.String(), "1112223333")
        assert.Contains(t, rec.Body.String(), `"isRequestAccepted":false`)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("accepted connection reveals the phone", func(t *testing.T) {
        h, mock := newUserHandler(t)

        rows := sqlmock.NewRows(profileRowCols).AddRow(profileRowVals(2, "Ravi", "1112223333")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(2)).
            WillReturnRows(rows)
        mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM requests")).
            WithArgs(model.StatusAccepted, uint64(1), uint64(2), uint64(2), uint64(1)).
            WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

        c, rec := newJSONContext(t, http.MethodGet, "/api/user/user-profile/2", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("2")
        require.NoError(t, h.ViewProfile(c))
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.Contains(t, rec.Body.String(), "1112223333")
        assert.Contains(t, rec.Body.String(), `"isRequestAccepted":true`)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("own profile keeps the phone without a ledger query", func(t *testing.T) {
        h, mock := newUserHandler(t)

        rows := sqlmock.NewRows(profileRowCols).AddRow(profileRowVals(1, "Asha", "9876543210")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(1)).
            WillReturnRows(rows)

        c, rec := newJSONContext(t, http.MethodGet, "/api/user/user-profile/1", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("1")
        require.NoError(t, h.ViewProfile(c))
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.Contains(t, rec.Body.String(), "9876543210")
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("unknown user is 404", func(t *testing.T) {
        h, mock := newUserHandler(t)

        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(99)).
            WillReturnRows(sqlmock.NewRows(profileRowCols))

        c, rec := newJSONContext(t, http.MethodGet, "/api/user/user-profile/99", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("99")
        require.NoError(t, h.ViewProfile(c))
        assert.Equal(t, http.StatusNotFound, rec.Code)
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}

func TestUpdateProfile(t *testing.T) {
    t.Run("invalid gender is rejected", func(t *testing.T) {
        h, _ := newUserHandler(t)
        c, rec := newJSONContext(t, http.MethodPut, "/api/user/profile",
            `{"gender":"unknown"}`, 1)
        require.NoError(t, h.UpdateProfile(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("path id never overrides the session user", func(t *testing.T) {
        h, mock := newUserHandler(t)

        mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET city=? WHERE id=?")).
            WithArgs("Mumbai", uint64(1)).
            WillReturnResult(sqlmock.NewResult(0, 1))
        rows := sqlmock.NewRows(profileRowCols).AddRow(profileRowVals(1, "Asha", "9876543210")...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
            WithArgs(uint64(1)).
            WillReturnRows(rows)

        // the caller claims to edit user 42; the session says user 1
        c, rec := newJSONContext(t, http.MethodPut, "/api/user/profile/42",
            `{"city":"Mumbai"}`, 1)
        c.SetParamNames("id")
        c.SetParamValues("42")
        require.NoError(t, h.UpdateProfile(c))
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}
