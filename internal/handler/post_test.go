package handler

import (
    "net/http"
    "regexp"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/yashk-tech/matchmate/internal/repository"
)

func newPostHandler(t *testing.T) (*PostHandler, sqlmock.Sqlmock) {
    db, mock := newMockDB(t)
    return NewPostHandler(repository.NewPostRepo(db)), mock
}

func TestCreatePost(t *testing.T) {
    validBody := `{"city":"Delhi","area":"Hauz Khas","fromDate":"2026-09-01","toDate":"2027-08-31","minStayDuration":6,"budgetPerPerson":9000,"description":"clean and quiet"}`

    t.Run("missing fields are rejected", func(t *testing.T) {
        h, _ := newPostHandler(t)
        c, rec := newJSONContext(t, http.MethodPost, "/api/user-post/create",
            `{"city":"Delhi"}`, 1)
        require.NoError(t, h.Create(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
        assert.Contains(t, rec.Body.String(), "required fields are missing")
    })

    t.Run("bad date format is rejected", func(t *testing.T) {
        h, _ := newPostHandler(t)
        c, rec := newJSONContext(t, http.MethodPost, "/api/user-post/create",
            `{"city":"Delhi","area":"Hauz Khas","fromDate":"01-09-2026","toDate":"2027-08-31","minStayDuration":6,"budgetPerPerson":9000}`, 1)
        require.NoError(t, h.Create(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
        assert.Contains(t, rec.Body.String(), "invalid fromDate")
    })

    t.Run("second post is refused", func(t *testing.T) {
        h, mock := newPostHandler(t)
        mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posts WHERE user_id=?")).
            WithArgs(uint64(1)).
            WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

        c, rec := newJSONContext(t, http.MethodPost, "/api/user-post/create", validBody, 1)
        require.NoError(t, h.Create(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
        assert.Contains(t, rec.Body.String(), "only one post")
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("success returns the stored post", func(t *testing.T) {
        h, mock := newPostHandler(t)
        mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posts WHERE user_id=?")).
            WithArgs(uint64(1)).
            WillReturnRows(sqlmock.NewRows([]string{"1"}))
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts")).
            WillReturnResult(sqlmock.NewResult(4, 1))
        rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, true)...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnRows(rows)

        c, rec := newJSONContext(t, http.MethodPost, "/api/user-post/create", validBody, 1)
        require.NoError(t, h.Create(c))
        assert.Equal(t, http.StatusCreated, rec.Code)
        assert.Contains(t, rec.Body.String(), `"isActive":true`)
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}

func TestGetOnePostVisibility(t *testing.T) {
    t.Run("owner sees an inactive post", func(t *testing.T) {
        h, mock := newPostHandler(t)
        rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, false)...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnRows(rows)

        c, rec := newJSONContext(t, http.MethodGet, "/api/user-post/get/4", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("4")
        require.NoError(t, h.GetOne(c))
        assert.Equal(t, http.StatusOK, rec.Code)
    })

    t.Run("inactive post is invisible to others", func(t *testing.T) {
        h, mock := newPostHandler(t)
        rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, false)...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnRows(rows)

        c, rec := newJSONContext(t, http.MethodGet, "/api/user-post/get/4", "", 2)
        c.SetParamNames("id")
        c.SetParamValues("4")
        require.NoError(t, h.GetOne(c))
        assert.Equal(t, http.StatusNotFound, rec.Code)
    })
}

func TestUpdatePostOwnership(t *testing.T) {
    h, mock := newPostHandler(t)
    rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, true)...)
    mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
        WithArgs(uint64(4)).
        WillReturnRows(rows)

    c, rec := newJSONContext(t, http.MethodPut, "/api/user-post/update/4",
        `{"city":"Mumbai"}`, 2)
    c.SetParamNames("id")
    c.SetParamValues("4")
    require.NoError(t, h.Update(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.Contains(t, rec.Body.String(), "not your post")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTogglePost(t *testing.T) {
    h, mock := newPostHandler(t)
    rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, true)...)
    mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
        WithArgs(uint64(4)).
        WillReturnRows(rows)
    mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET is_active = NOT is_active WHERE id=?")).
        WithArgs(uint64(4)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT is_active FROM posts WHERE id=?")).
        WithArgs(uint64(4)).
        WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(false))

    c, rec := newJSONContext(t, http.MethodPut, "/api/user-post/toggle/4", "", 1)
    c.SetParamNames("id")
    c.SetParamValues("4")
    require.NoError(t, h.ToggleActive(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"isActive":false`)
    assert.Contains(t, rec.Body.String(), "disabled")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost(t *testing.T) {
    t.Run("owner can delete", func(t *testing.T) {
        h, mock := newPostHandler(t)
        rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, true)...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnRows(rows)
        mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnResult(sqlmock.NewResult(0, 1))

        c, rec := newJSONContext(t, http.MethodDelete, "/api/user-post/delete/4", "", 1)
        c.SetParamNames("id")
        c.SetParamValues("4")
        require.NoError(t, h.Delete(c))
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("others cannot", func(t *testing.T) {
        h, mock := newPostHandler(t)
        rows := sqlmock.NewRows(postRowCols).AddRow(postRowVals(4, 1, true)...)
        mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id=?")).
            WithArgs(uint64(4)).
            WillReturnRows(rows)

        c, rec := newJSONContext(t, http.MethodDelete, "/api/user-post/delete/4", "", 2)
        c.SetParamNames("id")
        c.SetParamValues("4")
        require.NoError(t, h.Delete(c))
        assert.Equal(t, http.StatusForbidden, rec.Code)
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}
