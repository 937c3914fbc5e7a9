package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/yashk-tech/matchmate/internal/model"
)

// PostRepo provides persistence for roommate-seeking posts.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = `id, user_id, city, area, looking_for_gender, from_date, to_date,
 min_stay_months, budget_per_person, has_room, room_images, total_room_rent,
 rent_per_roommate, room_description, description, is_active, created_at, updated_at`

// PostOwner is the reduced owner projection joined onto browse results.
type PostOwner struct {
    ID         uint64 `json:"id"`
    Name       string `json:"name"`
    Gender     string `json:"gender"`
    Age        uint16 `json:"age"`
    University string `json:"university"`
    Course     string `json:"course"`
    ProfilePic string `json:"profilePic"`
}

// PostWithOwner pairs a post with its owner's public details for the
// browse-posts screen.
type PostWithOwner struct {
    Post  model.Post
    Owner PostOwner
}

// Create inserts the post and populates its generated ID. The UNIQUE
// index on posts.user_id is the authoritative one-post-per-user guard:
// a duplicate insert, including one racing a concurrent create, maps to
// ErrPostExists.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
    if p.LookingForGender == "" {
        p.LookingForGender = model.LookingForAny
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO posts (user_id, city, area, looking_for_gender, from_date, to_date,
          min_stay_months, budget_per_person, has_room, room_images, total_room_rent,
          rent_per_roommate, room_description, description, is_active)
         VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
        p.UserID, p.City, p.Area, p.LookingForGender, p.FromDate, p.ToDate,
        p.MinStayMonths, p.BudgetPerPerson, p.HasRoom, jsonList(p.RoomImages),
        p.TotalRoomRent, p.RentPerRoommate, p.RoomDescription, p.Description, true)
    if err != nil {
        if isDuplicate(err) {
            return ErrPostExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    p.IsActive = true
    return nil
}

// HasByUser reports whether the user already owns a post. Used for the
// friendlier pre-check message on create; the unique index still backs
// it up.
func (r *PostRepo) HasByUser(ctx context.Context, userID uint64) (bool, error) {
    var one int
    err := r.DB.QueryRowContext(ctx,
        "SELECT 1 FROM posts WHERE user_id=? LIMIT 1", userID).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// GetByID fetches a post by id regardless of state or ownership.
// Returns ErrNotFound when absent. Visibility rules are applied by
// the handler, which knows who is asking.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
    row := r.DB.QueryRowContext(ctx,
        "SELECT "+postColumns+" FROM posts WHERE id=? LIMIT 1", id)
    var p model.Post
    if err := scanPost(row, &p); err != nil {
        if err == sql.ErrNoRows {
            return p, ErrNotFound
        }
        return p, err
    }
    return p, nil
}

// ListAvailable returns every active post except the caller's own,
// newest first, each joined with its owner's public details.
func (r *PostRepo) ListAvailable(ctx context.Context, callerID uint64) ([]PostWithOwner, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT p.id, p.user_id, p.city, p.area, p.looking_for_gender, p.from_date, p.to_date,
          p.min_stay_months, p.budget_per_person, p.has_room, p.room_images, p.total_room_rent,
          p.rent_per_roommate, p.room_description, p.description, p.is_active, p.created_at, p.updated_at,
          u.id, u.name, u.gender, u.age, u.university, u.course, u.profile_pic
         FROM posts p JOIN users u ON u.id = p.user_id
         WHERE p.is_active = 1 AND p.user_id <> ?
         ORDER BY p.created_at DESC`, callerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []PostWithOwner{}
    for rows.Next() {
        var (
            item   PostWithOwner
            gender sql.NullString
            age    sql.NullInt32
        )
        if err := scanPostCols(rows, &item.Post,
            &item.Owner.ID, &item.Owner.Name, &gender, &age,
            &item.Owner.University, &item.Owner.Course, &item.Owner.ProfilePic); err != nil {
            return nil, err
        }
        item.Owner.Gender = gender.String
        if age.Valid {
            item.Owner.Age = uint16(age.Int32)
        }
        out = append(out, item)
    }
    return out, rows.Err()
}

// ListByUser returns the caller's own posts, newest first. Cardinality
// is 0 or 1 under the unique index but the result stays a list for the
// client's benefit.
func (r *PostRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Post, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+postColumns+" FROM posts WHERE user_id=? ORDER BY created_at DESC", userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    posts := []model.Post{}
    for rows.Next() {
        var p model.Post
        if err := scanPost(rows, &p); err != nil {
            return nil, err
        }
        posts = append(posts, p)
    }
    return posts, rows.Err()
}

// PostPatch carries the allow-listed updatable fields. Nil pointers are
// left unchanged.
type PostPatch struct {
    City             *string
    Area             *string
    LookingForGender *string
    FromDate         *string // "2006-01-02"
    ToDate           *string
    MinStayMonths    *uint16
    BudgetPerPerson  *uint32
    HasRoom          *bool
    RoomImages       *[]string
    TotalRoomRent    *uint32
    RentPerRoommate  *uint32
    RoomDescription  *string
    Description      *string
    IsActive         *bool
}

// Update applies the provided fields to the post and returns the
// refreshed record. The caller is responsible for the ownership check.
func (r *PostRepo) Update(ctx context.Context, id uint64, p PostPatch) (model.Post, error) {
    sets := []string{}
    args := []interface{}{}
    add := func(col string, v interface{}) {
        sets = append(sets, col+"=?")
        args = append(args, v)
    }
    if p.City != nil {
        add("city", *p.City)
    }
    if p.Area != nil {
        add("area", *p.Area)
    }
    if p.LookingForGender != nil {
        add("looking_for_gender", *p.LookingForGender)
    }
    if p.FromDate != nil {
        add("from_date", *p.FromDate)
    }
    if p.ToDate != nil {
        add("to_date", *p.ToDate)
    }
    if p.MinStayMonths != nil {
        add("min_stay_months", *p.MinStayMonths)
    }
    if p.BudgetPerPerson != nil {
        add("budget_per_person", *p.BudgetPerPerson)
    }
    if p.HasRoom != nil {
        add("has_room", *p.HasRoom)
    }
    if p.RoomImages != nil {
        add("room_images", jsonList(*p.RoomImages))
    }
    if p.TotalRoomRent != nil {
        add("total_room_rent", *p.TotalRoomRent)
    }
    if p.RentPerRoommate != nil {
        add("rent_per_roommate", *p.RentPerRoommate)
    }
    if p.RoomDescription != nil {
        add("room_description", *p.RoomDescription)
    }
    if p.Description != nil {
        add("description", *p.Description)
    }
    if p.IsActive != nil {
        add("is_active", *p.IsActive)
    }

    if len(sets) > 0 {
        q := "UPDATE posts SET " + strings.Join(sets, ", ") + " WHERE id=?"
        args = append(args, id)
        if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
            return model.Post{}, err
        }
    }
    return r.GetByID(ctx, id)
}

// ToggleActive flips the post's is_active flag and returns the new
// value.
func (r *PostRepo) ToggleActive(ctx context.Context, id uint64) (bool, error) {
    if _, err := r.DB.ExecContext(ctx,
        "UPDATE posts SET is_active = NOT is_active WHERE id=?", id); err != nil {
        return false, err
    }
    var active bool
    err := r.DB.QueryRowContext(ctx,
        "SELECT is_active FROM posts WHERE id=? LIMIT 1", id).Scan(&active)
    if err == sql.ErrNoRows {
        return false, ErrNotFound
    }
    return active, err
}

// Delete removes the post permanently. The caller is responsible for
// the ownership check.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrNotFound
    }
    return nil
}

func scanPost(s rowScanner, p *model.Post) error {
    return scanPostCols(s, p)
}

// scanPostCols scans the postColumns set into p, then any extra
// destinations (used by the owner join in ListAvailable).
func scanPostCols(s rowScanner, p *model.Post, extra ...interface{}) error {
    var (
        images               sql.NullString
        totalRent, rentShare sql.NullInt64
        roomDesc, desc       sql.NullString
    )
    dest := []interface{}{
        &p.ID, &p.UserID, &p.City, &p.Area, &p.LookingForGender,
        &p.FromDate, &p.ToDate, &p.MinStayMonths, &p.BudgetPerPerson,
        &p.HasRoom, &images, &totalRent, &rentShare,
        &roomDesc, &desc, &p.IsActive,
        &p.CreatedAt, &p.UpdatedAt,
    }
    dest = append(dest, extra...)
    if err := s.Scan(dest...); err != nil {
        return err
    }
    p.RoomImages = parseList(images)
    p.RoomDescription = roomDesc.String
    p.Description = desc.String
    if totalRent.Valid {
        v := uint32(totalRent.Int64)
        p.TotalRoomRent = &v
    }
    if rentShare.Valid {
        v := uint32(rentShare.Int64)
        p.RentPerRoommate = &v
    }
    return nil
}
