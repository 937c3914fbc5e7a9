package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/yashk-tech/matchmate/internal/model"
    "github.com/yashk-tech/matchmate/internal/utils"
)

// UserRepo provides persistence for user accounts and profiles.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// profileColumns is every users column except password_hash. Queries
// that feed API responses select exactly this list so the hash never
// leaves the repository unless explicitly asked for.
const profileColumns = `id, email, name, age, gender, university, course, year, phone,
 city, state, profile_pic, sleep_time, wake_time, smoking, drinking,
 cleanliness_level, food_preference, introvert_or_extrovert,
 personality, hobbies, preferred_languages, roommate_expectations,
 guests_allowed, created_at, updated_at`

// Create inserts a user with a freshly hashed password and returns the
// new ID. The email is normalized to lowercase before insertion; the
// UNIQUE index on users.email turns races into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
    u.Email = strings.ToLower(strings.TrimSpace(u.Email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO users (email, password_hash, name, age, gender, university, course, year,
          phone, city, state, profile_pic, sleep_time, wake_time, smoking, drinking,
          cleanliness_level, food_preference, introvert_or_extrovert, personality, hobbies,
          preferred_languages, roommate_expectations, guests_allowed)
         VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
        u.Email, hash, u.Name, u.Age, nullStr(u.Gender), u.University, u.Course, u.Year,
        u.Phone, u.City, u.State, u.ProfilePic, u.SleepTime, u.WakeTime, u.Smoking, u.Drinking,
        nullStr(u.CleanlinessLevel), nullStr(u.FoodPreference), nullStr(u.IntrovertOrExtrovert),
        jsonList(u.Personality), jsonList(u.Hobbies), jsonList(u.PreferredLanguages),
        u.RoommateExpectations, nullStr(u.GuestsAllowed))
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    u.ID = uint64(id)
    return u.ID, nil
}

// GetByEmail fetches a user by normalized email, including the password
// hash for credential verification. Returns ErrNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    row := r.DB.QueryRowContext(ctx,
        "SELECT password_hash, "+profileColumns+" FROM users WHERE email=? LIMIT 1", email)
    var u model.User
    if err := scanUserWithHash(row, &u); err != nil {
        if err == sql.ErrNoRows {
            return u, ErrNotFound
        }
        return u, err
    }
    return u, nil
}

// GetByID fetches a user's profile by id. The password hash is not
// loaded. Returns ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    row := r.DB.QueryRowContext(ctx,
        "SELECT "+profileColumns+" FROM users WHERE id=? LIMIT 1", id)
    var u model.User
    if err := scanUser(row, &u); err != nil {
        if err == sql.ErrNoRows {
            return u, ErrNotFound
        }
        return u, err
    }
    return u, nil
}

// ListOthers returns every user except the caller, ordered by newest
// signup first. Used by the browse-roommates screen.
func (r *UserRepo) ListOthers(ctx context.Context, callerID uint64) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+profileColumns+" FROM users WHERE id<>? ORDER BY created_at DESC", callerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    users := []model.User{}
    for rows.Next() {
        var u model.User
        if err := scanUser(rows, &u); err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    return users, rows.Err()
}

// ProfilePatch carries an arbitrary subset of profile fields for an
// update. Nil pointers mean "leave unchanged"; only provided fields end
// up in the UPDATE statement.
type ProfilePatch struct {
    Name                 *string
    Age                  *uint16
    Gender               *string
    University           *string
    Course               *string
    Year                 *uint8
    Phone                *string
    City                 *string
    State                *string
    ProfilePic           *string
    SleepTime            *string
    WakeTime             *string
    Smoking              *bool
    Drinking             *bool
    CleanlinessLevel     *string
    FoodPreference       *string
    IntrovertOrExtrovert *string
    Personality          *[]string
    Hobbies              *[]string
    PreferredLanguages   *[]string
    RoommateExpectations *string
    GuestsAllowed        *string
}

// UpdateProfile applies the provided fields to the user's row and
// returns the refreshed profile. A patch with no fields set is a no-op
// read. Returns ErrNotFound when the user does not exist.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p ProfilePatch) (model.User, error) {
    sets := []string{}
    args := []interface{}{}
    add := func(col string, v interface{}) {
        sets = append(sets, col+"=?")
        args = append(args, v)
    }
    if p.Name != nil {
        add("name", *p.Name)
    }
    if p.Age != nil {
        add("age", *p.Age)
    }
    if p.Gender != nil {
        add("gender", nullStr(*p.Gender))
    }
    if p.University != nil {
        add("university", *p.University)
    }
    if p.Course != nil {
        add("course", *p.Course)
    }
    if p.Year != nil {
        add("year", *p.Year)
    }
    if p.Phone != nil {
        add("phone", *p.Phone)
    }
    if p.City != nil {
        add("city", *p.City)
    }
    if p.State != nil {
        add("state", *p.State)
    }
    if p.ProfilePic != nil {
        add("profile_pic", *p.ProfilePic)
    }
    if p.SleepTime != nil {
        add("sleep_time", *p.SleepTime)
    }
    if p.WakeTime != nil {
        add("wake_time", *p.WakeTime)
    }
    if p.Smoking != nil {
        add("smoking", *p.Smoking)
    }
    if p.Drinking != nil {
        add("drinking", *p.Drinking)
    }
    if p.CleanlinessLevel != nil {
        add("cleanliness_level", nullStr(*p.CleanlinessLevel))
    }
    if p.FoodPreference != nil {
        add("food_preference", nullStr(*p.FoodPreference))
    }
    if p.IntrovertOrExtrovert != nil {
        add("introvert_or_extrovert", nullStr(*p.IntrovertOrExtrovert))
    }
    if p.Personality != nil {
        add("personality", jsonList(*p.Personality))
    }
    if p.Hobbies != nil {
        add("hobbies", jsonList(*p.Hobbies))
    }
    if p.PreferredLanguages != nil {
        add("preferred_languages", jsonList(*p.PreferredLanguages))
    }
    if p.RoommateExpectations != nil {
        add("roommate_expectations", *p.RoommateExpectations)
    }
    if p.GuestsAllowed != nil {
        add("guests_allowed", nullStr(*p.GuestsAllowed))
    }

    if len(sets) > 0 {
        q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id=?"
        args = append(args, id)
        if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
            return model.User{}, err
        }
    }
    return r.GetByID(ctx, id)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...interface{}) error }

func scanUser(s rowScanner, u *model.User) error {
    var (
        age                        sql.NullInt32
        gender, cleanliness        sql.NullString
        food, intro, guests        sql.NullString
        year                       sql.NullInt16
        personality, hobbies, lang sql.NullString
        expectations               sql.NullString
    )
    err := s.Scan(&u.ID, &u.Email, &u.Name, &age, &gender, &u.University, &u.Course, &year,
        &u.Phone, &u.City, &u.State, &u.ProfilePic, &u.SleepTime, &u.WakeTime,
        &u.Smoking, &u.Drinking, &cleanliness, &food, &intro,
        &personality, &hobbies, &lang, &expectations, &guests,
        &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return err
    }
    if age.Valid {
        u.Age = uint16(age.Int32)
    }
    if year.Valid {
        u.Year = uint8(year.Int16)
    }
    u.Gender = gender.String
    u.CleanlinessLevel = cleanliness.String
    u.FoodPreference = food.String
    u.IntrovertOrExtrovert = intro.String
    u.GuestsAllowed = guests.String
    u.RoommateExpectations = expectations.String
    u.Personality = parseList(personality)
    u.Hobbies = parseList(hobbies)
    u.PreferredLanguages = parseList(lang)
    return nil
}

func scanUserWithHash(s rowScanner, u *model.User) error {
    var (
        age                        sql.NullInt32
        gender, cleanliness        sql.NullString
        food, intro, guests        sql.NullString
        year                       sql.NullInt16
        personality, hobbies, lang sql.NullString
        expectations               sql.NullString
    )
    err := s.Scan(&u.PasswordHash,
        &u.ID, &u.Email, &u.Name, &age, &gender, &u.University, &u.Course, &year,
        &u.Phone, &u.City, &u.State, &u.ProfilePic, &u.SleepTime, &u.WakeTime,
        &u.Smoking, &u.Drinking, &cleanliness, &food, &intro,
        &personality, &hobbies, &lang, &expectations, &guests,
        &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return err
    }
    if age.Valid {
        u.Age = uint16(age.Int32)
    }
    if year.Valid {
        u.Year = uint8(year.Int16)
    }
    u.Gender = gender.String
    u.CleanlinessLevel = cleanliness.String
    u.FoodPreference = food.String
    u.IntrovertOrExtrovert = intro.String
    u.GuestsAllowed = guests.String
    u.RoommateExpectations = expectations.String
    u.Personality = parseList(personality)
    u.Hobbies = parseList(hobbies)
    u.PreferredLanguages = parseList(lang)
    return nil
}

// jsonList encodes a string slice for a JSON column. Empty slices are
// stored as NULL so unset lists stay distinguishable.
func jsonList(v []string) interface{} {
    if len(v) == 0 {
        return nil
    }
    b, err := json.Marshal(v)
    if err != nil {
        return nil
    }
    return string(b)
}

func parseList(ns sql.NullString) []string {
    if !ns.Valid || ns.String == "" {
        return nil
    }
    var out []string
    if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
        return nil
    }
    return out
}

// nullStr maps empty strings to NULL for enum columns that reject ''.
func nullStr(s string) interface{} {
    if s == "" {
        return nil
    }
    return s
}

// isDuplicate reports whether err is a MySQL duplicate-key violation.
func isDuplicate(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
