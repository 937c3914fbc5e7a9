package model

import "time"

// Gender enumerates the values accepted by the users.gender column.
const (
    GenderMale   = "Male"
    GenderFemale = "Female"
    GenderOther  = "Other"
)

// Cleanliness levels stored in users.cleanliness_level.
const (
    CleanlinessMessy     = "Messy"
    CleanlinessAverage   = "Average"
    CleanlinessVeryClean = "Very Clean"
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The struct carries both the login identity (email and
// bcrypt hash) and the roommate profile the matching flows expose.
// List-valued columns (personality, hobbies, preferred_languages)
// are stored as JSON text and decoded by the repository layer.
//
// Fields:
//  ID                   – primary key identifier of the user.
//  Email                – unique email address, stored lowercase.
//  PasswordHash         – bcrypt hashed password, never serialized.
//  Name                 – display name.
//  Age                  – age in years.
//  Gender               – one of Male/Female/Other.
//  University, Course   – study details.
//  Year                 – year of study.
//  Phone                – contact number; exposure is gated on an
//                         accepted connection request.
//  City, State          – home location.
//  ProfilePic           – avatar URL.
//  SleepTime, WakeTime  – daily schedule, "HH:MM".
//  Smoking, Drinking    – lifestyle booleans.
//  CleanlinessLevel     – Messy/Average/Very Clean.
//  FoodPreference       – Veg/Non-Veg/Vegan/Eggetarian.
//  IntrovertOrExtrovert – Introvert/Extrovert/Ambivert.
//  Personality          – free-form personality traits.
//  Hobbies              – free-form hobby list.
//  PreferredLanguages   – languages the user prefers to speak.
//  RoommateExpectations – free text describing the ideal roommate.
//  GuestsAllowed        – "Yes"/"No".
//  CreatedAt            – timestamp of signup.
//  UpdatedAt            – timestamp of last profile update.
type User struct {
    ID                   uint64    // users.id
    Email                string    // users.email
    PasswordHash         string    // users.password_hash
    Name                 string    // users.name
    Age                  uint16    // users.age
    Gender               string    // users.gender
    University           string    // users.university
    Course               string    // users.course
    Year                 uint8     // users.year
    Phone                string    // users.phone
    City                 string    // users.city
    State                string    // users.state
    ProfilePic           string    // users.profile_pic
    SleepTime            string    // users.sleep_time
    WakeTime             string    // users.wake_time
    Smoking              bool      // users.smoking
    Drinking             bool      // users.drinking
    CleanlinessLevel     string    // users.cleanliness_level
    FoodPreference       string    // users.food_preference
    IntrovertOrExtrovert string    // users.introvert_or_extrovert
    Personality          []string  // users.personality (JSON)
    Hobbies              []string  // users.hobbies (JSON)
    PreferredLanguages   []string  // users.preferred_languages (JSON)
    RoommateExpectations string    // users.roommate_expectations
    GuestsAllowed        string    // users.guests_allowed
    CreatedAt            time.Time // users.created_at
    UpdatedAt            time.Time // users.updated_at
}
