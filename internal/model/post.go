package model

import "time"

// LookingForGender enumerates posts.looking_for_gender.
const (
    LookingForMale   = "Male"
    LookingForFemale = "Female"
    LookingForAny    = "Any"
)

// Post is a user's roommate-seeking listing as stored in the
// `posts` table. Each user owns at most one post; the UNIQUE index
// on posts.user_id enforces that at the storage layer so two
// concurrent creates cannot both succeed.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – owner of the post (unique).
//  City, Area       – where the roommate is sought.
//  LookingForGender – Male/Female/Any, defaults to Any.
//  FromDate, ToDate – availability window.
//  MinStayMonths    – minimum stay in months.
//  BudgetPerPerson  – expected budget per roommate.
//  HasRoom          – whether the poster already has a room.
//  RoomImages       – image URLs (JSON), only meaningful with HasRoom.
//  TotalRoomRent    – full rent of the room/flat (nullable).
//  RentPerRoommate  – share each roommate pays (nullable).
//  RoomDescription  – free text about the room.
//  Description      – free text about the listing.
//  IsActive         – whether the post shows up in browse results.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Post struct {
    ID               uint64    // posts.id
    UserID           uint64    // posts.user_id
    City             string    // posts.city
    Area             string    // posts.area
    LookingForGender string    // posts.looking_for_gender
    FromDate         time.Time // posts.from_date
    ToDate           time.Time // posts.to_date
    MinStayMonths    uint16    // posts.min_stay_months
    BudgetPerPerson  uint32    // posts.budget_per_person
    HasRoom          bool      // posts.has_room
    RoomImages       []string  // posts.room_images (JSON)
    TotalRoomRent    *uint32   // posts.total_room_rent (nullable)
    RentPerRoommate  *uint32   // posts.rent_per_roommate (nullable)
    RoomDescription  string    // posts.room_description
    Description      string    // posts.description
    IsActive         bool      // posts.is_active
    CreatedAt        time.Time // posts.created_at
    UpdatedAt        time.Time // posts.updated_at
}
