package inkwell

import "time"

// User represents a registered author. The password hash is persisted but
// never serialized into API responses.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	FullName     string    `json:"fullName" bson:"fullName"`
	Bio          string    `json:"bio" bson:"bio"`
	Avatar       string    `json:"avatar" bson:"avatar"`
	Created      time.Time `json:"createdAt" bson:"createdAt"`
}

// Summary returns the read-mostly projection of the user that is embedded in
// blog and comment responses.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// UserSummary is the subject identity as it appears on authored resources.
type UserSummary struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	FullName string `json:"fullName" bson:"fullName"`
	Avatar   string `json:"avatar" bson:"avatar"`
}

// UserUpdate is a partial update to a user profile. Nil fields are left
// untouched; the merge is shallow.
type UserUpdate struct {
	FullName *string `json:"fullName,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
