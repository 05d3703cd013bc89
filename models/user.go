package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Birthdate string             `bson:"birthdate" json:"birthdate"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserInfo is the profile companion document, one per user. It is created
// alongside the user at signup and upserted lazily by the dashboard on first
// write if it went missing.
type UserInfo struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Username         string             `bson:"username" json:"username"`
	Bio              string             `bson:"bio" json:"bio"`
	Email            string             `bson:"email" json:"email"`
	PrimaryAddress   string             `bson:"primaryAddress" json:"primaryAddress"`
	SecondaryAddress string             `bson:"secondaryAddress" json:"secondaryAddress"`
	OtherAddresses   []string           `bson:"otherAddresses" json:"otherAddresses"`
}

// UsernameFromEmail derives the display name from the local part of the
// address, e.g. "jane.doe@example.com" -> "jane.doe".
func UsernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
