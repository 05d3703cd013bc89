package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	Address    string             `bson:"address" json:"address"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	EmployeeID string             `bson:"employeeId" json:"employeeId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
