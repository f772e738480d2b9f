package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName" json:"lastName"`
	Authenticated bool               `bson:"authenticated" json:"authenticated"`
	OTP           string             `bson:"otp,omitempty" json:"-"`
	OTPExpiry     *time.Time         `bson:"otpExpiry,omitempty" json:"-"`
}
