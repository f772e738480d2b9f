package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnownKeys is the closed set of keys a category may be registered with.
var KnownKeys = []string{
	"md-del-9281",
	"md-mum-3745",
	"md-kol-5619",
	"md-hyd-8120",
	"shr-2318",
	"4min-4932",
	"ggn-7801",
	"kly-6663",
	"fbd-1577",
	"dsw-4492",
	"gzb-6208",
	"gli-3094",
	"md-9281",
}

type CategoryKey struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CategoryName string             `bson:"categoryname" json:"categoryname"`
	Key          string             `bson:"key" json:"key"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsKnownKey(key string) bool {
	return slices.Contains(KnownKeys, key)
}
