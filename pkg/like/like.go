package like

import (
	"time"
)

const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Like rows are soft-deleted: toggling like/unlike flips IsDeleted on
// the one row per (user, target) instead of inserting and removing.
type Like struct {
	Id         string    `bson:"id" json:"id"`
	TargetId   string    `bson:"targetId" json:"targetId"`
	TargetType string    `bson:"targetType" json:"targetType"`
	UserId     string    `bson:"userId" json:"userId"`
	IsDeleted  bool      `bson:"isDeleted" json:"-"`
	Created    time.Time `bson:"createdAt" json:"created"`
	Updated    time.Time `bson:"updatedAt" json:"updated"`
}
