package share

import (
	"time"

	"pulse/pkg/post"
)

// Both in-app reshares and external shares count towards engagement.
const (
	TypeInApp = "inAppShare"
	TypeShare = "share"
)

type Share struct {
	Id        string      `bson:"id" json:"id"`
	PostId    post.PostId `bson:"postId" json:"postId"`
	UserId    string      `bson:"userId" json:"userId"`
	ShareType string      `bson:"shareType" json:"shareType"`
	Created   time.Time   `bson:"createdAt" json:"created"`
}
