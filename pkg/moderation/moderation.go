package moderation

import (
	"time"

	"pulse/pkg/post"
)

type Block struct {
	Id            string    `bson:"id" json:"id"`
	UserId        string    `bson:"userId" json:"userId"`
	BlockedUserId string    `bson:"blockedUserId" json:"blockedUserId"`
	IsDeleted     bool      `bson:"isDeleted" json:"-"`
	Created       time.Time `bson:"createdAt" json:"created"`
	Updated       time.Time `bson:"updatedAt" json:"updated"`
}

// Reporting a post hides it for the reporter only, it is not a global
// takedown.
type Report struct {
	Id         string      `bson:"id" json:"id"`
	PostId     post.PostId `bson:"postId" json:"postId"`
	ReporterId string      `bson:"reporterId" json:"reporterId"`
	Reason     string      `bson:"reason" json:"reason"`
	IsDeleted  bool        `bson:"isDeleted" json:"-"`
	Created    time.Time   `bson:"createdAt" json:"created"`
}

// Exclusions is what a listing filters out for one viewer: everything
// authored by someone they blocked plus every post they reported.
// Computed once per request.
type Exclusions struct {
	BlockedUserIds  []string
	ReportedPostIds []post.PostId
}
