package comment

import (
	"time"

	"pulse/pkg/post"
	"pulse/pkg/user"
)

type CommentId string

type Comment struct {
	Id        CommentId   `bson:"id" json:"id"`
	PostId    post.PostId `bson:"postId" json:"postId"`
	AuthorId  string      `bson:"authorId" json:"-"`
	Author    *user.User  `bson:"-" json:"author,omitempty"`
	Body      string      `bson:"body" json:"body"`
	IsDeleted bool        `bson:"isDeleted" json:"-"`
	Created   time.Time   `bson:"createdAt" json:"created"`
}
