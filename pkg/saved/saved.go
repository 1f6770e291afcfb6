package saved

import (
	"time"

	"pulse/pkg/post"
)

// Saved-post membership is bounded per user and not write-hot, so this
// is the one listing that paginates by page/limit instead of a cursor.
// A bookmark is a plain edge with nothing derived from it, so unsaving
// removes the row outright; a re-save is a fresh edge with a fresh
// save time.
type SavedPost struct {
	UserId  string      `bson:"userId" json:"userId"`
	PostId  post.PostId `bson:"postId" json:"postId"`
	Created time.Time   `bson:"createdAt" json:"created"`
}
