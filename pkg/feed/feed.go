package feed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"pulse/pkg/moderation"
	"pulse/pkg/post"
)

type (
	PostLister interface {
		List(context.Context, post.ListOptions) ([]*post.Post, error)
	}
	ExclusionSource interface {
		Exclusions(ctx context.Context, viewerId string) (moderation.Exclusions, error)
	}
	FollowGraph interface {
		FollowingIds(ctx context.Context, userId string) ([]string, error)
	}
)

type Query struct {
	Limit   int64
	Cursor  *post.Cursor
	Type    string
	Hashtag string

	// Recent disables engagement ranking: pure recency order, no
	// follow boost.
	Recent bool
}

// Assembler builds the main feed. The follow graph is a ranking signal
// only, not a visibility filter: public posts from non-followed authors
// stay in, posts from followees rank higher.
type Assembler struct {
	Posts      PostLister
	Moderation ExclusionSource
	Follows    FollowGraph
}

func NewAssembler(posts PostLister, mod ExclusionSource, follows FollowGraph) *Assembler {
	return &Assembler{Posts: posts, Moderation: mod, Follows: follows}
}

// Get returns one page of the viewer's feed plus the cursor for the
// next page (nil when exhausted). Stateless: everything consulted lives
// in the data store.
func (a *Assembler) Get(ctx context.Context, viewerId string, q Query) ([]*post.Post, *post.Cursor, error) {
	// Tribe posts never surface here, only via the tribe endpoint.
	match := bson.M{"tribeId": ""}
	if q.Type != "" {
		match["type"] = q.Type
	}
	if q.Hashtag != "" {
		match["hashtags"] = q.Hashtag
	}

	excl, err := a.Moderation.Exclusions(ctx, viewerId)
	if err != nil {
		return nil, nil, err
	}

	opts := post.ListOptions{
		Match:            match,
		ExcludeAuthorIds: excl.BlockedUserIds,
		ExcludePostIds:   excl.ReportedPostIds,
		Cursor:           q.Cursor,
		Limit:            q.Limit,
	}

	if !q.Recent {
		following, err := a.Follows.FollowingIds(ctx, viewerId)
		if err != nil {
			return nil, nil, err
		}
		opts.RankByEngagement = true
		opts.BoostAuthorIds = following
	}

	posts, err := a.Posts.List(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return posts, post.NextCursor(posts, q.Limit), nil
}
