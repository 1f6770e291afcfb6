package stats

import (
	"context"

	"pulse/pkg/follow"
	"pulse/pkg/post"
	"pulse/pkg/vote"
)

type (
	CommentCounter interface {
		CountByPost(context.Context, []post.PostId) (map[post.PostId]int64, error)
	}

	LikeStats interface {
		CountByPost(context.Context, []post.PostId) (map[post.PostId]int64, error)
		ViewerLikes(ctx context.Context, viewerId string, postIds []post.PostId) (map[post.PostId]bool, error)
	}

	ShareCounter interface {
		CountByPost(context.Context, []post.PostId) (map[post.PostId]int64, error)
	}

	VoteStats interface {
		TallyByPost(context.Context, []post.PostId) (map[post.PostId]vote.Tally, error)
		ViewerVotes(ctx context.Context, viewerId string, postIds []post.PostId) (map[post.PostId]int, error)
	}

	FollowStats interface {
		FollowerCounts(context.Context, []string) (map[string]int64, error)
		ResolveStatus(ctx context.Context, viewerId string, candidateIds []string) (map[string]follow.StatusCode, error)
	}
)

// EnrichedPost is the read-time view of a post: the raw record plus
// every derived field a client renders. Recomputed on every request,
// never persisted.
type EnrichedPost struct {
	*post.Post

	CommentCount int64 `json:"commentCount"`
	LikeCount    int64 `json:"likeCount"`
	ShareCount   int64 `json:"shareCount"`
	UserLike     bool  `json:"userLike"`

	TotalVotes     int64               `json:"totalVotes,omitempty"`
	PollResults    []vote.OptionResult `json:"pollResults,omitempty"`
	UserVoted      bool                `json:"userVoted"`
	UserVoteOption *int                `json:"userVoteOption"`

	FollowerCount    int64             `json:"followerCount"`
	FollowStatusCode follow.StatusCode `json:"followStatusCode"`
	IsLoggedInUser   bool              `json:"isLoggedInUser"`
}

type Enricher struct {
	Comments CommentCounter
	Likes    LikeStats
	Shares   ShareCounter
	Votes    VoteStats
	Follows  FollowStats
}

func NewEnricher(comments CommentCounter, likes LikeStats, shares ShareCounter, votes VoteStats, follows FollowStats) *Enricher {
	return &Enricher{
		Comments: comments,
		Likes:    likes,
		Shares:   shares,
		Votes:    votes,
		Follows:  follows,
	}
}

// Enrich merges derived stats into the batch. One batched query per
// signal, never one per post; missing counts default to zero and
// viewer-specific fields stay at their guest defaults when viewerId
// is empty. Purely additive: every post comes back, in order.
func (e *Enricher) Enrich(ctx context.Context, posts []*post.Post, viewerId string) ([]*EnrichedPost, error) {
	enriched := make([]*EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return enriched, nil
	}

	postIds := make([]post.PostId, 0, len(posts))
	pollIds := []post.PostId{}
	authorSeen := map[string]bool{}
	authorIds := []string{}
	for _, p := range posts {
		postIds = append(postIds, p.Id)
		if p.Poll != nil {
			pollIds = append(pollIds, p.Id)
		}
		if !authorSeen[p.AuthorId] {
			authorSeen[p.AuthorId] = true
			authorIds = append(authorIds, p.AuthorId)
		}
	}

	commentCounts, err := e.Comments.CountByPost(ctx, postIds)
	if err != nil {
		return nil, err
	}
	likeCounts, err := e.Likes.CountByPost(ctx, postIds)
	if err != nil {
		return nil, err
	}
	shareCounts, err := e.Shares.CountByPost(ctx, postIds)
	if err != nil {
		return nil, err
	}
	followerCounts, err := e.Follows.FollowerCounts(ctx, authorIds)
	if err != nil {
		return nil, err
	}
	statusCodes, err := e.Follows.ResolveStatus(ctx, viewerId, authorIds)
	if err != nil {
		return nil, err
	}

	tallies := map[post.PostId]vote.Tally{}
	if len(pollIds) > 0 {
		tallies, err = e.Votes.TallyByPost(ctx, pollIds)
		if err != nil {
			return nil, err
		}
	}

	viewerLikes := map[post.PostId]bool{}
	viewerVotes := map[post.PostId]int{}
	if viewerId != "" {
		viewerLikes, err = e.Likes.ViewerLikes(ctx, viewerId, postIds)
		if err != nil {
			return nil, err
		}
		if len(pollIds) > 0 {
			viewerVotes, err = e.Votes.ViewerVotes(ctx, viewerId, pollIds)
			if err != nil {
				return nil, err
			}
		}
	}

	for _, p := range posts {
		ep := &EnrichedPost{
			Post:             p,
			CommentCount:     commentCounts[p.Id],
			LikeCount:        likeCounts[p.Id],
			ShareCount:       shareCounts[p.Id],
			UserLike:         viewerLikes[p.Id],
			FollowerCount:    followerCounts[p.AuthorId],
			FollowStatusCode: statusCodes[p.AuthorId],
			IsLoggedInUser:   viewerId != "" && p.AuthorId == viewerId,
		}
		if p.Poll != nil {
			tally := tallies[p.Id]
			ep.TotalVotes = tally.Total
			ep.PollResults = tally.Results(p.Poll.Options)
			if option, voted := viewerVotes[p.Id]; voted {
				ep.UserVoted = true
				opt := option
				ep.UserVoteOption = &opt
			}
		}
		enriched = append(enriched, ep)
	}
	return enriched, nil
}
