package vote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
	"pulse/pkg/post"
)

var ErrAlreadyVoted = fmt.Errorf("vote/repo: already voted: %w", common.ErrConflict)

type Repo struct {
	votes mongodb.IMongoCollection
}

func NewVoteRepo(votesCol *mongo.Collection) *Repo {
	return &Repo{votes: mongodb.NewCollection(votesCol)}
}

// Cast records one vote for (post, voter). The upsert with $setOnInsert
// is atomic: when the returned pre-image exists, somebody (possibly a
// racing request by the same user) voted first and the cast is rejected.
// No check-then-insert window.
func (r *Repo) Cast(ctx context.Context, p *post.Post, userId string, option int) (*Vote, error) {
	if p.Poll == nil || option < 0 || option >= len(p.Poll.Options) {
		return nil, common.NewValidationError("option index is out of range")
	}

	v := &Vote{
		Id:      common.RandStringRunes(12),
		PostId:  p.Id,
		UserId:  userId,
		Option:  option,
		Correct: p.Type == post.TypeQuiz && p.Poll.CorrectOption != nil && *p.Poll.CorrectOption == option,
		Created: time.Now(),
	}

	res := r.votes.FindOneAndUpdate(ctx,
		bson.M{"postId": p.Id, "userId": userId},
		bson.M{"$setOnInsert": v},
		options.FindOneAndUpdate().SetUpsert(true),
	)

	existing := new(Vote)
	err := res.Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Nothing existed before the upsert: this cast won.
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vote/repo: failed casting vote: %w", err)
	}
	return nil, ErrAlreadyVoted
}

// Per-post vote distribution for a batch of post ids, one aggregation
// for the whole batch.
func (r *Repo) TallyByPost(ctx context.Context, postIds []post.PostId) (map[post.PostId]Tally, error) {
	tallies := make(map[post.PostId]Tally, len(postIds))
	if len(postIds) == 0 {
		return tallies, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"postId": bson.M{"$in": postIds}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"postId": "$postId", "option": "$option"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.votes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vote/repo: tally aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []struct {
		Id struct {
			PostId post.PostId `bson:"postId"`
			Option int         `bson:"option"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("vote/repo: failed reading tallies: %w", err)
	}

	for _, row := range rows {
		t, ok := tallies[row.Id.PostId]
		if !ok {
			t = Tally{Options: map[int]int64{}}
		}
		t.Options[row.Id.Option] += row.Count
		t.Total += row.Count
		tallies[row.Id.PostId] = t
	}
	return tallies, nil
}

// Which option the viewer picked on each of the batch's posts. Posts
// the viewer never voted on are absent from the map.
func (r *Repo) ViewerVotes(ctx context.Context, viewerId string, postIds []post.PostId) (map[post.PostId]int, error) {
	votes := make(map[post.PostId]int, len(postIds))
	if viewerId == "" || len(postIds) == 0 {
		return votes, nil
	}

	cursor, err := r.votes.Find(ctx, bson.M{
		"postId": bson.M{"$in": postIds},
		"userId": viewerId,
	})
	if err != nil {
		return nil, fmt.Errorf("vote/repo: failed finding viewer votes: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []*Vote{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("vote/repo: failed reading viewer votes: %w", err)
	}
	for _, v := range rows {
		votes[v.PostId] = v.Option
	}
	return votes, nil
}
