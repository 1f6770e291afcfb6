package share

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
	"pulse/pkg/post"
)

type Repo struct {
	shares mongodb.IMongoCollection
}

func NewShareRepo(sharesCol *mongo.Collection) *Repo {
	return &Repo{shares: mongodb.NewCollection(sharesCol)}
}

func (r *Repo) Record(ctx context.Context, postId post.PostId, userId, shareType string) (*Share, error) {
	s := &Share{
		Id:        common.RandStringRunes(12),
		PostId:    postId,
		UserId:    userId,
		ShareType: shareType,
		Created:   time.Now(),
	}
	if _, err := r.shares.InsertOne(ctx, s); err != nil {
		return nil, fmt.Errorf("share/repo: failed inserting share: %w", err)
	}
	return s, nil
}

// Per-post in-app share counts for a batch of post ids.
func (r *Repo) CountByPost(ctx context.Context, postIds []post.PostId) (map[post.PostId]int64, error) {
	counts := make(map[post.PostId]int64, len(postIds))
	if len(postIds) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"postId":    bson.M{"$in": postIds},
			"shareType": bson.M{"$in": []string{TypeShare, TypeInApp}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$postId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.shares.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("share/repo: count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []struct {
		Id    post.PostId `bson:"_id"`
		Count int64       `bson:"count"`
	}{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("share/repo: failed reading counts: %w", err)
	}
	for _, row := range rows {
		counts[row.Id] = row.Count
	}
	return counts, nil
}
