package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
	"pulse/pkg/post"
)

type Repo struct {
	likes mongodb.IMongoCollection
}

func NewLikeRepo(likesCol *mongo.Collection) *Repo {
	return &Repo{likes: mongodb.NewCollection(likesCol)}
}

// Toggle flips the like state for (user, target) and reports the new
// state. The unique index on (targetId, targetType, userId) guarantees
// there is never more than one row to flip.
func (r *Repo) Toggle(ctx context.Context, targetId, targetType, userId string) (bool, error) {
	filter := bson.M{"targetId": targetId, "targetType": targetType, "userId": userId}

	existing := new(Like)
	err := r.likes.FindOne(ctx, filter).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		l := &Like{
			Id:         common.RandStringRunes(12),
			TargetId:   targetId,
			TargetType: targetType,
			UserId:     userId,
			Created:    time.Now(),
			Updated:    time.Now(),
		}
		if _, err := r.likes.InsertOne(ctx, l); err != nil {
			return false, fmt.Errorf("like/repo: failed inserting like: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("like/repo: failed finding like: %w", err)
	}

	liked := existing.IsDeleted // flipping a deleted row re-likes
	_, err = r.likes.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"isDeleted": !existing.IsDeleted, "updatedAt": time.Now()}})
	if err != nil {
		return false, fmt.Errorf("like/repo: failed toggling like: %w", err)
	}
	return liked, nil
}

// Per-post like counts for a batch of post ids.
func (r *Repo) CountByPost(ctx context.Context, postIds []post.PostId) (map[post.PostId]int64, error) {
	counts := make(map[post.PostId]int64, len(postIds))
	if len(postIds) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"targetId":   bson.M{"$in": targetIds(postIds)},
			"targetType": TargetPost,
			"isDeleted":  false,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$targetId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.likes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("like/repo: count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []struct {
		Id    string `bson:"_id"`
		Count int64  `bson:"count"`
	}{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("like/repo: failed reading counts: %w", err)
	}
	for _, row := range rows {
		counts[post.PostId(row.Id)] = row.Count
	}
	return counts, nil
}

// Which of the batch's posts the viewer has an active like on.
func (r *Repo) ViewerLikes(ctx context.Context, viewerId string, postIds []post.PostId) (map[post.PostId]bool, error) {
	liked := make(map[post.PostId]bool, len(postIds))
	if viewerId == "" || len(postIds) == 0 {
		return liked, nil
	}

	cursor, err := r.likes.Find(ctx, bson.M{
		"targetId":   bson.M{"$in": targetIds(postIds)},
		"targetType": TargetPost,
		"userId":     viewerId,
		"isDeleted":  false,
	})
	if err != nil {
		return nil, fmt.Errorf("like/repo: failed finding viewer likes: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []*Like{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("like/repo: failed reading viewer likes: %w", err)
	}
	for _, l := range rows {
		liked[post.PostId(l.TargetId)] = true
	}
	return liked, nil
}

func targetIds(postIds []post.PostId) []string {
	ids := make([]string, len(postIds))
	for i, id := range postIds {
		ids[i] = string(id)
	}
	return ids
}
