package saved

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

type Repo struct {
	saved mongodb.IMongoCollection
}

func NewSavedRepo(savedCol *mongo.Collection) *Repo {
	return &Repo{saved: mongodb.NewCollection(savedCol)}
}

func (r *Repo) Save(ctx context.Context, userId string, postId post.PostId) error {
	filter := bson.M{"userId": userId, "postId": postId}
	err := r.saved.FindOne(ctx, filter).Decode(new(SavedPost))
	if err == nil {
		return fmt.Errorf("saved/repo: already saved: %w", common.ErrConflict)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("saved/repo: failed finding saved post: %w", err)
	}

	s := &SavedPost{
		UserId:  userId,
		PostId:  postId,
		Created: time.Now(),
	}
	if _, err := r.saved.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("saved/repo: failed inserting saved post: %w", err)
	}
	return nil
}

// Unsaving an unsaved post is a no-op, not an error.
func (r *Repo) Unsave(ctx context.Context, userId string, postId post.PostId) error {
	_, err := r.saved.DeleteOne(ctx, bson.M{"userId": userId, "postId": postId})
	if err != nil {
		return fmt.Errorf("saved/repo: failed unsaving post: %w", err)
	}
	return nil
}

// One offset page of the user's saved post ids, newest saves first,
// plus the total for the pagination envelope.
func (r *Repo) ListIds(ctx context.Context, userId string, page, limit int64) ([]post.PostId, int64, error) {
	filter := bson.M{"userId": userId}

	total, err := r.saved.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("saved/repo: failed counting saved posts: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.saved.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("saved/repo: failed finding saved posts: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []*SavedPost{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, 0, fmt.Errorf("saved/repo: failed reading saved posts: %w", err)
	}
	ids := make([]post.PostId, 0, len(rows))
	for _, s := range rows {
		ids = append(ids, s.PostId)
	}
	return ids, total, nil
}
