package comment

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
	comments mongodb.IMongoCollection
}

func NewCommentRepo(commentsCol *mongo.Collection) *Repo {
	return &Repo{comments: mongodb.NewCollection(commentsCol)}
}

func (r *Repo) Add(ctx context.Context, postId post.PostId, authorId, body string) (*Comment, error) {
	cmt := &Comment{
		Id:       CommentId(common.RandStringRunes(12)),
		PostId:   postId,
		AuthorId: authorId,
		Body:     body,
		Created:  time.Now(),
	}
	if _, err := r.comments.InsertOne(ctx, cmt); err != nil {
		return nil, fmt.Errorf("comment/repo: failed inserting a comment: %w", err)
	}
	return cmt, nil
}

// Soft delete, author only. Deleted comments stop counting but the
// document stays around.
func (r *Repo) SoftDelete(ctx context.Context, id CommentId, authorId string) error {
	cmt := new(Comment)
	err := r.comments.FindOne(ctx, bson.M{"id": id, "isDeleted": false}).Decode(cmt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("comment/repo: comment %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("comment/repo: failed finding comment: %w", err)
	}
	if cmt.AuthorId != authorId {
		return fmt.Errorf("comment/repo: only the author can remove a comment: %w", common.ErrForbidden)
	}
	_, err = r.comments.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"isDeleted": true}})
	if err != nil {
		return fmt.Errorf("comment/repo: failed deleting comment: %w", err)
	}
	return nil
}

// Per-post comment counts for a batch of post ids, one aggregation for
// the whole batch. Posts without comments are simply absent from the map.
func (r *Repo) CountByPost(ctx context.Context, postIds []post.PostId) (map[post.PostId]int64, error) {
	counts := make(map[post.PostId]int64, len(postIds))
	if len(postIds) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"postId":    bson.M{"$in": postIds},
			"isDeleted": false,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$postId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("comment/repo: count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []struct {
		Id    post.PostId `bson:"_id"`
		Count int64       `bson:"count"`
	}{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("comment/repo: failed reading counts: %w", err)
	}
	for _, row := range rows {
		counts[row.Id] = row.Count
	}
	return counts, nil
}
