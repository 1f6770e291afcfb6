package moderation

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
	blocks  mongodb.IMongoCollection
	reports mongodb.IMongoCollection
}

func NewModerationRepo(blocksCol, reportsCol *mongo.Collection) *Repo {
	return &Repo{
		blocks:  mongodb.NewCollection(blocksCol),
		reports: mongodb.NewCollection(reportsCol),
	}
}

// Exclusions gathers the viewer's block and report edges in two
// queries. Guests have nothing to exclude.
func (r *Repo) Exclusions(ctx context.Context, viewerId string) (Exclusions, error) {
	excl := Exclusions{BlockedUserIds: []string{}, ReportedPostIds: []post.PostId{}}
	if viewerId == "" {
		return excl, nil
	}

	blockCursor, err := r.blocks.Find(ctx, bson.M{"userId": viewerId, "isDeleted": false})
	if err != nil {
		return excl, fmt.Errorf("moderation/repo: failed finding blocks: %w", err)
	}
	defer blockCursor.Close(ctx)
	blocks := []*Block{}
	if err := blockCursor.All(ctx, &blocks); err != nil {
		return excl, fmt.Errorf("moderation/repo: failed reading blocks: %w", err)
	}
	for _, b := range blocks {
		excl.BlockedUserIds = append(excl.BlockedUserIds, b.BlockedUserId)
	}

	reportCursor, err := r.reports.Find(ctx, bson.M{"reporterId": viewerId, "isDeleted": false})
	if err != nil {
		return excl, fmt.Errorf("moderation/repo: failed finding reports: %w", err)
	}
	defer reportCursor.Close(ctx)
	reports := []*Report{}
	if err := reportCursor.All(ctx, &reports); err != nil {
		return excl, fmt.Errorf("moderation/repo: failed reading reports: %w", err)
	}
	for _, rep := range reports {
		excl.ReportedPostIds = append(excl.ReportedPostIds, rep.PostId)
	}

	return excl, nil
}

func (r *Repo) Block(ctx context.Context, userId, blockedUserId string) error {
	if userId == blockedUserId {
		return common.NewValidationError("can't block yourself")
	}

	filter := bson.M{"userId": userId, "blockedUserId": blockedUserId}
	existing := new(Block)
	err := r.blocks.FindOne(ctx, filter).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		b := &Block{
			Id:            common.RandStringRunes(12),
			UserId:        userId,
			BlockedUserId: blockedUserId,
			Created:       time.Now(),
			Updated:       time.Now(),
		}
		if _, err := r.blocks.InsertOne(ctx, b); err != nil {
			return fmt.Errorf("moderation/repo: failed inserting block: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("moderation/repo: failed finding block: %w", err)
	}
	if !existing.IsDeleted {
		return fmt.Errorf("moderation/repo: already blocked: %w", common.ErrConflict)
	}

	_, err = r.blocks.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"isDeleted": false, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("moderation/repo: failed reviving block: %w", err)
	}
	return nil
}

func (r *Repo) Unblock(ctx context.Context, userId, blockedUserId string) error {
	_, err := r.blocks.UpdateOne(ctx,
		bson.M{"userId": userId, "blockedUserId": blockedUserId, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("moderation/repo: failed unblocking: %w", err)
	}
	return nil
}

func (r *Repo) Report(ctx context.Context, postId post.PostId, reporterId, reason string) error {
	n, err := r.reports.CountDocuments(ctx, bson.M{
		"postId": postId, "reporterId": reporterId, "isDeleted": false,
	})
	if err != nil {
		return fmt.Errorf("moderation/repo: failed checking report: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("moderation/repo: already reported: %w", common.ErrConflict)
	}

	rep := &Report{
		Id:         common.RandStringRunes(12),
		PostId:     postId,
		ReporterId: reporterId,
		Reason:     reason,
		Created:    time.Now(),
	}
	if _, err := r.reports.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("moderation/repo: failed inserting report: %w", err)
	}
	return nil
}
