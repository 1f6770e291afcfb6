package follow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
)

type Repo struct {
	follows mongodb.IMongoCollection
}

func NewFollowRepo(followsCol *mongo.Collection) *Repo {
	return &Repo{follows: mongodb.NewCollection(followsCol)}
}

// ResolveStatus maps every candidate to its relationship code from the
// viewer's side. Candidates without an edge default to StatusNone, a
// guest viewer sees StatusNone everywhere, the viewer themselves maps
// to StatusSelf. One query for the whole batch.
func (r *Repo) ResolveStatus(ctx context.Context, viewerId string, candidateIds []string) (map[string]StatusCode, error) {
	codes := make(map[string]StatusCode, len(candidateIds))
	for _, id := range candidateIds {
		codes[id] = StatusNone
	}
	if viewerId == "" || len(candidateIds) == 0 {
		return codes, nil
	}
	if _, ok := codes[viewerId]; ok {
		codes[viewerId] = StatusSelf
	}

	cursor, err := r.follows.Find(ctx, bson.M{
		"followerId": viewerId,
		"followeeId": bson.M{"$in": candidateIds},
		"isDeleted":  false,
	})
	if err != nil {
		return nil, fmt.Errorf("follow/repo: failed finding follow edges: %w", err)
	}
	defer cursor.Close(ctx)

	edges := []*Follow{}
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, fmt.Errorf("follow/repo: failed reading follow edges: %w", err)
	}
	for _, e := range edges {
		if e.FolloweeId == viewerId {
			continue // self wins over any stray edge
		}
		codes[e.FolloweeId] = codeForStatus(e.Status)
	}
	return codes, nil
}

// Active follower counts per followee for a batch of user ids.
func (r *Repo) FollowerCounts(ctx context.Context, userIds []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(userIds))
	if len(userIds) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"followeeId": bson.M{"$in": userIds},
			"status":     Accepted,
			"isDeleted":  false,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$followeeId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.follows.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("follow/repo: follower count aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []struct {
		Id    string `bson:"_id"`
		Count int64  `bson:"count"`
	}{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("follow/repo: failed reading follower counts: %w", err)
	}
	for _, row := range rows {
		counts[row.Id] = row.Count
	}
	return counts, nil
}

// Ids of everyone the user actively follows.
func (r *Repo) FollowingIds(ctx context.Context, userId string) ([]string, error) {
	if userId == "" {
		return []string{}, nil
	}

	cursor, err := r.follows.Find(ctx, bson.M{
		"followerId": userId,
		"status":     Accepted,
		"isDeleted":  false,
	})
	if err != nil {
		return nil, fmt.Errorf("follow/repo: failed finding followees: %w", err)
	}
	defer cursor.Close(ctx)

	edges := []*Follow{}
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, fmt.Errorf("follow/repo: failed reading followees: %w", err)
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FolloweeId)
	}
	return ids, nil
}

// Request creates (or revives) a pending edge. An edge that is already
// pending or accepted is a conflict; a rejected or deleted edge resets
// to pending.
func (r *Repo) Request(ctx context.Context, followerId, followeeId string) error {
	if followerId == followeeId {
		return common.NewValidationError("can't follow yourself")
	}

	filter := bson.M{"followerId": followerId, "followeeId": followeeId}
	existing := new(Follow)
	err := r.follows.FindOne(ctx, filter).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		f := &Follow{
			Id:         common.RandStringRunes(12),
			FollowerId: followerId,
			FolloweeId: followeeId,
			Status:     Pending,
			Created:    time.Now(),
			Updated:    time.Now(),
		}
		if _, err := r.follows.InsertOne(ctx, f); err != nil {
			return fmt.Errorf("follow/repo: failed inserting follow: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("follow/repo: failed finding follow: %w", err)
	}

	if !existing.IsDeleted && (existing.Status == Pending || existing.Status == Accepted) {
		return fmt.Errorf("follow/repo: follow already requested: %w", common.ErrConflict)
	}
	_, err = r.follows.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"status": Pending, "isDeleted": false, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("follow/repo: failed reviving follow: %w", err)
	}
	return nil
}

// Respond lets the followee accept or reject a pending request.
func (r *Repo) Respond(ctx context.Context, followerId, followeeId string, accept bool) error {
	status := Rejected
	if accept {
		status = Accepted
	}

	filter := bson.M{
		"followerId": followerId,
		"followeeId": followeeId,
		"status":     Pending,
		"isDeleted":  false,
	}
	existing := new(Follow)
	err := r.follows.FindOne(ctx, filter).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("follow/repo: no pending request: %w", common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("follow/repo: failed finding request: %w", err)
	}

	_, err = r.follows.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("follow/repo: failed responding to request: %w", err)
	}
	return nil
}

func (r *Repo) Unfollow(ctx context.Context, followerId, followeeId string) error {
	_, err := r.follows.UpdateOne(ctx,
		bson.M{"followerId": followerId, "followeeId": followeeId, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("follow/repo: failed unfollowing: %w", err)
	}
	return nil
}
