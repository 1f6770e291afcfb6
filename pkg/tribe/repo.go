package tribe

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
	tribes  mongodb.IMongoCollection
	members mongodb.IMongoCollection
}

func NewTribeRepo(tribesCol, membersCol *mongo.Collection) *Repo {
	return &Repo{
		tribes:  mongodb.NewCollection(tribesCol),
		members: mongodb.NewCollection(membersCol),
	}
}

func (r *Repo) GetById(ctx context.Context, id TribeId) (*Tribe, error) {
	t := new(Tribe)
	err := r.tribes.FindOne(ctx, bson.M{"id": id, "isDeleted": false}).Decode(t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("tribe/repo: tribe %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tribe/repo: failed finding tribe: %w", err)
	}
	return t, nil
}

// Gatekeeper for the tribe post listing: only active members read
// tribe content.
func (r *Repo) IsActiveMember(ctx context.Context, tribeId TribeId, userId string) (bool, error) {
	if userId == "" {
		return false, nil
	}
	n, err := r.members.CountDocuments(ctx, bson.M{
		"tribeId": tribeId,
		"userId":  userId,
		"status":  MemberActive,
	})
	if err != nil {
		return false, fmt.Errorf("tribe/repo: membership lookup failed: %w", err)
	}
	return n > 0, nil
}

func (r *Repo) Join(ctx context.Context, tribeId TribeId, userId string) error {
	if _, err := r.GetById(ctx, tribeId); err != nil {
		return err
	}

	filter := bson.M{"tribeId": tribeId, "userId": userId}
	existing := new(Membership)
	err := r.members.FindOne(ctx, filter).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		m := &Membership{
			TribeId: tribeId,
			UserId:  userId,
			Status:  MemberActive,
			Created: time.Now(),
			Updated: time.Now(),
		}
		if _, err := r.members.InsertOne(ctx, m); err != nil {
			return fmt.Errorf("tribe/repo: failed inserting membership: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("tribe/repo: failed finding membership: %w", err)
	}

	switch existing.Status {
	case MemberActive:
		return fmt.Errorf("tribe/repo: already a member: %w", common.ErrConflict)
	case MemberBanned:
		return fmt.Errorf("tribe/repo: banned from tribe: %w", common.ErrForbidden)
	}
	_, err = r.members.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"status": MemberActive, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("tribe/repo: failed rejoining tribe: %w", err)
	}
	return nil
}

func (r *Repo) Leave(ctx context.Context, tribeId TribeId, userId string) error {
	_, err := r.members.UpdateOne(ctx,
		bson.M{"tribeId": tribeId, "userId": userId, "status": MemberActive},
		bson.M{"$set": bson.M{"status": MemberLeft, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("tribe/repo: failed leaving tribe: %w", err)
	}
	return nil
}
