package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the read path and the write-side uniqueness
// guarantees depend on. Safe to run on every start, Mongo treats
// existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"posts": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}},
			{Keys: bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "tribeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "postId", Value: 1}}},
		},
		"likes": {
			// One row per (user, target); toggling flips isDeleted on it.
			{Keys: bson.D{{Key: "targetId", Value: 1}, {Key: "targetType", Value: 1}, {Key: "userId", Value: 1}}, Options: unique},
		},
		"shares": {
			{Keys: bson.D{{Key: "postId", Value: 1}}},
		},
		"votes": {
			// Second line of defense behind the atomic upsert in vote.Repo.Cast.
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}}, Options: unique},
		},
		"follows": {
			{Keys: bson.D{{Key: "followerId", Value: 1}, {Key: "followeeId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "followeeId", Value: 1}}},
		},
		"blocks": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "blockedUserId", Value: 1}}, Options: unique},
		},
		"reports": {
			{Keys: bson.D{{Key: "reporterId", Value: 1}}},
		},
		"memberships": {
			{Keys: bson.D{{Key: "tribeId", Value: 1}, {Key: "userId", Value: 1}}, Options: unique},
		},
		"savedPosts": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "postId", Value: 1}}, Options: unique},
		},
		"postViews": {
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
