package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
	"pulse/pkg/user"
)

// Engagement ranking weights and the gravity-style age decay exponent.
const (
	weightComments = 3
	weightLikes    = 2
	weightShares   = 5
	followBoost    = 1.5
	decayExponent  = 1.5
)

// UserDirectory joins author and tagged-user identity (kept in
// Postgres) into Mongo-sourced posts. One batched call per listing.
type UserDirectory interface {
	GetByIds(ctx context.Context, ids []string) (map[string]*user.User, error)
}

// ListOptions drives one aggregation over the posts collection.
// Match is the caller-built predicate (author, tribe, id set, type,
// hashtag); exclusion sets and the cursor bound are merged into it.
type ListOptions struct {
	Match            bson.M
	ExcludeAuthorIds []string
	ExcludePostIds   []PostId
	Cursor           *Cursor
	Limit            int64

	// Feed only: rank by engagement score instead of recency.
	// BoostAuthorIds (the viewer's followees) get a score boost.
	RankByEngagement bool
	BoostAuthorIds   []string
}

type Repo struct {
	posts mongodb.IMongoCollection
	views mongodb.IMongoCollection
	users UserDirectory
}

func NewPostRepo(postsCol, viewsCol *mongo.Collection, users UserDirectory) *Repo {
	return &Repo{
		posts: mongodb.NewCollection(postsCol),
		views: mongodb.NewCollection(viewsCol),
		users: users,
	}
}

func (r *Repo) Add(ctx context.Context, p *Post) (PostId, error) {
	_, err := r.posts.InsertOne(ctx, p)
	if err != nil {
		return PostId(``), fmt.Errorf("post/repo: failed inserting a post: %w", err)
	}
	return p.Id, nil
}

func (r *Repo) GetById(ctx context.Context, id PostId) (*Post, error) {
	p := new(Post)
	err := r.posts.FindOne(ctx, bson.M{"id": id, "isDeleted": false}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post/repo: post %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("post/repo: failed finding post: %w", err)
	}
	if err := r.joinIdentities(ctx, []*Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, id PostId) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("post/repo: failed deleting post: %w", err)
	}
	return nil
}

// List runs the aggregation described by opts and joins identities into
// the result. Returns at most opts.Limit posts; an empty page is a nil
// error with an empty slice.
func (r *Repo) List(ctx context.Context, opts ListOptions) ([]*Post, error) {
	cursor, err := r.posts.Aggregate(ctx, opts.pipeline())
	if err != nil {
		return nil, fmt.Errorf("post/repo: aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("post/repo: failed reading posts from cursor: %w", err)
	}
	if err := r.joinIdentities(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Appends a view event for a detail read. Deduped best-effort only: a
// racing pair of reads may record the view twice, which is acceptable
// for an append-only counter.
func (r *Repo) RecordView(ctx context.Context, id PostId, viewerId string) error {
	if viewerId != "" {
		n, err := r.views.CountDocuments(ctx, bson.M{"postId": id, "userId": viewerId})
		if err != nil {
			return fmt.Errorf("post/repo: view lookup failed: %w", err)
		}
		if n > 0 {
			return nil
		}
	}
	_, err := r.views.InsertOne(ctx, &ViewEvent{PostId: id, UserId: viewerId, Created: time.Now()})
	if err != nil {
		return fmt.Errorf("post/repo: failed recording view: %w", err)
	}
	return nil
}

func (opts ListOptions) pipeline() mongo.Pipeline {
	conds := []bson.M{{"isDeleted": false}}
	if len(opts.Match) > 0 {
		conds = append(conds, opts.Match)
	}
	if len(opts.ExcludeAuthorIds) > 0 {
		conds = append(conds, bson.M{"authorId": bson.M{"$nin": opts.ExcludeAuthorIds}})
	}
	if len(opts.ExcludePostIds) > 0 {
		conds = append(conds, bson.M{"id": bson.M{"$nin": opts.ExcludePostIds}})
	}
	if c := opts.Cursor; c != nil {
		// Strictly after the compound cursor. Two posts sharing a
		// timestamp are ordered by id, so pages never overlap.
		conds = append(conds, bson.M{"$or": []bson.M{
			{"createdAt": bson.M{"$lt": c.CreatedAt}},
			{"createdAt": c.CreatedAt, "id": bson.M{"$lt": c.Id}},
		}})
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"$and": conds}}},
	}

	if opts.RankByEngagement {
		// Pick the page window by recency first, then score-sort inside
		// it. Ranking across the whole history would move posts over
		// page boundaries and break cursor chaining.
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "id", Value: -1},
		}}})
		if opts.Limit > 0 {
			pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
		}
		pipeline = append(pipeline,
			countLookup("comments", "commentStats", bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$postId", "$$pid"}},
				bson.M{"$eq": bson.A{"$isDeleted", false}},
			}}),
			countLookup("likes", "likeStats", bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$targetId", "$$pid"}},
				bson.M{"$eq": bson.A{"$targetType", "post"}},
				bson.M{"$eq": bson.A{"$isDeleted", false}},
			}}),
			countLookup("shares", "shareStats", bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$postId", "$$pid"}},
				bson.M{"$in": bson.A{"$shareType", bson.A{"share", "inAppShare"}}},
			}}),
			bson.D{{Key: "$addFields", Value: bson.M{"score": opts.scoreExpr()}}},
			bson.D{{Key: "$sort", Value: bson.D{
				{Key: "score", Value: -1},
				{Key: "createdAt", Value: -1},
				{Key: "id", Value: -1},
			}}},
			bson.D{{Key: "$unset", Value: bson.A{"commentStats", "likeStats", "shareStats", "score"}}},
		)
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "id", Value: -1},
		}}})
		if opts.Limit > 0 {
			pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
		}
	}
	return pipeline
}

// The count sub-pipeline leaves either a one-element array [{n: N}] or
// an empty one. Fold it down to a plain number.
func statCount(field string) bson.M {
	return bson.M{"$ifNull": bson.A{
		bson.M{"$arrayElemAt": bson.A{"$" + field + ".n", 0}},
		0,
	}}
}

func countLookup(from, as string, matchExpr bson.M) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": from,
		"let":  bson.M{"pid": "$id"},
		"pipeline": []bson.M{
			{"$match": bson.M{"$expr": matchExpr}},
			{"$count": "n"},
		},
		"as": as,
	}}}
}

// score = (1 + w_c*comments + w_l*likes + w_s*shares) * boost / (ageHours + 2)^1.5
func (opts ListOptions) scoreExpr() bson.M {
	engagement := bson.M{"$add": bson.A{
		1,
		bson.M{"$multiply": bson.A{weightComments, statCount("commentStats")}},
		bson.M{"$multiply": bson.A{weightLikes, statCount("likeStats")}},
		bson.M{"$multiply": bson.A{weightShares, statCount("shareStats")}},
	}}

	boosted := bson.A{}
	for _, id := range opts.BoostAuthorIds {
		boosted = append(boosted, id)
	}
	boost := bson.M{"$cond": bson.A{
		bson.M{"$in": bson.A{"$authorId", boosted}},
		followBoost,
		1,
	}}

	ageHours := bson.M{"$divide": bson.A{
		bson.M{"$subtract": bson.A{"$$NOW", "$createdAt"}},
		3600000,
	}}
	decay := bson.M{"$pow": bson.A{bson.M{"$add": bson.A{ageHours, 2}}, decayExponent}}

	return bson.M{"$divide": bson.A{bson.M{"$multiply": bson.A{engagement, boost}}, decay}}
}

// Resolves author and tagged-user identities for the batch in a single
// directory query. Authors of blocked content still resolve when they
// appear as tagged users. Tagging does not inherit blocking.
func (r *Repo) joinIdentities(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	seen := map[string]bool{}
	ids := []string{}
	collect := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		collect(p.AuthorId)
		for _, t := range p.TaggedUserIds {
			collect(t)
		}
	}

	users, err := r.users.GetByIds(ctx, ids)
	if err != nil {
		return fmt.Errorf("post/repo: identity join failed: %w", err)
	}

	for _, p := range posts {
		if u, ok := users[p.AuthorId]; ok {
			p.Author = u
		} else {
			p.Author = &user.User{Id: p.AuthorId}
		}
		p.TaggedUsers = []*user.User{}
		for _, t := range p.TaggedUserIds {
			if u, ok := users[t]; ok {
				p.TaggedUsers = append(p.TaggedUsers, u)
			}
		}
	}
	return nil
}
