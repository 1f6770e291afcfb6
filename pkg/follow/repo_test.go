package follow

import (
	"context"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
)

func TestResolveStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockCursor := mongodb.NewMockIMongoCursor(ctrl)
	repo := &Repo{follows: mockMongoColl}

	t.Run("guest viewer never hits the store", func(t *testing.T) {
		codes, err := repo.ResolveStatus(ctx, "", []string{"a", "b"})
		assert.Nil(t, err)
		assert.Equal(t, map[string]StatusCode{"a": StatusNone, "b": StatusNone}, codes)
	})

	t.Run("empty candidate set never hits the store", func(t *testing.T) {
		codes, err := repo.ResolveStatus(ctx, "viewer", nil)
		assert.Nil(t, err)
		assert.Empty(t, codes)
	})

	t.Run("maps edges to codes, defaults to none, self wins", func(t *testing.T) {
		edges := []*Follow{
			{FollowerId: "viewer", FolloweeId: "accepted_guy", Status: Accepted},
			{FollowerId: "viewer", FolloweeId: "pending_guy", Status: Pending},
			{FollowerId: "viewer", FolloweeId: "rejected_guy", Status: Rejected},
		}

		mockMongoColl.EXPECT().
			Find(ctx, gomock.Any()).
			Return(mockCursor, nil)
		mockCursor.EXPECT().
			All(ctx, gomock.AssignableToTypeOf(&edges)).
			SetArg(1, edges).
			Return(nil)
		mockCursor.EXPECT().Close(ctx).Return(nil)

		codes, err := repo.ResolveStatus(ctx, "viewer",
			[]string{"accepted_guy", "pending_guy", "rejected_guy", "stranger", "viewer"})
		assert.Nil(t, err)
		assert.Equal(t, map[string]StatusCode{
			"accepted_guy": StatusAccepted,
			"pending_guy":  StatusPending,
			"rejected_guy": StatusRejected,
			"stranger":     StatusNone,
			"viewer":       StatusSelf,
		}, codes)
	})
}

func TestRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockSingleResult := mongodb.NewMockIMongoSingleResult(ctrl)
	mockInsertResult := mongodb.NewMockIMongoInsertOneResult(ctrl)
	mockUpdateResult := mongodb.NewMockIMongoUpdateResult(ctrl)
	repo := &Repo{follows: mockMongoColl}

	t.Run("self follow is invalid", func(t *testing.T) {
		err := repo.Request(ctx, "me", "me")
		var vErr *common.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("fresh request inserts a pending edge", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)
		mockMongoColl.EXPECT().
			InsertOne(ctx, gomock.Any()).
			Return(mockInsertResult, nil)

		assert.Nil(t, repo.Request(ctx, "me", "them"))
	})

	t.Run("pending edge is a conflict", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, Follow{FollowerId: "me", FolloweeId: "them", Status: Pending}).
			Return(nil)

		err := repo.Request(ctx, "me", "them")
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("rejected edge revives to pending", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, Follow{FollowerId: "me", FolloweeId: "them", Status: Rejected}).
			Return(nil)
		mockMongoColl.EXPECT().
			UpdateOne(ctx, gomock.Any(), gomock.Any()).
			Return(mockUpdateResult, nil)

		assert.Nil(t, repo.Request(ctx, "me", "them"))
	})
}

func TestRespond(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockSingleResult := mongodb.NewMockIMongoSingleResult(ctrl)
	mockUpdateResult := mongodb.NewMockIMongoUpdateResult(ctrl)
	repo := &Repo{follows: mockMongoColl}

	t.Run("no pending request maps to not found", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)

		err := repo.Respond(ctx, "them", "me", true)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("accept updates the pending edge", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, Follow{FollowerId: "them", FolloweeId: "me", Status: Pending}).
			Return(nil)
		mockMongoColl.EXPECT().
			UpdateOne(ctx, gomock.Any(), gomock.Any()).
			Return(mockUpdateResult, nil)

		assert.Nil(t, repo.Respond(ctx, "them", "me", true))
	})
}

func TestFollowingIds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockCursor := mongodb.NewMockIMongoCursor(ctrl)
	repo := &Repo{follows: mockMongoColl}

	t.Run("guest has no followees", func(t *testing.T) {
		ids, err := repo.FollowingIds(ctx, "")
		assert.Nil(t, err)
		assert.Empty(t, ids)
	})

	t.Run("collects followee ids", func(t *testing.T) {
		edges := []*Follow{
			{FollowerId: "me", FolloweeId: "a", Status: Accepted},
			{FollowerId: "me", FolloweeId: "b", Status: Accepted},
		}

		mockMongoColl.EXPECT().
			Find(ctx, gomock.Any()).
			Return(mockCursor, nil)
		mockCursor.EXPECT().
			All(ctx, gomock.AssignableToTypeOf(&edges)).
			SetArg(1, edges).
			Return(nil)
		mockCursor.EXPECT().Close(ctx).Return(nil)

		ids, err := repo.FollowingIds(ctx, "me")
		assert.Nil(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})
}
