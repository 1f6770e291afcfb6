package saved

import (
	"context"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulse/pkg/common"
	"pulse/pkg/mongodb"
	"pulse/pkg/post"
)

func TestSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockSingleResult := mongodb.NewMockIMongoSingleResult(ctrl)
	mockInsertResult := mongodb.NewMockIMongoInsertOneResult(ctrl)
	repo := &Repo{saved: mockMongoColl}

	t.Run("fresh save inserts", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)
		mockMongoColl.EXPECT().
			InsertOne(ctx, gomock.Any()).
			Return(mockInsertResult, nil)

		assert.Nil(t, repo.Save(ctx, "u1", post.PostId("p1")))
	})

	t.Run("double save is a conflict", func(t *testing.T) {
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, SavedPost{UserId: "u1", PostId: "p1"}).
			Return(nil)

		err := repo.Save(ctx, "u1", post.PostId("p1"))
		assert.ErrorIs(t, err, common.ErrConflict)
	})

}

func TestUnsave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	repo := &Repo{saved: mockMongoColl}

	t.Run("removes the bookmark row", func(t *testing.T) {
		mockMongoColl.EXPECT().
			DeleteOne(ctx, bson.M{"userId": "u1", "postId": post.PostId("p1")}).
			Return(nil, nil)

		assert.Nil(t, repo.Unsave(ctx, "u1", post.PostId("p1")))
	})

	t.Run("save after unsave is a fresh edge", func(t *testing.T) {
		mockSingleResult := mongodb.NewMockIMongoSingleResult(ctrl)
		mockInsertResult := mongodb.NewMockIMongoInsertOneResult(ctrl)

		mockMongoColl.EXPECT().
			DeleteOne(ctx, gomock.Any()).
			Return(nil, nil)
		mockMongoColl.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockSingleResult)
		mockSingleResult.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)
		mockMongoColl.EXPECT().
			InsertOne(ctx, gomock.Any()).
			Return(mockInsertResult, nil)

		assert.Nil(t, repo.Unsave(ctx, "u1", post.PostId("p1")))
		assert.Nil(t, repo.Save(ctx, "u1", post.PostId("p1")))
	})
}

func TestListIds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockMongoColl := mongodb.NewMockIMongoCollection(ctrl)
	mockCursor := mongodb.NewMockIMongoCursor(ctrl)
	repo := &Repo{saved: mockMongoColl}

	t.Run("returns page ids and total", func(t *testing.T) {
		rows := []*SavedPost{
			{UserId: "u1", PostId: "p3"},
			{UserId: "u1", PostId: "p1"},
		}

		mockMongoColl.EXPECT().
			CountDocuments(ctx, gomock.Any()).
			Return(int64(5), nil)
		mockMongoColl.EXPECT().
			Find(ctx, gomock.Any(), gomock.Any()).
			Return(mockCursor, nil)
		mockCursor.EXPECT().
			All(ctx, gomock.AssignableToTypeOf(&rows)).
			SetArg(1, rows).
			Return(nil)
		mockCursor.EXPECT().Close(ctx).Return(nil)

		ids, total, err := repo.ListIds(ctx, "u1", 1, 2)
		assert.Nil(t, err)
		assert.Equal(t, int64(5), total)
		assert.Equal(t, []post.PostId{"p3", "p1"}, ids)
	})
}
