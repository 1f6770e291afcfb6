package like

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"pulse/pkg/common"
	"pulse/pkg/logger"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
)

type (
	ILikeRepo interface {
		Toggle(ctx context.Context, targetId, targetType, userId string) (bool, error)
	}

	IPostGetter interface {
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	LikeHandler struct {
		Likes ILikeRepo
		Posts IPostGetter
	}
)

func NewLikeHandler(likes ILikeRepo, posts IPostGetter) *LikeHandler {
	return &LikeHandler{Likes: likes, Posts: posts}
}

// POST /post/{post_id}/like flips the viewer's like on the post.
func (lh *LikeHandler) TogglePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := mux.Vars(r)["post_id"]
	if _, err := lh.Posts.GetById(r.Context(), post.PostId(postId)); err != nil {
		common.WriteErr(w, err, "post not found")
		return
	}

	liked, err := lh.Likes.Toggle(r.Context(), postId, TargetPost, authUser.Id)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't toggle like on post %s: %v", postId, err)
		common.WriteErr(w, err, "failed toggling like")
		return
	}

	common.WriteRespJSON(w, struct {
		Liked bool `json:"liked"`
	}{Liked: liked})
}

// POST /comment/{comment_id}/like
func (lh *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	commentId := mux.Vars(r)["comment_id"]
	liked, err := lh.Likes.Toggle(r.Context(), commentId, TargetComment, authUser.Id)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't toggle like on comment %s: %v", commentId, err)
		common.WriteErr(w, err, "failed toggling like")
		return
	}

	common.WriteRespJSON(w, struct {
		Liked bool `json:"liked"`
	}{Liked: liked})
}
