package comment

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"pulse/pkg/common"
	"pulse/pkg/logger"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
)

type (
	ICommentRepo interface {
		Add(ctx context.Context, postId post.PostId, authorId, body string) (*Comment, error)
		SoftDelete(ctx context.Context, id CommentId, authorId string) error
	}

	IPostGetter interface {
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	CommentHandler struct {
		Comments ICommentRepo
		Posts    IPostGetter
	}
)

func NewCommentHandler(comments ICommentRepo, posts IPostGetter) *CommentHandler {
	return &CommentHandler{Comments: comments, Posts: posts}
}

// POST /post/{post_id}/comment
func (ch *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	author, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	if _, err := ch.Posts.GetById(r.Context(), postId); err != nil {
		common.WriteErr(w, err, "post not found")
		return
	}

	req := new(struct {
		Body string `json:"body"`
	})
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse comment from request body: %v", err)
		common.WriteMsg(w, "can't parse comment", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		common.WriteErr(w, common.NewValidationError("comment body is empty"), "bad request")
		return
	}

	c, err := ch.Comments.Add(r.Context(), postId, author.Id, req.Body)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't add comment to post %s: %v", postId, err)
		common.WriteErr(w, err, "failed adding comment")
		return
	}

	c.Author = author
	w.WriteHeader(http.StatusCreated)
	common.WriteRespJSON(w, c)
}

// DELETE /comment/{comment_id}
func (ch *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	commentId := CommentId(mux.Vars(r)["comment_id"])
	if err := ch.Comments.SoftDelete(r.Context(), commentId, authUser.Id); err != nil {
		logger.Log(r.Context()).Errorf("can't remove comment %s: %v", commentId, err)
		common.WriteErr(w, err, "removing comment failed")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
