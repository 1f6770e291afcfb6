package moderation

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
	IModerationRepo interface {
		Block(ctx context.Context, userId, blockedUserId string) error
		Unblock(ctx context.Context, userId, blockedUserId string) error
		Report(ctx context.Context, postId post.PostId, reporterId, reason string) error
	}

	IPostGetter interface {
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	ModerationHandler struct {
		Moderation IModerationRepo
		Posts      IPostGetter
	}
)

func NewModerationHandler(mod IModerationRepo, posts IPostGetter) *ModerationHandler {
	return &ModerationHandler{Moderation: mod, Posts: posts}
}

// POST /block/{user_id}
func (mh *ModerationHandler) Block(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	blockedId := mux.Vars(r)["user_id"]
	if err := mh.Moderation.Block(r.Context(), authUser.Id, blockedId); err != nil {
		logger.Log(r.Context()).Errorf("can't block user %s: %v", blockedId, err)
		common.WriteErr(w, err, "failed blocking user")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// DELETE /block/{user_id}
func (mh *ModerationHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	blockedId := mux.Vars(r)["user_id"]
	if err := mh.Moderation.Unblock(r.Context(), authUser.Id, blockedId); err != nil {
		logger.Log(r.Context()).Errorf("can't unblock user %s: %v", blockedId, err)
		common.WriteErr(w, err, "failed unblocking user")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// POST /post/{post_id}/report. A reported post disappears from the
// reporter's listings only; everyone else keeps seeing it.
func (mh *ModerationHandler) Report(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	if _, err := mh.Posts.GetById(r.Context(), postId); err != nil {
		common.WriteErr(w, err, "post not found")
		return
	}

	req := new(struct {
		Reason string `json:"reason"`
	})
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse report from request body: %v", err)
		common.WriteMsg(w, "can't parse report", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		common.WriteErr(w, common.NewValidationError("report reason is empty"), "bad request")
		return
	}

	if err := mh.Moderation.Report(r.Context(), postId, authUser.Id, req.Reason); err != nil {
		logger.Log(r.Context()).Errorf("can't report post %s: %v", postId, err)
		common.WriteErr(w, err, "failed reporting post")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
