package follow

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"pulse/pkg/common"
	"pulse/pkg/logger"
	"pulse/pkg/sessions"
)

type (
	IFollowRepo interface {
		Request(ctx context.Context, followerId, followeeId string) error
		Respond(ctx context.Context, followerId, followeeId string, accept bool) error
		Unfollow(ctx context.Context, followerId, followeeId string) error
	}

	FollowHandler struct {
		Follows IFollowRepo
	}
)

func NewFollowHandler(follows IFollowRepo) *FollowHandler {
	return &FollowHandler{Follows: follows}
}

// POST /follow/{user_id} files a follow request from the viewer. It sits
// pending until the followee responds.
func (fh *FollowHandler) Request(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	followeeId := mux.Vars(r)["user_id"]
	if err := fh.Follows.Request(r.Context(), authUser.Id, followeeId); err != nil {
		logger.Log(r.Context()).Errorf("can't request follow of %s: %v", followeeId, err)
		common.WriteErr(w, err, "failed requesting follow")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// PATCH /follow/{user_id}. The viewer accepts or rejects a pending
// request from user_id.
func (fh *FollowHandler) Respond(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	req := new(struct {
		Accept bool `json:"accept"`
	})
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse follow response from request body: %v", err)
		common.WriteMsg(w, "can't parse follow response", http.StatusBadRequest)
		return
	}

	followerId := mux.Vars(r)["user_id"]
	if err := fh.Follows.Respond(r.Context(), followerId, authUser.Id, req.Accept); err != nil {
		logger.Log(r.Context()).Errorf("can't respond to follow from %s: %v", followerId, err)
		common.WriteErr(w, err, "failed responding to follow request")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// DELETE /follow/{user_id}
func (fh *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	followeeId := mux.Vars(r)["user_id"]
	if err := fh.Follows.Unfollow(r.Context(), authUser.Id, followeeId); err != nil {
		logger.Log(r.Context()).Errorf("can't unfollow %s: %v", followeeId, err)
		common.WriteErr(w, err, "failed unfollowing")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
