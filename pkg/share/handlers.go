package share

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
	IShareRepo interface {
		Record(ctx context.Context, postId post.PostId, userId, shareType string) (*Share, error)
	}

	IPostGetter interface {
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	ShareHandler struct {
		Shares IShareRepo
		Posts  IPostGetter
	}
)

func NewShareHandler(shares IShareRepo, posts IPostGetter) *ShareHandler {
	return &ShareHandler{Shares: shares, Posts: posts}
}

// POST /post/{post_id}/share records a share event. Both in-app
// shares and external ones land here, distinguished by shareType.
func (sh *ShareHandler) Record(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	if _, err := sh.Posts.GetById(r.Context(), postId); err != nil {
		common.WriteErr(w, err, "post not found")
		return
	}

	req := new(struct {
		ShareType string `json:"shareType"`
	})
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse share from request body: %v", err)
		common.WriteMsg(w, "can't parse share", http.StatusBadRequest)
		return
	}
	if req.ShareType != TypeInApp && req.ShareType != TypeShare {
		common.WriteErr(w, common.NewValidationError("unknown share type"), "bad request")
		return
	}

	if _, err := sh.Shares.Record(r.Context(), postId, authUser.Id, req.ShareType); err != nil {
		logger.Log(r.Context()).Errorf("can't record share of post %s: %v", postId, err)
		common.WriteErr(w, err, "failed recording share")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
