package saved

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"pulse/pkg/common"
	"pulse/pkg/logger"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
	"pulse/pkg/stats"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type (
	ISavedRepo interface {
		Save(ctx context.Context, userId string, postId post.PostId) error
		Unsave(ctx context.Context, userId string, postId post.PostId) error
		ListIds(ctx context.Context, userId string, page, limit int64) ([]post.PostId, int64, error)
	}

	IPostLister interface {
		List(context.Context, post.ListOptions) ([]*post.Post, error)
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	IEnricher interface {
		Enrich(ctx context.Context, posts []*post.Post, viewerId string) ([]*stats.EnrichedPost, error)
	}

	SavedHandler struct {
		Saved    ISavedRepo
		Posts    IPostLister
		Enricher IEnricher
	}
)

func NewSavedHandler(saved ISavedRepo, posts IPostLister, enricher IEnricher) *SavedHandler {
	return &SavedHandler{Saved: saved, Posts: posts, Enricher: enricher}
}

// GET /savedPosts pages over the viewer's saved list by page/limit,
// most recently saved first. The list is bounded per user, so offsets
// are fine here.
func (sh *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	page := common.QueryInt(r, "page", 1, 0)
	limit := common.QueryInt(r, "limit", defaultLimit, maxLimit)

	ids, total, err := sh.Saved.ListIds(r.Context(), authUser.Id, page, limit)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load saved posts: %v", err)
		common.WriteErr(w, err, "failed loading saved posts")
		return
	}

	posts := []*post.Post{}
	if len(ids) > 0 {
		idStrings := make([]string, len(ids))
		for i, id := range ids {
			idStrings[i] = string(id)
		}
		found, err := sh.Posts.List(r.Context(), post.ListOptions{
			Match: bson.M{"id": bson.M{"$in": idStrings}},
			Limit: int64(len(ids)),
		})
		if err != nil {
			logger.Log(r.Context()).Errorf("can't load saved posts: %v", err)
			common.WriteErr(w, err, "failed loading saved posts")
			return
		}
		// put posts back in saved order; deleted ones drop out
		byId := make(map[post.PostId]*post.Post, len(found))
		for _, p := range found {
			byId[p.Id] = p
		}
		for _, id := range ids {
			if p, ok := byId[id]; ok {
				posts = append(posts, p)
			}
		}
	}

	enriched, err := sh.Enricher.Enrich(r.Context(), posts, authUser.Id)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't enrich saved posts: %v", err)
		common.WriteErr(w, err, "failed loading saved posts")
		return
	}

	common.WriteRespJSON(w, listResponse{
		Posts:      enriched,
		Pagination: pageInfo{Page: page, Limit: limit, Total: total},
	})
}

type pageInfo struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse struct {
	Posts      []*stats.EnrichedPost `json:"posts"`
	Pagination pageInfo              `json:"pagination"`
}

// POST /post/{post_id}/save
func (sh *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
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

	if err := sh.Saved.Save(r.Context(), authUser.Id, postId); err != nil {
		logger.Log(r.Context()).Errorf("can't save post %s: %v", postId, err)
		common.WriteErr(w, err, "failed saving post")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// DELETE /post/{post_id}/save
func (sh *SavedHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	if err := sh.Saved.Unsave(r.Context(), authUser.Id, postId); err != nil {
		logger.Log(r.Context()).Errorf("can't unsave post %s: %v", postId, err)
		common.WriteErr(w, err, "failed unsaving post")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
