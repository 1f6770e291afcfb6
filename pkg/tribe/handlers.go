package tribe

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"pulse/pkg/common"
	"pulse/pkg/logger"
	"pulse/pkg/moderation"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
	"pulse/pkg/stats"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type (
	ITribeRepo interface {
		GetById(context.Context, TribeId) (*Tribe, error)
		IsActiveMember(ctx context.Context, tribeId TribeId, userId string) (bool, error)
		Join(ctx context.Context, tribeId TribeId, userId string) error
		Leave(ctx context.Context, tribeId TribeId, userId string) error
	}

	IPostLister interface {
		List(context.Context, post.ListOptions) ([]*post.Post, error)
	}

	IEnricher interface {
		Enrich(ctx context.Context, posts []*post.Post, viewerId string) ([]*stats.EnrichedPost, error)
	}

	IExclusionSource interface {
		Exclusions(ctx context.Context, viewerId string) (moderation.Exclusions, error)
	}

	TribeHandler struct {
		Tribes     ITribeRepo
		Posts      IPostLister
		Enricher   IEnricher
		Moderation IExclusionSource
	}
)

func NewTribeHandler(tribes ITribeRepo, posts IPostLister, enricher IEnricher, mod IExclusionSource) *TribeHandler {
	return &TribeHandler{Tribes: tribes, Posts: posts, Enricher: enricher, Moderation: mod}
}

// GET /tribe/{tribe_id}/posts is members only. Non-members and guests
// get a 403, not an empty page, so the client can prompt to join.
func (th *TribeHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tribeId := TribeId(mux.Vars(r)["tribe_id"])
	viewerId := sessions.ViewerId(r.Context())

	if _, err := th.Tribes.GetById(r.Context(), tribeId); err != nil {
		common.WriteErr(w, err, "tribe not found")
		return
	}

	member, err := th.Tribes.IsActiveMember(r.Context(), tribeId, viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't check membership in tribe %s: %v", tribeId, err)
		common.WriteErr(w, err, "failed loading tribe posts")
		return
	}
	if !member {
		common.WriteMsg(w, "join the tribe to see its posts", http.StatusForbidden)
		return
	}

	limit := common.QueryInt(r, "limit", defaultLimit, maxLimit)
	cursor := post.ParseCursor(r.URL.Query())

	excl, err := th.Moderation.Exclusions(r.Context(), viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load exclusions: %v", err)
		common.WriteErr(w, err, "failed loading tribe posts")
		return
	}

	posts, err := th.Posts.List(r.Context(), post.ListOptions{
		Match:            bson.M{"tribeId": string(tribeId)},
		ExcludeAuthorIds: excl.BlockedUserIds,
		ExcludePostIds:   excl.ReportedPostIds,
		Cursor:           cursor,
		Limit:            limit,
	})
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load posts of tribe %s: %v", tribeId, err)
		common.WriteErr(w, err, "failed loading tribe posts")
		return
	}

	enriched, err := th.Enricher.Enrich(r.Context(), posts, viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't enrich tribe posts: %v", err)
		common.WriteErr(w, err, "failed loading tribe posts")
		return
	}

	common.WriteRespJSON(w, struct {
		Posts      []*stats.EnrichedPost `json:"posts"`
		Pagination post.Pagination       `json:"pagination"`
	}{
		Posts:      enriched,
		Pagination: post.NewPagination(limit, post.NextCursor(posts, limit)),
	})
}

// POST /tribe/{tribe_id}/join
func (th *TribeHandler) Join(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	tribeId := TribeId(mux.Vars(r)["tribe_id"])
	if err := th.Tribes.Join(r.Context(), tribeId, authUser.Id); err != nil {
		logger.Log(r.Context()).Errorf("can't join tribe %s: %v", tribeId, err)
		common.WriteErr(w, err, "failed joining tribe")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

// DELETE /tribe/{tribe_id}/join
func (th *TribeHandler) Leave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	tribeId := TribeId(mux.Vars(r)["tribe_id"])
	if err := th.Tribes.Leave(r.Context(), tribeId, authUser.Id); err != nil {
		logger.Log(r.Context()).Errorf("can't leave tribe %s: %v", tribeId, err)
		common.WriteErr(w, err, "failed leaving tribe")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}
