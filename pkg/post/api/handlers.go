package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"pulse/pkg/common"
	"pulse/pkg/feed"
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
	IPostRepo interface {
		Add(context.Context, *post.Post) (post.PostId, error)
		GetById(context.Context, post.PostId) (*post.Post, error)
		List(context.Context, post.ListOptions) ([]*post.Post, error)
		RecordView(ctx context.Context, id post.PostId, viewerId string) error
		SoftDelete(context.Context, post.PostId) error
	}

	IFeedAssembler interface {
		Get(ctx context.Context, viewerId string, q feed.Query) ([]*post.Post, *post.Cursor, error)
	}

	IEnricher interface {
		Enrich(ctx context.Context, posts []*post.Post, viewerId string) ([]*stats.EnrichedPost, error)
	}

	IExclusionSource interface {
		Exclusions(ctx context.Context, viewerId string) (moderation.Exclusions, error)
	}

	PostHandler struct {
		Posts      IPostRepo
		Feed       IFeedAssembler
		Enricher   IEnricher
		Moderation IExclusionSource
	}
)

func NewPostHandler(posts IPostRepo, fa IFeedAssembler, enricher IEnricher, mod IExclusionSource) *PostHandler {
	return &PostHandler{
		Posts:      posts,
		Feed:       fa,
		Enricher:   enricher,
		Moderation: mod,
	}
}

type listResponse struct {
	Posts      []*stats.EnrichedPost `json:"posts"`
	Pagination post.Pagination       `json:"pagination"`
}

// GET /posts is the main listing. feed=true takes the assembler path
// (ranking, follow boost); otherwise it is a plain recency listing,
// optionally narrowed to one author via targetUserId.
func (ph *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	viewerId := sessions.ViewerId(r.Context())
	limit := common.QueryInt(r, "limit", defaultLimit, maxLimit)
	cursor := post.ParseCursor(q)

	if typ := q.Get("type"); typ != "" && !post.ValidType(typ) {
		common.WriteErr(w, common.NewValidationError("unknown post type"), "bad request")
		return
	}

	var (
		posts      []*post.Post
		nextCursor *post.Cursor
		err        error
	)

	if q.Get("feed") == "true" {
		posts, nextCursor, err = ph.Feed.Get(r.Context(), viewerId, feed.Query{
			Limit:   limit,
			Cursor:  cursor,
			Type:    q.Get("type"),
			Hashtag: q.Get("hashtag"),
			Recent:  q.Get("sort") == "recent",
		})
	} else {
		posts, nextCursor, err = ph.plainList(r, viewerId, limit, cursor)
	}
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load posts: %v", err)
		common.WriteErr(w, err, "failed loading posts")
		return
	}

	ph.respond(w, r, posts, post.NewPagination(limit, nextCursor), viewerId)
}

func (ph *PostHandler) plainList(r *http.Request, viewerId string, limit int64, cursor *post.Cursor) ([]*post.Post, *post.Cursor, error) {
	q := r.URL.Query()

	// tribeId stays pinned even when narrowing to one author: tribe
	// posts only surface through the member-gated tribe endpoint.
	match := bson.M{"tribeId": ""}
	if target := q.Get("targetUserId"); target != "" {
		match["authorId"] = target
	}
	if typ := q.Get("type"); typ != "" {
		match["type"] = typ
	}
	if tag := q.Get("hashtag"); tag != "" {
		match["hashtags"] = tag
	}

	excl, err := ph.Moderation.Exclusions(r.Context(), viewerId)
	if err != nil {
		return nil, nil, err
	}

	posts, err := ph.Posts.List(r.Context(), post.ListOptions{
		Match:            match,
		ExcludeAuthorIds: excl.BlockedUserIds,
		ExcludePostIds:   excl.ReportedPostIds,
		Cursor:           cursor,
		Limit:            limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return posts, post.NextCursor(posts, limit), nil
}

// GET /user/{user_id}/posts lists posts authored by user_id, enriched from
// the viewer's viewpoint.
func (ph *PostHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	targetId := mux.Vars(r)["user_id"]
	viewerId := sessions.ViewerId(r.Context())
	limit := common.QueryInt(r, "limit", defaultLimit, maxLimit)
	cursor := post.ParseCursor(r.URL.Query())

	// Profile listings never show the author's tribe posts, members or
	// not. Tribe content has its own gated endpoint.
	match := bson.M{"authorId": targetId, "tribeId": ""}
	if typ := r.URL.Query().Get("type"); typ != "" {
		match["type"] = typ
	}

	excl, err := ph.Moderation.Exclusions(r.Context(), viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load exclusions: %v", err)
		common.WriteErr(w, err, "failed loading user posts")
		return
	}

	posts, err := ph.Posts.List(r.Context(), post.ListOptions{
		Match:            match,
		ExcludeAuthorIds: excl.BlockedUserIds,
		ExcludePostIds:   excl.ReportedPostIds,
		Cursor:           cursor,
		Limit:            limit,
	})
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load posts of user %s: %v", targetId, err)
		common.WriteErr(w, err, "failed loading user posts")
		return
	}

	ph.respond(w, r, posts, post.NewPagination(limit, post.NextCursor(posts, limit)), viewerId)
}

// GET /post/{post_id} returns one enriched post. Records a view event on the
// way out; a failed view write never fails the response.
func (ph *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	postId := post.PostId(mux.Vars(r)["post_id"])
	viewerId := sessions.ViewerId(r.Context())

	p, err := ph.Posts.GetById(r.Context(), postId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get post %s: %v", postId, err)
		common.WriteErr(w, err, "post not found")
		return
	}

	if err := ph.Posts.RecordView(r.Context(), postId, viewerId); err != nil {
		logger.Log(r.Context()).Errorf("can't record view for post %s: %v", postId, err)
	}

	enriched, err := ph.Enricher.Enrich(r.Context(), []*post.Post{p}, viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't enrich post %s: %v", postId, err)
		common.WriteErr(w, err, "failed loading post")
		return
	}

	common.WriteRespJSON(w, enriched[0])
}

type createPostRequest struct {
	Type          string     `json:"type"`
	Caption       string     `json:"caption"`
	Media         []string   `json:"media"`
	Location      string     `json:"location"`
	Hashtags      []string   `json:"hashtags"`
	TaggedUserIds []string   `json:"taggedUserIds"`
	Poll          *post.Poll `json:"poll"`
	TribeId       string     `json:"tribeId"`
}

// POST /posts
func (ph *PostHandler) Add(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	author, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	req := new(createPostRequest)
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse post from request body: %v", err)
		common.WriteMsg(w, "can't parse post", http.StatusBadRequest)
		return
	}

	now := time.Now()
	p := &post.Post{
		Id:            post.PostId(common.RandStringRunes(12)),
		AuthorId:      author.Id,
		Type:          req.Type,
		Caption:       req.Caption,
		Media:         req.Media,
		Location:      req.Location,
		Hashtags:      req.Hashtags,
		TaggedUserIds: req.TaggedUserIds,
		Poll:          req.Poll,
		TribeId:       req.TribeId,
		Created:       now,
		Updated:       now,
	}
	if err := post.Validate(p); err != nil {
		common.WriteErr(w, err, "bad request")
		return
	}

	if _, err := ph.Posts.Add(r.Context(), p); err != nil {
		logger.Log(r.Context()).Errorf("can't add post: %v", err)
		common.WriteErr(w, err, "failed adding post")
		return
	}

	p.Author = author
	w.WriteHeader(http.StatusCreated)
	common.WriteRespJSON(w, p)
}

// DELETE /post/{post_id}
func (ph *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	p, err := ph.Posts.GetById(r.Context(), postId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't find post %s: %v", postId, err)
		common.WriteErr(w, err, "post not found")
		return
	}

	if p.AuthorId != authUser.Id {
		common.WriteMsg(w, "only the author can remove the post", http.StatusForbidden)
		return
	}

	if err := ph.Posts.SoftDelete(r.Context(), postId); err != nil {
		logger.Log(r.Context()).Errorf("can't remove post %s: %v", postId, err)
		common.WriteErr(w, err, "removing post failed")
		return
	}

	common.WriteMsg(w, "success", http.StatusOK)
}

func (ph *PostHandler) respond(w http.ResponseWriter, r *http.Request, posts []*post.Post, pagination post.Pagination, viewerId string) {
	enriched, err := ph.Enricher.Enrich(r.Context(), posts, viewerId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't enrich posts: %v", err)
		common.WriteErr(w, err, "failed loading posts")
		return
	}
	common.WriteRespJSON(w, listResponse{Posts: enriched, Pagination: pagination})
}
