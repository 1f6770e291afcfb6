package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"pulse/pkg/common"
	"pulse/pkg/feed"
	"pulse/pkg/moderation"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
	"pulse/pkg/stats"
	"pulse/pkg/user"
)

type fakePostRepo struct {
	byId     map[post.PostId]*post.Post
	listed   []*post.Post
	lastOpts post.ListOptions

	viewErr       error
	recordedViews []post.PostId
	deleted       []post.PostId
}

func (f *fakePostRepo) Add(_ context.Context, p *post.Post) (post.PostId, error) {
	return p.Id, nil
}

func (f *fakePostRepo) GetById(_ context.Context, id post.PostId) (*post.Post, error) {
	if p, ok := f.byId[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("post %s: %w", id, common.ErrNotFound)
}

func (f *fakePostRepo) List(_ context.Context, opts post.ListOptions) ([]*post.Post, error) {
	f.lastOpts = opts
	return f.listed, nil
}

func (f *fakePostRepo) RecordView(_ context.Context, id post.PostId, _ string) error {
	if f.viewErr != nil {
		return f.viewErr
	}
	f.recordedViews = append(f.recordedViews, id)
	return nil
}

func (f *fakePostRepo) SoftDelete(_ context.Context, id post.PostId) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeFeed struct {
	posts  []*post.Post
	lastQ  feed.Query
	called bool
}

func (f *fakeFeed) Get(_ context.Context, _ string, q feed.Query) ([]*post.Post, *post.Cursor, error) {
	f.called = true
	f.lastQ = q
	return f.posts, post.NextCursor(f.posts, q.Limit), nil
}

type fakeEnricher struct{}

func (fakeEnricher) Enrich(_ context.Context, posts []*post.Post, _ string) ([]*stats.EnrichedPost, error) {
	enriched := []*stats.EnrichedPost{}
	for _, p := range posts {
		enriched = append(enriched, &stats.EnrichedPost{Post: p})
	}
	return enriched, nil
}

type fakeExclusions struct{ excl moderation.Exclusions }

func (f fakeExclusions) Exclusions(context.Context, string) (moderation.Exclusions, error) {
	return f.excl, nil
}

func asUser(r *http.Request, u *user.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessions.SessionKey, u))
}

func TestListPlain(t *testing.T) {
	repo := &fakePostRepo{listed: []*post.Post{{Id: "p1", AuthorId: "u1", Type: post.TypeText}}}
	ff := &fakeFeed{}
	ph := NewPostHandler(repo, ff, fakeEnricher{}, fakeExclusions{})

	w := httptest.NewRecorder()
	ph.List(w, httptest.NewRequest("GET", "/api/posts?limit=10", nil))
	resp := w.Result()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, ff.called)

	// plain listing stays out of tribes
	assert.Equal(t, "", repo.lastOpts.Match["tribeId"])
	assert.False(t, repo.lastOpts.RankByEngagement)

	var body struct {
		Posts      []json.RawMessage `json:"posts"`
		Pagination post.Pagination   `json:"pagination"`
	}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Posts, 1)
	assert.Equal(t, int64(10), body.Pagination.Limit)
}

func TestListFeed(t *testing.T) {
	repo := &fakePostRepo{}
	ff := &fakeFeed{posts: []*post.Post{{Id: "p1", AuthorId: "u1", Type: post.TypeText}}}
	ph := NewPostHandler(repo, ff, fakeEnricher{}, fakeExclusions{})

	t.Run("feed=true takes the assembler path, ranked by default", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.List(w, httptest.NewRequest("GET", "/api/posts?feed=true&limit=10", nil))

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.True(t, ff.called)
		assert.False(t, ff.lastQ.Recent)
		assert.Equal(t, int64(10), ff.lastQ.Limit)
	})

	t.Run("sort=recent disables ranking", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.List(w, httptest.NewRequest("GET", "/api/posts?feed=true&sort=recent", nil))
		assert.True(t, ff.lastQ.Recent)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.List(w, httptest.NewRequest("GET", "/api/posts?type=story", nil))
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestListExclusionsApplied(t *testing.T) {
	repo := &fakePostRepo{}
	excl := fakeExclusions{excl: moderation.Exclusions{
		BlockedUserIds:  []string{"blocked"},
		ReportedPostIds: []post.PostId{"reported"},
	}}
	ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, excl)

	w := httptest.NewRecorder()
	ph.List(w, httptest.NewRequest("GET", "/api/posts", nil))

	assert.Equal(t, []string{"blocked"}, repo.lastOpts.ExcludeAuthorIds)
	assert.Equal(t, []post.PostId{"reported"}, repo.lastOpts.ExcludePostIds)
}

func TestAuthorListingsStayOutOfTribes(t *testing.T) {
	// An author's tribe posts must not leak to guests through the
	// profile listings; only the gated tribe endpoint serves them.
	t.Run("targetUserId listing", func(t *testing.T) {
		repo := &fakePostRepo{}
		ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, fakeExclusions{})

		w := httptest.NewRecorder()
		ph.List(w, httptest.NewRequest("GET", "/api/posts?targetUserId=u1", nil))

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "u1", repo.lastOpts.Match["authorId"])
		assert.Equal(t, "", repo.lastOpts.Match["tribeId"])
	})

	t.Run("profile listing", func(t *testing.T) {
		repo := &fakePostRepo{}
		ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, fakeExclusions{})

		r := httptest.NewRequest("GET", "/api/user/u1/posts", nil)
		r = mux.SetURLVars(r, map[string]string{"user_id": "u1"})
		w := httptest.NewRecorder()
		ph.GetByUser(w, r)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "u1", repo.lastOpts.Match["authorId"])
		assert.Equal(t, "", repo.lastOpts.Match["tribeId"])
	})
}

func detailReq(postId string, viewer *user.User) *http.Request {
	r := httptest.NewRequest("GET", "/api/post/"+postId, nil)
	r = mux.SetURLVars(r, map[string]string{"post_id": postId})
	if viewer != nil {
		r = asUser(r, viewer)
	}
	return r
}

func TestGet(t *testing.T) {
	repo := &fakePostRepo{byId: map[post.PostId]*post.Post{
		"p1": {Id: "p1", AuthorId: "u1", Type: post.TypeText},
	}}
	ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, fakeExclusions{})

	t.Run("detail read records a view", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.Get(w, detailReq("p1", &user.User{Id: "viewer"}))

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, []post.PostId{"p1"}, repo.recordedViews)
	})

	t.Run("failed view write never fails the response", func(t *testing.T) {
		repo.viewErr = fmt.Errorf("views collection is down")
		defer func() { repo.viewErr = nil }()

		w := httptest.NewRecorder()
		ph.Get(w, detailReq("p1", nil))
		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.Get(w, detailReq("missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	})
}

func TestAdd(t *testing.T) {
	repo := &fakePostRepo{}
	ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, fakeExclusions{})

	addReq := func(body string, viewer *user.User) *http.Request {
		r := httptest.NewRequest("POST", "/api/posts", strings.NewReader(body))
		if viewer != nil {
			r = asUser(r, viewer)
		}
		return r
	}

	t.Run("guest can't post", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.Add(w, addReq(`{"type": "text", "caption": "hi"}`, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
	})

	t.Run("valid post is created", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.Add(w, addReq(`{"type": "text", "caption": "hi"}`, &user.User{Id: "u1"}))
		assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	})

	t.Run("poll with one option is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		ph.Add(w, addReq(`{"type": "poll", "poll": {"options": ["only"]}}`, &user.User{Id: "u1"}))
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestDelete(t *testing.T) {
	repo := &fakePostRepo{byId: map[post.PostId]*post.Post{
		"p1": {Id: "p1", AuthorId: "author", Type: post.TypeText},
	}}
	ph := NewPostHandler(repo, &fakeFeed{}, fakeEnricher{}, fakeExclusions{})

	t.Run("only the author deletes", func(t *testing.T) {
		r := httptest.NewRequest("DELETE", "/api/post/p1", nil)
		r = mux.SetURLVars(r, map[string]string{"post_id": "p1"})
		w := httptest.NewRecorder()
		ph.Delete(w, asUser(r, &user.User{Id: "somebody"}))
		assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
		assert.Empty(t, repo.deleted)
	})

	t.Run("author deletes own post", func(t *testing.T) {
		r := httptest.NewRequest("DELETE", "/api/post/p1", nil)
		r = mux.SetURLVars(r, map[string]string{"post_id": "p1"})
		w := httptest.NewRecorder()
		ph.Delete(w, asUser(r, &user.User{Id: "author"}))
		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, []post.PostId{"p1"}, repo.deleted)
	})
}
