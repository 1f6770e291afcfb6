package tribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"pulse/pkg/common"
	"pulse/pkg/moderation"
	"pulse/pkg/post"
	"pulse/pkg/sessions"
	"pulse/pkg/stats"
	"pulse/pkg/user"
)

type fakeTribeRepo struct {
	tribes  map[TribeId]*Tribe
	members map[string]bool // tribeId+":"+userId
}

func (f *fakeTribeRepo) GetById(_ context.Context, id TribeId) (*Tribe, error) {
	if t, ok := f.tribes[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("tribe %s: %w", id, common.ErrNotFound)
}

func (f *fakeTribeRepo) IsActiveMember(_ context.Context, tribeId TribeId, userId string) (bool, error) {
	return f.members[string(tribeId)+":"+userId], nil
}

func (f *fakeTribeRepo) Join(context.Context, TribeId, string) error  { return nil }
func (f *fakeTribeRepo) Leave(context.Context, TribeId, string) error { return nil }

type fakePostLister struct {
	posts    []*post.Post
	lastOpts post.ListOptions
}

func (f *fakePostLister) List(_ context.Context, opts post.ListOptions) ([]*post.Post, error) {
	f.lastOpts = opts
	return f.posts, nil
}

type fakeEnricher struct{}

func (fakeEnricher) Enrich(_ context.Context, posts []*post.Post, _ string) ([]*stats.EnrichedPost, error) {
	enriched := []*stats.EnrichedPost{}
	for _, p := range posts {
		enriched = append(enriched, &stats.EnrichedPost{Post: p})
	}
	return enriched, nil
}

type fakeExclusions struct{}

func (fakeExclusions) Exclusions(context.Context, string) (moderation.Exclusions, error) {
	return moderation.Exclusions{}, nil
}

func postsReq(tribeId string, viewer *user.User) *http.Request {
	r := httptest.NewRequest("GET", "/api/tribe/"+tribeId+"/posts", nil)
	r = mux.SetURLVars(r, map[string]string{"tribe_id": tribeId})
	if viewer != nil {
		r = r.WithContext(context.WithValue(r.Context(), sessions.SessionKey, viewer))
	}
	return r
}

func TestGetPosts(t *testing.T) {
	tribes := &fakeTribeRepo{
		tribes:  map[TribeId]*Tribe{"tr1": {Id: "tr1", Name: "gophers"}},
		members: map[string]bool{"tr1:u1": true},
	}
	lister := &fakePostLister{posts: []*post.Post{
		{Id: "p1", AuthorId: "u1", TribeId: "tr1"},
	}}
	th := NewTribeHandler(tribes, lister, fakeEnricher{}, fakeExclusions{})

	t.Run("guest gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		th.GetPosts(w, postsReq("tr1", nil))
		assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	})

	t.Run("non-member gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		th.GetPosts(w, postsReq("tr1", &user.User{Id: "stranger"}))
		assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	})

	t.Run("unknown tribe is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		th.GetPosts(w, postsReq("missing", &user.User{Id: "u1"}))
		assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	})

	t.Run("member reads the tribe listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		th.GetPosts(w, postsReq("tr1", &user.User{Id: "u1"}))
		resp := w.Result()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// listing is scoped to the tribe
		assert.Equal(t, "tr1", lister.lastOpts.Match["tribeId"])

		var body struct {
			Posts      []json.RawMessage `json:"posts"`
			Pagination post.Pagination   `json:"pagination"`
		}
		assert.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Posts, 1)
	})
}
