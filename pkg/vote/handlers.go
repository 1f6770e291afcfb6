package vote

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
	IVoteRepo interface {
		Cast(ctx context.Context, p *post.Post, userId string, option int) (*Vote, error)
		TallyByPost(ctx context.Context, postIds []post.PostId) (map[post.PostId]Tally, error)
	}

	IPostGetter interface {
		GetById(context.Context, post.PostId) (*post.Post, error)
	}

	VoteHandler struct {
		Votes IVoteRepo
		Posts IPostGetter
	}
)

func NewVoteHandler(votes IVoteRepo, posts IPostGetter) *VoteHandler {
	return &VoteHandler{Votes: votes, Posts: posts}
}

type voteResponse struct {
	Option      int            `json:"option"`
	Correct     *bool          `json:"correct,omitempty"`
	TotalVotes  int64          `json:"totalVotes"`
	PollResults []OptionResult `json:"pollResults"`
}

// PATCH /post/{post_id}/vote. One vote per user per poll, first write
// wins. A repeated vote comes back as a conflict, never as a double
// count.
func (vh *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "not authorized", http.StatusUnauthorized)
		return
	}

	postId := post.PostId(mux.Vars(r)["post_id"])
	p, err := vh.Posts.GetById(r.Context(), postId)
	if err != nil {
		common.WriteErr(w, err, "post not found")
		return
	}
	if p.Poll == nil {
		common.WriteErr(w, common.NewValidationError("post has no poll"), "bad request")
		return
	}

	req := new(struct {
		Option int `json:"option"`
	})
	if err := common.ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse vote from request body: %v", err)
		common.WriteMsg(w, "can't parse vote", http.StatusBadRequest)
		return
	}

	v, err := vh.Votes.Cast(r.Context(), p, authUser.Id, req.Option)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't cast vote on post %s: %v", postId, err)
		common.WriteErr(w, err, "failed casting vote")
		return
	}

	tallies, err := vh.Votes.TallyByPost(r.Context(), []post.PostId{postId})
	if err != nil {
		logger.Log(r.Context()).Errorf("can't tally votes for post %s: %v", postId, err)
		common.WriteErr(w, err, "failed loading poll results")
		return
	}
	tally := tallies[postId]

	resp := voteResponse{
		Option:      v.Option,
		TotalVotes:  tally.Total,
		PollResults: tally.Results(p.Poll.Options),
	}
	if p.Type == post.TypeQuiz {
		correct := v.Correct
		resp.Correct = &correct
	}
	common.WriteRespJSON(w, resp)
}
