package vote

import (
	"math"
	"time"

	"pulse/pkg/post"
)

// One vote per (post, voter), enforced by the atomic upsert in
// Repo.Cast plus a unique index.
type Vote struct {
	Id      string      `bson:"id" json:"id"`
	PostId  post.PostId `bson:"postId" json:"postId"`
	UserId  string      `bson:"userId" json:"userId"`
	Option  int         `bson:"option" json:"option"`
	Correct bool        `bson:"correct" json:"correct"`
	Created time.Time   `bson:"createdAt" json:"created"`
}

// Tally is the per-post vote distribution: option index -> count.
type Tally struct {
	Total   int64
	Options map[int]int64
}

type OptionResult struct {
	Text    string `json:"text"`
	Count   int64  `json:"count"`
	Percent int    `json:"percent"`
}

// Expands a tally over the poll's option list. Options nobody voted
// for come back with zero count; with a zero total every percent is 0.
func (t Tally) Results(options []string) []OptionResult {
	results := make([]OptionResult, len(options))
	for i, text := range options {
		count := t.Options[i]
		percent := 0
		if t.Total > 0 {
			percent = int(math.Round(float64(count) / float64(t.Total) * 100))
		}
		results[i] = OptionResult{Text: text, Count: count, Percent: percent}
	}
	return results
}
