package post

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"pulse/pkg/common"
	"pulse/pkg/user"
)

// Post types. Poll payload is present only for poll and quiz posts,
// a correct option only for quiz.
const (
	TypeText     = "text"
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeCarousel = "carousel"
	TypePoll     = "poll"
	TypeQuiz     = "quiz"
	TypeReel     = "reel"
)

var knownTypes = map[string]bool{
	TypeText:     true,
	TypeImage:    true,
	TypeVideo:    true,
	TypeCarousel: true,
	TypePoll:     true,
	TypeQuiz:     true,
	TypeReel:     true,
}

func ValidType(t string) bool {
	return knownTypes[t]
}

type PostId string

type Poll struct {
	Options       []string `bson:"options" json:"options"`
	CorrectOption *int     `bson:"correctOption,omitempty" json:"correctOption,omitempty"`
}

type Post struct {
	Id            PostId       `bson:"id" json:"id"`
	AuthorId      string       `bson:"authorId" json:"-"`
	Author        *user.User   `bson:"-" json:"author"`
	Type          string       `bson:"type" json:"type"`
	Caption       string       `bson:"caption" json:"caption"`
	Media         []string     `bson:"media" json:"media"`
	Location      string       `bson:"location" json:"location,omitempty"`
	Hashtags      []string     `bson:"hashtags" json:"hashtags"`
	TaggedUserIds []string     `bson:"taggedUserIds" json:"-"`
	TaggedUsers   []*user.User `bson:"-" json:"taggedUsers"`
	Poll          *Poll        `bson:"poll,omitempty" json:"poll,omitempty"`

	// Empty TribeId means the post belongs to the general feed;
	// a tribe post never appears there.
	TribeId string `bson:"tribeId" json:"tribeId,omitempty"`

	IsDeleted bool      `bson:"isDeleted" json:"-"`
	Created   time.Time `bson:"createdAt" json:"created"`
	Updated   time.Time `bson:"updatedAt" json:"updated"`
}

// ViewEvent is an append-only record of a post detail read.
type ViewEvent struct {
	PostId  PostId    `bson:"postId"`
	UserId  string    `bson:"userId"`
	Created time.Time `bson:"createdAt"`
}

// Checks the shape of a post at the write boundary. Aggregation and
// enrichment assume posts already passed here.
func Validate(p *Post) error {
	issues := []string{}
	if !ValidType(p.Type) {
		issues = append(issues, fmt.Sprintf("unknown post type %q", p.Type))
	}
	isPoll := p.Type == TypePoll || p.Type == TypeQuiz
	switch {
	case isPoll && (p.Poll == nil || len(p.Poll.Options) < 2):
		issues = append(issues, "poll and quiz posts need at least two options")
	case !isPoll && p.Poll != nil:
		issues = append(issues, fmt.Sprintf("%s posts can't carry poll options", p.Type))
	}
	if p.Poll != nil {
		switch {
		case p.Type == TypeQuiz && p.Poll.CorrectOption == nil:
			issues = append(issues, "quiz posts need a correct option")
		case p.Type == TypeQuiz && (*p.Poll.CorrectOption < 0 || *p.Poll.CorrectOption >= len(p.Poll.Options)):
			issues = append(issues, "correct option is out of range")
		case p.Type == TypePoll && p.Poll.CorrectOption != nil:
			issues = append(issues, "poll posts can't have a correct option")
		}
	}
	if len(issues) > 0 {
		return &common.ValidationError{Issues: issues}
	}
	return nil
}

// Cursor is the compound pagination cursor: createdAt of the last item
// of the previous page plus its id as a tiebreak. Offset pagination is
// never used for post listings, the set is too write-hot for it.
type Cursor struct {
	CreatedAt time.Time
	Id        PostId
}

// Parses `cursor` (unix millis) and `cursorId` query params. Both must
// be present to count; anything else means "start from the top".
func ParseCursor(q url.Values) *Cursor {
	rawTs := q.Get("cursor")
	rawId := q.Get("cursorId")
	if rawTs == "" || rawId == "" {
		return nil
	}
	ms, err := strconv.ParseInt(rawTs, 10, 64)
	if err != nil {
		return nil
	}
	return &Cursor{
		CreatedAt: time.UnixMilli(ms),
		Id:        PostId(rawId),
	}
}

// Cursor for the page after this one. Nil when the page came back
// short, meaning there is nothing left to fetch. The cursor is the
// oldest item of the page, not the last one: a ranked page is ordered
// by score, so the last item's timestamp says nothing about where the
// page's recency window ended.
func NextCursor(posts []*Post, limit int64) *Cursor {
	if int64(len(posts)) < limit || len(posts) == 0 {
		return nil
	}
	oldest := posts[0]
	for _, p := range posts[1:] {
		if p.Created.Before(oldest.Created) ||
			(p.Created.Equal(oldest.Created) && p.Id < oldest.Id) {
			oldest = p
		}
	}
	return &Cursor{CreatedAt: oldest.Created, Id: oldest.Id}
}

type Pagination struct {
	Limit        int64  `json:"limit"`
	NextCursor   int64  `json:"nextCursor,omitempty"`
	NextCursorId string `json:"nextCursorId,omitempty"`
}

func NewPagination(limit int64, c *Cursor) Pagination {
	p := Pagination{Limit: limit}
	if c != nil {
		p.NextCursor = c.CreatedAt.UnixMilli()
		p.NextCursorId = string(c.Id)
	}
	return p
}
