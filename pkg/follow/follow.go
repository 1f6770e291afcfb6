package follow

import "time"

// Relationship codes reported to the viewer. Only the viewer->candidate
// edge maps to a code; the reverse direction is never exposed.
type StatusCode int

const (
	StatusNone     StatusCode = 0
	StatusPending  StatusCode = 1
	StatusAccepted StatusCode = 2
	StatusRejected StatusCode = 3
	StatusSelf     StatusCode = 4
)

const (
	Pending  = "pending"
	Accepted = "accepted"
	Rejected = "rejected"
)

// A follow edge is active (counts for follower totals and ranking
// boosts) only when accepted and not deleted.
type Follow struct {
	Id         string    `bson:"id" json:"id"`
	FollowerId string    `bson:"followerId" json:"followerId"`
	FolloweeId string    `bson:"followeeId" json:"followeeId"`
	Status     string    `bson:"status" json:"status"`
	IsDeleted  bool      `bson:"isDeleted" json:"-"`
	Created    time.Time `bson:"createdAt" json:"created"`
	Updated    time.Time `bson:"updatedAt" json:"updated"`
}

func codeForStatus(status string) StatusCode {
	switch status {
	case Pending:
		return StatusPending
	case Accepted:
		return StatusAccepted
	case Rejected:
		return StatusRejected
	}
	return StatusNone
}
