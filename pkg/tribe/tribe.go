package tribe

import "time"

type TribeId string

type Tribe struct {
	Id          TribeId   `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	OwnerId     string    `bson:"ownerId" json:"ownerId"`
	IsDeleted   bool      `bson:"isDeleted" json:"-"`
	Created     time.Time `bson:"createdAt" json:"created"`
}

const (
	MemberActive = "active"
	MemberLeft   = "left"
	MemberBanned = "banned"
)

type Membership struct {
	TribeId TribeId   `bson:"tribeId" json:"tribeId"`
	UserId  string    `bson:"userId" json:"userId"`
	Status  string    `bson:"status" json:"status"`
	Created time.Time `bson:"createdAt" json:"created"`
	Updated time.Time `bson:"updatedAt" json:"updated"`
}
