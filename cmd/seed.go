package main

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"pulse/pkg/comment"
	. "pulse/pkg/common"
	"pulse/pkg/post"
	"pulse/pkg/user"
)

var (
	f             = faker.New()
	onePassForAll = HashPass("sdfsdfsdf", RandStringRunes(8)) // salt must have len of 8
)

type IUserRepo interface {
	Add(*user.User) (string, error)
	GetAll() ([]*user.User, error)
}

type ICommentRepo interface {
	Add(ctx context.Context, postId post.PostId, authorId, body string) (*comment.Comment, error)
}

func createAuthors(userRepo IUserRepo) {
	// User for experiments (not random)
	_, err := userRepo.Add(&user.User{
		Username: "pike",
		Name:     "Rob",
		Password: onePassForAll,
	})
	if err != nil {
		log.Fatalln("seed: can't create default user:", err)
	}
	for i := 1; i <= 5; i++ {
		genUser(userRepo, i)
	}
}

func seed(userRepo IUserRepo, postRepo *post.Repo, commentRepo ICommentRepo) {
	authors, err := userRepo.GetAll()
	if err != nil {
		log.Fatalln("seed: can't get all authors:", err)
	}

	if len(authors) == 0 {
		createAuthors(userRepo)
		if authors, err = userRepo.GetAll(); err != nil {
			log.Fatalln("seed: can't get all authors:", err)
		}
	}

	for i := 0; i <= 5; i++ {
		p := genPost(authors)
		if _, err := postRepo.Add(context.Background(), p); err != nil {
			log.Fatalln("seed: can't add post:", err)
		}
		genComments(commentRepo, p.Id, authors)
	}
}

func randType() string {
	types := []string{post.TypeText, post.TypeImage, post.TypeVideo, post.TypePoll}
	return types[rand.Intn(len(types))]
}

func randHashtags() []string {
	tags := []string{"programming", "music", "videos", "funny", "news", "fashion"}
	n := rand.Intn(3)
	picked := []string{}
	for i := 0; i <= n; i++ {
		picked = append(picked, tags[rand.Intn(len(tags))])
	}
	return picked
}

func genUser(userRepo IUserRepo, id int) {
	person := f.Person()
	username := strings.ToLower(person.FirstName())
	u := user.User{
		// ID is made from the counter because we want them the same after server reloading
		Id:       strconv.Itoa(id),
		Username: username,
		Name:     person.Name(),
		Avatar:   f.Internet().URL(),
		Password: onePassForAll,
	}
	_, err := userRepo.Add(&u)
	if err != nil {
		log.Fatalln("seed: can't add user:", err)
	}
}

func genComments(commentRepo ICommentRepo, postId post.PostId, users []*user.User) {
	n := rand.Intn(10)
	for i := 0; i <= n; i++ {
		author := randUser(users)
		if _, err := commentRepo.Add(context.Background(), postId, author.Id, genText()); err != nil {
			log.Fatalln("seed: can't add comment:", err)
		}
	}
}

func genText() string {
	return f.Lorem().Paragraph(rand.Intn(3) + 2)
}

func genPost(users []*user.User) *post.Post {
	postType := randType()

	p := &post.Post{
		Id:       post.PostId(RandStringRunes(12)),
		AuthorId: randUser(users).Id,
		Type:     postType,
		Caption:  genText(),
		Hashtags: randHashtags(),
		Created:  f.Time().Time(time.Now()),
	}
	p.Updated = p.Created

	switch postType {
	case post.TypeImage:
		p.Media = []string{f.Internet().URL()}
	case post.TypeVideo:
		p.Media = []string{f.Internet().URL()}
	case post.TypePoll:
		p.Poll = &post.Poll{
			Options: f.Lorem().Words(rand.Intn(3) + 2),
		}
	}
	return p
}

func randUser(users []*user.User) *user.User {
	idx := rand.Intn(len(users))
	return users[idx]
}
