package main

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulse/pkg/comment"
	"pulse/pkg/feed"
	"pulse/pkg/follow"
	"pulse/pkg/like"
	"pulse/pkg/logger"
	"pulse/pkg/middleware"
	"pulse/pkg/moderation"
	"pulse/pkg/mongodb"
	"pulse/pkg/post"
	postapi "pulse/pkg/post/api"
	"pulse/pkg/saved"
	"pulse/pkg/sessions"
	"pulse/pkg/share"
	"pulse/pkg/stats"
	"pulse/pkg/tribe"
	"pulse/pkg/user"
	userapi "pulse/pkg/user/api"
	"pulse/pkg/vote"
)

type EnvConfig map[string]string

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {
	var cfg EnvConfig = readDotenv()

	db, err := sql.Open("pgx", "postgresql://localhost/"+cfg["POSTGRES_DB"]+"?sslmode=disable")
	if err != nil {
		log.Printf("Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("unable to reach PostgreSQL: %v", err)
	}

	redisConn, err := redis.DialURL(cfg["REDIS_ADDR"])
	if err != nil {
		log.Fatalf("main: can't connect to Redis")
	}

	mongoCtx, mongoCtxCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer mongoCtxCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg["MONGODB_URI"]))
	if err != nil {
		log.Fatalln("main: can't connect to MongoDB,", err)
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		log.Fatalln("main: unable to connect to MongoDB,", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(mongoCtx); err != nil {
			log.Fatalln("main: failed disconnecting from MongoDB, ", err)
		}
	}()

	mongoDB := mongoClient.Database("pulse")
	if err := mongodb.EnsureIndexes(mongoCtx, mongoDB); err != nil {
		log.Fatalln("main: failed ensuring MongoDB indexes,", err)
	}

	usersRepo := user.NewUserRepo(db)
	postsRepo := post.NewPostRepo(mongoDB.Collection("posts"), mongoDB.Collection("postViews"), usersRepo)
	commentsRepo := comment.NewCommentRepo(mongoDB.Collection("comments"))
	likesRepo := like.NewLikeRepo(mongoDB.Collection("likes"))
	sharesRepo := share.NewShareRepo(mongoDB.Collection("shares"))
	votesRepo := vote.NewVoteRepo(mongoDB.Collection("votes"))
	followsRepo := follow.NewFollowRepo(mongoDB.Collection("follows"))
	moderationRepo := moderation.NewModerationRepo(mongoDB.Collection("blocks"), mongoDB.Collection("reports"))
	tribesRepo := tribe.NewTribeRepo(mongoDB.Collection("tribes"), mongoDB.Collection("memberships"))
	savedRepo := saved.NewSavedRepo(mongoDB.Collection("savedPosts"))

	enricher := stats.NewEnricher(commentsRepo, likesRepo, sharesRepo, votesRepo, followsRepo)
	assembler := feed.NewAssembler(postsRepo, moderationRepo, followsRepo)
	sessionManager := sessions.NewSessionManager(cfg["SECRET_KEY"], redisConn)

	postHandler := postapi.NewPostHandler(postsRepo, assembler, enricher, moderationRepo)
	userHandler := userapi.NewUserHandler(usersRepo, sessionManager)
	commentHandler := comment.NewCommentHandler(commentsRepo, postsRepo)
	likeHandler := like.NewLikeHandler(likesRepo, postsRepo)
	shareHandler := share.NewShareHandler(sharesRepo, postsRepo)
	voteHandler := vote.NewVoteHandler(votesRepo, postsRepo)
	followHandler := follow.NewFollowHandler(followsRepo)
	moderationHandler := moderation.NewModerationHandler(moderationRepo, postsRepo)
	tribeHandler := tribe.NewTribeHandler(tribesRepo, postsRepo, enricher, moderationRepo)
	savedHandler := saved.NewSavedHandler(savedRepo, postsRepo, enricher)

	r := mux.NewRouter()

	// Generate fake content to have better UI experience
	// seed(usersRepo, postsRepo, commentsRepo)

	api := r.PathPrefix("/api").Subrouter()

	// Posts
	api.HandleFunc("/posts", postHandler.List).Methods("GET")
	api.HandleFunc("/posts", middleware.RequireAuth(postHandler.Add)).Methods("POST")
	api.HandleFunc("/post/{post_id}", postHandler.Get).Methods("GET")
	api.HandleFunc("/post/{post_id}", middleware.RequireAuth(postHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/user/{user_id}/posts", postHandler.GetByUser).Methods("GET")

	// Comments
	api.HandleFunc("/post/{post_id}/comment", middleware.RequireAuth(commentHandler.Add)).Methods("POST")
	api.HandleFunc("/comment/{comment_id}", middleware.RequireAuth(commentHandler.Delete)).Methods("DELETE")

	// Engagement
	api.HandleFunc("/post/{post_id}/like", middleware.RequireAuth(likeHandler.TogglePost)).Methods("POST")
	api.HandleFunc("/comment/{comment_id}/like", middleware.RequireAuth(likeHandler.ToggleComment)).Methods("POST")
	api.HandleFunc("/post/{post_id}/share", middleware.RequireAuth(shareHandler.Record)).Methods("POST")
	api.HandleFunc("/post/{post_id}/vote", middleware.RequireAuth(voteHandler.Cast)).Methods("PATCH")

	// Follows and moderation
	api.HandleFunc("/follow/{user_id}", middleware.RequireAuth(followHandler.Request)).Methods("POST")
	api.HandleFunc("/follow/{user_id}", middleware.RequireAuth(followHandler.Respond)).Methods("PATCH")
	api.HandleFunc("/follow/{user_id}", middleware.RequireAuth(followHandler.Unfollow)).Methods("DELETE")
	api.HandleFunc("/block/{user_id}", middleware.RequireAuth(moderationHandler.Block)).Methods("POST")
	api.HandleFunc("/block/{user_id}", middleware.RequireAuth(moderationHandler.Unblock)).Methods("DELETE")
	api.HandleFunc("/post/{post_id}/report", middleware.RequireAuth(moderationHandler.Report)).Methods("POST")

	// Tribes
	api.HandleFunc("/tribe/{tribe_id}/posts", tribeHandler.GetPosts).Methods("GET")
	api.HandleFunc("/tribe/{tribe_id}/join", middleware.RequireAuth(tribeHandler.Join)).Methods("POST")
	api.HandleFunc("/tribe/{tribe_id}/join", middleware.RequireAuth(tribeHandler.Leave)).Methods("DELETE")

	// Saved posts
	api.HandleFunc("/savedPosts", middleware.RequireAuth(savedHandler.List)).Methods("GET")
	api.HandleFunc("/post/{post_id}/save", middleware.RequireAuth(savedHandler.Save)).Methods("POST")
	api.HandleFunc("/post/{post_id}/save", middleware.RequireAuth(savedHandler.Unsave)).Methods("DELETE")

	// User
	api.HandleFunc("/register", userHandler.Register).Methods("POST")
	api.HandleFunc("/login", userHandler.LogIn).Methods("POST")

	auth := middleware.NewAuthMiddleware(sessionManager, usersRepo)
	r.Use(auth.Middleware)

	logMiddleware := middleware.NewLoggingMiddleware(logger.Run(cfg["LOG_LEVEL"]))
	r.Use(logMiddleware.SetupTracing)
	r.Use(logMiddleware.SetupLogging)
	r.Use(logMiddleware.AccessLog)
	r.Use(logMiddleware.Recover)

	log.Println("Serving at http://localhost:8080/")
	log.Fatalln(http.ListenAndServe(":8080", r))
}

func readDotenv() EnvConfig {
	env, err := godotenv.Read()
	if err != nil {
		log.Fatal("failed reading .env file:", err)
	}
	return env
}
