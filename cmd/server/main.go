package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/layangkit/layangkit/core/auth"
	"github.com/layangkit/layangkit/core/config"
	"github.com/layangkit/layangkit/core/cookie"
	"github.com/layangkit/layangkit/core/email"
	"github.com/layangkit/layangkit/core/server"
	"github.com/layangkit/layangkit/core/session"
	"github.com/layangkit/layangkit/core/storage"
	"github.com/layangkit/layangkit/core/verification"
	"github.com/layangkit/layangkit/handler"
	"github.com/layangkit/layangkit/integration/database/pg"
	"github.com/layangkit/layangkit/integration/database/redis"
	"github.com/layangkit/layangkit/integration/email/postmark"
	"github.com/layangkit/layangkit/integration/oauth/google"
	"github.com/layangkit/layangkit/integration/storage/s3"
	"github.com/layangkit/layangkit/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCfg      logger.Config
		serverCfg   server.Config
		cookieCfg   cookie.Config
		pgCfg       pg.Config
		redisCfg    redis.Config
		postmarkCfg postmark.Config
		s3Cfg       s3.Config
		googleCfg   google.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&postmarkCfg)
	config.MustLoad(&s3Cfg)
	config.MustLoad(&googleCfg)

	log := logger.New(logCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.Error("failed to connect to database", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool); err != nil {
		log.Error("failed to migrate database", logger.Component("database.migration"), logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.Error("failed to connect to redis", logger.Component("redis"), logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	userStore := pg.NewUserStore(pool)
	postStore := pg.NewPostStore(pool)

	sessions := session.NewManager(pg.NewSessionStore(pool), userStore, session.WithLogger(log))
	tokens := verification.NewManager(pg.NewTokenStore(pool))

	var sender email.Sender
	if postmarkCfg.Configured() {
		sender, err = postmark.New(postmarkCfg)
		if err != nil {
			log.Error("failed to create postmark sender", logger.Component("email"), logger.Error(err))
			os.Exit(1)
		}
	} else {
		sender = email.NewDevSender("./tmp/emails")
		log.Warn("postmark not configured, writing emails to ./tmp/emails", logger.Component("email"))
	}

	authOpts := []auth.Option{
		auth.WithTxRunner(pg.NewRunner(pool)),
		auth.WithBaseURL(cookieCfg.BaseURL),
		auth.WithServiceLogger(log),
	}
	if googleCfg.Configured() {
		provider, err := google.New(ctx, googleCfg)
		if err != nil {
			log.Error("failed to init google oauth", logger.Component("oauth.google"), logger.Error(err))
			os.Exit(1)
		}
		authOpts = append(authOpts, auth.WithGoogle(provider, redis.NewStateStore(redisClient)))
	} else {
		log.Warn("google oauth not configured, sign-in with google disabled", logger.Component("oauth.google"))
	}

	svc := auth.NewService(userStore, sessions, tokens, sender, authOpts...)
	cookies := cookie.New(cookieCfg)

	var uploads *handler.UploadHandler
	if s3Cfg.Configured() {
		var store storage.Storage
		store, err = s3.New(ctx, s3Cfg)
		if err != nil {
			log.Error("failed to init object storage", logger.Component("storage"), logger.Error(err))
			os.Exit(1)
		}
		uploads = handler.NewUploadHandler(store, log)
	} else {
		log.Warn("object storage not configured, upload routes disabled", logger.Component("storage"))
	}

	router := handler.NewRouter(handler.RouterDeps{
		Auth:    handler.NewAuthHandler(svc, cookies, log),
		Profile: handler.NewProfileHandler(userStore, log),
		Users:   handler.NewUsersHandler(userStore, postStore, log),
		Posts:   handler.NewPostsHandler(postStore, log),
		Uploads: uploads,
		Health: handler.NewHealthHandler(map[string]func(context.Context) error{
			"postgres": pg.Healthcheck(pool),
			"redis":    redis.Healthcheck(redisClient),
		}),
		Sessions: sessions,
		Cookies:  cookies,
		Log:      log,
	})

	srv, err := server.NewFromConfig(serverCfg, server.WithLogger(log))
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("starting server", logger.Component("server"), "addr", serverCfg.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, router))
	if err := g.Wait(); err != nil {
		log.Error("server exited with error", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
}
