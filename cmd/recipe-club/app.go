package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkolev/recipe-club/internal/config"
	"github.com/mkolev/recipe-club/internal/coordinator"
	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/notify"
	"github.com/mkolev/recipe-club/internal/session"
	"github.com/mkolev/recipe-club/internal/store"
)

// app is one wired application session: config, state DB, gateway client,
// the four stores and the running coordinator.
type app struct {
	db        *sqlx.DB
	users     *store.UserStore
	recipes   *store.RecipeStore
	articles  *store.ArticleStore
	favorites *store.FavoriteStore
	watcher   *session.Watcher
	cancel    context.CancelFunc
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := session.Open(cfg.State.Path)
	if err != nil {
		return nil, err
	}

	sess, err := session.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client, err := gateway.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sess)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	notifier := notify.LogNotifier{}
	nav := notify.NopNavigator{}
	watcher := &session.Watcher{}

	a := &app{
		db:        db,
		watcher:   watcher,
		users:     store.NewUserStore(client.Users(), sess, watcher, notifier, nav),
		recipes:   store.NewRecipeStore(client.Recipes(), notifier, nav),
		articles:  store.NewArticleStore(client.Articles(), notifier, nav),
		favorites: store.NewFavoriteStore(client.Favorites(), notifier),
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go coordinator.New(a.users, a.favorites).Run(ctx)

	return a, nil
}

func (a *app) Close() {
	a.cancel()
	a.watcher.Stop()
	_ = a.db.Close()
}

// settle waits until the store finishes its in-flight work, then returns
// the store's error field ("" when the operation succeeded).
func settle(w store.Watchable, loading func() bool, errField func() string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Await(ctx, w, func() bool { return !loading() }); err != nil {
		return fmt.Errorf("timed out waiting for the API: %w", err)
	}
	if msg := errField(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
