package service

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/database"
	"brawl-tracker/internal/db"
	"brawl-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

// upstream fakes the game API and the companion dataset. Routes are matched
// by path suffix.
type upstream struct {
	mu     sync.Mutex
	routes map[string]string
	status map[string]int
	hits   map[string]int
}

func (u *upstream) set(suffix, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[suffix] = body
}

func (u *upstream) fail(suffix string, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status[suffix] = status
}

func (u *upstream) count(suffix string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[suffix]
}

func (u *upstream) handle(ctx *fasthttp.RequestCtx) {
	u.mu.Lock()
	defer u.mu.Unlock()

	path := string(ctx.Path())
	for suffix, body := range u.routes {
		if !strings.HasSuffix(path, suffix) {
			continue
		}
		u.hits[suffix]++
		if status, ok := u.status[suffix]; ok {
			ctx.SetStatusCode(status)
			ctx.SetBodyString(`{"reason":"failed"}`)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(body)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetBodyString(`{"reason":"notFound"}`)
}

type fixture struct {
	cfg       *config.Config
	upstream  *upstream
	client    *api.Client
	companion *api.CompanionClient
	players   *repository.PlayerRepository
	clubs     *repository.ClubRepository
	battles   *repository.BattleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	up := &upstream{routes: map[string]string{}, status: map[string]int{}, hits: map[string]int{}}
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: up.handle}
	go func() {
		_ = srv.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})
	dial := func(string) (net.Conn, error) {
		return ln.Dial()
	}

	cfg := &config.Config{
		APIKey:           "test-key",
		APIBaseURL:       "http://api.test/v1",
		CompanionBaseURL: "http://companion.test/v1",
		APIRatePerSecond: 1000,
		BattlePageSize:   10,
		CursorTTL:        time.Minute,
	}
	logger := zerolog.Nop()

	sqlDB, err := database.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	q := db.New(sqlDB)

	companion := api.NewCompanionClient(cfg, logger)
	companion.Client().WithDial(dial)

	return &fixture{
		cfg:       cfg,
		upstream:  up,
		client:    api.NewClient(cfg, logger).WithDial(dial),
		companion: companion,
		players:   repository.NewPlayerRepository(sqlDB, q, logger),
		clubs:     repository.NewClubRepository(sqlDB, q, logger),
		battles:   repository.NewBattleRepository(sqlDB, q, logger),
	}
}

var bg = context.Background()
