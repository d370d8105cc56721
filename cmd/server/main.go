package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	staticcatalog "campuslife/internal/adapter/catalog/static"
	httpadapter "campuslife/internal/adapter/http"
	metricsinmem "campuslife/internal/adapter/metrics/inmemory"
	gormrepo "campuslife/internal/adapter/repo/gorm"
	memoryrepo "campuslife/internal/adapter/repo/memory"
	"campuslife/internal/adapter/story"
	"campuslife/internal/app/catalog"
	"campuslife/internal/app/choice"
	"campuslife/internal/app/effects"
	"campuslife/internal/app/newgame"
	"campuslife/internal/app/notify"
	"campuslife/internal/app/observe"
	"campuslife/internal/app/ports"
	"campuslife/internal/app/quests"
	"campuslife/internal/app/replay"
	"campuslife/internal/app/snapshot"
	"campuslife/internal/app/turn"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	state ports.PlayerStateRepository
	turns ports.TurnExecutionRepository
	event ports.EventRepository
	slots ports.SaveSlotRepository
	tx    ports.TxManager
}

func main() {
	r := mustBuildRepos()
	storyProvider := buildStoryProviderFromEnv()
	registry, err := staticcatalog.NewRegistry()
	if err != nil {
		log.Fatalf("build catalog registry: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()
	feed := notify.NewFeed()
	guard := turn.NewGuard()
	templates := staticcatalog.QuestTemplates()
	salaries := staticcatalog.JobSalaries()

	h := httpadapter.Handler{
		NewGameUC: newgame.UseCase{TxManager: r.tx, StateRepo: r.state, Notifier: feed, Now: time.Now},
		ObserveUC: observe.UseCase{StateRepo: r.state, Feed: feed},
		TurnUC: &turn.UseCase{
			TxManager:      r.tx,
			StateRepo:      r.state,
			TurnRepo:       r.turns,
			EventRepo:      r.event,
			Story:          storyProvider,
			QuestTemplates: templates,
			JobSalaries:    salaries,
			Metrics:        kpiRecorder,
			Notifier:       feed,
			Guard:          guard,
			Now:            time.Now,
		},
		ChoiceUC:  choice.UseCase{TxManager: r.tx, StateRepo: r.state, EventRepo: r.event, Notifier: feed, Now: time.Now},
		EffectsUC: effects.UseCase{TxManager: r.tx, StateRepo: r.state, EventRepo: r.event, Notifier: feed, Now: time.Now},
		QuestsUC:  quests.UseCase{TxManager: r.tx, StateRepo: r.state, EventRepo: r.event, Templates: templates, Notifier: feed, Now: time.Now},
		SnapshotUC: snapshot.UseCase{
			TxManager: r.tx,
			StateRepo: r.state,
			Slots:     r.slots,
			Config: snapshot.Config{
				ProviderEnabled: strings.TrimSpace(os.Getenv("STORY_API_KEY")) != "",
				Model:           strings.TrimSpace(os.Getenv("STORY_MODEL")),
			},
		},
		ReplayUC:  replay.UseCase{Events: r.event},
		CatalogUC: catalog.UseCase{Provider: registry},
		Guard:     guard,
		Story:     storyProvider,
		KPI:       kpiRecorder,
	}

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	s.Use(httpadapter.CORSMiddleware())
	h.RegisterRoutes(s)

	log.Printf("campuslife server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() repos {
	dsn := strings.TrimSpace(os.Getenv("CAMPUSLIFE_DB_DSN"))
	if dsn == "" {
		log.Println("CAMPUSLIFE_DB_DSN not set, using in-memory repositories (state is lost on exit)")
		store := memoryrepo.NewStore()
		return repos{
			state: memoryrepo.NewPlayerStateRepo(store),
			turns: memoryrepo.NewTurnExecutionRepo(store),
			event: memoryrepo.NewEventRepo(store),
			slots: memoryrepo.NewSaveSlotRepo(store),
			tx:    memoryrepo.NewTxManager(),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrationsDir := strings.TrimSpace(os.Getenv("CAMPUSLIFE_MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	return repos{
		state: gormrepo.NewPlayerStateRepo(db),
		turns: gormrepo.NewTurnExecutionRepo(db),
		event: gormrepo.NewEventRepo(db),
		slots: gormrepo.NewSaveSlotRepo(db),
		tx:    gormrepo.NewTxManager(db),
	}
}

func buildStoryProviderFromEnv() ports.StoryProvider {
	fallback := story.NewFallbackGenerator(time.Now().UnixNano())
	opts := []story.ProviderOption{
		story.WithGenerateTimeout(time.Duration(intEnv("STORY_TIMEOUT_SECONDS", 15)) * time.Second),
		story.WithPingTimeout(time.Duration(intEnv("STORY_PING_TIMEOUT_SECONDS", 30)) * time.Second),
	}

	apiKey := strings.TrimSpace(os.Getenv("STORY_API_KEY"))
	if apiKey == "" {
		log.Println("STORY_API_KEY not set, running in offline mode with local events")
		return story.NewProvider(nil, fallback, opts...)
	}

	client := story.NewHTTPClient(story.HTTPClientConfig{
		URL:    strings.TrimSpace(os.Getenv("STORY_API_URL")),
		APIKey: apiKey,
		Model:  envOr("STORY_MODEL", "gpt-4o-mini"),
	})
	return story.NewProvider(client, fallback, opts...)
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
