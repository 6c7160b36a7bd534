package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"trivia-rooms/internal/app"
	"trivia-rooms/internal/domain"
	pgsource "trivia-rooms/internal/infra/postgres"
	pgmigrations "trivia-rooms/internal/infra/postgres/migrations"
	infraredis "trivia-rooms/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestRoomFlowAgainstSeededBank(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL, "general", sampleQuestions())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	registry := infraredis.NewRoomRegistry(redisClient, 0)
	service := app.NewRoomService(registry, pgsource.NewQuestionSource(pool), 2)

	room := service.CreateRoom(ctx, "general")
	if len(room.Questions) != 2 {
		t.Fatalf("expected 2 questions from seeded bank, got %d", len(room.Questions))
	}
	if n, err := redisClient.Exists(ctx, "room:live:"+room.Code).Result(); err != nil || n != 1 {
		t.Fatalf("expected liveness marker in redis, n=%d err=%v", n, err)
	}

	if _, err := service.Join(room.Code, "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	answers := make([]domain.Selection, 0, len(room.Questions))
	for i, q := range room.Questions {
		answers = append(answers, domain.Selection{QuestionIndex: i, Selected: q.Answer})
	}
	if err := service.Submit(room.Code, "Alice", answers); err != nil {
		t.Fatalf("submit: %v", err)
	}

	lb, err := service.Leaderboard(room.Code)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb.Rows) != 1 || lb.Rows[0].Score != 2 || !lb.Rows[0].Submitted {
		t.Fatalf("expected Alice with full score, got %+v", lb.Rows)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn, category string, questions []domain.Question) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	n, err := pgsource.SeedQuestions(ctx, db, category, questions)
	if err != nil {
		t.Fatalf("seed questions: %v", err)
	}
	if n != len(questions) {
		t.Fatalf("expected %d seeded, got %d", len(questions), n)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Text: "What is 2 + 2?", Answer: "4", Options: []string{"3", "4", "5"}},
		{Text: "Capital of France?", Answer: "Paris", Options: []string{"Lyon", "Paris", "Nice"}},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
