package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/angkomuhtar/simple-api-express/helpers"
	"github.com/angkomuhtar/simple-api-express/models"
	"github.com/angkomuhtar/simple-api-express/packages"
)

type publishedEvent struct {
	topic string
	key   interface{}
	event *models.UserEvent
}

type recordingBroker struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (b *recordingBroker) Publisher(topic string, key, value interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, publishedEvent{topic: topic, key: key, event: value.(*models.UserEvent)})
	return nil
}

func (b *recordingBroker) Close() error {
	return nil
}

func (b *recordingBroker) Events() []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]publishedEvent(nil), b.events...)
}

type fixture struct {
	db      *bun.DB
	broker  *recordingBroker
	service IService
	router  *chi.Mux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := packages.Database("file:"+uuid.NewString()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, packages.Sync(context.Background(), db, (*models.User)(nil)))

	broker := new(recordingBroker)
	service := NewService(db, broker, "users.events")

	return &fixture{db: db, broker: broker, service: service, router: NewRouter(NewHandler(service))}
}

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *models.User `json:"data"`
	Error   string       `json:"error"`
	Details interface{}  `json:"details"`
}

type listEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []models.User `json:"data"`
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rw := httptest.NewRecorder()
	f.router.ServeHTTP(rw, req)

	return rw
}

func decode(t *testing.T, rw *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, helpers.NewParser().Unmarshal(rw.Body.Bytes(), dest))
}

func (f *fixture) create(t *testing.T, body string) *models.User {
	t.Helper()

	rw := f.do(t, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rw.Code, rw.Body.String())

	var res envelope
	decode(t, rw, &res)
	require.NotNil(t, res.Data)

	return res.Data
}

const johnDoe = `{"name":"John Doe","email":"j@x.com","gender":"MALE","departement":"IT","image":"a.png"}`
