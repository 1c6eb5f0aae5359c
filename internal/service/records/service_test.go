package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crudkit/internal/config"
	"crudkit/internal/domain"
	"crudkit/internal/model"
	"crudkit/internal/sse"
	"crudkit/internal/telemetry"
)

type repoMock[T model.Entity[T]] struct {
	mock.Mock
}

func (m *repoMock[T]) List(ctx context.Context, offset, limit int) ([]T, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}

func (m *repoMock[T]) Get(ctx context.Context, id string) (T, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(T), args.Error(1)
}

func (m *repoMock[T]) Create(ctx context.Context, record T) (T, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(T), args.Error(1)
}

func (m *repoMock[T]) Update(ctx context.Context, id string, patch model.Patch[T]) (T, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(T), args.Error(1)
}

func (m *repoMock[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, payload []byte, routingKey string) error {
	args := m.Called(ctx, payload, routingKey)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{InstanceID: "node-1", RabbitPublishPrefix: "record"}
}

func task(id, name string) model.Task {
	return model.Task{
		Meta: model.Meta{ID: id, CreatedAt: time.Unix(1, 0).UTC(), UpdatedAt: time.Unix(1, 0).UTC()},
		Name: name,
	}
}

func subscribe(t *testing.T, resource string) (*sse.Hub, *sse.Client) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := sse.NewHub()
	go hub.Run(ctx)
	client := sse.NewClient(resource, 4)
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.Subscribers(resource) == 1
	}, time.Second, 5*time.Millisecond)
	return hub, client
}

func nextEvent(t *testing.T, client *sse.Client) model.Event {
	t.Helper()
	select {
	case got := <-client.Ch:
		return got
	case <-time.After(time.Second):
		t.Fatal("expected event")
		return model.Event{}
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		storeErr := errors.New("store failed")
		repo := &repoMock[model.Task]{}
		repo.On("Create", mock.Anything, mock.Anything).Return(model.Task{}, storeErr).Once()
		pub := &publisherMock{}
		notifier := NewNotifier(testConfig(), sse.NewHub(), pub, nil, zap.NewNop())
		svc := NewService[model.Task]("tasks", repo, notifier, zap.NewNop())

		_, err := svc.Create(context.Background(), model.Task{Name: "a"})
		require.ErrorIs(t, err, storeErr)
		repo.AssertExpectations(t)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broadcasts and publishes", func(t *testing.T) {
		hub, client := subscribe(t, "tasks")
		created := task("t1", "buy milk")

		repo := &repoMock[model.Task]{}
		repo.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, "record.tasks.created").Return(nil).Once()
		notifier := NewNotifier(testConfig(), hub, pub, nil, zap.NewNop())
		svc := NewService[model.Task]("tasks", repo, notifier, zap.NewNop())

		got, err := svc.Create(context.Background(), model.Task{Name: "buy milk"})
		require.NoError(t, err)
		require.Equal(t, created, got)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)

		event := nextEvent(t, client)
		require.Equal(t, "tasks", event.Resource)
		require.Equal(t, domain.ActionCreated, event.Action)
		require.Equal(t, "t1", event.ID)
		require.Equal(t, "node-1", event.Origin)

		var record model.Task
		require.NoError(t, json.Unmarshal(event.Record, &record))
		require.Equal(t, "buy milk", record.Name)

		payload := pub.Calls[0].Arguments.Get(1).([]byte)
		var published model.Event
		require.NoError(t, json.Unmarshal(payload, &published))
		require.Equal(t, event.ID, published.ID)
		require.Equal(t, "node-1", published.Origin)
	})

	t.Run("publish failure does not fail the call", func(t *testing.T) {
		repo := &repoMock[model.Task]{}
		repo.On("Create", mock.Anything, mock.Anything).Return(task("t1", "a"), nil).Once()
		pub := &publisherMock{}
		pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
		notifier := NewNotifier(testConfig(), sse.NewHub(), pub, nil, zap.NewNop())
		svc := NewService[model.Task]("tasks", repo, notifier, zap.NewNop())

		_, err := svc.Create(context.Background(), model.Task{Name: "a"})
		require.NoError(t, err)
		pub.AssertExpectations(t)
	})
}

func TestServiceUpdateAndDelete(t *testing.T) {
	hub, client := subscribe(t, "tasks")
	updated := task("t1", "renamed")

	repo := &repoMock[model.Task]{}
	patch := model.TaskPatch{Name: model.Some("renamed")}
	repo.On("Update", mock.Anything, "t1", patch).Return(updated, nil).Once()
	repo.On("Delete", mock.Anything, "t1").Return(nil).Once()
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "record.tasks.updated").Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything, "record.tasks.deleted").Return(nil).Once()
	notifier := NewNotifier(testConfig(), hub, pub, nil, zap.NewNop())
	svc := NewService[model.Task]("tasks", repo, notifier, zap.NewNop())

	got, err := svc.Update(context.Background(), "t1", patch)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)

	event := nextEvent(t, client)
	require.Equal(t, domain.ActionUpdated, event.Action)
	require.NotEmpty(t, event.Record)

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	event = nextEvent(t, client)
	require.Equal(t, domain.ActionDeleted, event.Action)
	require.Equal(t, "t1", event.ID)
	require.Empty(t, event.Record)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestServiceNotFoundSkipsNotification(t *testing.T) {
	repo := &repoMock[model.Task]{}
	repo.On("Get", mock.Anything, "missing").Return(model.Task{}, domain.NewNotFound("Task", "missing")).Once()
	repo.On("Delete", mock.Anything, "missing").Return(domain.NewNotFound("Task", "missing")).Once()
	pub := &publisherMock{}
	notifier := NewNotifier(testConfig(), sse.NewHub(), pub, nil, zap.NewNop())
	svc := NewService[model.Task]("tasks", repo, notifier, zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	require.True(t, domain.IsNotFound(err))
	require.True(t, domain.IsNotFound(svc.Delete(context.Background(), "missing")))

	repo.AssertExpectations(t)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceList(t *testing.T) {
	repo := &repoMock[model.Task]{}
	repo.On("List", mock.Anything, 0, 2).Return([]model.Task{task("a", "a"), task("b", "b")}, nil).Once()
	repo.On("List", mock.Anything, 5, 2).Return(nil, errors.New("boom")).Once()
	svc := NewService[model.Task]("tasks", repo, nil, zap.NewNop())

	items, err := svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = svc.List(context.Background(), 5, 2)
	require.Error(t, err)
	repo.AssertExpectations(t)
}

func TestNotifierCountsMutations(t *testing.T) {
	metrics := telemetry.NewMetrics()
	notifier := NewNotifier(testConfig(), nil, nil, metrics, zap.NewNop())

	notifier.Notify(context.Background(), "posts", domain.ActionCreated, "p1", nil)
	notifier.Notify(context.Background(), "posts", domain.ActionCreated, "p2", nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Contains(t, rec.Body.String(), `crudkit_record_mutations_total{action="created",resource="posts"} 2`)
}

func TestNotifierRoutingKey(t *testing.T) {
	n := NewNotifier(testConfig(), nil, nil, nil, zap.NewNop())
	require.Equal(t, "record.posts.deleted", n.RoutingKey("posts", domain.ActionDeleted))

	n = NewNotifier(&config.Config{}, nil, nil, nil, zap.NewNop())
	require.Equal(t, "posts.deleted", n.RoutingKey("posts", domain.ActionDeleted))
}
