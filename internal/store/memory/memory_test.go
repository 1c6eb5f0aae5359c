package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crudkit/internal/domain"
	"crudkit/internal/model"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func seedTasks(t *testing.T, s *Store[model.Task], n int) []model.Task {
	t.Helper()
	created := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		task, err := s.Create(context.Background(), model.Task{Name: fmt.Sprintf("task-%d", i)})
		require.NoError(t, err)
		created = append(created, task)
	}
	return created
}

func TestStoreTaskScenario(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")

	created, err := s.Create(ctx, model.Task{Name: "buy milk", Completed: false})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Completed)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	updated, err := s.Update(ctx, created.ID, model.TaskPatch{Completed: model.Some(true)})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "buy milk", updated.Name)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreListEmpty(t *testing.T) {
	s := New[model.Task]("tasks")
	got, err := s.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestStoreUniqueIDs(t *testing.T) {
	s := New[model.Task]("tasks")
	tasks := seedTasks(t, s, 500)

	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		_, dup := seen[task.ID]
		require.False(t, dup, "duplicate id %s", task.ID)
		seen[task.ID] = struct{}{}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New[model.Subscription]("subscriptions")
	link := "https://example.com"

	created, err := s.Create(ctx, model.Subscription{
		Name:         "video",
		Price:        12.5,
		BillingCycle: "monthly",
		IsEnabled:    true,
		WebsiteLink:  &link,
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestStoreCreateDiscardsClientMeta(t *testing.T) {
	s := New[model.Task]("tasks")
	forged := model.Task{Name: "x"}.WithMetadata(model.Meta{
		ID:        "client-id",
		CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	created, err := s.Create(context.Background(), forged)
	require.NoError(t, err)
	require.NotEqual(t, "client-id", created.ID)
	require.True(t, created.CreatedAt.After(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStorePartialUpdatePreservesFields(t *testing.T) {
	ctx := context.Background()
	s := New[model.Subscription]("subscriptions", WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	link := "https://example.com"

	created, err := s.Create(ctx, model.Subscription{Name: "music", Price: 5, BillingCycle: "monthly", IsEnabled: true, WebsiteLink: &link})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, model.SubscriptionPatch{Price: model.Some(7.0)})
	require.NoError(t, err)
	require.Equal(t, 7.0, updated.Price)
	require.Equal(t, created.Name, updated.Name)
	require.Equal(t, created.BillingCycle, updated.BillingCycle)
	require.Equal(t, created.IsEnabled, updated.IsEnabled)
	require.Equal(t, created.WebsiteLink, updated.WebsiteLink)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must advance even with a frozen clock")

	cleared, err := s.Update(ctx, created.ID, model.SubscriptionPatch{WebsiteLink: model.Some[*string](nil)})
	require.NoError(t, err)
	require.Nil(t, cleared.WebsiteLink)
	require.True(t, cleared.UpdatedAt.After(updated.UpdatedAt))
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Update(ctx, "missing", model.TaskPatch{})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "tasks", nf.Resource)
	require.Equal(t, "missing", nf.ID)

	require.ErrorIs(t, s.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestStorePagination(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")
	tasks := seedTasks(t, s, 10)

	page, err := s.List(ctx, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	require.Equal(t, tasks[2].ID, page[0].ID)
	require.Equal(t, tasks[4].ID, page[2].ID)

	page, err = s.List(ctx, 10, 5)
	require.NoError(t, err)
	require.Empty(t, page)

	page, err = s.List(ctx, 8, 100)
	require.NoError(t, err)
	require.Len(t, page, 2)

	page, err = s.List(ctx, -3, -1)
	require.NoError(t, err)
	require.Empty(t, page)

	page, err = s.List(ctx, -3, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, tasks[0].ID, page[0].ID)
}

func TestStoreOrderingStability(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")
	tasks := seedTasks(t, s, 5)

	_, err := s.Update(ctx, tasks[0].ID, model.TaskPatch{Name: model.Some("renamed")})
	require.NoError(t, err)
	_, err = s.Update(ctx, tasks[3].ID, model.TaskPatch{Completed: model.Some(true)})
	require.NoError(t, err)

	all, err := s.List(ctx, 0, s.size())
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, task := range all {
		require.Equal(t, tasks[i].ID, task.ID)
	}

	require.NoError(t, s.Delete(ctx, tasks[1].ID))
	all, err = s.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Equal(t, []string{tasks[0].ID, tasks[2].ID, tasks[3].ID, tasks[4].ID}, ids(all))

	got, err := s.Get(ctx, tasks[4].ID)
	require.NoError(t, err)
	require.Equal(t, tasks[4].ID, got.ID)
}

func TestStoreListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")
	seedTasks(t, s, 2)

	page, err := s.List(ctx, 0, 2)
	require.NoError(t, err)
	page[0].Name = "mutated"

	again, err := s.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Equal(t, "task-0", again[0].Name)
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New[model.Task]("tasks")

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				task, err := s.Create(ctx, model.Task{Name: fmt.Sprintf("w%d-%d", w, i)})
				if err != nil {
					t.Errorf("create: %v", err)
					return
				}
				if _, err := s.Update(ctx, task.ID, model.TaskPatch{Completed: model.Some(true)}); err != nil {
					t.Errorf("update: %v", err)
					return
				}
				if _, err := s.List(ctx, 0, 10); err != nil {
					t.Errorf("list: %v", err)
					return
				}
				if i%2 == 0 {
					if err := s.Delete(ctx, task.ID); err != nil {
						t.Errorf("delete: %v", err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 8*25, s.size())
	all, err := s.List(ctx, 0, 1000)
	require.NoError(t, err)
	for _, task := range all {
		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		require.True(t, got.Completed)
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}
