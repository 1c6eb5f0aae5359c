// Package resources binds catalog resource kinds to their entity types.
package resources

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"crudkit/internal/catalog"
	"crudkit/internal/config"
	"crudkit/internal/http/controller"
	"crudkit/internal/model"
	"crudkit/internal/service/records"
	"crudkit/internal/sse"
	"crudkit/internal/store"
)

type deps struct {
	cfg      *config.Config
	backend  *store.Backend
	hub      *sse.Hub
	notifier *records.Notifier
	log      *zap.Logger
}

type factory func(def catalog.Resource, d deps) controller.Mount

var kinds = map[string]factory{
	"task":          mount[model.Task, model.TaskInput, model.TaskPatch],
	"post":          mount[model.Post, model.PostInput, model.PostPatch],
	"comment":       mount[model.Comment, model.CommentInput, model.CommentPatch],
	"category":      mount[model.Category, model.CategoryInput, model.CategoryPatch],
	"subscription":  mount[model.Subscription, model.SubscriptionInput, model.SubscriptionPatch],
	"paymentRecord": mount[model.PaymentRecord, model.PaymentRecordInput, model.PaymentRecordPatch],
}

func mount[T model.Entity[T], I model.Input[T], P model.Patch[T]](def catalog.Resource, d deps) controller.Mount {
	repo := store.Open[T](d.backend, def.Name)
	svc := records.NewService[T](def.Name, repo, d.notifier, d.log)
	return controller.NewResource[T, I, P](d.cfg, def, svc, d.hub, d.log)
}

// New builds one mount per resource of app, in manifest order.
func New(cfg *config.Config, app *catalog.App, backend *store.Backend, hub *sse.Hub, notifier *records.Notifier, logger *zap.Logger) ([]controller.Mount, error) {
	d := deps{cfg: cfg, backend: backend, hub: hub, notifier: notifier, log: logger}
	mounts := make([]controller.Mount, 0, len(app.Resources))
	for _, def := range app.Resources {
		build, ok := kinds[def.Kind]
		if !ok {
			return nil, fmt.Errorf("app %s: unknown resource kind %q (known: %v)", app.Name, def.Kind, Kinds())
		}
		mounts = append(mounts, build(def, d))
	}
	logger.Info("resources mounted",
		zap.String("app", app.Name),
		zap.String("storage", backend.Kind()),
		zap.Int("count", len(mounts)))
	return mounts, nil
}

func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
