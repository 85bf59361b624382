package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dtroode/portfolio/internal/client/authz"
	"github.com/dtroode/portfolio/internal/client/clienterr"
	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/session"
	"github.com/dtroode/portfolio/internal/logger"
)

// Field is an input of a resource form.
type Field struct {
	Name     string
	Required bool
}

// ResourceConfig parameterizes a Collection for one REST resource.
type ResourceConfig struct {
	// Name is the singular resource name, e.g. "project".
	Name          string
	Endpoint      string
	Fields        []Field
	SupportsImage bool
	// ImageField is the multipart field name of the attachment.
	ImageField string
}

// ProjectsConfig describes the projects showcase.
var ProjectsConfig = ResourceConfig{
	Name:     "project",
	Endpoint: resource.ProjectsEndpoint,
	Fields: []Field{
		{Name: "title", Required: true},
		{Name: "description", Required: true},
		{Name: "githubLink"},
		{Name: "liveLink"},
	},
	SupportsImage: true,
	ImageField:    "image",
}

// Item is an element of a collection.
type Item interface {
	GetID() string
}

// Deps are the collaborators shared by all controllers.
type Deps struct {
	Client    *resource.Client
	Provider  *session.Provider
	Gate      authz.Gate
	Notifier  Notifier
	Navigator Navigator
	Confirmer Confirmer
	Logger    *logger.Logger
}

// CollectionState is a snapshot for rendering.
type CollectionState[T Item] struct {
	Items      []T
	Loading    bool
	LoadFailed bool
	// CanMutate controls whether create and delete controls are shown.
	CanMutate  bool
	Submitting bool
}

// Collection synchronizes a list resource with the API.
type Collection[T Item] struct {
	observable

	cfg  ResourceConfig
	deps Deps
	sub  *session.Subscription

	mu         sync.RWMutex
	items      []T
	loading    bool
	loadFailed bool
	canMutate  bool

	submitting atomic.Bool
}

// NewCollection creates a collection controller and subscribes it to the session.
func NewCollection[T Item](cfg ResourceConfig, deps Deps) *Collection[T] {
	c := &Collection[T]{cfg: cfg, deps: deps}
	c.sub = deps.Provider.Subscribe(func(identity *session.Identity) {
		c.mu.Lock()
		c.canMutate = deps.Gate.IsAdmin(identity)
		c.mu.Unlock()
		c.changed()
	})
	return c
}

// Close stops following the session.
func (c *Collection[T]) Close() {
	c.sub.Unsubscribe()
}

func (c *Collection[T]) State() CollectionState[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CollectionState[T]{
		Items:      append([]T(nil), c.items...),
		Loading:    c.loading,
		LoadFailed: c.loadFailed,
		CanMutate:  c.canMutate,
		Submitting: c.submitting.Load(),
	}
}

func (c *Collection[T]) plural() string {
	return c.cfg.Name + "s"
}

func (c *Collection[T]) title() string {
	if c.cfg.Name == "" {
		return ""
	}
	return strings.ToUpper(c.cfg.Name[:1]) + c.cfg.Name[1:]
}

// Load refreshes the collection. On failure the previous items are kept.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	c.changed()

	items, err := resource.List[T](ctx, c.deps.Client, c.cfg.Endpoint)

	c.mu.Lock()
	c.loading = false
	c.loadFailed = err != nil
	if err == nil {
		c.items = items
	}
	c.mu.Unlock()
	c.changed()

	if err != nil {
		c.deps.Logger.Debug("Collection controller: load failed", "resource", c.cfg.Name, "error", err)
		c.notify(fmt.Sprintf("Failed to load %s", c.plural()))
		return err
	}
	return nil
}

// Create submits a new item and re-lists on success. On failure the caller
// keeps its form values.
func (c *Collection[T]) Create(ctx context.Context, fields map[string]string, image *resource.File) (T, error) {
	var zero T

	if !c.deps.Gate.IsAdmin(c.deps.Provider.Current()) {
		err := &clienterr.AuthorizationError{Action: "create " + c.plural()}
		notifyErr(c.deps.Notifier, err)
		return zero, err
	}

	body := make(map[string]string, len(c.cfg.Fields))
	for _, f := range c.cfg.Fields {
		v := strings.TrimSpace(fields[f.Name])
		if f.Required && v == "" {
			err := &clienterr.ValidationError{Field: f.Name}
			notifyErr(c.deps.Notifier, err)
			return zero, err
		}
		if v != "" {
			body[f.Name] = v
		}
	}

	if image != nil {
		if !c.cfg.SupportsImage {
			image = nil
		} else {
			image.Field = c.cfg.ImageField
		}
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return zero, ErrBusy
	}
	c.changed()
	defer func() {
		c.submitting.Store(false)
		c.changed()
	}()

	created, err := resource.Create[T](ctx, c.deps.Client, c.cfg.Endpoint, body, image)
	if err != nil {
		opErr := &clienterr.OperationError{Op: clienterr.OpUpload, Err: err}
		c.deps.Logger.Info("Collection controller: create failed", "resource", c.cfg.Name, "error", err)
		notifyErr(c.deps.Notifier, opErr)
		return zero, opErr
	}

	c.notify(c.title() + " added!")
	_ = c.Load(ctx)

	return created, nil
}

// Delete removes id after explicit confirmation and re-lists on success.
// A declined confirmation, or no Confirmer at all, returns false without error.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	if !c.deps.Gate.IsAdmin(c.deps.Provider.Current()) {
		err := &clienterr.AuthorizationError{Action: "delete " + c.plural()}
		notifyErr(c.deps.Notifier, err)
		return false, err
	}

	if c.deps.Confirmer == nil || !c.deps.Confirmer.Confirm(fmt.Sprintf("Delete this %s?", c.cfg.Name)) {
		return false, nil
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return false, ErrBusy
	}
	c.changed()
	defer func() {
		c.submitting.Store(false)
		c.changed()
	}()

	if err := c.deps.Client.Delete(ctx, c.cfg.Endpoint, id); err != nil {
		opErr := &clienterr.OperationError{Op: clienterr.OpDelete, Err: err}
		c.deps.Logger.Info("Collection controller: delete failed", "resource", c.cfg.Name, "id", id, "error", err)
		notifyErr(c.deps.Notifier, opErr)
		return false, opErr
	}

	c.notify(c.title() + " deleted!")
	_ = c.Load(ctx)

	return true, nil
}

func (c *Collection[T]) notify(msg string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(msg)
	}
}
