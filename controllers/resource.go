package controllers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	models "github.com/phillip/charity-admin-go/models"
	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
	utils "github.com/phillip/charity-admin-go/utils"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 60 * time.Second // uploads and provider deletes run inside the write
)

// Schema describes one managed entity type.
type Schema[T any] struct {
	Name       string // collection name and route segment, e.g. "events"
	Label      string // singular noun for messages, e.g. "event"
	Sort       bson.D
	Categories []string

	// PublicCreate leaves POST open when the admin guard is on (contact form).
	PublicCreate bool
	// PrivateList puts GET behind the admin guard (inbox).
	PrivateList bool

	// Build binds and validates the body and assembles a new entity. It must
	// validate before resolving media so a rejected request never uploads.
	Build func(r *Request) (T, error)
	// Patch returns the fields to $set on existing.
	Patch func(r *Request, existing T) (bson.M, error)
	// Media lists the media URLs an entity references.
	Media func(T) []string
	// AfterCreate runs after a successful create. It cannot fail the request.
	AfterCreate func(ctx context.Context, created T)
}

// Deps are the shared collaborators every resource is built with.
type Deps struct {
	Media            *uploads.Normalizer
	Mailer           *utils.Mailer
	Log              *zap.Logger
	StrictCategories bool
}

// Resource serves List/Get/Create/Update/Delete for one entity type.
type Resource[T any, PT store.Document[T]] struct {
	schema Schema[T]
	store  store.Store[T]
	media  *uploads.Normalizer
	log    *zap.Logger
	strict bool
}

func NewResource[T any, PT store.Document[T]](schema Schema[T], st store.Store[T], deps Deps) *Resource[T, PT] {
	return &Resource[T, PT]{
		schema: schema,
		store:  st,
		media:  deps.Media,
		log:    deps.Log.With(zap.String("resource", schema.Name)),
		strict: deps.StrictCategories,
	}
}

// Mount opens the schema's collection on b and wraps it in a Resource.
func Mount[T any, PT store.Document[T]](schema Schema[T], b *store.Backend, deps Deps) *Resource[T, PT] {
	return NewResource[T, PT](schema, store.Open[T, PT](b, schema.Name, schema.Sort), deps)
}

func (res *Resource[T, PT]) Name() string { return res.schema.Name }

func (res *Resource[T, PT]) Index() store.IndexSpec {
	return store.IndexSpec{Collection: res.schema.Name, Sort: res.schema.Sort}
}

func (res *Resource[T, PT]) Ping(ctx context.Context) error { return res.store.Ping(ctx) }

// Register mounts the routes under api. guard protects admin-only routes.
func (res *Resource[T, PT]) Register(api *gin.RouterGroup, guard gin.HandlerFunc) {
	g := api.Group("/" + res.schema.Name)

	g.GET("/categories", res.ListCategories())
	if res.schema.PrivateList {
		g.GET("", guard, res.List())
		g.GET("/:id", guard, res.Get())
	} else {
		g.GET("", res.List())
		g.GET("/:id", res.Get())
	}
	if res.schema.PublicCreate {
		g.POST("", res.Create())
	} else {
		g.POST("", guard, res.Create())
	}
	g.PUT("/:id", guard, res.Update())
	g.PATCH("/:id", guard, res.Update())
	g.DELETE("/:id", guard, res.Delete())
}

func (res *Resource[T, PT]) fail(c *gin.Context, err error) {
	respondError(c, res.log, res.schema.Label, err)
}

func (res *Resource[T, PT]) parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		res.fail(c, &ValidationError{Field: "id", Message: "invalid " + res.schema.Label + " id"})
		return id, false
	}
	return id, true
}

func (res *Resource[T, PT]) newRequest(ctx context.Context, c *gin.Context) *Request {
	return &Request{
		Ctx:        ctx,
		c:          c,
		folder:     res.schema.Name,
		media:      res.media,
		categories: res.schema.Categories,
		strict:     res.strict,
	}
}

func (res *Resource[T, PT]) mediaOf(doc T) []string {
	if res.schema.Media == nil {
		return nil
	}
	return res.schema.Media(doc)
}

// ownedMedia lists the media doc references that this server uploaded.
func (res *Resource[T, PT]) ownedMedia(doc T) []string {
	var out []string
	for _, u := range PT(&doc).Meta().Uploaded {
		if slices.Contains(res.mediaOf(doc), u) {
			out = append(out, u)
		}
	}
	return out
}

// trackUploads records in set which uploads the entity still references
// once set is applied and returns the ones it no longer does.
func (res *Resource[T, PT]) trackUploads(existing T, set bson.M, fresh []string) ([]string, error) {
	owned := slices.Concat(PT(&existing).Meta().Uploaded, fresh)
	if len(owned) == 0 {
		return nil, nil
	}
	next, err := applied(existing, set)
	if err != nil {
		return nil, err
	}
	kept := res.mediaOf(next)

	still := []string{}
	var stale []string
	for _, u := range owned {
		if slices.Contains(kept, u) {
			still = append(still, u)
		} else {
			stale = append(stale, u)
		}
	}
	if !slices.Equal(still, PT(&existing).Meta().Uploaded) {
		set[models.UploadedKey] = still
	}
	return stale, nil
}

// ---------------- LIST ----------------
func (res *Resource[T, PT]) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
		defer cancel()

		items, err := res.store.List(ctx)
		if err != nil {
			res.fail(c, err)
			return
		}

		if len(items) > 0 {
			// --- Validators from the most recently updated document ---
			latest := PT(&items[0]).Meta()
			for i := range items {
				if m := PT(&items[i]).Meta(); m.UpdatedAt.After(latest.UpdatedAt) {
					latest = m
				}
			}
			etag := utils.GenerateListETag(len(items), latest.ID, latest.UpdatedAt)
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)
			c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}

// ---------------- GET ----------------
func (res *Resource[T, PT]) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := res.parseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
		defer cancel()

		doc, err := res.store.Get(ctx, id)
		if err != nil {
			res.fail(c, err)
			return
		}

		meta := PT(&doc).Meta()
		etag := utils.GenerateETag(meta.ID, meta.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
	}
}

// ---------------- CREATE ----------------
func (res *Resource[T, PT]) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
		defer cancel()

		req := res.newRequest(ctx, c)
		doc, err := res.schema.Build(req)
		if err != nil {
			res.media.Discard(ctx, req.uploaded...)
			res.fail(c, err)
			return
		}
		PT(&doc).Meta().Uploaded = req.uploaded

		created, err := res.store.Create(ctx, doc)
		if err != nil {
			res.media.Discard(ctx, req.uploaded...)
			res.fail(c, err)
			return
		}

		res.log.Info("created", zap.String("id", PT(&created).Meta().ID.Hex()))
		if res.schema.AfterCreate != nil {
			res.schema.AfterCreate(ctx, created)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
	}
}

// ---------------- UPDATE ----------------
func (res *Resource[T, PT]) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := res.parseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
		defer cancel()

		existing, err := res.store.Get(ctx, id)
		if err != nil {
			res.fail(c, err)
			return
		}

		req := res.newRequest(ctx, c)
		set, err := res.schema.Patch(req, existing)
		if err != nil {
			res.media.Discard(ctx, req.uploaded...)
			res.fail(c, err)
			return
		}
		if len(set) == 0 {
			res.fail(c, &ValidationError{Message: "no fields to update"})
			return
		}

		stale, err := res.trackUploads(existing, set, req.uploaded)
		if err != nil {
			res.media.Discard(ctx, req.uploaded...)
			res.fail(c, err)
			return
		}

		updated, err := res.store.Update(ctx, id, set)
		if err != nil {
			res.media.Discard(ctx, req.uploaded...)
			res.fail(c, err)
			return
		}

		// Drop our own uploads the update replaced.
		res.media.Discard(ctx, stale...)

		res.log.Info("updated", zap.String("id", id.Hex()))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

// ---------------- DELETE ----------------
func (res *Resource[T, PT]) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := res.parseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
		defer cancel()

		removed, err := res.store.Delete(ctx, id)
		if err != nil {
			res.fail(c, err)
			return
		}

		res.media.Discard(ctx, res.ownedMedia(removed)...)

		res.log.Info("deleted", zap.String("id", id.Hex()))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": res.schema.Label + " deleted successfully",
			"id":      id.Hex(),
		})
	}
}

// ---------------- CATEGORIES ----------------
func (res *Resource[T, PT]) ListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		cats := res.schema.Categories
		if cats == nil {
			cats = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": cats, "strict": res.strict})
	}
}
