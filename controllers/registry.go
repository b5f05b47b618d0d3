package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/phillip/charity-admin-go/store"
)

// Routes is the type-erased view of a Resource used for wiring.
type Routes interface {
	Name() string
	Index() store.IndexSpec
	Register(api *gin.RouterGroup, guard gin.HandlerFunc)
	Ping(ctx context.Context) error
}

// Resources builds every managed entity type on b.
func Resources(b *store.Backend, deps Deps) []Routes {
	return []Routes{
		Mount(Campaigns(), b, deps),
		Mount(Events(), b, deps),
		Mount(Banners(), b, deps),
		Mount(Gallery(), b, deps),
		Mount(BoardMembers(), b, deps),
		Mount(Compliance(), b, deps),
		Mount(MediaArticles(), b, deps),
		Mount(Messages(deps), b, deps),
		Mount(Collaborators(), b, deps),
		Mount(ImpactStats(), b, deps),
		Mount(Programs(), b, deps),
		Mount(TrackRecords(), b, deps),
		Mount(Videos(), b, deps),
	}
}

// IndexSpecs lists the collections and sort keys of resources.
func IndexSpecs(resources []Routes) []store.IndexSpec {
	specs := make([]store.IndexSpec, 0, len(resources))
	for _, r := range resources {
		specs = append(specs, r.Index())
	}
	return specs
}
