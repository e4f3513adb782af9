package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/pkg/logger"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context
// (e.g. attach the authenticated user) or fail the request. Returning
// a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, with the handler outcome
// available through xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	inner gin.IRouter

	cfg    config.Configs
	db     *gorm.DB
	logger logger.Logger

	befores []MiddlewareFunc
	afters  []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{inner: engine, cfg: cfg, db: db, logger: l}
}

// Branch creates a sub-router sharing the engine but with its own
// middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		inner:   r.inner,
		cfg:     r.cfg,
		db:      r.db,
		logger:  r.logger,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]CloserFunc{}, r.afters...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

func (r *Router) Handler() http.Handler {
	return r.inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) newRequestContext(gctx *gin.Context) context.Context {
	ctx := gctx.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	return ctx
}
