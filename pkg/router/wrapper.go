package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.BindQuery(&req)
		default:
			err = gctx.BindJSON(&req)
		}
		if err != nil {
			gctx.JSON(http.StatusBadRequest, errorResponse(
				errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		ctx := r.newRequestContext(gctx)
		for _, middleware := range r.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				gctx.JSON(httpStatus(err), errorResponse(err))
				r.close(xcontext.WithError(ctx, err))
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			gctx.JSON(httpStatus(err), errorResponse(err))
			r.close(xcontext.WithError(ctx, err))
			return
		}

		gctx.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
		r.close(ctx)
	}
}

func (r *Router) close(ctx context.Context) {
	for _, closer := range r.afters {
		closer(ctx)
	}
}

func errorResponse(err error) gin.H {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return gin.H{"success": false, "error": errx.Message, "code": errx.Code}
}

func httpStatus(err error) int {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests, errorx.ClaimLocked:
		return http.StatusTooManyRequests
	case errorx.Unavailable, errorx.TreasuryInsufficient, errorx.TransferFailed:
		return http.StatusServiceUnavailable
	case errorx.Unknown.Code, errorx.Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
