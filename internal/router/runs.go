package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vradovic/fakebench/internal/apperr"
	"github.com/vradovic/fakebench/internal/storage/pg"
	"github.com/vradovic/fakebench/pkg/pagination"
)

// RunReader is the slice of the run store the API needs.
type RunReader interface {
	ListRuns(ctx context.Context, page *pagination.OffsetRequest) (*pagination.OffsetResult[pg.RunSummary], error)
	GetRun(ctx context.Context, id uuid.UUID) (*pg.StoredRun, error)
}

type RunsRouter struct {
	e     *echo.Echo
	store RunReader
}

func NewRunsRouter(e *echo.Echo, store RunReader) *RunsRouter {
	return &RunsRouter{
		e:     e,
		store: store,
	}
}

func (r *RunsRouter) Bind() {
	r.e.GET("/runs", r.listHandler)
	r.e.GET("/runs/:id", r.getHandler)
}

func (r *RunsRouter) listHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	if err := page.Validate(); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}

	result, err := r.store.ListRuns(c.Request().Context(), &page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (r *RunsRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid run id", err)
	}

	run, err := r.store.GetRun(c.Request().Context(), id)
	if errors.Is(err, pg.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, run)
}
