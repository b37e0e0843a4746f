package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vradovic/fakebench/internal/apperr"
	"github.com/vradovic/fakebench/internal/bench/dataset"
	"github.com/vradovic/fakebench/internal/bench/metrics"
)

// EvaluateRequest carries raw predictions for ad-hoc evaluation. When Tune
// is unset it defaults to true; an explicit threshold is only honored with
// tuning off.
type EvaluateRequest struct {
	Probabilities []float64 `json:"probabilities"`
	Labels        []int     `json:"labels"`
	Threshold     *float64  `json:"threshold,omitempty"`
	Tune          *bool     `json:"tune,omitempty"`
}

type EvaluateResponse struct {
	Tuned  bool           `json:"tuned"`
	Report metrics.Report `json:"report"`
}

type EvaluateRouter struct {
	e *echo.Echo
}

func NewEvaluateRouter(e *echo.Echo) *EvaluateRouter {
	return &EvaluateRouter{e: e}
}

func (r *EvaluateRouter) Bind() {
	r.e.POST("/evaluate", r.evaluateHandler)
}

func (r *EvaluateRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	ps, err := dataset.New(req.Probabilities, req.Labels)
	if err != nil {
		return err
	}

	tune := req.Tune == nil || *req.Tune

	if tune {
		_, rep, err := metrics.SelectThreshold(ps)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, EvaluateResponse{Tuned: true, Report: rep})
	}

	threshold := 0.5
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	rep, err := metrics.Evaluate(ps, threshold)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, EvaluateResponse{Report: rep})
}
