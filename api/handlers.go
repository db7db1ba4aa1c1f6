package api

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/easing"
	"github.com/matt-g-everett/curve/tween"
)

// MaxSamples bounds a single render.
const MaxSamples = 100000

// maxSeconds is the longest duration a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func staticHandler(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}

func fail(c *gin.Context, code int, err error) {
	c.JSON(code, ApiResponse{Status: "error", Error: err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   map[string]any{"status": "ok", "timestamp": time.Now().Unix()},
	})
}

func (s *Server) handleEasings(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: easing.Names()})
}

// renderOptions checks the shared request fields.
func (s *Server) renderOptions(name string, overshoot *float64, seconds, rate float64) (curve.RenderOptions, time.Duration, error) {
	var opts curve.RenderOptions
	eq, err := easing.Parse(name)
	if err != nil {
		return opts, 0, err
	}
	if overshoot != nil {
		eq = eq.WithOvershoot(*overshoot)
	}
	if seconds < 0 || seconds >= maxSeconds || math.IsNaN(seconds) {
		return opts, 0, fmt.Errorf("invalid duration %v", seconds)
	}
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return opts, 0, fmt.Errorf("invalid rate %v", rate)
	}
	if rate == 0 {
		rate = s.engine.KeyframeRate
	}
	if rate*seconds > MaxSamples {
		return opts, 0, fmt.Errorf("render of %v samples exceeds %d", math.Ceil(rate*seconds), MaxSamples)
	}
	opts.Easing = eq
	opts.Rate = rate
	return opts, time.Duration(seconds * float64(time.Second)), nil
}

func response[T any](kf *curve.Keyframes[T]) RenderResponse[T] {
	return RenderResponse[T]{
		Duration:     kf.Duration.Seconds(),
		FillForwards: kf.FillForwards,
		Times:        kf.Times(),
		Values:       kf.Values(0),
	}
}

func (s *Server) handleRender(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid render request: %w", err))
		return
	}
	opts, duration, err := s.renderOptions(req.Easing, req.Overshoot, req.Duration, req.Rate)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	a := curve.From(tween.Float(req.From), tween.Float(req.To), duration)
	kf, err := curve.RenderConverted(a, func(v tween.Float) float64 { return float64(v) }, opts)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: response(kf)})
}

func (s *Server) handleRenderColor(c *gin.Context) {
	var req ColorRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid render request: %w", err))
		return
	}
	from, err := tween.ParseColor(req.From)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	to, err := tween.ParseColor(req.To)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}
	opts, duration, err := s.renderOptions(req.Easing, req.Overshoot, req.Duration, req.Rate)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	a := curve.From(from, to, duration)
	kf, err := curve.RenderConverted(a, func(v tween.Color) string { return v.Clamped().Hex() }, opts)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ApiResponse{Status: "success", Data: response(kf)})
}
