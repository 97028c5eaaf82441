package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/specialistvlad/gridplan/internal/builder"
	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/specialistvlad/gridplan/internal/store"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type scheduleResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Workers   int64            `json:"workers"`
	Outcome   string           `json:"outcome"`
	Reason    string           `json:"reason,omitempty"`
	Median    int64            `json:"median"`
	Makespan  int64            `json:"makespan"`
	Schedule  *document.Output `json:"schedule,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newScheduleResponse(run *store.Run, withSchedule bool) scheduleResponse {
	resp := scheduleResponse{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Workers:   run.Workers,
		Outcome:   run.Outcome,
		Reason:    run.Reason,
		Median:    run.Median,
		Makespan:  run.Makespan,
	}
	if withSchedule {
		resp.Schedule = run.Report().Output()
	}
	return resp
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

// GET /health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Version: s.opts.Version,
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
	})
}

// requestFormat picks the body format from ?format=, then Content-Type.
func requestFormat(c *gin.Context) (document.Format, error) {
	if name := c.Query("format"); name != "" {
		return document.ParseFormat(name)
	}
	if strings.Contains(c.ContentType(), "yaml") {
		return document.YAML, nil
	}
	return document.JSON, nil
}

// POST /v1/schedules
func (s *Server) createSchedule(c *gin.Context) {
	format, err := requestFormat(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		abort(c, http.StatusBadRequest, err)
		return
	}

	doc, err := document.Decode(body, format)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	run, err := s.opts.Scheduler.ScheduleRun(c.Request.Context(), doc)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrInvalidDocument),
		errors.Is(err, builder.ErrUnresolvedDependency),
		errors.Is(err, builder.ErrCyclicDependency):
		abort(c, http.StatusUnprocessableEntity, err)
		return
	default:
		s.logger.Error("Scheduling request failed.", "error", err)
		abort(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, newScheduleResponse(run, true))
}

// GET /v1/schedules
func (s *Server) listSchedules(c *gin.Context) {
	if s.opts.Runs == nil {
		abort(c, http.StatusNotImplemented, errors.New("schedule store is not configured"))
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abort(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	runs, err := s.opts.Runs.ListRuns(c.Request.Context(), limit)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	resp := make([]scheduleResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, newScheduleResponse(run, false))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/schedules/:id
func (s *Server) getSchedule(c *gin.Context) {
	if s.opts.Runs == nil {
		abort(c, http.StatusNotImplemented, errors.New("schedule store is not configured"))
		return
	}

	run, err := s.opts.Runs.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		abort(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, newScheduleResponse(run, true))
}
