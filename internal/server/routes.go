// internal/server/routes.go
package server

import (
	"bytes"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mwiater/matboard/internal/compliance"
	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/mwiater/matboard/internal/ranking"
	"github.com/mwiater/matboard/internal/report"
)

type columnResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type rowResponse struct {
	Model     string            `json:"model_name"`
	Compliant bool              `json:"compliant"`
	HasSet    bool              `json:"has_set"`
	Cells     map[string]string `json:"cells"`
}

type leaderboardResponse struct {
	Set                 discovery.Set    `json:"discovery_set"`
	SetLabel            string           `json:"discovery_set_label"`
	IncludeNonCompliant bool             `json:"include_non_compliant"`
	SortKey             string           `json:"sort"`
	Descending          bool             `json:"descending"`
	Columns             []columnResponse `json:"columns"`
	Rows                []rowResponse    `json:"rows"`
	Best                *ranking.Best    `json:"best"`
	Issues              []ranking.Issue  `json:"issues,omitempty"`
	TotalRecords        int              `json:"total_records"`
	CompliantRecords    int              `json:"compliant_records"`
}

type bestResponse struct {
	Set     discovery.Set   `json:"discovery_set"`
	Best    *ranking.Best   `json:"best"`
	Summary string          `json:"summary"`
	Issues  []ranking.Issue `json:"issues,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) bindRoutes() {
	s.Echo.GET("/healthz", s.healthHandler)
	api := s.Echo.Group("/api")
	api.GET("/leaderboard", s.leaderboardHandler)
	api.GET("/best", s.bestHandler)
	api.GET("/models/:name", s.modelHandler)
	api.GET("/schema", s.schemaHandler)
	s.Echo.GET("/report.html", s.reportHandler)
	s.Echo.GET("/report.md", s.reportHandler)
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "models": len(s.records)})
}

func (s *Server) leaderboardHandler(c echo.Context) error {
	session, err := s.sessionFor(c)
	if err != nil {
		return badRequest(c, err)
	}
	view := session.View()

	resp := leaderboardResponse{
		Set:                 view.ActiveSet,
		SetLabel:            view.ActiveSet.Label(),
		IncludeNonCompliant: view.IncludeNonCompliant,
		SortKey:             view.SortKey,
		Descending:          view.Descending,
		Issues:              view.Issues,
		TotalRecords:        view.TotalRecords,
		CompliantRecords:    view.CompliantRecords,
		Rows:                make([]rowResponse, 0, len(view.Rows)),
	}
	for _, col := range view.Columns {
		resp.Columns = append(resp.Columns, columnResponse{ID: col.ID, Label: col.Label})
	}
	for i, cells := range view.Cells() {
		row := view.Rows[i]
		byID := make(map[string]string, len(cells))
		for j, col := range view.Columns {
			byID[col.ID] = cells[j]
		}
		resp.Rows = append(resp.Rows, rowResponse{
			Model:     row.Record.ModelName,
			Compliant: compliance.IsCompliant(row.Record),
			HasSet:    row.HasBundle,
			Cells:     byID,
		})
	}
	if view.HasBest {
		best := view.Best
		resp.Best = &best
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) bestHandler(c echo.Context) error {
	session, err := s.sessionFor(c)
	if err != nil {
		return badRequest(c, err)
	}
	view := session.View()
	resp := bestResponse{Set: view.ActiveSet, Summary: view.BestSummary()}
	if view.HasBest {
		best := view.Best
		resp.Best = &best
		resp.Issues = ranking.CheckBest(best)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) modelHandler(c echo.Context) error {
	name := c.Param("name")
	for _, r := range s.records {
		if r.ModelName == name {
			return c.JSON(http.StatusOK, r)
		}
	}
	return c.JSON(http.StatusNotFound, errorResponse{Error: "model " + strconv.Quote(name) + " not found"})
}

func (s *Server) schemaHandler(c echo.Context) error {
	data, err := modelschema.Schema()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	return c.JSONBlob(http.StatusOK, data)
}

func (s *Server) reportHandler(c echo.Context) error {
	session, err := s.sessionFor(c)
	if err != nil {
		return badRequest(c, err)
	}
	data := report.Build(session.View(), s.cfg.Downloads)

	var buf bytes.Buffer
	if strings.HasSuffix(c.Path(), ".md") {
		if err := report.WriteMarkdown(&buf, data); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "text/markdown; charset=UTF-8", buf.Bytes())
	}
	if err := report.WriteHTML(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// sessionFor applies query parameters on top of the server defaults.
func (s *Server) sessionFor(c echo.Context) (*leaderboard.Session, error) {
	opts := s.defaults
	opts.HiddenColumns = append([]string(nil), s.defaults.HiddenColumns...)
	opts.ShownColumns = append([]string(nil), s.defaults.ShownColumns...)

	if set := c.QueryParam("set"); set != "" {
		parsed, err := discovery.Parse(set)
		if err != nil {
			return nil, err
		}
		opts.Set = parsed
	}
	if v := c.QueryParam("non_compliant"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("non_compliant must be a boolean")
		}
		opts.IncludeNonCompliant = include
	}
	if key := c.QueryParam("sort"); key != "" {
		opts.SortKey = key
	}
	if v := c.QueryParam("desc"); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("desc must be a boolean")
		}
		opts.Ascending = !desc
	}
	hide := splitList(c.QueryParam("hide"))
	opts.HiddenColumns = append(opts.HiddenColumns, hide...)
	opts.ShownColumns = append(without(opts.ShownColumns, hide), splitList(c.QueryParam("show"))...)

	return leaderboard.New(s.records, opts)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func without(list, drop []string) []string {
	out := list[:0]
	for _, v := range list {
		if !slices.Contains(drop, v) {
			out = append(out, v)
		}
	}
	return out
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
