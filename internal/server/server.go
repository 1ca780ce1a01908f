// Package server exposes the archive over HTTP: log uploads from the
// desktop watcher and JSON views for the dashboard. Rendering is left to
// the clients; every endpoint speaks JSON.
package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pwrequiem/go-board-archive/internal/board"
	"github.com/pwrequiem/go-board-archive/internal/ingest"
	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/report"
	"github.com/pwrequiem/go-board-archive/internal/storage"
)

// Server handles the archive HTTP API.
type Server struct {
	db  *storage.DB
	rec *ingest.Reconciler
}

// New returns a Server over db using default membership keywords.
func New(db *storage.DB) *Server {
	return &Server{db: db, rec: ingest.New(db, ingest.Keywords{})}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/board", s.handleBoard)
	api.GET("/history", s.handleHistory)
	api.POST("/update_nickname", s.handleUpdateNickname)
	api.POST("/update_class", s.handleUpdateClass)
	return r
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		uploadsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "file field is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		uploadsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		uploadsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	entries := board.Parse(data)
	if len(entries) == 0 {
		uploadsTotal.WithLabelValues("empty").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "file empty or data too old"})
		return
	}

	res, err := s.rec.Apply(entries)
	if err != nil {
		uploadsTotal.WithLabelValues("storage_error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	uploadsTotal.WithLabelValues("ok").Inc()
	uploadEventsTotal.Add(float64(res.NewEvents))
	uploadPlayersTotal.Add(float64(res.NewPlayers))
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"total_parsed": res.Parsed,
		"new_events":   res.NewEvents,
		"new_players":  res.NewPlayers,
	})
}

// boardRow is the leaderboard JSON schema.
type boardRow struct {
	RoleID     int64  `json:"role_id"`
	Name       string `json:"name"`
	ClassName  string `json:"class_name,omitempty"`
	ClassShort string `json:"class_short,omitempty"`
	S1         int    `json:"s1"`
	S2         int    `json:"s2"`
	S3         int    `json:"s3"`
	S4         int    `json:"s4"`
	S5         int    `json:"s5"`
	S6         int    `json:"s6"`
	S7         int    `json:"s7"`
	Adepts     int    `json:"adepts"`
	Dances     int    `json:"dances"`
	TotalGold  int64  `json:"total_gold"`
	TotalValor int64  `json:"total_valor"`
}

func (s *Server) handleBoard(c *gin.Context) {
	start, end := dateRange(c)
	classes := classFilter(c)

	rows, err := report.Leaderboard(s.db, start, end, classes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	lastUpdate, err := s.db.LastUpdate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	out := make([]boardRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, boardRow{
			RoleID:     r.RoleID,
			Name:       r.Name,
			ClassName:  r.ClassName,
			ClassShort: r.ClassShort,
			S1:         r.S1,
			S2:         r.S2,
			S3:         r.S3,
			S4:         r.S4,
			S5:         r.S5,
			S6:         r.S6,
			S7:         r.S7,
			Adepts:     r.Adepts,
			Dances:     r.Dances,
			TotalGold:  r.TotalGold,
			TotalValor: r.TotalValor,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"start":       start,
		"end":         end,
		"last_update": lastUpdate,
		"rows":        out,
	})
}

type historyRow struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Class  string `json:"class,omitempty"`
	Desc   string `json:"desc"`
	Type   int    `json:"type"`
	RoleID int64  `json:"role_id"`
}

func (s *Server) handleHistory(c *gin.Context) {
	start, end := dateRange(c)
	classes := classFilter(c)

	rows, err := s.db.HistoryRows(start, end, classes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	out := make([]historyRow, 0, len(rows))
	for _, r := range rows {
		h := historyRow{Date: r.Date, Name: r.Name, Desc: r.Desc, Type: r.Type, RoleID: r.RoleID}
		if cl, ok := model.ClassByID(r.ClassID); ok {
			h.Class = cl.Short
		}
		out = append(out, h)
	}
	c.JSON(http.StatusOK, gin.H{"start": start, "end": end, "rows": out})
}

func (s *Server) handleUpdateNickname(c *gin.Context) {
	var req struct {
		RoleID   int64  `json:"role_id"`
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RoleID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "role_id is required"})
		return
	}

	exists, err := s.db.PlayerExists(req.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "player not found"})
		return
	}

	if err := s.db.SetNickname(req.RoleID, strings.TrimSpace(req.Nickname)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUpdateClass(c *gin.Context) {
	var req struct {
		RoleID  int64 `json:"role_id"`
		ClassID int   `json:"class_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RoleID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "role_id is required"})
		return
	}
	if _, ok := model.ClassByID(req.ClassID); !ok && req.ClassID != -1 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid class_id"})
		return
	}

	exists, err := s.db.PlayerExists(req.RoleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "player not found"})
		return
	}

	if err := s.db.SetClass(req.RoleID, req.ClassID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func dateRange(c *gin.Context) (string, string) {
	start, end := report.WeekRange(time.Now())
	if v := c.Query("start"); v != "" {
		start = v
	}
	if v := c.Query("end"); v != "" {
		end = v
	}
	return start, end
}

func classFilter(c *gin.Context) []int {
	var out []int
	for _, raw := range c.QueryArray("classes") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.Atoi(part); err == nil {
				out = append(out, id)
			}
		}
	}
	return out
}
