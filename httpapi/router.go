// Package httpapi serves the engine as JSON over HTTP.
package httpapi

import (
	"log"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/server"
)

type Config struct {
	Debug int
	// Profile mounts /debug/pprof.
	Profile bool
}

type moveRequest struct {
	Board string `json:"board" binding:"required"`
	Turn  string `json:"turn" binding:"required"`
}

type moveResponse struct {
	Move  int    `json:"move"`
	Cell  string `json:"cell"`
	Value int    `json:"value"`
}

type winnerResponse struct {
	Winner string `json:"winner"`
	Over   bool   `json:"over"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewRouter(e *server.Engine, cfg Config) *gin.Engine {
	if cfg.Debug == 0 {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug > 0 {
		r.Use(gin.Logger())
	}
	if cfg.Profile {
		pprof.Register(r)
	}
	h := &handler{engine: e, debug: cfg.Debug}
	v1 := r.Group("/v1")
	v1.POST("/move", h.move)
	v1.GET("/winner", h.winner)
	return r
}

type handler struct {
	engine *server.Engine
	debug  int
}

func fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch server.KindOf(err) {
	case server.BadRequest:
		code = http.StatusBadRequest
	case server.Conflict:
		code = http.StatusConflict
	}
	c.JSON(code, errorResponse{Error: err.Error()})
}

func (h *handler) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	p, err := h.engine.Position(req.Board + " " + req.Turn)
	if err != nil {
		fail(c, err)
		return
	}
	a, err := h.engine.Analyze(p)
	if err != nil {
		fail(c, err)
		return
	}
	if h.debug > 0 {
		log.Printf("[httpapi] move board=%s turn=%s move=%s value=%d",
			req.Board, req.Turn, notation.FormatMove(a.Move), a.Value)
	}
	c.JSON(http.StatusOK, moveResponse{
		Move:  a.Move,
		Cell:  notation.FormatMove(a.Move),
		Value: a.Value,
	})
}

func (h *handler) winner(c *gin.Context) {
	w, over, err := h.engine.Winner(c.Query("board"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, winnerResponse{
		Winner: server.MarkName(w),
		Over:   over,
	})
}
