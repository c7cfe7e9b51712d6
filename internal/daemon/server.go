package daemon

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"mirrorsync/internal/logger"
	"mirrorsync/internal/model"
	"mirrorsync/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type StatusProvider interface {
	Snapshot() model.Snapshot
}

type Server struct {
	echo     *echo.Echo
	status   StatusProvider
	histRepo *repository.HistoryRepository
	addr     string
	stopCh   chan struct{}
}

func NewServer(status StatusProvider, histRepo *repository.HistoryRepository, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		status:   status,
		histRepo: histRepo,
		addr:     "127.0.0.1:" + strconv.Itoa(port),
		stopCh:   make(chan struct{}, 1),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/status", s.handleStatus)
	s.echo.POST("/stop", s.handleStop)
	s.echo.GET("/history", s.handleHistory)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() {
	go func() {
		logger.Log.Info("daemon server started",
			zap.String("addr", s.addr))

		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("daemon server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

type statusResponse struct {
	Mirror model.Snapshot    `json:"mirror"`
	Stats  *repository.Stats `json:"stats,omitempty"`
}

func (s *Server) handleStatus(c echo.Context) error {
	resp := statusResponse{Mirror: s.status.Snapshot()}

	if s.histRepo != nil {
		stats, err := s.histRepo.GetStats()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		resp.Stats = &stats
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStop(c echo.Context) error {
	select {
	case s.stopCh <- struct{}{}:
	default:
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}

func (s *Server) handleHistory(c echo.Context) error {
	if s.histRepo == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
	}

	n := 20
	if nStr := c.QueryParam("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil && parsed > 0 {
			n = parsed
		}
	}

	var (
		histories []model.History
		err       error
	)
	if c.QueryParam("failed") == "true" {
		histories, err = s.histRepo.GetFailed()
		if len(histories) > n {
			histories = histories[:n]
		}
	} else {
		histories, err = s.histRepo.GetRecent(n)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, histories)
}
