package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/f1qualify/f1qualify/internal/quali"
)

// HTTP is the optional request/response surface next to the MCP stdio
// transport. It serves the comparison as JSON and the rendered images as
// static files.
type HTTP struct {
	server *http.Server
	logger quali.Logger

	port    uint16
	service *Service
}

func NewHTTP(port uint16, service *Service, logger quali.Logger) *HTTP {
	return &HTTP{
		port:    port,
		service: service,
		logger:  logger,
	}
}

func (h *HTTP) Listen() error {
	h.logger.Infof("HTTP server listening on port: %d", h.port)

	h.server = &http.Server{
		Handler: h.Router(),
		Addr:    fmt.Sprintf(":%d", h.port),
	}

	go func() {
		err := h.server.ListenAndServe()

		if err == http.ErrServerClosed {
			return
		} else if err != nil {
			h.logger.WithError(err).Errorf("Could not start HTTP server")
		}
	}()

	return nil
}

func (h *HTTP) Stop(ctx context.Context) error {
	if h.server == nil {
		return nil
	}

	return h.server.Shutdown(ctx)
}

func (h *HTTP) Router() http.Handler {
	router := chi.NewRouter()
	router.Get("/compare", h.Compare)
	router.Get("/healthz", h.Health)
	router.Mount("/images", http.StripPrefix("/images", http.FileServer(http.Dir(h.service.outputDir))))
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Debugf("Could not find HTTP response for URL: %s", r.URL.String())

		http.NotFound(w, r)
	})

	return router
}

func (h *HTTP) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type compareResponse struct {
	Summary   []summaryRow `json:"summary"`
	ImagePath string       `json:"image_path"`
}

type summaryRow struct {
	Rank    int    `json:"rank"`
	Driver  string `json:"driver"`
	Team    string `json:"team"`
	LapTime string `json:"lap_time_formatted"`
}

func (h *HTTP) Compare(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithField("request_id", uuid.New().String())

	year, err := strconv.Atoi(r.URL.Query().Get("year"))

	if err != nil {
		http.Error(w, "year must be an integer", http.StatusBadRequest)

		return
	}

	race := r.URL.Query().Get("race")
	session := r.URL.Query().Get("session")

	logger.Infof("GET /compare year=%d race=%q session=%q", year, race, session)

	comparison, imagePath, err := h.service.CompareAndRender(r.Context(), year, race, session)

	if err != nil {
		logger.WithError(err).Errorf("Comparison failed")
		http.Error(w, err.Error(), statusForError(err))

		return
	}

	response := compareResponse{
		ImagePath: imagePath,
	}

	for _, leader := range comparison.Leaders {
		response.Summary = append(response.Summary, summaryRow{
			Rank:    leader.Rank,
			Driver:  leader.DriverCode,
			Team:    leader.Team,
			LapTime: quali.MustFormatLapTime(leader.LapTime),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Errorf("Could not encode compare response")
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, quali.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, quali.ErrDataUnavailable):
		return http.StatusNotFound
	case errors.Is(err, quali.ErrTelemetryInconsistent):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
