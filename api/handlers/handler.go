package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jusunglee/bikeshare-go/internal/config"
	"github.com/jusunglee/bikeshare-go/internal/loader"
	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/pkg/bikeshare"
)

const (
	defaultPreviewRows = 5
	maxPreviewRows     = 100
	protobufMediaType  = "application/x-protobuf"
)

// Handler handles HTTP requests
type Handler struct {
	client bikeshare.Client
}

// NewHandler creates a new HTTP handler
func NewHandler(client bikeshare.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/cities", h.handleCities).Methods("GET")
	r.HandleFunc("/stats", h.handleStats).Methods("GET")
	r.HandleFunc("/preview", h.handlePreview).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data   interface{}    `json:"data"`
	Filter *models.Filter `json:"filter,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title": "bikeshare-go",
		"usage": "GET /stats?city=chicago&month=june&day=all",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleCities(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, Response{Data: h.client.Cities()})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	summary, err := h.client.Summary(r.Context(), f)
	if err != nil {
		h.writeClientError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "proto" {
		h.writeProto(w, summary)
		return
	}
	h.writeJSON(w, Response{Data: summary, Filter: &f})
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	rows := defaultPreviewRows
	if rowsStr := r.URL.Query().Get("rows"); rowsStr != "" {
		n, err := strconv.Atoi(rowsStr)
		if err != nil || n < 1 || n > maxPreviewRows {
			h.writeError(w, "Invalid rows parameter", http.StatusBadRequest)
			return
		}
		rows = n
	}

	trips, err := h.client.Preview(r.Context(), f, rows)
	if err != nil {
		h.writeClientError(w, err)
		return
	}

	data := make([]models.TripResponse, len(trips))
	for i := range trips {
		data[i] = trips[i].ConvertToResponse()
	}
	h.writeJSON(w, Response{Data: data, Filter: &f})
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request) (models.Filter, bool) {
	q := r.URL.Query()
	if q.Get("city") == "" {
		h.writeError(w, "Missing city parameter", http.StatusBadRequest)
		return models.Filter{}, false
	}

	f, err := models.NewFilter(q.Get("city"), q.Get("month"), q.Get("day"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return models.Filter{}, false
	}
	return f, true
}

// writeClientError maps client errors to status codes
func (h *Handler) writeClientError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, config.ErrUnknownCity), errors.Is(err, models.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrMissingColumn):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, loader.ErrSourceNotFound), errors.Is(err, loader.ErrMalformedSource):
		log.WithError(err).Error("error reading trip source")
	default:
		log.WithError(err).Error("error handling request")
	}
	h.writeError(w, err.Error(), status)
}

// writeProto encodes data as a google.protobuf.Struct via its JSON form
func (h *Handler) writeProto(w http.ResponseWriter, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	body, err := proto.Marshal(msg)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", protobufMediaType)
	w.Write(body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
