package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"arkivscope/internal/model"
)

// cacheTTL matches the upstream dashboards' 30-second revalidation window.
const DefaultCacheTTL = 30 * time.Second

// EventSource is the query surface the API exposes.
type EventSource interface {
	EventsWithFilters(ctx context.Context, f model.Filter) ([]model.Event, error)
	Stats(ctx context.Context) (model.EventStats, error)
	VolumeByAsset(ctx context.Context) (map[string]string, error)
	Distribution(ctx context.Context) (model.Distribution, error)
}

// ResponseCache caches rendered response bodies. May be nil.
type ResponseCache interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Set(ctx context.Context, name string, body []byte) error
}

// API holds HTTP handler dependencies.
type API struct {
	events EventSource
	cache  ResponseCache
	logger *zap.Logger
}

func NewAPI(events EventSource, cache ResponseCache, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{events: events, cache: cache, logger: logger}
}

func (a *API) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Events handles GET /api/events with filters from query parameters.
func (a *API) Events(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := model.Filter{
		Kind:      params.Get("eventType"),
		Protocol:  params.Get("protocol"),
		Asset:     params.Get("asset"),
		Actor:     params.Get("user"),
		TxHash:    params.Get("txHash"),
		MinAmount: params.Get("minAmount"),
		MaxAmount: params.Get("maxAmount"),
	}
	if f.Kind == "all" {
		f.Kind = ""
	}

	if f.Actor != "" && !common.IsHexAddress(f.Actor) {
		writeError(w, http.StatusBadRequest, "user must be a hex address", a.logger)
		return
	}

	var err error
	if f.From, err = parseDate(params.Get("startDate")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate", a.logger)
		return
	}
	if f.To, err = parseDate(params.Get("endDate")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate", a.logger)
		return
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", a.logger)
			return
		}
		f.Limit = limit
	}

	events, err := a.events.EventsWithFilters(r.Context(), f)
	if err != nil {
		a.logger.Error("fetch events", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to fetch events", a.logger)
		return
	}

	count := len(events)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: events, Count: &count}, a.logger)
}

type queryRequest struct {
	Protocol  string `json:"protocol"`
	EventType string `json:"eventType"`
	Asset     string `json:"asset"`
	User      string `json:"user"`
	TxHash    string `json:"txHash"`
	MinAmount string `json:"minAmount"`
	MaxAmount string `json:"maxAmount"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Limit     int    `json:"limit"`
}

// Query handles POST /api/query with a JSON filter body. Results are
// sorted by timestamp descending.
func (a *API) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", a.logger)
		return
	}

	f := model.Filter{
		Kind:       req.EventType,
		Protocol:   req.Protocol,
		Asset:      req.Asset,
		Actor:      req.User,
		TxHash:     req.TxHash,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
		Limit:      req.Limit,
		SortByTime: true,
	}
	if f.Kind == "all" {
		f.Kind = ""
	}
	if f.Protocol == "all" {
		f.Protocol = ""
	}

	var err error
	if f.From, err = parseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate", a.logger)
		return
	}
	if f.To, err = parseDate(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate", a.logger)
		return
	}

	events, err := a.events.EventsWithFilters(r.Context(), f)
	if err != nil {
		a.logger.Error("run query", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to execute query", a.logger)
		return
	}

	count := len(events)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: events, Count: &count, Query: f}, a.logger)
}

// Stats handles GET /api/stats.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	a.cached(w, r, "stats", func(ctx context.Context) (any, error) {
		return a.events.Stats(ctx)
	})
}

// Volume handles GET /api/analytics/volume.
func (a *API) Volume(w http.ResponseWriter, r *http.Request) {
	a.cached(w, r, "analytics:volume", func(ctx context.Context) (any, error) {
		return a.events.VolumeByAsset(ctx)
	})
}

// Distribution handles GET /api/analytics/distribution.
func (a *API) Distribution(w http.ResponseWriter, r *http.Request) {
	a.cached(w, r, "analytics:distribution", func(ctx context.Context) (any, error) {
		return a.events.Distribution(ctx)
	})
}

// cached serves a computed body through the response cache when one is
// configured. Cache failures degrade to recomputation, never to errors.
func (a *API) cached(w http.ResponseWriter, r *http.Request, name string, compute func(ctx context.Context) (any, error)) {
	ctx := r.Context()

	if a.cache != nil {
		body, ok, err := a.cache.Get(ctx, name)
		if err != nil {
			a.logger.Warn("response cache get", zap.String("name", name), zap.Error(err))
		} else if ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	data, err := compute(ctx)
	if err != nil {
		a.logger.Error("compute "+name, zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to compute "+name, a.logger)
		return
	}

	body, err := json.Marshal(envelope{Success: true, Data: data})
	if err != nil {
		a.logger.Error("encode "+name, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, name, body); err != nil {
			a.logger.Warn("response cache set", zap.String("name", name), zap.Error(err))
		}
	}
	writeRawJSON(w, http.StatusOK, body)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}
