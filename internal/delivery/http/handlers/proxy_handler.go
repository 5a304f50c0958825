package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/justwatch-proxy/internal/client"
	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/dto/proxy/response"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/logger"
	"github.com/LavaJover/justwatch-proxy/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes int64 = 1 << 20

type Upstream interface {
	PostGraphQL(ctx context.Context, body []byte) (*client.UpstreamResponse, error)
	GetContentURLs(ctx context.Context, path string) (*client.UpstreamResponse, error)
}

type ProxyHandler struct {
	upstream     Upstream
	logger       *zap.Logger
	metrics      *metrics.ProxyMetrics
	maxBodyBytes int64
	now          func() time.Time
}

func NewProxyHandler(upstream Upstream, log *zap.Logger, m *metrics.ProxyMetrics, maxBodyBytes int64) *ProxyHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &ProxyHandler{
		upstream:     upstream,
		logger:       logger.OrNop(log).Named("proxy"),
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
		now:          time.Now,
	}
}

// GraphQL forwards the request body to the JustWatch GraphQL endpoint and
// relays status and body as they came back.
func (h *ProxyHandler) GraphQL(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	h.logger.Info("Proxying GraphQL request to JustWatch API", zap.Int("bytes", len(body)))

	resp, err := h.upstream.PostGraphQL(r.Context(), body)
	if err != nil {
		h.metrics.RecordUpstreamError("graphql")
		h.logger.Error("Error proxying GraphQL request", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Proxy error", err.Error())
		return
	}

	h.metrics.RecordUpstream("graphql", resp.StatusCode)
	writeRaw(w, resp.StatusCode, resp.Body)
}

func (h *ProxyHandler) ContentURLs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "Missing path parameter", "")
		return
	}

	h.logger.Info("Proxying content URL request", zap.String("path", logger.Sanitize(path)))

	resp, err := h.upstream.GetContentURLs(r.Context(), path)
	if err != nil {
		h.metrics.RecordUpstreamError("content_urls")
		h.logger.Error("Error proxying content URL request",
			zap.String("path", logger.Sanitize(path)),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Proxy error", err.Error())
		return
	}

	h.metrics.RecordUpstream("content_urls", resp.StatusCode)
	writeRaw(w, resp.StatusCode, resp.Body)
}

func (h *ProxyHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
	})
}
