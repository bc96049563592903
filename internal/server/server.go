package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/engine"
	"github.com/tartampluch/go-lunarcal/internal/i18n"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

// Converter is the part of engine.Generator the server needs.
type Converter interface {
	Convert(ctx context.Context, req engine.Request) (engine.Report, error)
	Calendar(rep engine.Report, tr *i18n.Translator) ([]byte, error)
}

// cacheItem stores a rendered body and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newCacheItem(data []byte, contentType string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

// lunarResponse is the JSON body of the conversion endpoint. It leaves out
// timings so equal queries produce equal bodies.
type lunarResponse struct {
	Input  engine.Request `json:"input"`
	Result lunar.Result   `json:"result"`
}

// LunarServer answers conversion queries and serves a today feed over HTTP.
type LunarServer struct {
	// today holds the feed; it is read on every request and replaced on refresh.
	today atomic.Pointer[cacheItem]

	Addr      string
	conv      Converter
	catalog   *i18n.Catalog
	defaultTr *i18n.Translator
}

// NewLunarServer creates a server listening on addr once started.
func NewLunarServer(addr string, conv Converter, catalog *i18n.Catalog, lang string) *LunarServer {
	return &LunarServer{
		Addr:      addr,
		conv:      conv,
		catalog:   catalog,
		defaultTr: catalog.Translator(lang),
	}
}

// Handler returns the routes of the server.
func (s *LunarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteLunar, s.handleLunarRequest)
	mux.HandleFunc(config.RouteToday, s.handleTodayRequest)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *LunarServer) Start(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, 1)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the today feed.
func (s *LunarServer) Update(data []byte) {
	item := newCacheItem(data, config.MimeTextCalendar)
	s.today.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// RefreshToday converts the current instant and publishes it as the today feed.
func (s *LunarServer) RefreshToday(ctx context.Context) error {
	rep, err := s.conv.Convert(ctx, engine.Request{})
	if err != nil {
		return err
	}
	data, err := s.conv.Calendar(rep, s.defaultTr)
	if err != nil {
		return err
	}
	s.Update(data)
	return nil
}

// RunRefresher keeps the today feed current until ctx is cancelled. Refresh
// failures are logged and retried on the next tick. A non-positive interval
// publishes the feed once and returns.
func (s *LunarServer) RunRefresher(ctx context.Context, interval time.Duration) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval.String())

	refresh := func() {
		if err := s.RefreshToday(ctx); err != nil && ctx.Err() == nil {
			log.Error(config.ErrRefreshFailed, config.LogKeyError, err)
		}
	}
	refresh()
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

// handleLunarRequest converts the instant named by the query string.
func (s *LunarServer) handleLunarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	q := r.URL.Query()
	req, err := parseRequest(q.Get)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := q.Get(config.QueryFormat)
	if format == "" {
		format = config.FormatJSON
	}
	if format != config.FormatJSON && format != config.FormatICS {
		http.Error(w, fmt.Sprintf("%s: %q", config.ErrReportFormat, format), http.StatusBadRequest)
		return
	}

	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDate, req.String(),
		config.LogKeyFormat, format,
	)
	log.Debug(config.MsgRequest)

	rep, err := s.conv.Convert(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		log.Warn(config.ErrConversion, config.LogKeyStatus, status, config.LogKeyError, err)
		http.Error(w, errorMessage(status, err), status)
		return
	}

	var item *cacheItem
	switch format {
	case config.FormatICS:
		tr := s.defaultTr
		if lang := q.Get(config.QueryLang); lang != "" {
			tr = s.catalog.Translator(lang)
		}
		data, err := s.conv.Calendar(rep, tr)
		if err != nil {
			log.Error(config.ErrICalEncode, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		item = newCacheItem(data, config.MimeTextCalendar)
	default:
		data, err := json.Marshal(lunarResponse{Input: rep.Input, Result: rep.Result})
		if err != nil {
			log.Error(config.ErrReportEncode, config.LogKeyError, err)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}
		item = newCacheItem(data, config.MimeJSON)
	}
	serveItem(w, r, item)
}

// handleTodayRequest serves the today feed with HTTP caching support.
func (s *LunarServer) handleTodayRequest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	item := s.today.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	serveItem(w, r, item)
}

func (s *LunarServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	_, _ = io.WriteString(w, config.HTTPMsgHealthy)
}

func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// serveItem writes the body unless the client's cached copy is current.
func serveItem(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// If-Modified-Since is ignored whenever If-None-Match is present.
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// parseRequest reads the date fields. Without year, month and day the
// current instant is converted; time fields default to zero.
func parseRequest(get func(string) string) (engine.Request, error) {
	if get(config.QueryYear) == "" && get(config.QueryMonth) == "" && get(config.QueryDay) == "" {
		return engine.Request{}, nil
	}

	var req engine.Request
	fields := []struct {
		name     string
		dst      *int
		required bool
	}{
		{config.QueryYear, &req.Year, true},
		{config.QueryMonth, &req.Month, true},
		{config.QueryDay, &req.Day, true},
		{config.QueryHour, &req.Hour, false},
		{config.QueryMinute, &req.Minute, false},
		{config.QuerySecond, &req.Second, false},
	}
	for _, f := range fields {
		v := get(f.name)
		if v == "" {
			if f.required {
				return engine.Request{}, fmt.Errorf("%s: %s is required", config.ErrQueryParam, f.name)
			}
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return engine.Request{}, fmt.Errorf("%s: %s=%q", config.ErrQueryParam, f.name, v)
		}
		*f.dst = n
	}
	if req.IsZero() {
		return engine.Request{}, fmt.Errorf("%s: year 0 does not exist", config.ErrQueryParam)
	}
	return req, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lunar.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, lunar.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusServiceUnavailable:
		return config.HTTPMsgUnavailable
	default:
		return config.HTTPMsgInternalErr
	}
}
