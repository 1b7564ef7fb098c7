// Package api exposes the statement parser and the ledger conversions over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aqlanhadi/ledgr/extractor"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/aqlanhadi/ledgr/ledger"
	"go.uber.org/zap"
)

// Error kinds returned in the "kind" field of error responses.
const (
	KindInvalidRequest   = "invalid_request"
	KindProcessingFailed = "processing_failed"
)

// Config holds the API server configuration
type Config struct {
	Port           string
	LogPrefix      string
	MaxUploadBytes int64
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:           ":8080",
		LogPrefix:      "api",
		MaxUploadBytes: 32 << 20,
	}
}

// Server represents the HTTP API server
type Server struct {
	config    Config
	mux       *http.ServeMux
	logger    *zap.Logger
	extractor *extractor.Extractor
	http      *http.Server
}

// New creates a new API server. A nil extractor gets one with default rules.
func New(cfg Config, logger *zap.Logger, ext *extractor.Extractor) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LogPrefix != "" {
		logger = logger.Named(cfg.LogPrefix)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	if ext == nil {
		ext = extractor.New(logger)
	}

	s := &Server{
		config:    cfg,
		mux:       http.NewServeMux(),
		logger:    logger,
		extractor: ext,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/parse", s.handleParse)
	s.mux.HandleFunc("/export", s.handleExport)
	s.mux.HandleFunc("/summary", s.handleSummary)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.recoverer(s.mux)
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.config.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting server", zap.String("addr", s.config.Port))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// recoverer turns a panic in any handler into a processing_failed response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panicked",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				writeError(w, http.StatusInternalServerError, KindProcessingFailed, "failed to process request")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ParseOptions holds the output flags of a parse request
type ParseOptions struct {
	StatementOnly   bool
	TransactionOnly bool
	TextOnly        bool
}

func parseOptions(r *http.Request) ParseOptions {
	return ParseOptions{
		StatementOnly:   isTrue(r, "statement_only"),
		TransactionOnly: isTrue(r, "transaction_only"),
		TextOnly:        isTrue(r, "text_only"),
	}
}

func isTrue(r *http.Request, name string) bool {
	return coalesce(r.FormValue(name), r.URL.Query().Get(name)) == "true"
}

// handleParse accepts either a multipart "file" upload (PDF or .txt) or a "text" form
// field holding already decoded statement text.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("received parse request", zap.String("remote", r.RemoteAddr))

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, KindInvalidRequest, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			s.logger.Warn("could not parse multipart form", zap.Error(err))
			writeError(w, http.StatusBadRequest, KindInvalidRequest, "could not parse form")
			return
		}
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidRequest, "could not parse form")
			return
		}
	}

	opts := parseOptions(r)

	var statement common.Statement
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			s.logger.Error("could not read upload", zap.Error(err))
			writeError(w, http.StatusInternalServerError, KindProcessingFailed, "failed to read upload")
			return
		}

		if opts.TextOnly {
			s.handleTextOnly(w, fileBytes, header.Filename)
			return
		}
		statement = s.extractor.ProcessReader(bytes.NewReader(fileBytes), header.Filename)

	case r.FormValue("text") != "":
		statement = s.extractor.ProcessText(r.FormValue("text"), "")

	default:
		writeError(w, http.StatusBadRequest, KindInvalidRequest, "missing file or text")
		return
	}

	writeJSON(w, http.StatusOK, extractor.CreateFinalOutput(statement, opts.TransactionOnly, opts.StatementOnly))
}

func (s *Server) handleTextOnly(w http.ResponseWriter, fileBytes []byte, filename string) {
	text, err := common.ExtractTextFromPDFReader(bytes.NewReader(fileBytes), s.logger)
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("could not extract text", zap.String("filename", filename), zap.Error(err))
		writeError(w, http.StatusBadRequest, KindInvalidRequest, "could not extract text from file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"filename": filename,
		"text":     text,
	})
}

// handleExport converts a JSON array of transactions into a downloadable file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, KindInvalidRequest, "method not allowed")
		return
	}

	transactions, ok := s.readTransactions(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	var err error
	format := coalesce(r.URL.Query().Get("format"), "csv")
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = ledger.WriteCSV(&buf, transactions)
	case "json":
		w.Header().Set("Content-Type", "application/json")
		err = ledger.WriteJSON(&buf, transactions)
	default:
		writeError(w, http.StatusBadRequest, KindInvalidRequest, "unsupported format")
		return
	}
	if err != nil {
		s.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		writeError(w, http.StatusInternalServerError, KindProcessingFailed, "failed to export transactions")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="transactions.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, KindInvalidRequest, "method not allowed")
		return
	}

	transactions, ok := s.readTransactions(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ledger.Summarize(transactions))
}

func (s *Server) readTransactions(w http.ResponseWriter, r *http.Request) ([]common.CategorizedTransaction, bool) {
	transactions, err := ledger.ReadJSON(http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes))
	if err != nil {
		s.logger.Debug("rejected transaction body", zap.Error(err))
		writeError(w, http.StatusBadRequest, KindInvalidRequest, "body must be a JSON array of transactions")
		return nil, false
	}
	return transactions, true
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: message, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
