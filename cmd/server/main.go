// Command server exposes the pronunciation assessment engine as a JSON
// HTTP service. The surrounding language-learning app runs
// speech-to-text elsewhere and posts the resulting transcript together
// with the target phrase to /assess.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/domain"
	"github.com/InfinityZero3000/LexiLingo-sub008/pkg/assess"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1024 * 1024 // 1MB; utterances are short
	DefaultConcurrency    = 0           // 0 means use GOMAXPROCS
)

var (
	// Assessor shared by all requests; read-only after init.
	assessor *assess.PronunciationAssessor

	// Logger instance
	logger l.Logger
)

// Request represents an assessment request.
type Request struct {
	Target     string `json:"target"`
	Transcript string `json:"transcript"`
}

// WordScoreResponse is the wire form of a per-word outcome.
type WordScoreResponse struct {
	Word       string `json:"word"`
	Score      int    `json:"score"`
	Issue      string `json:"issue,omitempty"`
	SoundsLike bool   `json:"sounds_like,omitempty"`
}

// Response represents an assessment response.
type Response struct {
	OverallScore      int                    `json:"overall_score"`
	AccuracyScore     int                    `json:"accuracy_score"`
	FluencyScore      int                    `json:"fluency_score"`
	CompletenessScore int                    `json:"completeness_score"`
	Grade             string                 `json:"grade"`
	Feedback          string                 `json:"feedback"`
	Target            string                 `json:"target"`
	Transcript        string                 `json:"transcript"`
	WordScores        []WordScoreResponse    `json:"word_scores"`
	Details           map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	fastNormalizer := flag.Bool("fast-normalizer", true, "Use the ASCII-table normalizer")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting pronunciation assessment server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	initAssessor(*warmUp, *fastNormalizer)

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initAssessor initializes the shared assessor.
func initAssessor(warmUp, fastNormalizer bool) {
	opts := []assess.Option{
		assess.WithLogger(logger),
	}
	if fastNormalizer {
		opts = append(opts, assess.WithFastNormalizer())
	}
	if warmUp {
		opts = append(opts, assess.WithWarmUp(true))
	}

	var err error
	assessor, err = assess.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize assessor", "error", err)
		os.Exit(1)
	}

	logger.Info("Assessor initialized successfully",
		"warm_up", warmUp,
		"fast_normalizer", fastNormalizer,
	)
}

// requestHandler is the main fasthttp request handler.
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "PronunciationServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/assess":
		handleAssess(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests.
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleAssess handles assessment requests. Empty target or transcript
// are valid inputs: the engine is total and scores them as zero rather
// than rejecting them.
func handleAssess(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	score := assessor.Assess(c, req.Target, req.Transcript)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toResponse(score))
}

// toResponse converts a domain score to its wire form.
func toResponse(score domain.Score) Response {
	wordScores := make([]WordScoreResponse, 0, len(score.WordScores))
	for _, ws := range score.WordScores {
		wordScores = append(wordScores, WordScoreResponse{
			Word:       ws.Word,
			Score:      ws.Score,
			Issue:      ws.Issue.String(),
			SoundsLike: ws.SoundsLike,
		})
	}

	return Response{
		OverallScore:      score.OverallScore,
		AccuracyScore:     score.AccuracyScore,
		FluencyScore:      score.FluencyScore,
		CompletenessScore: score.CompletenessScore,
		Grade:             score.Grade,
		Feedback:          score.Feedback,
		Target:            score.TargetText,
		Transcript:        score.UserTranscript,
		WordScores:        wordScores,
		Details:           score.Details,
	}
}

// writeJSONResponse writes a JSON response to the context.
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context.
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger.
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
