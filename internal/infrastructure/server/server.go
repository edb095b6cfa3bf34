// Package server exposes the command session over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/byte-agent-go/internal/application/dispatch"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// MsgNoCommand is returned when a request carries no command text.
const MsgNoCommand = "No command provided."

const maxBodyBytes = 64 << 10

// Runner executes one command line.
type Runner interface {
	Run(ctx context.Context, line string) (dispatch.Result, error)
}

// Response is the JSON body returned by POST /command.
type Response struct {
	Output string `json:"output"`
}

type commandRequest struct {
	Cmd string `json:"cmd"`
}

// Handler routes the web console.
type Handler struct {
	runner Runner
	logger ports.Logger
	mux    *http.ServeMux
}

// NewHandler builds the HTTP handler over runner.
func NewHandler(runner Runner, logger ports.Logger) *Handler {
	h := &Handler{runner: runner, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("POST /command", h.command)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request) {
	line, err := readCommand(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Info("command received", map[string]interface{}{
		"remote": r.RemoteAddr,
		"cmd":    line,
	})

	if line == "" {
		writeJSON(w, http.StatusOK, Response{Output: MsgNoCommand})
		return
	}

	// A command runs to completion even if the client goes away, so files it
	// writes are never left half done.
	res, err := h.runner.Run(context.WithoutCancel(r.Context()), line)
	if err != nil {
		h.logger.Error("command failed", err, map[string]interface{}{"cmd": line})
		writeJSON(w, http.StatusInternalServerError, Response{Output: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{Output: res.Output})
}

// readCommand accepts either a form field "cmd" or a JSON body {"cmd": ...}.
func readCommand(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return "", errors.New("invalid JSON body")
		}
		return strings.TrimSpace(req.Cmd), nil
	}
	if err := r.ParseForm(); err != nil {
		return "", errors.New("invalid form body")
	}
	return strings.TrimSpace(r.PostFormValue("cmd")), nil
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger ports.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("server listening", map[string]interface{}{"addr": addr})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
