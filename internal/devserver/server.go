package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcus/notehub/internal/note"
)

// DefaultPerPage is used when a list request omits perPage.
const DefaultPerPage = 12

// Options configures the router.
type Options struct {
	// Secret signs and verifies bearer tokens. Empty disables auth.
	Secret string
}

// ListNotesQuery binds the query string of GET /notes.
type ListNotesQuery struct {
	Page    int    `form:"page,default=1" binding:"min=1"`
	PerPage int    `form:"perPage,default=12" binding:"min=1,max=100"`
	Search  string `form:"search" binding:"max=100"`
}

// CreateNoteRequest binds the body of POST /notes.
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=50"`
	Content string `json:"content" binding:"max=500"`
	Tag     string `json:"tag" binding:"required,note_tag"`
}

// ListNotesResponse is the body of GET /notes.
type ListNotesResponse struct {
	Notes      []note.Note `json:"notes"`
	TotalPages int         `json:"totalPages"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type handler struct {
	store *Store
}

// NewRouter builds the HTTP handler for the notes API.
func NewRouter(store *Store, opts Options) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(LoggerMiddleware(), gin.Recovery(), CORSMiddleware())

	h := &handler{store: store}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	notes := r.Group("/notes")
	if opts.Secret != "" {
		notes.Use(AuthMiddleware(opts.Secret))
	} else {
		slog.Warn("auth disabled: no secret configured")
	}
	notes.GET("", h.listNotes)
	notes.POST("", h.createNote)
	notes.DELETE("/:id", h.deleteNote)
	return r
}

func (h *handler) listNotes(c *gin.Context) {
	var q ListNotesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortJSON(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	notes, total, err := h.store.List(c.Request.Context(), ListQuery(q))
	if err != nil {
		c.Error(err)
		abortJSON(c, http.StatusInternalServerError, "Failed to list notes", "")
		return
	}

	c.JSON(http.StatusOK, ListNotesResponse{
		Notes:      notes,
		TotalPages: totalPages(total, q.PerPage),
	})
}

func (h *handler) createNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	n, err := h.store.Create(c.Request.Context(), req.Title, req.Content, note.Tag(req.Tag))
	if err != nil {
		c.Error(err)
		abortJSON(c, http.StatusInternalServerError, "Failed to create note", "")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *handler) deleteNote(c *gin.Context) {
	id := c.Param("id")
	n, err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		abortJSON(c, http.StatusNotFound, "Note not found", "")
		return
	}
	if err != nil {
		c.Error(err)
		abortJSON(c, http.StatusInternalServerError, "Failed to delete note", "")
		return
	}
	c.JSON(http.StatusOK, n)
}

func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func abortJSON(c *gin.Context, status int, msg, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Message: detail})
}

// LoggerMiddleware logs each request once it completes, at a level chosen by
// the response status.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"uri", c.Request.RequestURI,
			"client_ip", c.ClientIP(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"size", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			slog.Error("request", attrs...)
		case status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}

// CORSMiddleware allows browser clients on any origin and answers preflight
// requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Run serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
