package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-lookup-service/internal/models"
	"movie-lookup-service/internal/service"
)

// LookupHandler handles HTTP requests for movie searches.
type LookupHandler struct {
	svc *service.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
func (h *LookupHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-lookup-service",
	})
}

// Search looks up movies by title substring, recording the query in
// the caller's history.
func (h *LookupHandler) Search(c fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "user_id is required"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "query is required"})
	}

	results, err := h.svc.Search(c.Context(), req.UserID, req.Query)
	if err != nil {
		slog.Error("search failed", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}

	return c.JSON(models.SearchResponse{Query: req.Query, Results: results})
}
