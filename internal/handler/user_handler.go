package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-lookup-service/internal/models"
	"movie-lookup-service/internal/service"
)

// UserHandler handles HTTP requests for user favorites and history.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterUser creates the user's record if needed.
func (h *UserHandler) RegisterUser(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "user_id is required"})
	}

	if err := h.svc.Register(c.Context(), req.UserID); err != nil {
		slog.Error("failed to register user", "user_id", req.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to register user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_id": req.UserID})
}

// AddFavorite adds a movie title to the user's favorites.
func (h *UserHandler) AddFavorite(c fiber.Ctx) error {
	userID := c.Params("id")

	var req models.AddFavoriteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "title is required"})
	}

	if err := h.svc.AddFavorite(c.Context(), userID, req.Title); err != nil {
		slog.Error("failed to add favorite", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to add favorite"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id": userID,
		"title":   req.Title,
	})
}

// GetFavorites returns the user's favorite titles.
func (h *UserHandler) GetFavorites(c fiber.Ctx) error {
	userID := c.Params("id")

	favorites, err := h.svc.Favorites(c.Context(), userID)
	if err != nil {
		slog.Error("failed to get favorites", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get favorites"})
	}

	return c.JSON(models.FavoritesResponse{UserID: userID, Favorites: favorites})
}

// GetHistory returns the user's search history in order.
func (h *UserHandler) GetHistory(c fiber.Ctx) error {
	userID := c.Params("id")

	history, err := h.svc.History(c.Context(), userID)
	if err != nil {
		slog.Error("failed to get history", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get history"})
	}

	return c.JSON(models.HistoryResponse{UserID: userID, History: history})
}
