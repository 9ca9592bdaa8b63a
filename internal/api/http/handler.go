package http

import (
	"context"
	"errors"
	"net/http"

	"party-cards/internal/room"
	"party-cards/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RoomDirectory is the read side of the room manager.
type RoomDirectory interface {
	Summaries(ctx context.Context) ([]shared.RoomSummary, error)
	Summary(ctx context.Context, code string) (shared.RoomSummary, error)
}

// @Summary Health check
// @Description Liveness check for load balancers
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List rooms
// @Description Every live room with its phase, round and player counts, ordered by code
// @Tags Room
// @Produce json
// @Success 200 {object} http.RoomListResponse
// @Failure 500 {object} http.ErrorResponse
// @Router /api/rooms [get]
func ListRoomsHandler(rooms RoomDirectory, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := rooms.Summaries(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("list rooms")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list rooms"})
			return
		}
		c.JSON(http.StatusOK, RoomListResponse{Rooms: list})
	}
}

// @Summary Get room
// @Description Read-only summary of one room
// @Tags Room
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} shared.RoomSummary
// @Failure 404 {object} http.ErrorResponse
// @Failure 500 {object} http.ErrorResponse
// @Router /api/rooms/{code} [get]
func GetRoomHandler(rooms RoomDirectory, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		s, err := rooms.Summary(c.Request.Context(), code)
		switch {
		case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrRoomClosed):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case err != nil:
			log.Error().Err(err).Str("room", code).Msg("get room")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read room"})
		default:
			c.JSON(http.StatusOK, s)
		}
	}
}
