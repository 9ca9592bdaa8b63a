package http

import (
	"net/http"

	"party-cards/internal/config"

	"github.com/gin-gonic/gin"
)

// @Summary Game rules
// @Description Server-wide game defaults, so clients can show them before a room exists
// @Tags Config
// @Produce json
// @Success 200 {object} http.RulesResponse
// @Router /api/config [get]
func GetRulesHandler(cfg config.Config) gin.HandlerFunc {
	resp := RulesResponse{
		HandSize:               cfg.Rules.HandSize,
		DrawRights:             cfg.Rules.DrawRights,
		MinPlayers:             cfg.Rules.MinPlayers,
		DefaultTargetScore:     cfg.Rules.DefaultTargetScore,
		DefaultRoundDurationMs: cfg.Rules.DefaultRoundDuration.Milliseconds(),
		ResultDelayMs:          cfg.Timings.ResultDelay.Milliseconds(),
		HideUnrevealedOwners:   cfg.Rules.HideUnrevealedOwners,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
