package matchapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/maze-arena/agents"
	"github.com/beka-birhanu/maze-arena/service"
	"github.com/beka-birhanu/maze-arena/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultListLimit = 10

// MatchController manages match creation and spectating operations.
type MatchController struct {
	arena       i.Arena
	leaderboard i.Leaderboard
}

// NewMatchController initializes a MatchController.
func NewMatchController(arena i.Arena, leaderboard i.Leaderboard) (*MatchController, error) {
	return &MatchController{
		arena:       arena,
		leaderboard: leaderboard,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MatchController) RegisterPublic(route *gin.RouterGroup) {
	matches := route.Group("/matches")
	{
		matches.POST("/", mc.create)
		matches.GET("/", mc.recent)
		matches.GET("/:ID", mc.byID)
		matches.GET("/:ID/frame", mc.frame)
	}
	route.GET("/presets", mc.presets)
	route.GET("/leaderboard", mc.top)
}

// RegisterProtected registers protected routes.
func (mc *MatchController) RegisterProtected(route *gin.RouterGroup) {}

// create handles match creation requests.
func (mc *MatchController) create(ctx *gin.Context) {
	var request CreateMatchRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lineup := make([]i.PlayerSpec, 0, len(request.Lineup))
	for _, spec := range request.Lineup {
		lineup = append(lineup, i.PlayerSpec{
			Name:  spec.Name,
			Agent: spec.Agent,
			Team:  spec.Team,
		})
	}

	record, err := mc.arena.CreateMatch(context.Background(), request.Preset, lineup)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnknownPreset) || errors.Is(err, service.ErrEmptyLineup) || errors.Is(err, agents.ErrUnknownAgent) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, record)
}

// byID retrieves the record of a specific match, live or finished.
func (mc *MatchController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := mc.arena.MatchByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// frame retrieves the latest spectator frame of a running match.
func (mc *MatchController) frame(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	frame, err := mc.arena.LatestFrame(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, frame)
}

// recent lists the latest match records.
func (mc *MatchController) recent(ctx *gin.Context) {
	records, err := mc.arena.RecentMatches(listLimit(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// presets lists the configured presets and the built-in agents.
func (mc *MatchController) presets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, PresetsResponse{
		Presets: mc.arena.Presets(),
		Agents:  agents.Names(),
	})
}

// top serves the agent leaderboard.
func (mc *MatchController) top(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	entries, err := mc.leaderboard.Top(timeoutCtx, listLimit(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// listLimit parses the optional "limit" query parameter.
func listLimit(ctx *gin.Context) int64 {
	raw := ctx.Query("limit")
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	return limit
}
