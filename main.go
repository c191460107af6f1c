package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/maze-arena/api"
	api_i "github.com/beka-birhanu/maze-arena/api/i"
	matchapi "github.com/beka-birhanu/maze-arena/api/match"
	"github.com/beka-birhanu/maze-arena/config"
	"github.com/beka-birhanu/maze-arena/infrastruture/repo"
	"github.com/beka-birhanu/maze-arena/infrastruture/sortedstorage"
	"github.com/beka-birhanu/maze-arena/service"
	"github.com/beka-birhanu/maze-arena/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *goredis.Client
	matchRepo       i.MatchRepo
	leaderboard     i.Leaderboard
	matchPresets    map[string]config.MatchPreset
	arena           i.Arena
	matchController api_i.Controller
	router          *api.Router
	appLogger       general_i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = goredis.NewClient(&goredis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMatchRepo(client *mongo.Client) {
	matchRepo = repo.NewMatchRepo(client, config.Envs.DBName, "matches")
	appLogger.Info("Match repository initialized")
}

func initLeaderboard() {
	var err error
	leaderboard, err = sortedstorage.NewRedisLeaderboard(redisClient, "arena:leaderboard")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initPresets() {
	var err error
	matchPresets, err = config.LoadPresets(config.Envs.MatchPresets)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading match presets: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Loaded %d match presets", len(matchPresets)))
}

func initArena() {
	arenaLogger, err := logger.New("ARENA", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating arena logger: %v", err))
		os.Exit(1)
	}

	arena, err = service.NewArenaService(matchRepo, leaderboard, matchPresets, arenaLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating arena service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Arena service initialized")
}

func initMatchController() {
	var err error
	matchController, err = matchapi.NewMatchController(arena, leaderboard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating match controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Match controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{matchController},
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	gin.SetMode(config.Envs.GinMode)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initMatchRepo(mongoClient)
	initLeaderboard()
	initPresets()
	initArena()
	initMatchController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
