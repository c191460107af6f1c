package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-arena/agents"
	"github.com/beka-birhanu/maze-arena/config"
	dmn "github.com/beka-birhanu/maze-arena/domain"
	"github.com/beka-birhanu/maze-arena/game"
	"github.com/beka-birhanu/maze-arena/game/maze"
	"github.com/beka-birhanu/maze-arena/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownPreset = errors.New("unknown match preset")
	ErrMatchNotFound = errors.New("match not found")
	ErrEmptyLineup   = errors.New("a match needs at least one player")
	ErrNoFrameYet    = errors.New("no frame published yet")
)

// session tracks one live match: its evolving record and the latest
// spectator frame.
type session struct {
	mu     sync.RWMutex
	record *dmn.Match
	frame  *game.Frame
}

// ArenaService creates matches from presets, runs them to completion in the
// background, persists their records and feeds the leaderboard.
type ArenaService struct {
	repo        i.MatchRepo
	leaderboard i.Leaderboard
	logger      general_i.Logger
	presets     map[string]config.MatchPreset

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// NewArenaService wires an arena over the given persistence and leaderboard
// backends.
func NewArenaService(repo i.MatchRepo, leaderboard i.Leaderboard, presets map[string]config.MatchPreset, logger general_i.Logger) (i.Arena, error) {
	if len(presets) == 0 {
		return nil, errors.New("at least one match preset is required")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &ArenaService{
		repo:        repo,
		leaderboard: leaderboard,
		logger:      logger,
		presets:     presets,
		sessions:    make(map[uuid.UUID]*session),
	}, nil
}

// CreateMatch builds a game from the named preset, starts it in the
// background and returns its record in the running state.
func (s *ArenaService) CreateMatch(_ context.Context, preset string, lineup []i.PlayerSpec) (*dmn.Match, error) {
	settings, ok := s.presets[preset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	if len(lineup) == 0 {
		return nil, ErrEmptyLineup
	}

	players := make([]game.PlayerConfig, 0, len(lineup))
	agentByPlayer := make(map[string]string, len(lineup))
	for _, spec := range lineup {
		agent, err := agents.New(spec.Agent, rand.New(rand.NewSource(rand.Int63())))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, spec.Agent)
		}
		team := spec.Team
		if team == "" {
			team = spec.Name
		}
		players = append(players, game.PlayerConfig{
			Name:           spec.Name,
			Turn:           agent.Turn,
			Preprocessing:  agent.Preprocessing,
			Postprocessing: agent.Postprocessing,
			Team:           team,
		})
		agentByPlayer[spec.Name] = spec.Agent
	}

	g, err := game.New(presetConfig(settings, players), s.logger)
	if err != nil {
		return nil, err
	}

	record := &dmn.Match{
		ID:        uuid.New(),
		Preset:    preset,
		Status:    dmn.StatusRunning,
		Teams:     teamsOf(players),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(record); err != nil {
		return nil, err
	}

	sess := &session{record: record}
	s.mu.Lock()
	s.sessions[record.ID] = sess
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("match %s started on preset %q:\n%s", record.ID, preset, maze.Render(g.Maze(), g.Width(), g.Height())))
	go s.runMatch(g, sess, agentByPlayer)

	snapshot := *record
	return &snapshot, nil
}

// runMatch drives one game to completion: a consumer keeps the latest frame
// available to spectators while the scheduler runs, then the final record is
// persisted and the leaderboard updated.
func (s *ArenaService) runMatch(g *game.Game, sess *session, agentByPlayer map[string]string) {
	var stats *game.Stats
	grp, _ := errgroup.WithContext(context.Background())
	grp.Go(func() error {
		for frame := range g.Frames() {
			f := frame
			sess.mu.Lock()
			sess.frame = &f
			sess.mu.Unlock()
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		stats, err = g.Start()
		return err
	})
	err := grp.Wait()

	sess.mu.Lock()
	record := sess.record
	record.FinishedAt = time.Now()
	if err != nil {
		record.Status = dmn.StatusAborted
		s.logger.Error(fmt.Sprintf("match %s aborted: %v", record.ID, err))
	} else {
		record.Status = dmn.StatusFinished
		record.TeamScores = g.TeamScores()
		record.Winners = dmn.WinningTeams(record.TeamScores)
		record.Stats = stats
	}
	snapshot := *record
	sess.mu.Unlock()

	if snapshot.Status == dmn.StatusFinished {
		s.recordLeaderboard(&snapshot, stats, agentByPlayer)
	}
	if err := s.repo.Save(&snapshot); err != nil {
		// The session is kept around so the record stays reachable in memory.
		s.logger.Error(fmt.Sprintf("persisting match %s: %v", snapshot.ID, err))
		return
	}

	// Once persisted, the record is served from the repository.
	s.mu.Lock()
	delete(s.sessions, snapshot.ID)
	s.mu.Unlock()
}

// recordLeaderboard folds the final per-player scores into per-agent totals.
func (s *ArenaService) recordLeaderboard(record *dmn.Match, stats *game.Stats, agentByPlayer map[string]string) {
	scores := make(map[string]float64)
	for name, ps := range stats.Players {
		scores[agentByPlayer[name]] += ps.Score
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.leaderboard.RecordScores(ctx, scores); err != nil {
		s.logger.Error(fmt.Sprintf("updating leaderboard for match %s: %v", record.ID, err))
	}
}

// MatchByID returns the current record of a match, checking live sessions
// before falling back to persistence.
func (s *ArenaService) MatchByID(id uuid.UUID) (*dmn.Match, error) {
	s.mu.RLock()
	sess, live := s.sessions[id]
	s.mu.RUnlock()
	if live {
		sess.mu.RLock()
		snapshot := *sess.record
		sess.mu.RUnlock()
		return &snapshot, nil
	}

	record, err := s.repo.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return record, nil
}

// LatestFrame returns the most recent spectator frame of a running match.
func (s *ArenaService) LatestFrame(id uuid.UUID) (*game.Frame, error) {
	s.mu.RLock()
	sess, live := s.sessions[id]
	s.mu.RUnlock()
	if !live {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}

	sess.mu.RLock()
	defer sess.mu.RUnlock()
	if sess.frame == nil {
		return nil, ErrNoFrameYet
	}
	frame := *sess.frame
	return &frame, nil
}

// RecentMatches returns the latest match records, newest first.
func (s *ArenaService) RecentMatches(limit int64) ([]*dmn.Match, error) {
	return s.repo.Recent(limit)
}

// Presets lists the configured preset names in alphabetical order.
func (s *ArenaService) Presets() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// presetConfig translates a named preset into a full game configuration.
func presetConfig(p config.MatchPreset, players []game.PlayerConfig) game.Config {
	return game.Config{
		MazeWidth:         p.MazeWidth,
		MazeHeight:        p.MazeHeight,
		CellPercentage:    p.CellPercentage,
		WallPercentage:    p.WallPercentage,
		MudPercentage:     p.MudPercentage,
		MudRange:          [2]int{p.MudRangeLow, p.MudRangeHigh},
		NbCheese:          p.NbCheese,
		Representation:    game.Representation(p.MazeRepresentation),
		PreprocessingTime: time.Duration(p.PreprocessingTime * float64(time.Second)),
		TurnTime:          time.Duration(p.TurnTime * float64(time.Second)),
		Synchronous:       p.Synchronous,
		ContinueOnError:   p.ContinueOnError,
		Players:           players,
	}
}

// noopLogger keeps the service usable without a logging backend.
type noopLogger struct{}

func (noopLogger) Info(string)    {}
func (noopLogger) Warning(string) {}
func (noopLogger) Error(string)   {}

// teamsOf groups player names by team, preserving registration order.
func teamsOf(players []game.PlayerConfig) map[string][]string {
	teams := make(map[string][]string)
	for _, p := range players {
		teams[p.Team] = append(teams[p.Team], p.Name)
	}
	return teams
}
