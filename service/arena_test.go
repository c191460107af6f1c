package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-arena/agents"
	"github.com/beka-birhanu/maze-arena/config"
	dmn "github.com/beka-birhanu/maze-arena/domain"
	"github.com/beka-birhanu/maze-arena/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memRepo is an in-memory MatchRepo for tests.
type memRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*dmn.Match
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uuid.UUID]*dmn.Match)}
}

func (r *memRepo) Save(match *dmn.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := *match
	r.records[match.ID] = &snapshot
	return nil
}

func (r *memRepo) ByID(id uuid.UUID) (*dmn.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, errors.New("match not found")
	}
	snapshot := *record
	return &snapshot, nil
}

func (r *memRepo) Recent(limit int64) ([]*dmn.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []*dmn.Match
	for _, record := range r.records {
		snapshot := *record
		records = append(records, &snapshot)
	}
	sort.Slice(records, func(a, b int) bool {
		return records[a].CreatedAt.After(records[b].CreatedAt)
	})
	if int64(len(records)) > limit {
		records = records[:limit]
	}
	return records, nil
}

// memBoard is an in-memory Leaderboard for tests.
type memBoard struct {
	mu     sync.Mutex
	scores map[string]float64
}

func newMemBoard() *memBoard {
	return &memBoard{scores: make(map[string]float64)}
}

func (b *memBoard) RecordScores(_ context.Context, scores map[string]float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for agent, score := range scores {
		b.scores[agent] += score
	}
	return nil
}

func (b *memBoard) Top(_ context.Context, limit int64) ([]i.LeaderboardEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var entries []i.LeaderboardEntry
	for agent, score := range b.scores {
		entries = append(entries, i.LeaderboardEntry{Agent: agent, Score: score})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Score > entries[b].Score })
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func testPresets() map[string]config.MatchPreset {
	return map[string]config.MatchPreset{
		"tiny": {
			MazeWidth:      5,
			MazeHeight:     5,
			CellPercentage: 100,
			WallPercentage: 0,
			MudPercentage:  0,
			MudRangeLow:    2,
			MudRangeHigh:   2,
			NbCheese:       3,
			Synchronous:    true,
		},
	}
}

func TestArenaService(t *testing.T) {
	repo := newMemRepo()
	board := newMemBoard()
	arena, err := NewArenaService(repo, board, testPresets(), nil)
	assert.NoError(t, err)

	t.Run("rejects an unknown preset", func(t *testing.T) {
		_, err := arena.CreateMatch(context.Background(), "marathon", []i.PlayerSpec{{Name: "a", Agent: "random"}})
		assert.ErrorIs(t, err, ErrUnknownPreset)
	})

	t.Run("rejects an empty lineup", func(t *testing.T) {
		_, err := arena.CreateMatch(context.Background(), "tiny", nil)
		assert.ErrorIs(t, err, ErrEmptyLineup)
	})

	t.Run("rejects an unknown agent", func(t *testing.T) {
		_, err := arena.CreateMatch(context.Background(), "tiny", []i.PlayerSpec{{Name: "a", Agent: "mastermind"}})
		assert.ErrorIs(t, err, agents.ErrUnknownAgent)
	})

	t.Run("unknown matches are not found", func(t *testing.T) {
		_, err := arena.MatchByID(uuid.New())
		assert.ErrorIs(t, err, ErrMatchNotFound)
		_, err = arena.LatestFrame(uuid.New())
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("runs a match to completion", func(t *testing.T) {
		lineup := []i.PlayerSpec{
			{Name: "hunter", Agent: "greedy"},
			{Name: "walker", Agent: "random"},
		}
		record, err := arena.CreateMatch(context.Background(), "tiny", lineup)
		assert.NoError(t, err)
		assert.Equal(t, dmn.StatusRunning, record.Status)
		assert.Equal(t, []string{"hunter"}, record.Teams["hunter"])

		assert.Eventually(t, func() bool {
			finished, err := arena.MatchByID(record.ID)
			return err == nil && finished.Status == dmn.StatusFinished
		}, 10*time.Second, 10*time.Millisecond)

		finished, err := arena.MatchByID(record.ID)
		assert.NoError(t, err)
		assert.NotEmpty(t, finished.Winners)
		assert.NotNil(t, finished.Stats)

		// The game may stop early once the lead is unassailable, so at most
		// three cheese worth of points is handed out.
		total := finished.TeamScores["hunter"] + finished.TeamScores["walker"]
		assert.Greater(t, total, 0.0)
		assert.LessOrEqual(t, total, 3.0)

		persisted, err := repo.ByID(record.ID)
		assert.NoError(t, err)
		assert.Equal(t, dmn.StatusFinished, persisted.Status)

		top, err := board.Top(context.Background(), 10)
		assert.NoError(t, err)
		assert.NotEmpty(t, top)
	})

	t.Run("lists presets", func(t *testing.T) {
		assert.Equal(t, []string{"tiny"}, arena.Presets())
	})
}
