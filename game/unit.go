package game

import (
	"fmt"
	"sync"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
)

// unitResult is what a decision unit hands back to the scheduler for one turn.
type unitResult struct {
	action   Action
	duration time.Duration
	measured bool
}

// unit is the fault-contained execution context of one player. It exchanges
// snapshots and results with the scheduler exclusively through channels and
// rendezvous points; a panic or invalid return in the player's functions is
// captured at the unit boundary and reported as a tagged result.
type unit struct {
	name   string
	player *playerState
	logger general_i.Logger

	in      chan *Snapshot // next snapshot to act on
	out     chan unitResult
	turnEnd chan struct{} // rendezvous released once the result is consumed or drained

	start      *barrier    // shared start barrier, all units measure from the same instant
	resultLock *sync.Mutex // guards result publication against the scheduler's readiness check
}

// newUnit wires a decision unit for one player.
func newUnit(p *playerState, start *barrier, resultLock *sync.Mutex, logger general_i.Logger) *unit {
	return &unit{
		name:       p.name,
		player:     p,
		logger:     logger,
		in:         make(chan *Snapshot, 1),
		out:        make(chan unitResult, 1),
		turnEnd:    make(chan struct{}),
		start:      start,
		resultLock: resultLock,
	}
}

// run is the unit's loop: rendezvous at the start barrier, read the snapshot,
// produce exactly one result, then wait at the turn-end rendezvous until the
// scheduler (or its drain notifier) has consumed the result.
func (u *unit) run() {
	for {
		u.start.Wait()
		s := <-u.in

		var res unitResult
		switch {
		case s.FinalStats != nil:
			res = u.runPostprocessing(s)
		case s.PlayerMuds[u.name].Crossing():
			res = unitResult{action: ActionMud}
		case s.Turn == 0:
			res = u.runPreprocessing(s)
		default:
			res = u.runTurn(s)
		}

		u.resultLock.Lock()
		u.out <- res
		u.resultLock.Unlock()
		<-u.turnEnd

		if res.action == ActionPostprocessing || res.action == ActionPostprocessingError {
			return
		}
	}
}

// runTurn asks the player for a move, capturing panics and invalid returns.
func (u *unit) runTurn(s *Snapshot) (res unitResult) {
	res.action = ActionError
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error(fmt.Sprintf("player %q crashed on turn %d: %v", u.name, s.Turn, r))
		}
	}()

	begin := time.Now()
	action := u.player.turn(s)
	if !action.isLegalReturn() {
		u.logger.Error(fmt.Sprintf("player %q returned invalid action %q on turn %d", u.name, action, s.Turn))
		return res
	}
	res.action = action
	res.duration = time.Since(begin)
	res.measured = true
	return res
}

// runPreprocessing runs the optional preprocessing function once, at turn 0.
func (u *unit) runPreprocessing(s *Snapshot) (res unitResult) {
	res.action = ActionPreprocessingError
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error(fmt.Sprintf("player %q crashed during preprocessing: %v", u.name, r))
		}
	}()

	begin := time.Now()
	if u.player.preprocessing != nil {
		u.player.preprocessing(s)
	}
	res.action = ActionPreprocessing
	res.duration = time.Since(begin)
	res.measured = true
	return res
}

// runPostprocessing runs the optional postprocessing function once, after the
// terminal turn.
func (u *unit) runPostprocessing(s *Snapshot) (res unitResult) {
	res.action = ActionPostprocessingError
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error(fmt.Sprintf("player %q crashed during postprocessing: %v", u.name, r))
		}
	}()

	if u.player.postprocessing != nil {
		u.player.postprocessing(s)
	}
	res.action = ActionPostprocessing
	return res
}
