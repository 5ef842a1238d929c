package showcase

import (
	"context"
	"sync"
	"time"
)

type command func(State) State

// Player drives a State from a ticker and publishes every change on
// Updates. Only the latest unread snapshot is kept, so a slow reader skips
// frames rather than stalling playback.
type Player struct {
	interval time.Duration
	step     time.Duration

	commands chan command
	updates  chan State
	done     chan struct{}
	once     sync.Once
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithInterval sets the wall-clock tick period. The timeline still advances
// by Step per tick, so a shorter interval plays faster.
func WithInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPlayer creates a player that ticks every Step.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		interval: Step,
		step:     Step,
		commands: make(chan command),
		updates:  make(chan State, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Updates delivers state snapshots. It is closed when Run returns.
func (p *Player) Updates() <-chan State {
	return p.updates
}

// Run plays from the start until the timeline ends or ctx is cancelled.
// It may be called once.
func (p *Player) Run(ctx context.Context) error {
	defer p.once.Do(func() {
		close(p.done)
		close(p.updates)
	})

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	state := State{}.Start()
	p.publish(state)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-p.commands:
			state = cmd(state)
			p.publish(state)
		case <-ticker.C:
			next := state.Tick(p.step)
			if next == state {
				continue
			}
			state = next
			p.publish(state)
			if state.Ended {
				return nil
			}
		}
	}
}

func (p *Player) publish(s State) {
	select {
	case p.updates <- s:
		return
	default:
	}
	// Drop the stale snapshot; Run is the only sender.
	select {
	case <-p.updates:
	default:
	}
	p.updates <- s
}

func (p *Player) send(cmd command) bool {
	select {
	case p.commands <- cmd:
		return true
	case <-p.done:
		return false
	}
}

// Pause freezes playback. It reports false once Run has returned.
func (p *Player) Pause() bool { return p.send(State.Pause) }

// Resume continues paused playback.
func (p *Player) Resume() bool { return p.send(State.Resume) }

// Restart plays again from the top.
func (p *Player) Restart() bool { return p.send(State.Restart) }

// Seek jumps to chapter id.
func (p *Player) Seek(id ChapterID) bool {
	return p.send(func(s State) State { return s.Seek(id) })
}
