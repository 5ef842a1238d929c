package showcase

import "time"

// Step is the timeline advance per playback tick.
const Step = 100 * time.Millisecond

// seekNudge places a seek just inside the target chapter.
const seekNudge = 10 * time.Millisecond

// State is the playback position. Transitions are pure; the zero value is
// a walkthrough that has not started.
type State struct {
	Started bool          `json:"started"`
	Paused  bool          `json:"paused"`
	Ended   bool          `json:"ended"`
	Elapsed time.Duration `json:"elapsed"`
	Chapter ChapterID     `json:"chapter"`
}

// Start begins playback from the top.
func (s State) Start() State {
	return State{Started: true, Chapter: ChapterIntro}
}

// Restart is Start from any position.
func (s State) Restart() State {
	return s.Start()
}

// Tick advances playback by dt unless it is stopped, paused or ended.
func (s State) Tick(dt time.Duration) State {
	if !s.Started || s.Paused || s.Ended {
		return s
	}
	s.Elapsed += dt
	s.Chapter = ChapterAt(s.Elapsed)
	if s.Elapsed >= TotalDuration() {
		s.Ended = true
		s.Chapter = ChapterOutro
	}
	return s
}

// Pause freezes playback.
func (s State) Pause() State {
	if s.Started && !s.Ended {
		s.Paused = true
	}
	return s
}

// Resume continues paused playback.
func (s State) Resume() State {
	s.Paused = false
	return s
}

// Seek jumps to the start of chapter id and plays from there, starting
// playback if needed. Unknown chapters leave s unchanged.
func (s State) Seek(id ChapterID) State {
	if _, ok := Lookup(id); !ok {
		return s
	}
	return State{
		Started: true,
		Elapsed: Offset(id) + seekNudge,
		Chapter: id,
	}
}

// Progress is the fraction of the whole timeline played, in [0, 1].
func (s State) Progress() float64 {
	return min(float64(s.Elapsed)/float64(TotalDuration()), 1)
}

// ChapterElapsed is the time spent in the current chapter.
func (s State) ChapterElapsed() time.Duration {
	return max(s.Elapsed-Offset(s.Chapter), 0)
}

// ChapterProgress is the fraction of the current chapter played, in [0, 1].
func (s State) ChapterProgress() float64 {
	c, ok := Lookup(s.Chapter)
	if !ok {
		return 0
	}
	return min(float64(s.ChapterElapsed())/float64(c.Duration), 1)
}

// Displayed returns the script text visible at this position.
func (s State) Displayed() string {
	if !s.Started || s.Paused {
		return ""
	}
	return Typewriter(Script(s.Chapter), s.ChapterElapsed(), DefaultCharsPerTick, DefaultTypeTick)
}
