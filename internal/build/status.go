package build

import (
	"sync"
	"time"
)

// Phase is the state of the most recent build.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseRendering Phase = "rendering"
	PhaseWriting   Phase = "writing"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// Status tracks builds for the preview server. It is safe for concurrent use.
type Status struct {
	mu sync.Mutex

	phase     Phase
	builds    int
	failures  int
	startedAt time.Time
	updatedAt time.Time
	result    Result
	err       string
}

// Snapshot is a point-in-time copy of Status.
type Snapshot struct {
	Phase     Phase     `json:"phase"`
	Builds    int       `json:"builds"`
	Failures  int       `json:"failures"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Result    Result    `json:"result"`
	Error     string    `json:"error,omitempty"`
}

func NewStatus() *Status {
	return &Status{phase: PhaseIdle}
}

func (s *Status) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseLoading
	s.startedAt = time.Now()
	s.updatedAt = s.startedAt
	s.err = ""
}

// SetPhase updates the build phase.
func (s *Status) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
	s.updatedAt = time.Now()
}

func (s *Status) finish(res Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds++
	s.updatedAt = time.Now()
	if err != nil {
		s.failures++
		s.phase = PhaseFailed
		s.err = err.Error()
		return
	}
	s.phase = PhaseCompleted
	s.result = res
}

// Snapshot returns the current state.
func (s *Status) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:     s.phase,
		Builds:    s.builds,
		Failures:  s.failures,
		StartedAt: s.startedAt,
		UpdatedAt: s.updatedAt,
		Result:    s.result,
		Error:     s.err,
	}
}
