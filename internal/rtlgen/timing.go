package rtlgen

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"
)

// TimingEnv names the JSONL file that receives per-artifact timings. It
// takes precedence over Generator.TimingPath.
const TimingEnv = "REGGEN_TIMING_JSONL"

// timingEvent is one JSONL line. Offsets are milliseconds since the
// generation of Block started.
type timingEvent struct {
	Block      string  `json:"block"`
	Phase      string  `json:"phase"`
	Kind       string  `json:"kind"`
	Artifact   string  `json:"artifact,omitempty"`
	Status     string  `json:"status"`
	StartMS    float64 `json:"start_ms"`
	DurationMS float64 `json:"duration_ms"`
}

// timingRecorder is a no-op unless a path was configured. Blocks of one
// run append to the same file.
type timingRecorder struct {
	block  string
	origin time.Time

	mu  sync.Mutex
	out *os.File
	enc *json.Encoder
	err error
}

func openTiming(path, block string, origin time.Time) *timingRecorder {
	tr := &timingRecorder{block: block, origin: origin}
	if path == "" {
		return tr
	}
	tr.out, tr.err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if tr.err == nil {
		tr.enc = json.NewEncoder(tr.out)
	}
	return tr
}

func (tr *timingRecorder) close() {
	if tr.out != nil {
		_ = tr.out.Close()
	}
}

// artifact records one render or write step of an artifact that began at
// since.
func (tr *timingRecorder) artifact(phase, file string, since time.Time, err error) {
	tr.emit(phase, "file", file, since, err)
}

// stage records a whole-block step.
func (tr *timingRecorder) stage(phase string, since time.Time, err error) {
	tr.emit(phase, "stage", "", since, err)
}

func (tr *timingRecorder) emit(phase, kind, file string, since time.Time, err error) {
	if tr.enc == nil {
		return
	}
	ev := timingEvent{
		Block:      tr.block,
		Phase:      phase,
		Kind:       kind,
		Artifact:   file,
		Status:     "ok",
		StartMS:    millis(since.Sub(tr.origin)),
		DurationMS: millis(time.Since(since)),
	}
	if err != nil {
		ev.Status = "error"
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	_ = tr.enc.Encode(ev)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (g *Generator) resolveTimingPath() string {
	if p := strings.TrimSpace(os.Getenv(TimingEnv)); p != "" {
		return p
	}
	return g.TimingPath
}
