package simulate

import "time"

// Results aggregates game outcomes. Guess counts above MaxGuesses are losses.
type Results struct {
	maxGuesses   int
	runs         int
	wins         int
	totalGuesses int
	histogram    []int // index i holds games won in i+1 guesses; last index is losses
}

// NewResults prepares an empty aggregate for a guess budget.
func NewResults(maxGuesses int) *Results {
	return &Results{maxGuesses: maxGuesses, histogram: make([]int, maxGuesses+1)}
}

// Record adds one game.
func (r *Results) Record(guesses int) {
	r.runs++
	if guesses >= 1 && guesses <= r.maxGuesses {
		r.wins++
		r.totalGuesses += guesses
		r.histogram[guesses-1]++
		return
	}
	r.histogram[r.maxGuesses]++
}

// Report is a snapshot of the aggregate.
type Report struct {
	ID          string        `json:"id,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	Strategy    string        `json:"strategy"`
	Runs        int           `json:"runs"`
	Wins        int           `json:"wins"`
	WinRate     float64       `json:"winRate"` // 0..1
	MeanGuesses float64       `json:"meanGuesses"`
	MaxGuesses  int           `json:"maxGuesses"`
	Histogram   []int         `json:"histogram"` // 1..MaxGuesses, then losses
	Elapsed     time.Duration `json:"elapsedNs"`
}

// Report computes rates and means. Mean guesses is over wins only.
func (r *Results) Report() Report {
	rep := Report{
		Runs:       r.runs,
		Wins:       r.wins,
		MaxGuesses: r.maxGuesses,
		Histogram:  append([]int(nil), r.histogram...),
	}
	if r.runs > 0 {
		rep.WinRate = float64(r.wins) / float64(r.runs)
	}
	if r.wins > 0 {
		rep.MeanGuesses = float64(r.totalGuesses) / float64(r.wins)
	}
	return rep
}

// Losses is the size of the loss bucket.
func (r Report) Losses() int {
	if len(r.Histogram) == 0 {
		return 0
	}
	return r.Histogram[len(r.Histogram)-1]
}

// Bars scales the histogram for a text chart: one unit per runs/50 games.
func (r Report) Bars() []int {
	unit := r.Runs / 50
	if unit < 1 {
		unit = 1
	}
	out := make([]int, len(r.Histogram))
	for i, n := range r.Histogram {
		out[i] = n / unit
	}
	return out
}
