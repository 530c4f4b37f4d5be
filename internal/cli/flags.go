package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/orangeswim/cronner"
)

// searchFlags are shared by every command that runs a search.
type searchFlags struct {
	from          string
	maxIterations int
}

func (s *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.from, "from", "", "start the search after this RFC3339 time (default now)")
	fs.IntVar(&s.maxIterations, "max-iterations", cronner.DefaultMaxIterations, "give up after this many search steps")
}

// start resolves --from against clock.
func (s *searchFlags) start(clock cronner.Clock) (time.Time, error) {
	if s.from == "" {
		return clock.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s.from)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --from %q: %w", s.from, err)
	}
	return t, nil
}
