package savegame

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
	"github.com/albapepper/fofdata/internal/week"
)

// Loader opens save files and decodes them with a fixed format selection.
// A Loader is safe for concurrent use; every call opens its own file.
type Loader struct {
	Revision league.Revision
	Schema   players.Schema
	Options  []codec.Option
	Logger   *slog.Logger
}

func (ld *Loader) logger() *slog.Logger {
	if ld.Logger != nil {
		return ld.Logger
	}
	return slog.Default()
}

func (ld *Loader) options() []codec.Option {
	opts := ld.Options
	if ld.Logger != nil {
		opts = append(opts[:len(opts):len(opts)], codec.WithLogger(ld.Logger))
	}
	return opts
}

// decodeFile opens path, hands it to decode and closes it again.
func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// LoadInfo decodes the league file.
func (ld *Loader) LoadInfo(l *League) (*league.League, error) {
	ld.logger().Debug("Loading league info", "path", l.LeaguePath())
	return decodeFile(l.LeaguePath(), func(r io.Reader) (*league.League, error) {
		return league.Decode(r, ld.Revision, ld.options()...)
	})
}

// LoadPlayers decodes the players file.
func (ld *Loader) LoadPlayers(l *League) (*players.Roster, error) {
	ld.logger().Debug("Loading players", "path", l.PlayersPath())
	return decodeFile(l.PlayersPath(), func(r io.Reader) (*players.Roster, error) {
		return players.Decode(r, ld.Schema, ld.options()...)
	})
}

// LoadWeek decodes one week file.
func (ld *Loader) LoadWeek(l *League, year, wk int) (*week.Week, error) {
	path := l.WeekPath(year, wk)
	ld.logger().Debug("Loading week", "path", path)
	return decodeFile(path, func(r io.Reader) (*week.Week, error) {
		return week.Decode(r, ld.options()...)
	})
}

// WeekResult is the outcome of decoding one week file.
type WeekResult struct {
	Year  int
	Week  int
	Data  *week.Week
	Err   error
	Games int
}

// WeeksResult collects a DecodeWeeks run. Failures of individual files are
// recorded; they do not stop the others.
type WeeksResult struct {
	Weeks     []WeekResult
	Succeeded int
	Failed    int
	Errors    []string
	Duration  time.Duration
}

func (r *WeeksResult) Summary() string {
	return fmt.Sprintf("%d weeks decoded, %d failed in %s", r.Succeeded, r.Failed, r.Duration.Round(time.Millisecond))
}

// DecodeWeeks decodes every indexed week of year using a pool of workers.
// Results are ordered by week.
func (ld *Loader) DecodeWeeks(ctx context.Context, l *League, year, workers int) (*WeeksResult, error) {
	start := time.Now()
	idx, err := l.Index()
	if err != nil {
		return nil, err
	}
	weeks := idx.Weeks(year)
	result := &WeeksResult{}
	if len(weeks) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(weeks) {
		workers = len(weeks)
	}

	ch := make(chan int, len(weeks))
	for _, w := range weeks {
		ch <- w
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for wk := range ch {
				res := WeekResult{Year: year, Week: wk}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Data, res.Err = ld.LoadWeek(l, year, wk)
				}
				if res.Data != nil {
					res.Games = len(res.Data.Games)
				}

				mu.Lock()
				result.Weeks = append(result.Weeks, res)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	sort.Slice(result.Weeks, func(i, j int) bool { return result.Weeks[i].Week < result.Weeks[j].Week })
	for _, res := range result.Weeks {
		if res.Err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("week %d: %v", res.Week, res.Err))
		} else {
			result.Succeeded++
		}
	}
	result.Duration = time.Since(start)

	ld.logger().Info("Week decode complete", "league", l.Name, "year", year, "summary", result.Summary())
	return result, ctx.Err()
}
