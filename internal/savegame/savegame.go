// Package savegame locates leagues in a saved-games directory and loads
// their files through the decoders.
package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"sync"
)

const (
	LeagueFile  = "league.dat"
	PlayersFile = "players.dat"
	portraitDir = "portraits"
)

var weekFileRE = regexp.MustCompile(`^year_(\d{4})_week_(\d{1,2})\.dat$`)

// WeekFileName is the file name of a week's play-by-play.
func WeekFileName(year, week int) string {
	return fmt.Sprintf("year_%d_week_%d.dat", year, week)
}

// League is one saved league directory.
type League struct {
	Name string
	Dir  string

	once  sync.Once
	index *Index
	err   error
}

// Find lists the leagues under root: every immediate subdirectory holding a
// league file, sorted by name.
func Find(root string, logger *slog.Logger) ([]*League, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read saved games dir %s: %w", root, err)
	}
	var out []*League
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		info, err := os.Stat(filepath.Join(dir, LeagueFile))
		switch {
		case err != nil:
			logger.Warn("Skipping directory without league file", "path", dir, "error", err)
			continue
		case !info.Mode().IsRegular():
			logger.Warn("Skipping league file that is not a regular file", "path", dir)
			continue
		}
		out = append(out, &League{Name: e.Name(), Dir: dir})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	logger.Debug("Found leagues", "root", root, "count", len(out))
	return out, nil
}

// Open returns the named league under root.
func Open(root, name string) (*League, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid league name %q: %w", name, fs.ErrInvalid)
	}
	dir := filepath.Join(root, name)
	if _, err := os.Stat(filepath.Join(dir, LeagueFile)); err != nil {
		return nil, fmt.Errorf("league %s: %w", name, err)
	}
	return &League{Name: name, Dir: dir}, nil
}

func (l *League) LeaguePath() string  { return filepath.Join(l.Dir, LeagueFile) }
func (l *League) PlayersPath() string { return filepath.Join(l.Dir, PlayersFile) }
func (l *League) PortraitsPath() string {
	return filepath.Join(l.Dir, portraitDir)
}

// WeekPath is the path of a week file, whether or not it exists. An indexed
// file keeps the name it was found under, zero-padded week included.
func (l *League) WeekPath(year, week int) string {
	if idx, err := l.Index(); err == nil {
		if name, ok := idx.File(year, week); ok {
			return filepath.Join(l.Dir, name)
		}
	}
	return filepath.Join(l.Dir, WeekFileName(year, week))
}

// Index scans the league directory for week files once and caches the
// result.
func (l *League) Index() (*Index, error) {
	l.once.Do(func() {
		l.index, l.err = scanWeeks(l.Dir)
	})
	return l.index, l.err
}

// Index maps years to the weeks present on disk.
type Index struct {
	weeks map[int][]int
	files map[weekKey]string
}

type weekKey struct{ year, week int }

func scanWeeks(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan weeks in %s: %w", dir, err)
	}
	idx := &Index{weeks: make(map[int][]int), files: make(map[weekKey]string)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		year, week, ok := ParseWeekFileName(e.Name())
		if !ok {
			continue
		}
		// week_01 and week_1 name the same week; the unpadded name wins.
		key := weekKey{year, week}
		if _, dup := idx.files[key]; dup {
			if e.Name() == WeekFileName(year, week) {
				idx.files[key] = e.Name()
			}
			continue
		}
		idx.files[key] = e.Name()
		idx.weeks[year] = append(idx.weeks[year], week)
	}
	for y := range idx.weeks {
		slices.Sort(idx.weeks[y])
	}
	return idx, nil
}

// ParseWeekFileName extracts the year and week from a week file name.
func ParseWeekFileName(name string) (year, week int, ok bool) {
	m := weekFileRE.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	return year, week, true
}

// Years lists the years with at least one week, newest first.
func (x *Index) Years() []int {
	years := make([]int, 0, len(x.weeks))
	for y := range x.weeks {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Weeks lists the weeks of year in ascending order.
func (x *Index) Weeks(year int) []int {
	return slices.Clone(x.weeks[year])
}

// File is the name a week was indexed under.
func (x *Index) File(year, week int) (string, bool) {
	name, ok := x.files[weekKey{year, week}]
	return name, ok
}

// Has reports whether a week file exists for year and week.
func (x *Index) Has(year, week int) bool {
	_, ok := slices.BinarySearch(x.weeks[year], week)
	return ok
}

// Len is the number of week files indexed.
func (x *Index) Len() int {
	n := 0
	for _, w := range x.weeks {
		n += len(w)
	}
	return n
}

// IsNotExist reports whether err means a requested save file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
