package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/albapepper/fofdata/internal/api/respond"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/week"
)

// YearWeeks lists the weeks on disk for one year.
type YearWeeks struct {
	Year  int   `json:"year"`
	Weeks []int `json:"weeks"`
}

// GetWeekIndex lists the week files of a league.
// @Summary List week files
// @Description Returns the years and weeks for which a play-by-play file exists, newest year first.
// @Tags weeks
// @Produce json
// @Param league path string true "League directory name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /leagues/{league}/weeks [get]
func (h *Handler) GetWeekIndex(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	fi, err := os.Stat(l.Dir)
	if err != nil {
		h.writeFileError(w, l.Dir, err)
		return
	}
	key := cache.Key("weeks", l.Name)
	data, etag, err := h.cache.Load(key, cache.StampOf(fi), cache.TTLListing, func() ([]byte, error) {
		idx, err := l.Index()
		if err != nil {
			return nil, err
		}
		years := make([]YearWeeks, 0)
		for _, y := range idx.Years() {
			years = append(years, YearWeeks{Year: y, Weeks: idx.Weeks(y)})
		}
		return marshal(map[string]interface{}{"league": l.Name, "years": years, "count": idx.Len()})
	})
	if err != nil {
		h.writeLoadError(w, l.Dir, err)
		return
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLListing, false)
}

// weekParams parses {year} and {week}.
func weekParams(w http.ResponseWriter, r *http.Request) (year, wk int, ok bool) {
	if year, ok = intParam(w, r, "year", 1000, 9999); !ok {
		return 0, 0, false
	}
	if wk, ok = intParam(w, r, "week", 0, 99); !ok {
		return 0, 0, false
	}
	return year, wk, true
}

// GetWeek returns a decoded week file.
// @Summary Get week
// @Description Decodes year_YYYY_week_W.dat: every game with its start, plays and end sections.
// @Tags weeks
// @Produce json
// @Param league path string true "League directory name"
// @Param year path int true "Season year"
// @Param week path int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/years/{year}/weeks/{week} [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	year, wk, ok := weekParams(w, r)
	if !ok {
		return
	}
	key := cache.Key("week", l.Name, fmt.Sprint(year), fmt.Sprint(wk))
	h.serveFile(w, r, key, l.WeekPath(year, wk), cache.TTLWeek, func() (interface{}, error) {
		return h.loader.LoadWeek(l, year, wk)
	})
}

// GameSummary is one line of a week's schedule.
type GameSummary struct {
	Index int    `json:"index"`
	Home  uint32 `json:"home"`
	Away  uint32 `json:"away"`
	Plays int    `json:"plays"`
	Line  string `json:"line"`
}

// GetWeekGames returns a compact schedule of a week.
// @Summary List games of a week
// @Description Returns one line per game with the team numbers and play count.
// @Tags weeks
// @Produce json
// @Param league path string true "League directory name"
// @Param year path int true "Season year"
// @Param week path int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/years/{year}/weeks/{week}/games [get]
func (h *Handler) GetWeekGames(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	year, wk, ok := weekParams(w, r)
	if !ok {
		return
	}
	key := cache.Key("games", l.Name, fmt.Sprint(year), fmt.Sprint(wk))
	h.serveFile(w, r, key, l.WeekPath(year, wk), cache.TTLWeek, func() (interface{}, error) {
		data, err := h.loader.LoadWeek(l, year, wk)
		if err != nil {
			return nil, err
		}
		games := make([]GameSummary, 0, len(data.Games))
		for i := range data.Games {
			g := &data.Games[i]
			s := GameSummary{Index: i, Plays: len(g.Plays()), Line: g.String()}
			if t := g.Team(week.Home); t != nil {
				s.Home = t.Number
			}
			if t := g.Team(week.Away); t != nil {
				s.Away = t.Number
			}
			games = append(games, s)
		}
		return map[string]interface{}{"year": year, "week": wk, "games": games, "count": len(games)}, nil
	})
}

// GetGame returns one game of a week.
// @Summary Get game
// @Description Returns one decoded game by its zero-based position in the week file.
// @Tags weeks
// @Produce json
// @Param league path string true "League directory name"
// @Param year path int true "Season year"
// @Param week path int true "Week number"
// @Param game path int true "Zero-based game index"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/years/{year}/weeks/{week}/games/{game} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	year, wk, ok := weekParams(w, r)
	if !ok {
		return
	}
	index, ok := intParam(w, r, "game", 0, 1<<16)
	if !ok {
		return
	}
	key := cache.Key("game", l.Name, fmt.Sprint(year), fmt.Sprint(wk), fmt.Sprint(index))
	h.serveFile(w, r, key, l.WeekPath(year, wk), cache.TTLWeek, func() (interface{}, error) {
		data, err := h.loader.LoadWeek(l, year, wk)
		if err != nil {
			return nil, err
		}
		if index >= len(data.Games) {
			return nil, fmt.Errorf("game %d of %d: %w", index, len(data.Games), errNotFound)
		}
		return &data.Games[index], nil
	})
}
