package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/albapepper/fofdata/internal/api/respond"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/savegame"
)

// LeagueSummary is one entry of the league listing.
type LeagueSummary struct {
	Name  string `json:"name"`
	Weeks int    `json:"weeks"`
	Years []int  `json:"years"`
}

// TeamSummary is a team without its playbook.
type TeamSummary struct {
	Number     uint32   `json:"number"`
	City       string   `json:"city"`
	Name       string   `json:"name"`
	Short      string   `json:"short"`
	Mismatches []string `json:"name_mismatches,omitempty"`
}

func summarizeTeam(t *league.Team) TeamSummary {
	return TeamSummary{
		Number:     t.Number,
		City:       t.City.Value,
		Name:       t.Name.Value,
		Short:      t.Short.Value,
		Mismatches: t.Mismatches(),
	}
}

// ListLeagues lists the saved leagues.
// @Summary List leagues
// @Description Lists every league directory under the saved-games directory that holds a league file.
// @Tags leagues
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /leagues [get]
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	root := h.cfg.SavedGamesDir
	fi, err := os.Stat(root)
	if err != nil {
		h.writeFileError(w, root, err)
		return
	}
	// The root mtime moves when a league directory is added or removed.
	stamp := cache.StampOf(fi)
	key := cache.Key("leagues")
	ttl := cache.TTLListing

	if data, etag, ok := h.cache.Get(key, stamp); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	data, etag, err := h.cache.Load(key, stamp, ttl, func() ([]byte, error) {
		leagues, err := savegame.Find(root, h.logger)
		if err != nil {
			return nil, err
		}
		out := make([]LeagueSummary, 0, len(leagues))
		for _, l := range leagues {
			s := LeagueSummary{Name: l.Name, Years: []int{}}
			if idx, err := l.Index(); err == nil {
				s.Weeks = idx.Len()
				s.Years = idx.Years()
			} else {
				h.logger.Warn("Index league", "league", l.Name, "error", err)
			}
			out = append(out, s)
		}
		return marshal(map[string]interface{}{"leagues": out, "count": len(out)})
	})
	if err != nil {
		h.writeLoadError(w, root, err)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetLeague returns the decoded league file.
// @Summary Get league info
// @Description Decodes league.dat: calendar, structure, division table and every team with its playbook.
// @Tags leagues
// @Produce json
// @Param league path string true "League directory name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league} [get]
func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	h.serveFile(w, r, cache.Key("league", l.Name), l.LeaguePath(), cache.TTLLeague, func() (interface{}, error) {
		return h.loader.LoadInfo(l)
	})
}

// GetTeams returns the league's teams without playbooks.
// @Summary List teams
// @Description Returns every team of the league file. Teams whose duplicated name fields disagree list the disagreeing fields.
// @Tags leagues
// @Produce json
// @Param league path string true "League directory name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	h.serveFile(w, r, cache.Key("teams", l.Name), l.LeaguePath(), cache.TTLLeague, func() (interface{}, error) {
		info, err := h.loader.LoadInfo(l)
		if err != nil {
			return nil, err
		}
		teams := make([]TeamSummary, 0, len(info.Teams))
		for i := range info.Teams {
			teams = append(teams, summarizeTeam(&info.Teams[i]))
		}
		return map[string]interface{}{"teams": teams, "count": len(teams)}, nil
	})
}

// GetTeam returns one team including its playbook.
// @Summary Get team
// @Description Returns one team of the league file by zero-based team number.
// @Tags leagues
// @Produce json
// @Param league path string true "League directory name"
// @Param team path int true "Zero-based team number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/teams/{team} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	number, ok := intParam(w, r, "team", 0, 1<<16)
	if !ok {
		return
	}
	key := cache.Key("team", l.Name, fmt.Sprint(number))
	h.serveFile(w, r, key, l.LeaguePath(), cache.TTLLeague, func() (interface{}, error) {
		info, err := h.loader.LoadInfo(l)
		if err != nil {
			return nil, err
		}
		t, ok := info.Team(uint32(number))
		if !ok {
			return nil, fmt.Errorf("team %d: %w", number, errNotFound)
		}
		return t, nil
	})
}
