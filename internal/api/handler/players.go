package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/albapepper/fofdata/internal/api/respond"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/players"
)

// PlayerSummary is a roster line without career history.
type PlayerSummary struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Group      string `json:"position_group"`
	Experience uint32 `json:"experience"`
}

// GetPlayers returns the roster as summary lines.
// @Summary List players
// @Description Decodes players.dat and returns one summary line per player. Filter with position or position_group.
// @Tags players
// @Produce json
// @Param league path string true "League directory name"
// @Param position query string false "Position code, e.g. QB"
// @Param position_group query string false "Position group code, e.g. DT"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	pos := strings.ToUpper(r.URL.Query().Get("position"))
	group := strings.ToUpper(r.URL.Query().Get("position_group"))
	if pos != "" && !knownCode(pos, func(i uint32) string { return players.Position(i).String() }) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_POSITION", fmt.Sprintf("Unknown position %q", pos))
		return
	}
	if group != "" && !knownCode(group, func(i uint32) string { return players.PositionGroup(i).String() }) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_POSITION_GROUP", fmt.Sprintf("Unknown position group %q", group))
		return
	}

	key := cache.Key("players", l.Name, pos, group)
	h.serveFile(w, r, key, l.PlayersPath(), cache.TTLPlayers, func() (interface{}, error) {
		roster, err := h.loader.LoadPlayers(l)
		if err != nil {
			return nil, err
		}
		out := make([]PlayerSummary, 0, len(roster.Players))
		for i := range roster.Players {
			p := &roster.Players[i]
			if pos != "" && p.Position.String() != pos {
				continue
			}
			if group != "" && p.Group.String() != group {
				continue
			}
			out = append(out, PlayerSummary{
				ID:         p.ID,
				Name:       p.Name(),
				Position:   p.Position.String(),
				Group:      p.Group.String(),
				Experience: p.Experience,
			})
		}
		return map[string]interface{}{
			"schema":  roster.Schema,
			"players": out,
			"count":   len(out),
		}, nil
	})
}

// knownCode reports whether code names a value of a 1-based enum.
func knownCode(code string, name func(uint32) string) bool {
	for i := uint32(1); ; i++ {
		n := name(i)
		if n == "?" {
			return false
		}
		if n == code {
			return true
		}
	}
}

// GetPlayer returns one player with career history.
// @Summary Get player
// @Description Returns one decoded player record by id, including season lines and career splits.
// @Tags players
// @Produce json
// @Param league path string true "League directory name"
// @Param id path int true "Player id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/players/{id} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	id, ok := intParam(w, r, "id", 1, 1<<31-1)
	if !ok {
		return
	}
	key := cache.Key("player", l.Name, fmt.Sprint(id))
	h.serveFile(w, r, key, l.PlayersPath(), cache.TTLPlayers, func() (interface{}, error) {
		roster, err := h.loader.LoadPlayers(l)
		if err != nil {
			return nil, err
		}
		p, ok := roster.Player(uint32(id))
		if !ok {
			return nil, fmt.Errorf("player %d: %w", id, errNotFound)
		}
		return p, nil
	})
}

// GetStaff returns the staff records of the players file.
// @Summary List staff
// @Description Returns the staff records of a counted-layout players file. Legacy files have none.
// @Tags players
// @Produce json
// @Param league path string true "League directory name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{league}/staff [get]
func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	l := h.openLeague(w, r)
	if l == nil {
		return
	}
	h.serveFile(w, r, cache.Key("staff", l.Name), l.PlayersPath(), cache.TTLPlayers, func() (interface{}, error) {
		roster, err := h.loader.LoadPlayers(l)
		if err != nil {
			return nil, err
		}
		staff := roster.Staff
		if staff == nil {
			staff = []players.Staff{}
		}
		return map[string]interface{}{"staff": staff, "count": len(staff)}, nil
	})
}
