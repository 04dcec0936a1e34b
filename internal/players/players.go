// Package players decodes the players roster file (players.dat).
//
// Three layouts exist. The legacy one lists players until a zero tag; the
// counted one stores the player count and follows the roster with several
// independently counted groups, ending with the staff. The sequential one
// stores the highest player id instead and reads players while their ids
// keep climbing through that range. Which one applies is a configuration
// choice, not something sniffed from the content.
package players

import (
	"fmt"
	"strings"

	"github.com/albapepper/fofdata/internal/codec"
)

// Magic frames a players file.
const Magic codec.Magic = "STRUCTPLAYER"

// Schema selects the roster layout.
type Schema string

const (
	Legacy     Schema = "legacy"
	Counted    Schema = "counted"
	Sequential Schema = "sequential"
)

// FirstPlayerID is the lowest id in a sequential roster.
const FirstPlayerID = 1000

// ParseSchema validates a configured schema name.
func ParseSchema(s string) (Schema, error) {
	switch Schema(strings.ToLower(strings.TrimSpace(s))) {
	case Legacy:
		return Legacy, nil
	case Counted:
		return Counted, nil
	case Sequential:
		return Sequential, nil
	}
	return "", fmt.Errorf("unknown players schema %q (want %q, %q or %q)", s, Legacy, Counted, Sequential)
}

// NextGroups is the number of "next" groups in the counted layout.
const NextGroups = 4

// Roster is a decoded players file.
type Roster struct {
	Schema      Schema   `json:"schema"`
	DataVersion uint32   `json:"data_version"`
	StoredCount uint32   `json:"stored_count"` // advisory in the legacy layout
	MaxPlayerID uint32   `json:"max_player_id,omitempty"`
	Players     []Player `json:"players"`

	Next  [NextGroups][]NextEntry `json:"next"`
	More  []MoreEntry             `json:"more"`
	Staff []Staff                 `json:"staff"`

	// StopID is the out-of-sequence id that ended a sequential roster, or
	// zero when it ran to the last id.
	StopID uint32 `json:"stop_id,omitempty"`

	// Trailing is the number of unread bytes after a legacy roster's
	// terminator or a sequential roster's stop.
	Trailing int64 `json:"trailing,omitempty"`
}

// Player finds a player by id.
func (r *Roster) Player(id uint32) (*Player, bool) {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i], true
		}
	}
	return nil, false
}

// Player is one roster entry.
type Player struct {
	ID         uint32        `json:"id"`
	FirstName  codec.Text    `json:"first_name"`
	MiddleName codec.Text    `json:"middle_name"`
	LastName   codec.Text    `json:"last_name"`
	Position   Position      `json:"position"`
	Group      PositionGroup `json:"position_group"`
	Some1      uint32        `json:"some1"`
	Experience uint32        `json:"experience"`

	Data1 [150]uint32 `json:"-"`
	Year1 uint32      `json:"year1"`
	Year2 uint32      `json:"year2"`

	Seasons   []SeasonLine  `json:"seasons"`
	Passing   []SplitLine   `json:"passing"`
	Rushing   []SplitLine   `json:"rushing"`
	Receiving []SplitLine   `json:"receiving"`
	Defense   []SplitLine   `json:"defense"`
	Past      []CareerPoint `json:"past"`
	Current   []CareerPoint `json:"current"`

	What    [3]uint32        `json:"what"`
	Overall [3]RelativeStats `json:"-"`
	Data3   [101]uint32      `json:"-"`
	Data4   [52]uint32       `json:"-"`
}

// Name is the player's first and last name.
func (p *Player) Name() string {
	return p.FirstName.Value + " " + p.LastName.Value
}

func (p *Player) String() string {
	return fmt.Sprintf("%d, %s|%s, %d, %s", p.ID, p.Position, p.Group, p.Experience, p.Name())
}

// SeasonLine is a per-season record.
type SeasonLine struct {
	Year uint32 `json:"year"`
	A    uint32 `json:"a"`
	B    uint32 `json:"b"`
	C    uint32 `json:"c"`
}

// SplitLine is a three-value stat record.
type SplitLine struct {
	A uint32 `json:"a"`
	B uint32 `json:"b"`
	C uint32 `json:"c"`
}

// CareerPoint is a year/value summary pair.
type CareerPoint struct {
	Year  uint32 `json:"year"`
	Value uint32 `json:"value"`
}

// RelativeStats is an opaque block of 64 ratings.
type RelativeStats [64]uint32

// NextEntry is one element of a "next" group.
type NextEntry struct {
	PlayerID uint32 `json:"player_id"`
	Team     uint32 `json:"team"`
	Value    uint32 `json:"value"`
}

// MoreEntry is one element of the "more" group.
type MoreEntry struct {
	PlayerID uint32 `json:"player_id"`
	Value    uint32 `json:"value"`
}

// Staff is one coach or front-office member.
type Staff struct {
	ID         uint32     `json:"id"`
	FirstName  codec.Text `json:"first_name"`
	LastName   codec.Text `json:"last_name"`
	Role       uint32     `json:"role"`
	Team       uint32     `json:"team"`
	Experience uint32     `json:"experience"`
	Ratings    [20]uint32 `json:"ratings"`
}

func (s *Staff) String() string {
	return fmt.Sprintf("%d, role %d, team %d, %s %s", s.ID, s.Role, s.Team, s.FirstName, s.LastName)
}
