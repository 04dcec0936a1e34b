// Package league decodes and encodes the league info file (league.dat).
//
// The file is a single linear record: header words, a counted calendar,
// names, a fixed division table, opaque padding sized by the format revision,
// the counted team list and an opaque tail.
package league

import (
	"fmt"
	"sort"

	"github.com/albapepper/fofdata/internal/codec"
)

// Magic frames a league file.
const Magic codec.Magic = "STRUCTLEAGUE"

const (
	// DivisionCount is the fixed size of the division table.
	DivisionCount = 8
	// PlaybookSize is the fixed number of plays per team playbook.
	PlaybookSize = 200
	// IgnoredWords precede the revision-sized padding.
	IgnoredWords = 10
)

// League is a decoded league info file.
type League struct {
	DataVersion uint32 `json:"data_version"`
	Some2       uint32 `json:"some2"`
	Some3       uint32 `json:"some3"`
	NextAction  uint32 `json:"next_action"` // unconfirmed
	CurrentDay  uint32 `json:"current_day"` // unconfirmed

	Calendar []CalendarItem `json:"calendar"`

	Year            uint32    `json:"year"` // unconfirmed
	Unknown1        uint32    `json:"unknown1"`
	NumberTeams     uint32    `json:"number_teams"`
	Unknown3        [3]uint32 `json:"unknown3"`
	NumberDivisions uint32    `json:"number_divisions"`
	Unknown7        [6]uint32 `json:"unknown7"`

	ChampionshipName codec.Text `json:"championship_name"`
	LeagueName       codec.Text `json:"league_name"`
	Unknown15        uint32     `json:"unknown15"`
	Conference1Name  codec.Text `json:"conference1_name"`
	Conference1Short codec.Text `json:"conference1_short"`
	Conference2Name  codec.Text `json:"conference2_name"`
	Conference2Short codec.Text `json:"conference2_short"`

	Divisions [DivisionCount]Division `json:"divisions"`

	StructureName codec.Text `json:"structure_name"`
	Unknown20     uint32     `json:"unknown20"`
	Unknown21     uint32     `json:"unknown21"`
	Unknown22     uint32     `json:"unknown22"` // a count, an id or a custom-calendar flag
	CalendarPath  codec.Text `json:"calendar_path"`

	Ignored [IgnoredWords]uint32 `json:"-"`
	Padding []uint32             `json:"-"`
	Trailer []uint32             `json:"-"`

	Teams []Team `json:"teams"`

	Tail []uint32 `json:"-"`
}

// CalendarItem is one dated entry of the league calendar.
type CalendarItem struct {
	Number uint32    `json:"number"`
	Month  uint32    `json:"month"`
	Day    uint32    `json:"day"`
	Year   uint32    `json:"year"`
	Some   [6]uint32 `json:"some"`
}

// Date renders the entry as month/day/year.
func (c CalendarItem) Date() string {
	return fmt.Sprintf("%d/%d/%d", c.Month, c.Day, c.Year)
}

// Division is one row of the division table.
type Division struct {
	Name        codec.Text `json:"name"`
	NumberTeams uint32     `json:"number_teams"`
}

// Team is one franchise. City, name and short name are stored twice; the
// copies are kept as read and compared only on request.
type Team struct {
	Number uint32     `json:"number"` // zero-based; stored on disk as Number+1
	City   codec.Text `json:"city"`
	Name   codec.Text `json:"name"`
	Short  codec.Text `json:"short"`

	Data1    [29]uint32                `json:"-"`
	Playbook [PlaybookSize]PlaybookPlay `json:"playbook"`
	Padding  []uint32                  `json:"-"`
	Data2    [6]uint32                 `json:"-"`

	City2  codec.Text `json:"city2"`
	Name2  codec.Text `json:"name2"`
	Short2 codec.Text `json:"short2"`

	Data3   [56]uint32 `json:"-"`
	Trailer []uint32   `json:"-"`
	Data4   [5]uint32  `json:"-"`
}

// PlaybookPlay is one playbook slot.
type PlaybookPlay struct {
	Data [18]uint32 `json:"-"`
	Name codec.Text `json:"name"`
}

// Mismatches returns the names of the duplicated fields whose two copies
// disagree.
func (t *Team) Mismatches() []string {
	var out []string
	if !t.City.Equal(t.City2) {
		out = append(out, "city")
	}
	if !t.Name.Equal(t.Name2) {
		out = append(out, "name")
	}
	if !t.Short.Equal(t.Short2) {
		out = append(out, "short")
	}
	return out
}

// TeamNames returns the team cities in sorted order.
func (l *League) TeamNames() []string {
	names := make([]string, 0, len(l.Teams))
	for i := range l.Teams {
		names = append(names, l.Teams[i].City.Value)
	}
	sort.Strings(names)
	return names
}

// Team returns the team with the given zero-based number.
func (l *League) Team(number uint32) (*Team, bool) {
	for i := range l.Teams {
		if l.Teams[i].Number == number {
			return &l.Teams[i], true
		}
	}
	return nil, false
}
