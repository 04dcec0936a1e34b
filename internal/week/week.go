// Package week decodes weekly play-by-play files (year_YYYY_week_W.dat).
//
// A week file is a run of games with no file-level framing. Each game is a
// sequence of sections: one Start, any number of Plays, one End.
package week

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/albapepper/fofdata/internal/codec"
)

// Week is a decoded week file.
type Week struct {
	Games []Game `json:"games"`
}

// Game is one contest. Sections[0] is always a *Start and the last section
// always an *End.
type Game struct {
	Sections []Section `json:"sections"`
}

// Start returns the opening section.
func (g *Game) Start() *Start {
	if len(g.Sections) == 0 {
		return nil
	}
	s, _ := g.Sections[0].(*Start)
	return s
}

// End returns the closing section.
func (g *Game) End() *End {
	if len(g.Sections) == 0 {
		return nil
	}
	e, _ := g.Sections[len(g.Sections)-1].(*End)
	return e
}

// Plays returns the sections between Start and End.
func (g *Game) Plays() []*Play {
	var out []*Play
	for _, s := range g.Sections {
		if p, ok := s.(*Play); ok {
			out = append(out, p)
		}
	}
	return out
}

// Team returns the home or away team of the game.
func (g *Game) Team(side Side) *WeekTeam {
	s := g.Start()
	if s == nil {
		return nil
	}
	if side == Home {
		return &s.Home
	}
	return &s.Away
}

// Validate checks the section ordering of a decoded game.
func (g *Game) Validate() error {
	switch {
	case len(g.Sections) == 0:
		return fmt.Errorf("%w: game has no sections", codec.ErrStructuralInvariant)
	case g.Start() == nil:
		return fmt.Errorf("%w: game begins with %s, not start", codec.ErrStructuralInvariant, g.Sections[0].Kind())
	case g.End() == nil:
		return fmt.Errorf("%w: game ends with %s, not end", codec.ErrStructuralInvariant, g.Sections[len(g.Sections)-1].Kind())
	}
	return nil
}

func (g *Game) String() string {
	if s := g.Start(); s != nil {
		return s.String()
	}
	return "<empty game>"
}

// Side selects one of the two teams in a game. Play.OffTeam uses the same
// numbering.
type Side uint32

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Away:
		return "away"
	}
	return "side(" + strconv.Itoa(int(s)) + ")"
}

// FieldPosition renders a yardline measured from the offense's own goal
// line: "OWN 25", "50", "OPP 40".
func FieldPosition(yardline uint32) string {
	switch {
	case yardline < 50:
		return fmt.Sprintf("OWN %d", yardline)
	case yardline == 50:
		return "50"
	case yardline <= 100:
		return fmt.Sprintf("OPP %d", 100-yardline)
	}
	return fmt.Sprintf("?%d", yardline)
}

// withKind marshals v with a leading "kind" discriminator. v must be a
// pointer to a struct whose type has no MarshalJSON method of its own.
func withKind(kind fmt.Stringer, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	k, err := json.Marshal(kind.String())
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+len(k)+10)
	out = append(out, `{"kind":`...)
	out = append(out, k...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}
