package week

import (
	"fmt"
	"io"

	"github.com/albapepper/fofdata/internal/codec"
)

// Decode reads every game in a week file.
func Decode(src io.Reader, opts ...codec.Option) (*Week, error) {
	r := codec.NewReader(src, opts...)
	games := codec.ReadToEOF(r, "games", readGame)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode week: %w", err)
	}
	if games == nil {
		games = []Game{}
	}
	return &Week{Games: games}, nil
}

// gameState tracks where a game is between its Start and End sections.
type gameState int

const (
	expectStart gameState = iota
	expectPlayOrEnd
	done
)

func readGame(r *codec.Reader) Game {
	state := expectStart
	next := func(r *codec.Reader) Section {
		start := r.Offset()
		m := r.Dispatch("magic", StartMagic, PlayMagic, EndMagic)
		if r.Err() != nil {
			return nil
		}
		switch {
		case state == expectStart && m != StartMagic:
			r.Fail(sectionOrder(start, "game must open with %s, found %s", StartMagic, m))
			return nil
		case state == expectPlayOrEnd && m == StartMagic:
			r.Fail(sectionOrder(start, "%s before the previous game's %s", StartMagic, EndMagic))
			return nil
		}
		switch m {
		case StartMagic:
			state = expectPlayOrEnd
			return readStart(r)
		case PlayMagic:
			return readPlay(r)
		default:
			state = done
			return readEnd(r)
		}
	}
	g := Game{
		Sections: codec.ReadUntil(r, "sections", codec.Inclusive, next, func(s Section) bool {
			return s.Kind() == KindEnd
		}),
	}
	if r.Err() != nil {
		return Game{}
	}
	if err := g.Validate(); err != nil {
		r.Fail(err)
	}
	return g
}

func sectionOrder(offset int64, format string, args ...any) error {
	return &codec.DecodeError{
		Kind:   codec.ErrStructuralInvariant,
		Field:  "sections",
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func readStart(r *codec.Reader) *Start {
	s := &Start{
		Version:  r.U32(),
		Year:     r.U32(),
		Week:     r.U32(),
		Some4:    r.U32(),
		Some5:    r.U32(),
		Some6:    r.U32(),
		Location: r.Text(),
		When:     r.Text(),
	}
	copy(s.Data[:], r.Words(len(s.Data)))
	s.Home = codec.Scope(r, "home", readWeekTeam)
	s.Away = codec.Scope(r, "away", readWeekTeam)
	s.End1 = r.U32()
	s.End2 = r.U32()
	return s
}

func readWeekTeam(r *codec.Reader) WeekTeam {
	t := WeekTeam{
		Number: r.U32(),
		City:   r.Text(),
		Name:   r.Text(),
		Short:  r.Text(),
	}
	copy(t.Other[:], r.Words(len(t.Other)))
	return t
}

func readPlay(r *codec.Reader) *Play {
	p := &Play{
		Quarter:      r.U32(),
		Minutes:      r.U32(),
		Seconds:      r.U32(),
		OffTeam:      Side(r.U32()),
		Down:         r.U32(),
		YardsToGo:    r.U32(),
		Yardline:     r.U32(),
		HomeTimeouts: r.U32(),
		AwayTimeouts: r.U32(),
	}
	p.Outcome = codec.Scope(r, "outcome", readOutcome)
	return p
}

func readOutcome(r *codec.Reader) Outcome {
	kind := codec.ReadEnum[PlayKind](r, "kind")
	if r.Err() != nil {
		return nil
	}
	switch kind {
	case Run, Pass:
		return readScrimmage(r, kind)
	case SpecialPlay:
		return readSpecial(r)
	default:
		k := &Kicking{Type: kind}
		copy(k.Data[:], r.Words(PayloadWords))
		return k
	}
}

func readScrimmage(r *codec.Reader, kind PlayKind) *Scrimmage {
	s := &Scrimmage{
		Type:             kind,
		Formation:        r.U32(),
		OffensePersonnel: r.U32(),
		Front:            r.U32(),
		DefensePersonnel: r.U32(),
		Coverage:         codec.ReadEnum[Coverage](r, "coverage"),
		SpecialCoverage:  codec.ReadEnum[SpecialCoverage](r, "special_coverage"),
		BlitzCount:       r.U32(),
	}
	copy(s.Assignments[:], codec.ReadN(r, "assignments", DefenderSlots, func(r *codec.Reader) Assignment {
		return codec.ReadEnum[Assignment](r, "")
	}))
	if r.Err() != nil {
		return s
	}
	s.derive()
	if err := s.check(); err != nil {
		r.Fail(r.Invariant("assignments", "%v", err))
		return s
	}
	copy(s.Detail[:], r.Words(DetailWords))
	return s
}

func readSpecial(r *codec.Reader) *Special {
	s := &Special{}
	copy(s.Data1[:], r.Words(len(s.Data1)))
	s.ExtraPoint = readExtraPoint(r)
	copy(s.Something[:], r.Words(len(s.Something)))
	s.Event = codec.ReadEnum[SpecialKind](r, "event")
	copy(s.Data2[:], r.Words(len(s.Data2)))
	return s
}

func readEnd(r *codec.Reader) *End {
	e := &End{PlayerOfGame: r.U32()}
	homeLen := r.U32()
	awayLen := r.U32()
	e.HomeDrives = codec.ReadN(r, "home_drives", int(homeLen), readDrive)
	e.AwayDrives = codec.ReadN(r, "away_drives", int(awayLen), readDrive)
	e.HomePassing = readPassStats(r)
	e.AwayPassing = readPassStats(r)
	e.HomeRushing = readRunStats(r)
	e.AwayRushing = readRunStats(r)
	e.HomePossession = readPossession(r)
	e.AwayPossession = readPossession(r)
	return e
}

func readDrive(r *codec.Reader) Drive {
	return Drive{
		StartQuarter:  r.U32(),
		StartMinutes:  r.U32(),
		StartSeconds:  r.U32(),
		EndQuarter:    r.U32(),
		EndMinutes:    r.U32(),
		EndSeconds:    r.U32(),
		StartFromGoal: r.U32(),
		Plays:         r.U32(),
		YardsGained:   r.I32(),
		Result:        r.U32(),
	}
}

func readPassLine(r *codec.Reader) PassLine {
	return PassLine{Attempts: r.U32(), Completions: r.U32(), Yards: r.I32()}
}

func readPassStats(r *codec.Reader) PassStats {
	return PassStats{
		Screen: readPassLine(r),
		Short:  readPassLine(r),
		Medium: readPassLine(r),
		Long:   readPassLine(r),
		Other:  readPassLine(r),
	}
}

func readRunLine(r *codec.Reader) RunLine {
	return RunLine{Attempts: r.U32(), Yards: r.I32()}
}

func readRunStats(r *codec.Reader) RunStats {
	return RunStats{
		Left:   readRunLine(r),
		Middle: readRunLine(r),
		Right:  readRunLine(r),
		None:   readRunLine(r),
	}
}

func readPossession(r *codec.Reader) Possession {
	return Possession{
		Seconds:         r.U32(),
		RedZoneAttempts: r.U32(),
		RedZoneTD:       r.U32(),
		RedZoneFG:       r.U32(),
	}
}
