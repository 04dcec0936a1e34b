package players

import (
	"fmt"
	"io"

	"github.com/albapepper/fofdata/internal/codec"
)

// Decode reads a players file laid out per schema.
func Decode(src io.Reader, schema Schema, opts ...codec.Option) (*Roster, error) {
	r := codec.NewReader(src, opts...)
	var roster *Roster
	switch schema {
	case Legacy:
		roster = readLegacy(r)
	case Counted:
		roster = readCounted(r)
	case Sequential:
		roster = readSequential(r)
	default:
		return nil, fmt.Errorf("decode players: unknown schema %q", schema)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode players (%s): %w", schema, err)
	}
	return roster, nil
}

func readHeader(r *codec.Reader, schema Schema) *Roster {
	r.Expect("magic", Magic)
	return &Roster{
		Schema:      schema,
		DataVersion: r.U32(),
	}
}

func readLegacy(r *codec.Reader) *Roster {
	roster := readHeader(r, Legacy)
	roster.StoredCount = r.U32()
	roster.Players = codec.ReadUntil(r, "players", codec.Exclusive, readPlayer,
		func(p Player) bool { return p.ID == 0 })
	if r.Err() != nil {
		return nil
	}
	if roster.Players == nil {
		roster.Players = []Player{}
	}
	// Whatever follows the terminator belongs to later revisions.
	skipTrailing(r, roster, "roster terminator")
	if r.Err() != nil {
		return nil
	}
	return roster
}

func readCounted(r *codec.Reader) *Roster {
	roster := readHeader(r, Counted)
	roster.StoredCount = r.U32()
	if r.Err() != nil {
		return nil
	}
	roster.Players = codec.ReadN(r, "players", int(roster.StoredCount), func(r *codec.Reader) Player {
		p := readPlayer(r)
		if r.Err() == nil && p.ID == 0 {
			r.Fail(r.Invariant("players", "zero player tag inside a counted roster of %d", roster.StoredCount))
		}
		return p
	})
	for i := range roster.Next {
		roster.Next[i] = codec.ReadList(r, fmt.Sprintf("next%d", i+1), readNextEntry)
	}
	roster.More = codec.ReadList(r, "more", readMoreEntry)
	roster.Staff = codec.ReadList(r, "staff", readStaff)
	if r.Err() != nil {
		return nil
	}
	if !r.AtEOF() {
		r.Fail(r.RevisionMismatch("staff", "unexpected bytes after staff group"))
		return nil
	}
	return roster
}

// readSequential reads players while ids climb through
// [FirstPlayerID, FirstPlayerID+MaxPlayerID). The record carrying the last id
// ends the roster; so does an id out of range or out of order, which is
// consumed without reading a body.
func readSequential(r *codec.Reader) *Roster {
	roster := readHeader(r, Sequential)
	roster.MaxPlayerID = r.U32()
	if r.Err() != nil {
		return nil
	}
	end := uint64(FirstPlayerID) + uint64(roster.MaxPlayerID)
	var prev uint32
	stopped := false
	entries := codec.ReadUntil(r, "players", codec.Inclusive, func(r *codec.Reader) Player {
		id := r.U32()
		if r.Err() != nil {
			return Player{}
		}
		if id < FirstPlayerID || uint64(id) >= end || id <= prev {
			stopped = true
			return Player{ID: id}
		}
		prev = id
		return readPlayerBody(r, id)
	}, func(p Player) bool {
		return stopped || uint64(p.ID)+1 == end
	})
	if r.Err() != nil {
		return nil
	}
	if stopped {
		roster.StopID = entries[len(entries)-1].ID
		entries = entries[:len(entries)-1]
		r.Logger().Debug("players: id out of sequence", "id", roster.StopID, "previous", prev)
	}
	if entries == nil {
		entries = []Player{}
	}
	roster.Players = entries
	skipTrailing(r, roster, "last player")
	if r.Err() != nil {
		return nil
	}
	return roster
}

func skipTrailing(r *codec.Reader, roster *Roster, after string) {
	if r.AtEOF() {
		return
	}
	start := r.Offset()
	roster.Trailing = int64(len(r.Rest()))
	r.Logger().Debug("players: ignoring bytes after "+after,
		"offset", start, "bytes", roster.Trailing)
}

// readPlayer reads one entry. A zero leading tag ends the record there: the
// returned Player carries only the tag.
func readPlayer(r *codec.Reader) Player {
	id := r.U32()
	if id == 0 || r.Err() != nil {
		return Player{ID: id}
	}
	return readPlayerBody(r, id)
}

// readPlayerBody reads everything after the player id.
func readPlayerBody(r *codec.Reader, id uint32) Player {
	p := Player{ID: id}
	p.FirstName = r.Text()
	p.MiddleName = r.Text()
	p.LastName = r.Text()
	p.Position = codec.ReadEnum[Position](r, "position")
	p.Group = codec.ReadEnum[PositionGroup](r, "position_group")
	p.Some1 = r.U32()
	p.Experience = r.U32()

	copy(p.Data1[:], r.Words(len(p.Data1)))
	p.Year1 = r.U32()
	p.Year2 = r.U32()

	p.Seasons = codec.ReadList(r, "seasons", readSeasonLine)
	p.Passing = codec.ReadList(r, "passing", readSplitLine)
	p.Rushing = codec.ReadList(r, "rushing", readSplitLine)
	p.Receiving = codec.ReadList(r, "receiving", readSplitLine)
	p.Defense = codec.ReadList(r, "defense", readSplitLine)
	p.Past = codec.ReadList(r, "past", readCareerPoint)
	p.Current = codec.ReadList(r, "current", readCareerPoint)

	copy(p.What[:], r.Words(len(p.What)))
	for i := range p.Overall {
		copy(p.Overall[i][:], r.Words(len(p.Overall[i])))
	}
	copy(p.Data3[:], r.Words(len(p.Data3)))
	copy(p.Data4[:], r.Words(len(p.Data4)))
	return p
}

func readSeasonLine(r *codec.Reader) SeasonLine {
	return SeasonLine{Year: r.U32(), A: r.U32(), B: r.U32(), C: r.U32()}
}

func readSplitLine(r *codec.Reader) SplitLine {
	return SplitLine{A: r.U32(), B: r.U32(), C: r.U32()}
}

func readCareerPoint(r *codec.Reader) CareerPoint {
	return CareerPoint{Year: r.U32(), Value: r.U32()}
}

func readNextEntry(r *codec.Reader) NextEntry {
	return NextEntry{PlayerID: r.U32(), Team: r.U32(), Value: r.U32()}
}

func readMoreEntry(r *codec.Reader) MoreEntry {
	return MoreEntry{PlayerID: r.U32(), Value: r.U32()}
}

func readStaff(r *codec.Reader) Staff {
	s := Staff{
		ID:         r.U32(),
		FirstName:  r.Text(),
		LastName:   r.Text(),
		Role:       r.U32(),
		Team:       r.U32(),
		Experience: r.U32(),
	}
	copy(s.Ratings[:], r.Words(len(s.Ratings)))
	return s
}
