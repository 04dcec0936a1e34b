package week

import (
	"fmt"

	"github.com/albapepper/fofdata/internal/codec"
)

// Section framing literals.
const (
	StartMagic codec.Magic = "BEGIN_GAME"
	PlayMagic  codec.Magic = "GAME_PLAY"
	EndMagic   codec.Magic = "END_GAME"
)

// SectionKind identifies the three section shapes.
type SectionKind int

const (
	KindStart SectionKind = iota
	KindPlay
	KindEnd
)

func (k SectionKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindPlay:
		return "play"
	case KindEnd:
		return "end"
	}
	return fmt.Sprintf("section(%d)", int(k))
}

// Section is one of *Start, *Play or *End.
type Section interface {
	Kind() SectionKind
	String() string
}

// TeamDataWords is the size of the opaque block in WeekTeam.
const TeamDataWords = 372

// Start opens a game.
type Start struct {
	Version  uint32     `json:"version"`
	Year     uint32     `json:"year"`
	Week     uint32     `json:"week"`
	Some4    uint32     `json:"some4"`
	Some5    uint32     `json:"some5"`
	Some6    uint32     `json:"some6"`
	Location codec.Text `json:"location"`
	When     codec.Text `json:"when"`
	Data     [20]uint32 `json:"-"`
	Home     WeekTeam   `json:"home"`
	Away     WeekTeam   `json:"away"`
	End1     uint32     `json:"end1"`
	End2     uint32     `json:"end2"`
}

func (*Start) Kind() SectionKind { return KindStart }

func (s *Start) String() string {
	return fmt.Sprintf("%s, %s vs %s, %s", s.When, s.Home.City, s.Away.City, s.Location)
}

func (s *Start) MarshalJSON() ([]byte, error) {
	type plain Start
	return withKind(KindStart, (*plain)(s))
}

// WeekTeam is a team as recorded in a game header.
type WeekTeam struct {
	Number uint32                `json:"number"`
	City   codec.Text            `json:"city"`
	Name   codec.Text            `json:"name"`
	Short  codec.Text            `json:"short"`
	Other  [TeamDataWords]uint32 `json:"-"`
}

// Play is a single snap with its game-state context.
type Play struct {
	Quarter      uint32  `json:"quarter"`
	Minutes      uint32  `json:"minutes"`
	Seconds      uint32  `json:"seconds"`
	OffTeam      Side    `json:"off_team"`
	Down         uint32  `json:"down"`
	YardsToGo    uint32  `json:"yards_to_go"`
	Yardline     uint32  `json:"yardline"`
	HomeTimeouts uint32  `json:"home_timeouts"`
	AwayTimeouts uint32  `json:"away_timeouts"`
	Outcome      Outcome `json:"outcome"`
}

func (*Play) Kind() SectionKind { return KindPlay }

func (p *Play) String() string {
	return fmt.Sprintf("%d-%d-%s (%dQ: %d:%02d), %s",
		p.Down, p.YardsToGo, FieldPosition(p.Yardline), p.Quarter, p.Minutes, p.Seconds, p.Outcome)
}

func (p *Play) MarshalJSON() ([]byte, error) {
	type plain Play
	return withKind(KindPlay, (*plain)(p))
}

// End closes a game with its summary statistics.
type End struct {
	PlayerOfGame   uint32     `json:"player_of_game"`
	HomeDrives     []Drive    `json:"home_drives"`
	AwayDrives     []Drive    `json:"away_drives"`
	HomePassing    PassStats  `json:"home_passing"`
	AwayPassing    PassStats  `json:"away_passing"`
	HomeRushing    RunStats   `json:"home_rushing"`
	AwayRushing    RunStats   `json:"away_rushing"`
	HomePossession Possession `json:"home_possession"`
	AwayPossession Possession `json:"away_possession"`
}

func (*End) Kind() SectionKind { return KindEnd }

func (e *End) String() string {
	return fmt.Sprintf("end, %d/%d drives, player of the game %d", len(e.HomeDrives), len(e.AwayDrives), e.PlayerOfGame)
}

func (e *End) MarshalJSON() ([]byte, error) {
	type plain End
	return withKind(KindEnd, (*plain)(e))
}

// Drive summarises one possession.
type Drive struct {
	StartQuarter  uint32 `json:"start_quarter"`
	StartMinutes  uint32 `json:"start_minutes"`
	StartSeconds  uint32 `json:"start_seconds"`
	EndQuarter    uint32 `json:"end_quarter"`
	EndMinutes    uint32 `json:"end_minutes"`
	EndSeconds    uint32 `json:"end_seconds"`
	StartFromGoal uint32 `json:"start_yards_from_goal"`
	Plays         uint32 `json:"plays"`
	YardsGained   int32  `json:"yards_gained"`
	Result        uint32 `json:"result"`
}

// PassLine is attempts, completions and yards for one pass depth.
type PassLine struct {
	Attempts    uint32 `json:"attempts"`
	Completions uint32 `json:"completions"`
	Yards       int32  `json:"yards"`
}

type PassStats struct {
	Screen PassLine `json:"screen"`
	Short  PassLine `json:"short"`
	Medium PassLine `json:"medium"`
	Long   PassLine `json:"long"`
	Other  PassLine `json:"other"`
}

// RunLine is attempts and yards for one run direction.
type RunLine struct {
	Attempts uint32 `json:"attempts"`
	Yards    int32  `json:"yards"`
}

type RunStats struct {
	Left   RunLine `json:"left"`
	Middle RunLine `json:"middle"`
	Right  RunLine `json:"right"`
	None   RunLine `json:"none"`
}

type Possession struct {
	Seconds         uint32 `json:"seconds"`
	RedZoneAttempts uint32 `json:"red_zone_attempts"`
	RedZoneTD       uint32 `json:"red_zone_td"`
	RedZoneFG       uint32 `json:"red_zone_fg"`
}
