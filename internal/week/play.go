package week

import (
	"fmt"
	"slices"
)

// PlayKind is the outcome discriminator of a play section.
type PlayKind uint32

const (
	FieldGoal PlayKind = iota + 1
	Kickoff
	OnsideKick
	Punt
	Run
	Pass
	SpecialPlay
)

var playKindNames = [...]string{
	FieldGoal:   "Field Goal",
	Kickoff:     "Kickoff",
	OnsideKick:  "Onside Kick",
	Punt:        "Punt",
	Run:         "Run",
	Pass:        "Pass",
	SpecialPlay: "Special",
}

func (k PlayKind) Valid() bool { return k >= FieldGoal && k <= SpecialPlay }

func (k PlayKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("PlayKind(%d)", uint32(k))
	}
	return playKindNames[k]
}

// Outcome is the variant payload of a play: *Kicking, *Scrimmage or *Special.
type Outcome interface {
	Kind() PlayKind
	String() string
}

// PayloadWords is the payload size shared by every non-special outcome.
const PayloadWords = 421

// Kicking is a field goal, kickoff, onside kick or punt. Its payload is not
// decoded further.
type Kicking struct {
	Type PlayKind             `json:"-"`
	Data [PayloadWords]uint32 `json:"-"`
}

func (k *Kicking) Kind() PlayKind { return k.Type }
func (k *Kicking) String() string { return k.Type.String() }

func (k *Kicking) MarshalJSON() ([]byte, error) {
	type plain Kicking
	return withKind(k.Type, (*plain)(k))
}

// DefenderSlots is the number of defensive assignments on a scrimmage play.
const DefenderSlots = 10

// DetailWords is the opaque tail of a scrimmage payload.
const DetailWords = PayloadWords - 7 - DefenderSlots

// Scrimmage is a run or pass with its offensive and defensive calls.
// Blitzers and Spies are derived from Assignments and checked against the
// stored blitz count and special coverage.
type Scrimmage struct {
	Type             PlayKind                  `json:"-"`
	Formation        uint32                    `json:"formation"`
	OffensePersonnel uint32                    `json:"offense_personnel"`
	Front            uint32                    `json:"front"`
	DefensePersonnel uint32                    `json:"defense_personnel"`
	Coverage         Coverage                  `json:"coverage"`
	SpecialCoverage  SpecialCoverage           `json:"special_coverage"`
	BlitzCount       uint32                    `json:"blitz_count"`
	Assignments      [DefenderSlots]Assignment `json:"assignments"`
	Blitzers         []int                     `json:"blitzers"`
	Spies            []int                     `json:"spies"`
	Detail           [DetailWords]uint32       `json:"-"`
}

func (s *Scrimmage) Kind() PlayKind { return s.Type }

func (s *Scrimmage) String() string {
	out := fmt.Sprintf("%s vs %s", s.Type, s.Coverage)
	if s.SpecialCoverage != NoSpecialCoverage {
		out += " " + s.SpecialCoverage.String()
	}
	if len(s.Blitzers) > 0 {
		out += fmt.Sprintf(", %d blitzing", len(s.Blitzers))
	}
	return out
}

func (s *Scrimmage) MarshalJSON() ([]byte, error) {
	type plain Scrimmage
	return withKind(s.Type, (*plain)(s))
}

// derive fills Blitzers and Spies from Assignments.
func (s *Scrimmage) derive() {
	s.Blitzers = []int{}
	s.Spies = []int{}
	for i, a := range s.Assignments {
		switch a {
		case Blitz:
			s.Blitzers = append(s.Blitzers, i)
		case Spy:
			s.Spies = append(s.Spies, i)
		}
	}
}

// check validates the derived lists against the stored fields.
func (s *Scrimmage) check() error {
	if int(s.BlitzCount) != len(s.Blitzers) {
		return fmt.Errorf("blitz count %d but %d defenders blitz %v", s.BlitzCount, len(s.Blitzers), s.Blitzers)
	}
	if s.SpecialCoverage.HasSpy() != (len(s.Spies) == 1) {
		return fmt.Errorf("special coverage %s but %d spies %v", s.SpecialCoverage, len(s.Spies), s.Spies)
	}
	return nil
}

// IsBlitzing reports whether defender slot i rushes.
func (s *Scrimmage) IsBlitzing(i int) bool { return slices.Contains(s.Blitzers, i) }

// Coverage is the base defensive coverage.
type Coverage uint32

const (
	Man Coverage = iota
	Cover1
	Cover2
	Cover3
	Cover4
	Cover6
	Prevent
)

var coverageNames = [...]string{
	Man: "Man", Cover1: "Cover 1", Cover2: "Cover 2", Cover3: "Cover 3",
	Cover4: "Cover 4", Cover6: "Cover 6", Prevent: "Prevent",
}

func (c Coverage) Valid() bool { return c <= Prevent }

func (c Coverage) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Coverage(%d)", uint32(c))
	}
	return coverageNames[c]
}

// SpecialCoverage is the coverage modifier. The raw code is kept even where
// several codes mean the same thing for display.
type SpecialCoverage uint32

const (
	NoSpecialCoverage SpecialCoverage = iota
	SpyCoverage
	DoubleTop1
	DoubleTop1Spy
	DoubleTop2
	DoubleTop2Spy
	DoubleTopTE
	DoubleTopTESpy
)

var specialCoverageNames = [...]string{
	NoSpecialCoverage: "None",
	SpyCoverage:       "Spy",
	DoubleTop1:        "Double #1",
	DoubleTop1Spy:     "Double #1, Spy",
	DoubleTop2:        "Double #2",
	DoubleTop2Spy:     "Double #2, Spy",
	DoubleTopTE:       "Double TE",
	DoubleTopTESpy:    "Double TE, Spy",
}

func (c SpecialCoverage) Valid() bool { return c <= DoubleTopTESpy }

// HasSpy reports whether the coverage calls for exactly one spy.
func (c SpecialCoverage) HasSpy() bool {
	switch c {
	case SpyCoverage, DoubleTop1Spy, DoubleTop2Spy, DoubleTopTESpy:
		return true
	}
	return false
}

func (c SpecialCoverage) String() string {
	if !c.Valid() {
		return fmt.Sprintf("SpecialCoverage(%d)", uint32(c))
	}
	return specialCoverageNames[c]
}

// Assignment is one defender's job on a scrimmage play.
type Assignment uint32

const (
	Zone Assignment = iota
	ManCover
	Blitz
	Spy
	Contain
)

var assignmentNames = [...]string{
	Zone: "Zone", ManCover: "Man", Blitz: "Blitz", Spy: "Spy", Contain: "Contain",
}

func (a Assignment) Valid() bool { return a <= Contain }

func (a Assignment) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Assignment(%d)", uint32(a))
	}
	return assignmentNames[a]
}

func (a Assignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Special is a non-scrimmage event: extra point, timeout, coin toss, period
// start and the like.
type Special struct {
	Data1      [294]uint32 `json:"-"`
	ExtraPoint ExtraPoint  `json:"extra_point"`
	Something  [3]uint32   `json:"something"`
	Event      SpecialKind `json:"event"`
	Data2      [116]uint32 `json:"-"`
}

func (*Special) Kind() PlayKind { return SpecialPlay }

func (s *Special) String() string {
	if s.Event == ExtraPointAttempt {
		return fmt.Sprintf("%s: %s", s.Event, s.ExtraPoint)
	}
	return s.Event.String()
}

func (s *Special) MarshalJSON() ([]byte, error) {
	type plain Special
	return withKind(SpecialPlay, (*plain)(s))
}

// SpecialKind tags the event of a Special play.
type SpecialKind uint32

const (
	ExtraPointAttempt SpecialKind = iota
	HomeTimeout
	AwayTimeout
	TwoMinuteWarning
	HomeCoinToss
	AwayCoinToss
	UnknownSix
	UnknownSeven
	StartQ1
	StartQ2
	StartQ3
	StartQ4
	StartOT1
	StartOT2
	StartOT3
	StartOT4
)

var specialKindNames = [...]string{
	ExtraPointAttempt: "Extra Point",
	HomeTimeout:       "Home Timeout",
	AwayTimeout:       "Away Timeout",
	TwoMinuteWarning:  "Two Minute Warning",
	HomeCoinToss:      "Coin Toss: Home",
	AwayCoinToss:      "Coin Toss: Away",
	UnknownSix:        "?Six",
	UnknownSeven:      "?Seven",
	StartQ1:           "Start Q1",
	StartQ2:           "Start Q2",
	StartQ3:           "Start Q3",
	StartQ4:           "Start Q4",
	StartOT1:          "Start OT1",
	StartOT2:          "Start OT2",
	StartOT3:          "Start OT3",
	StartOT4:          "Start OT4",
}

func (k SpecialKind) Valid() bool { return k <= StartOT4 }

func (k SpecialKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("SpecialKind(%d)", uint32(k))
	}
	return specialKindNames[k]
}

func (k SpecialKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
