package week

import (
	"fmt"

	"github.com/albapepper/fofdata/internal/codec"
)

// ExtraPoint is the conversion result carried by every special play. It is
// stored as a 7-word pattern rather than a tag.
type ExtraPoint int

const (
	NoExtraPoint ExtraPoint = iota
	KickGood
	WideLeft
	LeftUpright
	WideRight
	RightUpright
	Blocked
	FailedTwoPointRun
	TwoPointRun
	FailedTwoPointPass
	TwoPointPass
)

// ExtraPointSize is the stored size of an ExtraPoint in bytes.
const ExtraPointSize = 28

const extraPointWords = ExtraPointSize / 4

var extraPoints = map[string]ExtraPoint{
	codec.WordPattern(extraPointWords):                      NoExtraPoint,
	codec.WordPattern(extraPointWords, 1, 1):                KickGood,
	codec.WordPattern(extraPointWords, 1, 0, 1):             WideLeft,
	codec.WordPattern(extraPointWords, 1, 0, 2):             LeftUpright,
	codec.WordPattern(extraPointWords, 1, 0, 3):             WideRight,
	codec.WordPattern(extraPointWords, 1, 0, 4):             RightUpright,
	codec.WordPattern(extraPointWords, 1, 0, 5):             Blocked,
	codec.WordPattern(extraPointWords, 0, 0, 0, 1):          FailedTwoPointRun,
	codec.WordPattern(extraPointWords, 0, 0, 0, 1, 1):       TwoPointRun,
	codec.WordPattern(extraPointWords, 0, 0, 0, 0, 0, 1):    FailedTwoPointPass,
	codec.WordPattern(extraPointWords, 0, 0, 0, 0, 0, 1, 1): TwoPointPass,
}

var extraPointNames = [...]string{
	NoExtraPoint:       "<Not Extra Point>",
	KickGood:           "Good",
	WideLeft:           "Wide Left",
	LeftUpright:        "Hit Left Upright",
	WideRight:          "Wide Right",
	RightUpright:       "Hit Right Upright",
	Blocked:            "Blocked",
	FailedTwoPointRun:  "Failed Two Point Run",
	TwoPointRun:        "Two Point Run",
	FailedTwoPointPass: "Failed Two Point Pass",
	TwoPointPass:       "Two Point Pass",
}

func (e ExtraPoint) String() string {
	if e < 0 || int(e) >= len(extraPointNames) {
		return fmt.Sprintf("ExtraPoint(%d)", int(e))
	}
	return extraPointNames[e]
}

func (e ExtraPoint) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Pattern returns the stored form of e.
func (e ExtraPoint) Pattern() []byte {
	for p, v := range extraPoints {
		if v == e {
			return []byte(p)
		}
	}
	return nil
}

func readExtraPoint(r *codec.Reader) ExtraPoint {
	return codec.ReadPattern(r, "extra_point", ExtraPointSize, extraPoints)
}
