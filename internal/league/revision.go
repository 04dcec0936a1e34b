package league

import (
	"fmt"
	"sort"
)

// Revision fixes the sizes of the opaque regions of one on-disk format
// revision. The sizes were found empirically and cannot be derived from the
// file, so the revision is always chosen by configuration.
type Revision struct {
	Name string

	LeaguePadding int // words after the ignored block
	LeagueTrailer int // words before teams_len
	TeamPadding   int // words after each playbook
	TeamTrailer   int // words before each team's last data block

	// Tail is the number of words after the team list. Negative means the
	// tail runs to the end of the stream.
	Tail int
}

// FOF9 is the current revision.
var FOF9 = Revision{
	Name:          "fof9",
	LeaguePadding: 112474,
	LeagueTrailer: 522,
	TeamPadding:   113462,
	TeamTrailer:   1047,
	Tail:          -1,
}

// FOF9Early is the revision seen in older saves, with a longer padding run
// and a fixed tail.
var FOF9Early = Revision{
	Name:          "fof9-early",
	LeaguePadding: 112996,
	LeagueTrailer: 0,
	TeamPadding:   113462,
	TeamTrailer:   1047,
	Tail:          27216,
}

var revisions = map[string]Revision{
	FOF9.Name:      FOF9,
	FOF9Early.Name: FOF9Early,
}

// RevisionByName looks up a known revision.
func RevisionByName(name string) (Revision, error) {
	rev, ok := revisions[name]
	if !ok {
		return Revision{}, fmt.Errorf("unknown format revision %q (known: %v)", name, RevisionNames())
	}
	return rev, nil
}

// RevisionNames lists the known revisions.
func RevisionNames() []string {
	names := make([]string, 0, len(revisions))
	for name := range revisions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
