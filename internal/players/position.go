package players

// Position is a player's listed position.
type Position uint32

const (
	QB Position = iota + 1
	RB
	FB
	TE
	FL
	SE
	LT
	LG
	C
	RG
	RT
	P
	K
	LDE
	LDT
	NT
	RDT
	RDE
	SLB
	SILB
	MLB
	WILB
	WLB
	LCB
	RCB
	SS
	FS
	LS
)

var positionNames = [...]string{
	QB: "QB", RB: "RB", FB: "FB", TE: "TE", FL: "FL", SE: "SE",
	LT: "LT", LG: "LG", C: "C", RG: "RG", RT: "RT",
	P: "P", K: "K",
	LDE: "LDE", LDT: "LDT", NT: "NT", RDT: "RDT", RDE: "RDE",
	SLB: "SLB", SILB: "SILB", MLB: "MLB", WILB: "WILB", WLB: "WLB",
	LCB: "LCB", RCB: "RCB", SS: "SS", FS: "FS",
	LS: "LS",
}

func (p Position) Valid() bool { return p >= QB && p <= LS }

func (p Position) String() string {
	if !p.Valid() {
		return "?"
	}
	return positionNames[p]
}

func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PositionGroup is the coarser grouping used for depth charts. It is a
// separate enumeration from Position, not a mapping of it.
type PositionGroup uint32

const (
	GroupQB PositionGroup = iota + 1
	GroupRB
	GroupFB
	GroupTE
	GroupWR
	GroupC
	GroupOG
	GroupOT
	GroupP
	GroupK
	GroupDE
	GroupDT
	GroupILB
	GroupOLB
	GroupCB
	GroupS
	GroupLS
)

var groupNames = [...]string{
	GroupQB: "QB", GroupRB: "RB", GroupFB: "FB", GroupTE: "TE", GroupWR: "WR",
	GroupC: "C", GroupOG: "OG", GroupOT: "OT",
	GroupP: "P", GroupK: "K",
	GroupDE: "DE", GroupDT: "DT", GroupILB: "ILB", GroupOLB: "OLB",
	GroupCB: "CB", GroupS: "S",
	GroupLS: "LS",
}

func (g PositionGroup) Valid() bool { return g >= GroupQB && g <= GroupLS }

func (g PositionGroup) String() string {
	if !g.Valid() {
		return "?"
	}
	return groupNames[g]
}

func (g PositionGroup) MarshalText() ([]byte, error) { return []byte(g.String()), nil }
