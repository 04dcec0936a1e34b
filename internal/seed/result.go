// Package seed writes decoded save files to Postgres.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	LeaguesUpserted int
	TeamsUpserted   int
	PlayersUpserted int
	StaffUpserted   int
	GamesUpserted   int
	PlaysInserted   int
	Errors          []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.LeaguesUpserted += other.LeaguesUpserted
	r.TeamsUpserted += other.TeamsUpserted
	r.PlayersUpserted += other.PlayersUpserted
	r.StaffUpserted += other.StaffUpserted
	r.GamesUpserted += other.GamesUpserted
	r.PlaysInserted += other.PlaysInserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"leagues=%d teams=%d players=%d staff=%d games=%d plays=%d errors=%d",
		r.LeaguesUpserted, r.TeamsUpserted, r.PlayersUpserted,
		r.StaffUpserted, r.GamesUpserted, r.PlaysInserted,
		len(r.Errors),
	)
}
