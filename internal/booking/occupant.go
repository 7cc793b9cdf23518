package booking

import (
	"database/sql"
	"strings"

	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

type OccupantKind string

const (
	OccupantRegistered OccupantKind = "registered"
	OccupantGuest      OccupantKind = "guest"
)

// Occupant is who holds a booking: a registered player, or a guest known only
// by the contact snapshot. PlayerID is set only for registered occupants.
type Occupant struct {
	Kind     OccupantKind `json:"kind"`
	PlayerID int64        `json:"player_id,omitempty"`
	Name     string       `json:"name"`
}

func Registered(playerID int64, name string) Occupant {
	return Occupant{Kind: OccupantRegistered, PlayerID: playerID, Name: name}
}

func Guest(name string) Occupant {
	return Occupant{Kind: OccupantGuest, Name: name}
}

func (o Occupant) IsRegistered() bool {
	return o.Kind == OccupantRegistered
}

// OccupantOf derives the occupant from a booking row.
func OccupantOf(playerID sql.NullInt64, firstName, lastName string) Occupant {
	name := strings.TrimSpace(firstName + " " + lastName)
	if playerID.Valid {
		return Registered(playerID.Int64, name)
	}
	return Guest(name)
}

// BookingOccupant is OccupantOf for a full booking row.
func BookingOccupant(b dbgen.Booking) Occupant {
	return OccupantOf(b.PlayerID, b.FirstName, b.LastName)
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}
