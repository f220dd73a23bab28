package domain

import "time"

// Starship is the local mirror of one remote starship record.
// ID is the remote uid and never changes once stored.
type Starship struct {
	ID                   string    `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	Model                string    `json:"model" db:"model"`
	Class                string    `json:"class" db:"class"`
	CostInCredits        *int64    `json:"cost_in_credits,omitempty" db:"cost_in_credits"`
	Length               *float64  `json:"length,omitempty" db:"length"`
	Crew                 *int64    `json:"crew,omitempty" db:"crew"`
	Passengers           *int64    `json:"passengers,omitempty" db:"passengers"`
	MaxAtmospheringSpeed *string   `json:"max_atmosphering_speed,omitempty" db:"max_atmosphering_speed"`
	HyperdriveRating     *float64  `json:"hyperdrive_rating,omitempty" db:"hyperdrive_rating"`
	MGLT                 *int64    `json:"mglt,omitempty" db:"mglt"`
	CargoCapacity        *int64    `json:"cargo_capacity,omitempty" db:"cargo_capacity"`
	Consumables          *string   `json:"consumables,omitempty" db:"consumables"`
	Manufacturer         string    `json:"manufacturer" db:"manufacturer"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	EditedAt             time.Time `json:"edited_at" db:"edited_at"`
	URL                  string    `json:"url" db:"url"`
}

// Manufacturer is created lazily the first time a starship names it
type Manufacturer struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// StarshipManufacturer is one row of the starship/manufacturer junction
type StarshipManufacturer struct {
	EntityID       string `json:"entity_id" db:"entity_id"`
	ManufacturerID int64  `json:"manufacturer_id" db:"manufacturer_id"`
}
