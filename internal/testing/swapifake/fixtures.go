package swapifake

import "github.com/wilsonmoraes/starships-backend/internal/swapi"

// CR90 returns the CR90 corvette record as the remote catalog serves it
func CR90() swapi.Properties {
	return swapi.Properties{
		Name:                 "CR90 corvette",
		Model:                "CR90 corvette",
		StarshipClass:        "corvette",
		Manufacturer:         "Corellian Engineering Corporation",
		CostInCredits:        "3500000",
		Length:               "150",
		Crew:                 "30-165",
		Passengers:           "600",
		MaxAtmospheringSpeed: "950",
		HyperdriveRating:     "2.0",
		MGLT:                 "60",
		CargoCapacity:        "3000000",
		Consumables:          "1 year",
		Created:              "2020-09-17T17:55:06.604Z",
		Edited:               "2020-09-17T17:55:06.604Z",
		URL:                  "https://www.swapi.tech/api/starships/2",
	}
}

// StarDestroyer returns the Star Destroyer record
func StarDestroyer() swapi.Properties {
	return swapi.Properties{
		Name:                 "Star Destroyer",
		Model:                "Imperial I-class Star Destroyer",
		StarshipClass:        "Star Destroyer",
		Manufacturer:         "Kuat Drive Yards",
		CostInCredits:        "150000000",
		Length:               "1,600",
		Crew:                 "47,060",
		Passengers:           "n/a",
		MaxAtmospheringSpeed: "975",
		HyperdriveRating:     "2.0",
		MGLT:                 "60",
		CargoCapacity:        "36000000",
		Consumables:          "2 years",
		Created:              "2020-09-17T17:55:06.604Z",
		Edited:               "2020-09-17T17:55:06.604Z",
		URL:                  "https://www.swapi.tech/api/starships/3",
	}
}

// XWing returns the X-wing record, which names two manufacturers
func XWing() swapi.Properties {
	return swapi.Properties{
		Name:                 "X-wing",
		Model:                "T-65 X-wing",
		StarshipClass:        "Starfighter",
		Manufacturer:         "Incom Corporation, Koensayr Manufacturing",
		CostInCredits:        "149999",
		Length:               "12.5",
		Crew:                 "1",
		Passengers:           "0",
		MaxAtmospheringSpeed: "1050",
		HyperdriveRating:     "1.0",
		MGLT:                 "100",
		CargoCapacity:        "110",
		Consumables:          "1 week",
		Created:              "2020-09-17T17:55:06.604Z",
		Edited:               "2020-09-17T17:55:06.604Z",
		URL:                  "https://www.swapi.tech/api/starships/12",
	}
}

// DeathStar returns the Death Star record with an unknown passenger count
func DeathStar() swapi.Properties {
	return swapi.Properties{
		Name:                 "Death Star",
		Model:                "DS-1 Orbital Battle Station",
		StarshipClass:        "Deep Space Mobile Battlestation",
		Manufacturer:         "Imperial Department of Military Research, Sienar Fleet Systems",
		CostInCredits:        "1000000000000",
		Length:               "120000",
		Crew:                 "342,953",
		Passengers:           "843,342",
		MaxAtmospheringSpeed: "n/a",
		HyperdriveRating:     "4.0",
		MGLT:                 "10",
		CargoCapacity:        "1000000000000",
		Consumables:          "3 years",
		Created:              "2020-09-17T17:55:06.604Z",
		Edited:               "2020-09-17T17:55:06.604Z",
		URL:                  "https://www.swapi.tech/api/starships/9",
	}
}
