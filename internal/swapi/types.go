package swapi

// ListResponse is one page of GET /starships
type ListResponse struct {
	Message      string        `json:"message"`
	TotalRecords int           `json:"total_records"`
	TotalPages   int           `json:"total_pages"`
	Next         *string       `json:"next"`
	Results      []ListSummary `json:"results"`
}

// ListSummary is the short form of a starship in a list page
type ListSummary struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DetailResponse is the body of GET /starships/{uid}
type DetailResponse struct {
	Message string `json:"message"`
	Result  struct {
		UID         string     `json:"uid"`
		Description string     `json:"description"`
		Properties  Properties `json:"properties"`
	} `json:"result"`
}

// Properties holds a starship exactly as the remote catalog renders it.
// Every value is text, including the numeric ones.
type Properties struct {
	Name                 string `json:"name"`
	Model                string `json:"model"`
	StarshipClass        string `json:"starship_class"`
	Manufacturer         string `json:"manufacturer"`
	CostInCredits        string `json:"cost_in_credits"`
	Length               string `json:"length"`
	Crew                 string `json:"crew"`
	Passengers           string `json:"passengers"`
	MaxAtmospheringSpeed string `json:"max_atmosphering_speed"`
	HyperdriveRating     string `json:"hyperdrive_rating"`
	MGLT                 string `json:"MGLT"`
	CargoCapacity        string `json:"cargo_capacity"`
	Consumables          string `json:"consumables"`
	Created              string `json:"created"`
	Edited               string `json:"edited"`
	URL                  string `json:"url"`
}
