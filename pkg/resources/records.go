package resources

type GetEntitiesResponse struct {
	Entities []string `json:"entities"`
}

type GetFiltersResponse struct {
	Entity  string  `json:"entity"`
	Filters Filters `json:"filters"`
}

type GetRecordsResponse struct {
	List     []map[string]any `json:"list"`
	PageSize int              `json:"page_size"`
	Offset   int              `json:"offset"`
}

type GetStatsResponse struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
}

type HealthResponse struct {
	Health    bool              `json:"health"`
	Version   string            `json:"version"`
	Build     string            `json:"build"`
	BuildTime string            `json:"build_time"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}
