package domain

// CacheStats mirrors the cache service counters verbatim.
type CacheStats struct {
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Writes         int64 `json:"writes"`
	RedisConnected bool  `json:"redisConnected"`
	Fallback       bool  `json:"fallback"`
	MemoryKeys     int   `json:"memoryKeys"`
}

type UsageStats struct {
	Requests  int64 `json:"requests"`
	Donations int64 `json:"donations"`
	Minutes   int   `json:"minutes"`
}

type StatsRequest struct {
	Minutes int `validate:"min=1,max=1440"`
}
