package config

// Provider names accepted by PROVIDER.
const (
	ProviderStatsAPI = "statsapi"
	ProviderFixture  = "fixture"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)
