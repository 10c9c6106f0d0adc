package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Cache
	CacheStore   CacheStore
	CacheMetrics CacheMetrics

	// Collaborators
	RowFetcher    RowFetcher
	Searcher      Searcher
	TextGenerator TextGenerator
	Authenticator Authenticator

	// Warming
	TargetProvider   TargetProvider
	ActivityRecorder ActivityRecorder
	WarmMetrics      WarmMetrics
	SchedulerMetrics SchedulerMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
}
