package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	BookStore      BookStore
	HighlightStore HighlightStore
	TagStore       TagStore
	TrashStore     TrashStore

	// Health checks
	Database Pinger
	Version  string
}
