package cache

// Logger receives error reports from cache operations. Implementations adapt
// the application's structured logger; a nil Logger silently drops errors.
type Logger interface {
	Error(msg string, err error)
}
