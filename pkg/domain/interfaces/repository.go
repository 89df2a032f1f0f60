package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Session() SessionRepository

	// Close releases any resources held by the backend
	Close() error
}
