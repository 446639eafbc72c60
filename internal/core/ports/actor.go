package ports

// Actor is the already-authenticated principal attached to every command.
// The transport layer fills it from verified JWT claims; services trust it.
type Actor struct {
	ID   string
	Role string
}
