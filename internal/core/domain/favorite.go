package domain

// Favorite marks a destination as saved by one user.
type Favorite struct {
	ID            int64
	UserID        int64
	DestinationID int64
	Destination   *Destination
}

// OwnerID implements Owned.
func (f *Favorite) OwnerID() int64 { return f.UserID }
