package entity

// Review carries copies of its author and restaurant as they were when the
// review was written. The copies are never refreshed, so a review still
// renders after its author is deleted.
type Review struct {
	ID string
	Timestamps
	Username     string
	RestaurantID string
	Rating       int // 1-5
	FavoriteFood string
	Starred      bool
	Content      *string
	PhotoURL     *string

	Author     User // PasswordHash is never stored
	Restaurant Restaurant
}
