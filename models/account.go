package models

// Account is everything written by a signup: the User plus exactly one
// role profile. For volunteers NGO is the head the volunteer joins; it is
// updated in the same transaction.
type Account struct {
	User      *User
	HomeOwner *HomeOwner
	NGOOwner  *NGOOwner
	Volunteer *Volunteer
	NGO       *NGOOwner
}
