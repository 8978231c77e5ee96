package models

// ReceiptData feeds the donation receipt template.
type ReceiptData struct {
	Item          *DonationItem
	Donor         *HomeOwner // nil if the profile was removed
	Volunteer     *Volunteer // nil when a head accepted the item
	NGO           *NGOOwner
	Date          string
	ValueWords    string
	ReceiptNumber string
}
