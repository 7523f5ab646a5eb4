package entity

// User is the operator account owning giveaways and ticket rules.
type User struct {
	Base

	Name string `gorm:"unique"`
}
