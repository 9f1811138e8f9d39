package domain

import "time"

type User struct {
	ID        uint
	Name      string
	Email     string
	Phone     *string
	Addresses []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
