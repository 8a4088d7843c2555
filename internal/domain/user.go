package domain

import "time"

type User struct {
	Id          UserId
	Email       Email
	DisplayName string
	PassHash    []byte
	Admin       bool
	CreatedAt   time.Time
}

type Credentials struct {
	Email    Email
	Password string
}
