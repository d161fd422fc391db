package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Fullname               string    `json:"fullname"`
	Email                  string    `json:"email" gorm:"uniqueIndex;size:191"`
	Phone                  string    `json:"phone"`
	Password               string    `json:"-"`
	Role                   string    `json:"role" gorm:"default:user"`
	AccountActivated       bool      `json:"accountActivated"`
	AccountActivationToken string    `json:"-"`
	PasswordResetToken     string    `json:"-"`
	Addresses              []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders                 []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type SignupData struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
