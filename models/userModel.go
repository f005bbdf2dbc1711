package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;size:100;not null" binding:"required,email"`
	Password string `json:"password,omitempty" binding:"required,min=8"`
	Role     string `json:"role"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
