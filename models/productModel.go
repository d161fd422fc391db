package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `json:"name" binding:"required"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn" gorm:"index"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL    string          `json:"imageUrl"`
	Gallery     datatypes.JSON  `json:"gallery"`
	Stock       int             `json:"stock"`
	CategoryID  *uint           `json:"categoryId" gorm:"index"`
}
