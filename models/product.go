package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Slug             string    `gorm:"not null;uniqueIndex;size:255" json:"slug"`
	Title            string    `gorm:"not null" json:"title"`
	Image            string    `gorm:"not null" json:"image"`
	CategoryID       string    `gorm:"not null;index;size:36" json:"categoryId"` // Foreign key to Category
	ProductNumber    string    `gorm:"not null" json:"productNumber"`
	CasNumber        string    `gorm:"not null;index" json:"casNumber"`
	MolecularWeight  string    `gorm:"not null" json:"molecularWeight"`
	MolecularFormula string    `gorm:"not null" json:"molecularFormula"`
	ProductStatus    string    `gorm:"not null" json:"productStatus"`
	Application      string    `gorm:"type:text;not null" json:"application"`
	Specifications   string    `gorm:"type:text;not null" json:"specifications"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Category         *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"` // Removed with its category
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
