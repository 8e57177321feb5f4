package domain

import "time"

// Categories a product may belong to. Matches the values the storefront
// filters on.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
	"Beauty",
	"Toys",
	"Other",
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Category    string    `bson:"category" json:"category"`
	Brand       string    `bson:"brand" json:"brand"`
	Images      []string  `bson:"images" json:"images"`
	Stock       int       `bson:"stock" json:"stock"`
	Rating      float64   `bson:"rating" json:"rating"`
	NumReviews  int       `bson:"num_reviews" json:"numReviews"`
	Reviews     []Review  `bson:"reviews" json:"reviews"`
	Featured    bool      `bson:"featured" json:"featured"`
	OnSale      bool      `bson:"on_sale" json:"onSale"`
	SalePrice   float64   `bson:"sale_price,omitempty" json:"salePrice,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// EffectivePrice is the sale price when the product is on sale and one is
// set, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	UserName  string    `bson:"user_name" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
