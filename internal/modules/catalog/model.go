package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetEntry is one uploaded image option: its public URL, the display
// name shown to shoppers, and the remote id needed to delete it later.
type AssetEntry struct {
	URL      string `json:"url" bson:"url"`
	Name     string `json:"name" bson:"name"`
	PublicID string `json:"publicId" bson:"publicId"`
}

// Product is one jean variant in the catalog. The three asset lists are
// ordered and always hold at least one entry once persisted.
type Product struct {
	ID                 primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ColorName          string             `json:"colorName" bson:"colorName"`
	ColorImage         string             `json:"colorImage" bson:"colorImage"`
	ColorImagePublicID string             `json:"colorImagePublicId" bson:"colorImagePublicId"`
	ColorImageName     string             `json:"colorImageName" bson:"colorImageName"`
	Disc               string             `json:"disc" bson:"disc"`
	Price              float64            `json:"price" bson:"price"`
	Category           string             `json:"category" bson:"category"`
	Fabrics            []AssetEntry       `json:"fabrics" bson:"fabrics"`
	FrontPockets       []AssetEntry       `json:"frontPockets" bson:"frontPockets"`
	BackPockets        []AssetEntry       `json:"backPockets" bson:"backPockets"`
	CreatedAt          time.Time          `json:"createdAt,omitempty" bson:"createdAt"`
}

// Categories the storefront understands.
const (
	CategoryMale   = "Male"
	CategoryFemale = "Female"
)

// PublicIDs collects every remote asset id attached to the product,
// skipping blanks, color image first then the lists in order.
func (p *Product) PublicIDs() []string {
	ids := make([]string, 0, 1+len(p.Fabrics)+len(p.FrontPockets)+len(p.BackPockets))
	if p.ColorImagePublicID != "" {
		ids = append(ids, p.ColorImagePublicID)
	}
	for _, list := range [][]AssetEntry{p.Fabrics, p.FrontPockets, p.BackPockets} {
		for _, e := range list {
			if e.PublicID != "" {
				ids = append(ids, e.PublicID)
			}
		}
	}
	return ids
}
