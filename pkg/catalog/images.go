// Package catalog maps sweet categories to stock placeholder images.
package catalog

const defaultCategory = "Chocolate"

var categoryImages = map[string]string{
	"Chocolate": "https://images.unsplash.com/photo-1549007994-cb92caebd54b?w=400&h=300&fit=crop",
	"Candy":     "https://images.unsplash.com/photo-1582058091505-f87a2e55a40f?w=400&h=300&fit=crop",
	"Gummy":     "https://images.unsplash.com/photo-1582058091505-be1b0236b5c5?w=400&h=300&fit=crop",
	"Lollipop":  "https://images.unsplash.com/photo-1571506165871-ee72a35bc9d4?w=400&h=300&fit=crop",
	"Cake":      "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400&h=300&fit=crop",
	"Cookies":   "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400&h=300&fit=crop",
	"Ice Cream": "https://images.unsplash.com/photo-1497034825429-c343d7c6a68f?w=400&h=300&fit=crop",
	"Donut":     "https://images.unsplash.com/photo-1551024601-bec78aea704b?w=400&h=300&fit=crop",
	"Pastry":    "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop",
	"Muffin":    "https://images.unsplash.com/photo-1607958996333-41aef7caefaa?w=400&h=300&fit=crop",
}

// Display order for category listings.
var categories = []string{
	"Chocolate", "Candy", "Gummy", "Lollipop", "Cake",
	"Cookies", "Ice Cream", "Donut", "Pastry", "Muffin",
}

// ImageURL returns the placeholder image for a category, falling back
// to the default category for anything unknown.
func ImageURL(category string) string {
	if url, ok := categoryImages[category]; ok {
		return url
	}
	return categoryImages[defaultCategory]
}

type Category struct {
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

// Categories lists every known category with its placeholder image.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, Category{Category: c, ImageURL: ImageURL(c)})
	}
	return out
}
