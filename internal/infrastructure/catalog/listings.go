package catalog

import (
	"fmt"
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

// gallery builds n placeholder image URLs labelled with the store and item
func gallery(label string, n int) []string {
	images := make([]string, n)
	text := strings.ReplaceAll(label, " ", "+")
	for i := range images {
		images[i] = fmt.Sprintf("https://via.placeholder.com/800?text=%s+Image+%d", text, i+1)
	}
	return images
}

func repeat(url string, n int) []string {
	images := make([]string, n)
	for i := range images {
		images[i] = url
	}
	return images
}

var amazonListings = []domain.Product{
	{
		ID:          "amz-iphone15",
		Name:        "iPhone 15 Pro Max",
		Thumbnail:   "https://store.storeimages.cdn-apple.com/4982/as-images.apple.com/is/iphone-15-pro-finish-select-202309-6-7inch-naturaltitanium?wid=300&hei=300&fmt=jpeg&qlt=95&.v=1692845702708",
		Price:       "$1,199",
		Source:      "Amazon",
		Description: "Latest Apple iPhone with advanced features and A17 Pro chip",
		Specifications: domain.Specifications{
			"Color":   []string{"Natural Titanium", "Blue Titanium", "White Titanium"},
			"Storage": "256GB",
			"Screen":  "6.7-inch",
			"Battery": "4422 mAh",
		},
		Features: []string{"A17 Pro chip", "USB-C Port", "48MP Main Camera", "Titanium Design"},
		Images:   gallery("Amazon iPhone", 8),
	},
	{
		ID:          "amz-samsung-s23",
		Name:        "Samsung Galaxy S23 Ultra",
		Thumbnail:   "https://image-us.samsung.com/us/smartphones/galaxy-s23-ultra/images/gallery/cream/01-DM3-Cream-PDP-1600x1200.jpg",
		Price:       "$1,299",
		Source:      "Amazon",
		Description: "Samsung's flagship phone with S Pen and 200MP camera",
		Specifications: domain.Specifications{
			"Color":   []string{"Phantom Black", "Cream", "Green"},
			"Storage": "512GB",
			"Screen":  "6.8-inch",
			"Battery": "5000 mAh",
		},
		Features: []string{"S Pen included", "200MP Camera", "100x Space Zoom", "Snapdragon 8 Gen 2"},
		Images:   gallery("Amazon Samsung", 6),
	},
}

var ebayListings = []domain.Product{
	{
		ID:          "ebay-iphone15",
		Name:        "iPhone 15 Pro (eBay Listing)",
		Thumbnail:   "https://store.storeimages.cdn-apple.com/4982/as-images.apple.com/is/iphone-15-pro-finish-select-202309-6-1inch-bluetitanium?wid=300&hei=300&fmt=jpeg&qlt=95&.v=1692845699311",
		Price:       "$1,099",
		Source:      "eBay",
		Description: "Brand new iPhone 15 Pro with warranty",
		Specifications: domain.Specifications{
			"Color":     []string{"Black Titanium", "Natural Titanium"},
			"Storage":   []string{"256GB", "512GB"},
			"Condition": "New",
			"Warranty":  "1 Year",
		},
		Features: []string{"Factory Sealed", "International Shipping", "Buyer Protection", "Returns Accepted"},
		Images:   gallery("eBay iPhone", 6),
	},
	{
		ID:          "ebay-pixel-7",
		Name:        "Google Pixel 7 Pro",
		Thumbnail:   "https://lh3.googleusercontent.com/9JwR_vZHrwSDLjKE2GHJMtLR-qFvVwkqLXmR9BmxQMvp_mE5mFJeV1q2KEbwDIQJMXY=w300-rw",
		Price:       "$899",
		Source:      "eBay",
		Description: "Google Pixel 7 Pro with advanced AI features",
		Specifications: domain.Specifications{
			"Color":   []string{"Obsidian", "Snow", "Hazel"},
			"Storage": "128GB",
			"Screen":  "6.7-inch OLED",
			"Camera":  "50MP Main",
		},
		Features: []string{"Google Tensor G2", "Android 13", "Magic Eraser", "Face Unlock"},
		Images:   gallery("eBay Pixel", 6),
	},
}

var walmartListings = []domain.Product{
	{
		ID:          "wm-iphone15",
		Name:        "Apple iPhone 15 Pro - Walmart",
		Thumbnail:   "https://store.storeimages.cdn-apple.com/4982/as-images.apple.com/is/iphone-15-pro-finish-select-202309-6-1inch-blacktitanium?wid=300&hei=300&fmt=jpeg&qlt=95&.v=1692845694698",
		Price:       "$999",
		Source:      "Walmart",
		Description: "iPhone 15 Pro with Walmart Protection Plan",
		Specifications: domain.Specifications{
			"Color":   []string{"Natural Titanium", "Black Titanium"},
			"Storage": "256GB",
			"Model":   "A2849",
			"Carrier": "Unlocked",
		},
		Features: []string{"Walmart Protection Plan", "Free 2-day Shipping", "Store Pickup Available", "Extended Return Window"},
		Images:   gallery("Walmart iPhone", 5),
	},
	{
		ID:          "wm-oneplus-9",
		Name:        "OnePlus 9 Pro",
		Thumbnail:   "https://image01.oneplus.net/ebp/202103/12/1-m00-21-d8-rb8bwmbjxoaapgkxaakxktqxpkq772_300_300.png",
		Price:       "$799",
		Source:      "Walmart",
		Description: "OnePlus flagship with Hasselblad cameras",
		Specifications: domain.Specifications{
			"Color":    []string{"Morning Mist", "Pine Green"},
			"Storage":  "256GB",
			"Screen":   "6.7-inch Fluid AMOLED",
			"Charging": "65W Warp Charge",
		},
		Features: []string{"Snapdragon 888", "Hasselblad Camera", "120Hz Display", "OxygenOS"},
		Images:   gallery("Walmart OnePlus", 6),
	},
}

var storeListings = []domain.Product{
	{
		ID:          "iphone-15-pro",
		Name:        "iPhone 15 Pro",
		Thumbnail:   "https://via.placeholder.com/150",
		Price:       "$999",
		Source:      "Apple Store",
		Description: "The latest iPhone with advanced features...",
		Specifications: domain.Specifications{
			"Color":   []string{"Space Black", "Natural Titanium", "White Titanium"},
			"Storage": []string{"256GB", "512GB", "1TB"},
			"Display": "6.1-inch Super Retina XDR",
			"Chip":    "A17 Pro chip",
		},
		Features: []string{"Advanced camera system", "All-day battery life", "Face ID"},
		Images:   repeat("https://via.placeholder.com/800", domain.GalleryImageCount),
	},
	{
		ID:          "samsung-s23",
		Name:        "Samsung Galaxy S23",
		Thumbnail:   "https://via.placeholder.com/150",
		Price:       "$899",
		Source:      "Samsung Store",
		Description: "Samsung's flagship phone with exceptional camera...",
		Specifications: domain.Specifications{
			"Color":   []string{"Phantom Black", "Cream", "Green", "Lavender"},
			"Storage": []string{"256GB", "512GB"},
			"Display": "6.1-inch Dynamic AMOLED 2X",
			"Chip":    "Snapdragon 8 Gen 2",
		},
		Features: []string{"Pro-grade camera", "5G capability", "Wireless PowerShare"},
		Images:   repeat("https://via.placeholder.com/800", domain.GalleryImageCount),
	},
	{
		ID:          "macbook-pro-16",
		Name:        `MacBook Pro 16"`,
		Thumbnail:   "https://via.placeholder.com/150",
		Price:       "$2499",
		Source:      "Apple Store",
		Description: "Supercharged for pros...",
		Specifications: domain.Specifications{
			"Color":   []string{"Space Gray", "Silver"},
			"Storage": []string{"512GB", "1TB", "2TB"},
			"Memory":  []string{"16GB", "32GB", "64GB"},
			"Chip":    "M2 Pro or M2 Max",
		},
		Features: []string{"Up to 22 hours battery life", "Liquid Retina XDR display", "Advanced thermal systems"},
		Images:   repeat("https://via.placeholder.com/800", domain.GalleryImageCount),
	},
}
