package repos

import "beautystock/internal/domain"

// DefaultProducts is the catalog written on first run.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{Code: "SK001", Name: "Viva milk cleanser 100ml", Category: domain.CategorySkincare, Stock: 50, Price: 8000},
		{Code: "SK002", Name: "Viva face tonic 100ml", Category: domain.CategorySkincare, Stock: 50, Price: 8000},
		{Code: "SK003", Name: "Cetaphil Gentle Skin Cleanser 58ml", Category: domain.CategorySkincare, Stock: 50, Price: 55000},
		{Code: "SK004", Name: "Hadalabo Ultimate Moisturizing Milk 100ml", Category: domain.CategorySkincare, Stock: 50, Price: 57000},
		{Code: "SK005", Name: "Madagascar Centela", Category: domain.CategorySkincare, Stock: 50, Price: 0},
		{Code: "SK006", Name: "AIR - FIT SUNCREAM LIGHT SPF 30 PA++++ 50ml", Category: domain.CategorySkincare, Stock: 50, Price: 130000},
		{Code: "BD001", Name: "Nalpamara herbal soap 75g", Category: domain.CategoryBodycare, Stock: 50, Price: 25000},
		{Code: "BD002", Name: "Marina Hand & Body Lotion 460ml", Category: domain.CategoryBodycare, Stock: 50, Price: 18000},
		{Code: "BD003", Name: "Nivea Daily protection sun lotion 33 SPF PA+++ 100ml", Category: domain.CategoryBodycare, Stock: 50, Price: 45000},
		{Code: "BD004", Name: "Purbasari lulur mandi 200gram", Category: domain.CategoryBodycare, Stock: 50, Price: 20000},
		{Code: "BD005", Name: "Vaseline GLUTA-HYA 100ml", Category: domain.CategoryBodycare, Stock: 50, Price: 34000},
		{Code: "BD006", Name: "FAV BEAUTY body lotion 300ml", Category: domain.CategoryBodycare, Stock: 50, Price: 79000},
	}
}
