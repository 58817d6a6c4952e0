package main

import domprod "github.com/kailas-cloud/shopdex/internal/domain/product"

func ptr[T any](v T) *T { return &v }

// sampleCatalogue is the demo data loaded by `shopdex seed`.
func sampleCatalogue() []domprod.Draft {
	return []domprod.Draft{
		{
			Name: "iPhone 15 Pro", Description: "Titanium smartphone with A17 Pro chip and 48MP camera",
			Category: "Electronics", Brand: "Apple", Tags: []string{"smartphone", "ios", "5g"},
			Price: 999.99, StockQuantity: 50, Rating: 4.8, ReviewCount: 1520, Featured: ptr(true),
		},
		{
			Name: "Galaxy S24 Ultra", Description: "Android flagship with S Pen and 200MP camera",
			Category: "Electronics", Brand: "Samsung", Tags: []string{"smartphone", "android", "5g"},
			Price: 1199.99, StockQuantity: 35, Rating: 4.7, ReviewCount: 980, Featured: ptr(true),
		},
		{
			Name: "Pixel 8", Description: "Google smartphone with Tensor G3 and seven years of updates",
			Category: "Electronics", Brand: "Google", Tags: []string{"smartphone", "android"},
			Price: 699.00, StockQuantity: 0, Rating: 4.5, ReviewCount: 640,
		},
		{
			Name: "MacBook Air 13", Description: "Thin and light laptop with M3 chip",
			Category: "Computers", Brand: "Apple", Tags: []string{"laptop", "macos"},
			Price: 1099.00, StockQuantity: 20, Rating: 4.9, ReviewCount: 2100, Featured: ptr(true),
		},
		{
			Name: "ThinkPad X1 Carbon", Description: "Business ultrabook with a legendary keyboard",
			Category: "Computers", Brand: "Lenovo", Tags: []string{"laptop", "business"},
			Price: 1549.00, StockQuantity: 12, Rating: 4.6, ReviewCount: 410,
		},
		{
			Name: "WH-1000XM5", Description: "Wireless noise cancelling over-ear headphones",
			Category: "Audio", Brand: "Sony", Tags: []string{"headphones", "wireless", "anc"},
			Price: 399.99, StockQuantity: 80, Rating: 4.7, ReviewCount: 3300, Featured: ptr(true),
		},
		{
			Name: "AirPods Pro 2", Description: "In-ear wireless earbuds with active noise cancellation",
			Category: "Audio", Brand: "Apple", Tags: []string{"earbuds", "wireless", "anc"},
			Price: 249.00, StockQuantity: 150, Rating: 4.6, ReviewCount: 5400,
		},
		{
			Name: "Bravia 55 OLED TV", Description: "55 inch 4K OLED television with Google TV",
			Category: "TV", Brand: "Sony", Tags: []string{"tv", "oled", "4k"},
			Price: 1799.00, StockQuantity: 8, Rating: 4.4, ReviewCount: 210,
		},
		{
			Name: "Neo QLED 65", Description: "65 inch QLED smart TV with quantum HDR",
			Category: "TV", Brand: "Samsung", Tags: []string{"tv", "qled", "4k"},
			Price: 1299.00, StockQuantity: 0, Rating: 4.2, ReviewCount: 190,
		},
		{
			Name: "The Go Programming Language", Description: "Donovan and Kernighan on idiomatic Go",
			Category: "Books", Brand: "Addison-Wesley", Tags: []string{"programming", "go"},
			Price: 39.99, StockQuantity: 200, Rating: 4.8, ReviewCount: 870,
		},
		{
			Name: "Designing Data-Intensive Applications", Description: "The big ideas behind reliable data systems",
			Category: "Books", Brand: "O'Reilly", Tags: []string{"databases", "distributed-systems"},
			Price: 49.99, StockQuantity: 140, Rating: 4.9, ReviewCount: 2300, Featured: ptr(true),
		},
		{
			Name: "Kindle Paperwhite", Description: "Waterproof e-reader with a warm adjustable light",
			Category: "Electronics", Brand: "Amazon", Tags: []string{"e-reader"},
			Price: 149.99, StockQuantity: 65, Rating: 4.5, ReviewCount: 7600,
		},
		{
			Name: "Espresso Machine Barista", Description: "Semi-automatic espresso maker with steam wand",
			Category: "Home", Brand: "Breville", Tags: []string{"coffee", "kitchen"},
			Price: 699.95, StockQuantity: 15, Rating: 4.3, ReviewCount: 520,
		},
		{
			Name: "Robot Vacuum S8", Description: "Robot vacuum and mop with lidar navigation",
			Category: "Home", Brand: "Roborock", Tags: []string{"cleaning", "smart-home"},
			Price: 549.00, StockQuantity: 25, Rating: 3.9, ReviewCount: 330,
		},
		{
			Name: "Discontinued MP3 Player", Description: "Legacy flash music player",
			Category: "Audio", Brand: "Generic", Tags: []string{"legacy"},
			Price: 19.99, StockQuantity: 3, Rating: 2.8, ReviewCount: 12, Active: ptr(false),
		},
	}
}
