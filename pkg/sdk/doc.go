// Package shopdex embeds the shopdex product catalogue in a Go program,
// talking to Redis Stack directly without the HTTP server.
//
//	client, _ := shopdex.New(ctx,
//	    shopdex.WithRedis("localhost:6379", ""),
//	    shopdex.WithEnsureIndex(),
//	)
//	defer client.Close()
//
//	p, _ := client.Products().Create(ctx, shopdex.ProductInput{
//	    Name: "WH-1000XM5", Category: "Audio", Brand: "Sony", Price: 399.99,
//	})
//
//	page, _ := client.Search().FullText(ctx, "headphones", 0, 10)
//	hits, _ := client.Search().Advanced(ctx, shopdex.SearchParams{
//	    Query: "sony", MinRating: shopdex.Float(4), SortBy: "price", SortDir: shopdex.Asc,
//	}, 0, 20)
package shopdex
