package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const orderURL = "http://localhost:8080/api/order"

var products = []struct {
	id    string
	name  string
	price int
}{
	{"item-01", "Classic Tee", 450},
	{"item-02", "Denim Jacket", 1800},
	{"item-03", "Canvas Tote", 600},
	{"item-04", "Wool Coat", 3450},
}

func main() {
	for {
		var wg sync.WaitGroup
		n := rand.Intn(5)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				doRequest()
			}()
		}
		wg.Wait()
		time.Sleep(200 * time.Millisecond)
	}
}

func randomOrder() map[string]any {
	items := make([]map[string]any, 0, 3)
	n := 1 + rand.Intn(3)
	for i := 0; i < n; i++ {
		p := products[rand.Intn(len(products))]
		items = append(items, map[string]any{
			"id":    p.id,
			"name":  p.name,
			"qty":   1 + rand.Intn(3),
			"price": p.price,
		})
	}

	order := map[string]any{
		"items": items,
		"customer": map[string]any{
			"brief": "load test order, please ignore",
		},
	}

	// One in five requests is deliberately broken to exercise validation.
	if rand.Intn(5) == 0 {
		order["items"] = []map[string]any{}
	}
	return order
}

func doRequest() {
	body, err := json.Marshal(randomOrder())
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}

	resp, err := http.Post(orderURL, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	fmt.Println("POST", orderURL, "->", resp.Status,
		"remaining:", resp.Header.Get("X-RateLimit-Remaining"))
	resp.Body.Close()
}
