// loadgen fires create-order requests at a running API instance at a fixed
// rate. Handy for watching cache hit ratios and partial-failure metrics.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var products = []string{"notebook", "mouse", "keyboard", "monitor", "dock", "headset"}

type item struct {
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type createRequest struct {
	CustomerID string `json:"customer_id"`
	Items      []item `json:"items"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8081", "API base URL")
	rate := flag.Int("rate", 10, "requests per second")
	duration := flag.Duration("duration", 30*time.Second, "how long to run")
	workers := flag.Int("workers", 4, "concurrent senders")
	flag.Parse()

	token, err := login(*addr)
	if err != nil {
		log.Fatalf("login: %v", err)
	}

	var sent, failed atomic.Int64
	jobs := make(chan struct{})
	client := &http.Client{Timeout: 5 * time.Second}

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if err := createOrder(client, *addr, token); err != nil {
					failed.Add(1)
					continue
				}
				sent.Add(1)
			}
		}()
	}

	start := time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	deadline := time.After(*duration)

loop:
	for {
		select {
		case <-ticker.C:
			jobs <- struct{}{}
		case <-deadline:
			break loop
		}
	}
	ticker.Stop()
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("sent=%d failed=%d elapsed=%s rate=%.1f/s\n",
		sent.Load(), failed.Load(), elapsed.Round(time.Millisecond),
		float64(sent.Load())/elapsed.Seconds())
}

func login(addr string) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": "loadgen", "password": "loadgen"})
	resp, err := http.Post(addr+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func createOrder(client *http.Client, addr, token string) error {
	n := 1 + rand.Intn(4)
	items := make([]item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, item{
			Product:   products[rand.Intn(len(products))],
			Quantity:  1 + rand.Intn(5),
			UnitPrice: fmt.Sprintf("%d.%02d", 10+rand.Intn(490), rand.Intn(100)),
		})
	}
	body, _ := json.Marshal(createRequest{
		CustomerID: uuid.NewString(),
		Items:      items,
	})

	req, err := http.NewRequest(http.MethodPost, addr+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
