package trends

import (
	"sync"
	"testing"
)

func TestURLPool_SingleURL(t *testing.T) {
	pool := NewURLPool("https://trends.example.com/")

	if pool.Size() != 1 {
		t.Errorf("Expected size 1, got %d", pool.Size())
	}

	for i := 0; i < 5; i++ {
		url := pool.Next()
		if url != "https://trends.example.com" {
			t.Errorf("Expected https://trends.example.com, got %s", url)
		}
	}
}

func TestURLPool_MultipleURLs(t *testing.T) {
	pool := NewURLPool(" https://api1.com , https://api2.com,https://api3.com ")

	if pool.Size() != 3 {
		t.Errorf("Expected size 3, got %d", pool.Size())
	}

	expected := []string{"https://api1.com", "https://api2.com", "https://api3.com"}
	for i := 0; i < 6; i++ {
		url := pool.Next()
		if url != expected[i%3] {
			t.Errorf("At iteration %d, expected %s, got %s", i, expected[i%3], url)
		}
	}
}

func TestURLPool_EmptyString(t *testing.T) {
	pool := NewURLPool("")

	if !pool.IsEmpty() {
		t.Error("Expected empty pool")
	}

	if pool.Next() != "" {
		t.Error("Expected empty string from empty pool")
	}
}

func TestURLPool_ThreadSafety(t *testing.T) {
	pool := NewURLPool("https://api1.com,https://api2.com")

	var wg sync.WaitGroup
	counts := make(map[string]int)
	var mu sync.Mutex

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url := pool.Next()
			mu.Lock()
			counts[url]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if counts["https://api1.com"] != 50 || counts["https://api2.com"] != 50 {
		t.Errorf("Expected even distribution, got %v", counts)
	}
}
