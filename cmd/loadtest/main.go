package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"library-loan-service/internal/config"
	"library-loan-service/internal/database"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	rps      = 20
	duration = 1 * time.Minute
)

type LoanCreateRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}

type LoanResponse struct {
	ID int64 `json:"id"`
}

var (
	targetHost = getEnv("TARGET_HOST", "http://localhost:8080")

	users []int64
	books []int64
	loans []int64
	httpc = &http.Client{Timeout: 10 * time.Second}
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func postJSON(url string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Seed: пользователи и книги пишутся напрямую в базу сервиса, выдачи создаются через API
func seedData(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN .env not found: %v", err)
	}

	db, dialect, err := database.Open(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	queries := database.New(db, dialect)

	log.Println("Seeding: creating users and books...")
	stamp := time.Now().UnixNano()

	for u := 1; u <= 50; u++ {
		role := "Common"
		if u%10 == 0 {
			role = "Admin"
		}
		id, err := queries.CreateUser(ctx, database.CreateUserParams{
			Name:   fmt.Sprintf("Reader %d", u),
			Email:  fmt.Sprintf("reader-%d-%d@load.test", stamp, u),
			Role:   role,
			Active: true,
		})
		if err != nil {
			return err
		}
		users = append(users, id)
	}

	for b := 1; b <= 200; b++ {
		id, err := queries.CreateBook(ctx, database.CreateBookParams{
			Title:       fmt.Sprintf("Book %d", b),
			Author:      "Load Author",
			Isbn:        fmt.Sprintf("978%010d", b),
			IsAvailable: true,
			Active:      true,
		})
		if err != nil {
			return err
		}
		books = append(books, id)
	}

	log.Println("Seeding: creating loans...")
	for i, uid := range users {
		var loan LoanResponse
		status, err := postJSON(targetHost+"/loans", LoanCreateRequest{UserID: uid, BookID: books[i]}, &loan)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST /loans returned %d\n", status)
			continue
		}
		loans = append(loans, loan.ID)
		time.Sleep(10 * time.Millisecond)
	}

	log.Printf("Seed completed: users=%d books=%d loans=%d\n", len(users), len(books), len(loans))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 40% GET /loans/active
		if r < 0.40 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/loans/active"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 30% GET /loans/user/{id}
		if r < 0.70 {
			user := users[rand.Intn(len(users))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/loans/user/%d", targetHost, user)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 20% POST /loans: конфликты по книгам и лимитам ожидаемы
		if r < 0.90 {
			body, _ := json.Marshal(LoanCreateRequest{
				UserID: users[rand.Intn(len(users))],
				BookID: books[rand.Intn(len(books))],
			})
			t.Method = http.MethodPost
			t.URL = targetHost + "/loans"
			t.Body = body
			t.Header = map[string][]string{"Content-Type": {"application/json"}}
			return nil
		}

		// 10% PATCH /loans/{id}/return
		loan := loans[rand.Intn(len(loans))]
		t.Method = http.MethodPatch
		t.URL = fmt.Sprintf("%s/loans/%d/return", targetHost, loan)
		t.Body = nil
		t.Header = map[string][]string{"Accept": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics
	conflicts := 0

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		if res.Code == http.StatusConflict {
			conflicts++
		}
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Conflicts (409): %d\n", conflicts)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	fmt.Printf("Status codes: %v\n", metrics.StatusCodes)
}

func main() {
	if err := seedData(context.Background()); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if len(loans) == 0 {
		log.Fatalf("Seed created no loans, is the service running at %s?", targetHost)
	}

	runAttack()
}
