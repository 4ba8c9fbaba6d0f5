package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/hobbylink/config"
)

type seedUser struct {
	username string
	age      int
	hobbies  []string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := []seedUser{
		{username: "Alice", age: 25, hobbies: []string{"Reading", "Hiking"}},
		{username: "Bob", age: 30, hobbies: []string{"Hiking", "Coding"}},
		{username: "Charlie", age: 22, hobbies: []string{"Gaming", "Reading"}},
	}

	for _, u := range users {
		hobbies, err := json.Marshal(u.hobbies)
		if err != nil {
			log.Fatalf("failed to encode hobbies: %v", err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (username, age, hobbies, friends, popularity_score)
			VALUES ($1, $2, $3, '[]', 0)
			ON CONFLICT (username) DO UPDATE SET age = EXCLUDED.age
			RETURNING id
		`, u.username, u.age, hobbies).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.username, err)
		}
		fmt.Printf("seeded user: id=%s username=%s age=%d\n", id, u.username, u.age)
	}
}
