package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-keeper/internal/config"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
)

// kinds are the record kinds stored by the Redis repositories
var kinds = []string{"character", "campaign", "session", "quest", "npc", "treasure", "rule"}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	fmt.Println("Records:")
	for _, kind := range kinds {
		count, err := client.LLen(ctx, kind+"s").Result()
		if err != nil {
			fmt.Printf("  %-10s ERROR - %v\n", kind, err)
			continue
		}
		fmt.Printf("  %-10s %d\n", kind, count)
	}

	// Per system breakdown of the system indexed kinds
	for _, sys := range rulebook.Default().Systems() {
		fmt.Printf("\n%s:\n", sys.Name)
		for _, kind := range []string{"character", "campaign", "treasure", "rule"} {
			key := fmt.Sprintf("system:%s:%ss", sys.ID, kind)
			count, err := client.LLen(ctx, key).Result()
			if err != nil {
				fmt.Printf("  %-10s ERROR - %v\n", kind, err)
				continue
			}
			fmt.Printf("  %-10s %d\n", kind, count)
		}
	}
}
