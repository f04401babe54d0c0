// Command sessions lists the booking sessions held in Redis and prints one
// of them in full. Usage:
//
//	sessions            list live sessions
//	sessions <id>       dump one session as JSON
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"ticketfront/internal/booking"
	"ticketfront/internal/shared/config"
	"ticketfront/internal/shared/constants"
	"ticketfront/pkg/cache"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}

	store := booking.NewCacheStore(cache.NewService(client), cfg.Redis.SessionTTL)

	if len(os.Args) > 1 {
		if err := dump(ctx, store, os.Args[1]); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := list(ctx, client, store); err != nil {
		log.Fatal(err)
	}
}

func dump(ctx context.Context, store booking.Store, id string) error {
	state, err := store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("session %s: %w", id, err)
	}
	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func list(ctx context.Context, client *redis.Client, store booking.Store) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tUSER\tEVENT\tSHOW\tPHASE\tSELECTED\tRESERVATION\tEXPIRES IN")

	count := 0
	iter := client.Scan(ctx, 0, constants.CACHE_KEY_BOOKING_SESSION+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := strings.TrimPrefix(key, constants.CACHE_KEY_BOOKING_SESSION)

		state, err := store.Load(ctx, id)
		if errors.Is(err, booking.ErrSessionNotFound) {
			continue // expired between scan and load
		}
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\tunreadable: %v\t\t\t\n", id, err)
			continue
		}

		reservation := "-"
		if state.Reservation != nil {
			reservation = fmt.Sprintf("%d (%d)", state.Reservation.ID, state.Reservation.Total)
		}
		ttl := client.TTL(ctx, key).Val().Round(time.Second)

		fmt.Fprintf(w, "%s\t%s\t%d\t%s %s\t%s\t%d\t%s\t%v\n",
			state.ID, state.UserID, state.Show.EventID, state.Show.Date, state.Show.Time,
			state.Phase, len(state.Selection.Selected), reservation, ttl)
		count++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d session(s)\n", count)
	return nil
}
