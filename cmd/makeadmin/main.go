// Command makeadmin promotes an existing account to the admin role.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"teesheet/internal/config"
	"teesheet/internal/db"
	"teesheet/internal/logger"
	"teesheet/internal/user"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	logger.Init()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	u, err := user.NewService(user.NewRepository(database), nil).PromoteToAdmin(ctx, *email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			logger.Error("No user with that email", "email", *email)
			os.Exit(1)
		}
		logger.Fatalf("Failed to promote user: %v", err)
	}

	logger.Info("User is now admin", "user_id", u.ID, "email", u.Email)
}
