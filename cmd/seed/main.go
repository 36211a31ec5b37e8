package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/ummahhub/ummah-backend/internal/config"
	"github.com/ummahhub/ummah-backend/internal/db"
	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.Profile{},
		&model.Space{},
		&model.SpaceEvent{},
		&model.SpaceAnnouncement{},
		&model.Post{},
		&model.PostPhoto{},
		&model.Conversation{},
		&model.Message{},
		&model.SellerRating{},
		&model.RestaurantReview{},
		&model.PushToken{},
		&model.Report{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("posts already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles := []model.Profile{
			{UID: "seed-amina", DisplayName: "Amina K.", Bio: "Downtown halal foodie"},
			{UID: "seed-yusuf", DisplayName: "Yusuf R.", Bio: "Selling what the kids outgrew"},
		}
		if err := tx.Create(&profiles).Error; err != nil {
			return err
		}

		space := model.Space{
			Name:        "Riverside Sisters Circle",
			Description: "Weekly halaqa and community events for sisters in the Riverside area.",
			OwnerUID:    "seed-amina",
		}
		if err := tx.Create(&space).Error; err != nil {
			return err
		}
		event := model.SpaceEvent{
			SpaceID:   space.ID,
			Title:     "Saturday Halaqa",
			Location:  "Riverside Community Centre, Room 2",
			StartsAt:  time.Now().AddDate(0, 0, 7),
			CreatedBy: "seed-amina",
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		price := 25.0
		posts := []model.Post{
			{
				SellerUID:   "seed-yusuf",
				Title:       "Kids balance bike",
				Description: "Lightly used balance bike, good for ages 3-5.",
				Price:       &price,
				Currency:    "CAD",
				Status:      model.PostStatusActive,
			},
			{
				SellerUID:   "seed-yusuf",
				Title:       "Bookshelf, pickup only",
				Description: "Solid wood bookshelf, some scratches.",
				Currency:    "CAD",
				Status:      model.PostStatusActive,
			},
		}
		for i := range posts {
			posts[i].SearchText = repository.BuildSearchText(posts[i].Title, posts[i].Description)
		}
		if err := tx.Create(&posts).Error; err != nil {
			return err
		}

		log.Printf("seeded %d profiles, 1 space, %d posts", len(profiles), len(posts))
		return nil
	})
}
