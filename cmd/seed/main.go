package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell/blog-backend/internal/config"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/migration"
	"github.com/inkwell/blog-backend/pkg/auth"
	pkglogger "github.com/inkwell/blog-backend/pkg/logger"
	"github.com/inkwell/blog-backend/pkg/slug"
)

// Development seeder. Fills an empty database with fake authors, posts and
// comments so the API has something to serve locally. Never run in production.
func main() {
	defaultPath := "configs/config.local.yaml"
	if env := os.Getenv("APP_ENV"); env != "" {
		defaultPath = fmt.Sprintf("configs/config.%s.yaml", env)
	}
	configPath := flag.String("config", defaultPath, "path to config file")
	userCount := flag.Int("users", 5, "number of authors to create")
	postCount := flag.Int("posts", 30, "number of posts to create")
	commentCount := flag.Int("comments", 100, "number of comments to create")
	flag.Parse()

	config.LoadDotEnv()
	pkglogger.InitStructured("local")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.App.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db, cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	users := seedUsers(db, *userCount)
	posts := seedPosts(db, users, *postCount)
	seedComments(db, users, posts, *commentCount)

	pkglogger.Info("Seeded %d users, %d posts, %d comments", len(users), len(posts), *commentCount)
}

func seedUsers(db *gorm.DB, count int) []*domain.User {
	// All seeded accounts share one known password for local testing
	hashed, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]*domain.User, 0, count)
	for i := 0; i < count; i++ {
		user := &domain.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("author%d@%s", i+1, gofakeit.DomainName()),
			Password: hashed,
			Role:     domain.RoleAuthor,
			Bio:      gofakeit.Sentence(12),
			IsActive: true,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		users = append(users, user)
	}
	return users
}

func seedPosts(db *gorm.DB, users []*domain.User, count int) []*domain.Post {
	categories := []domain.PostCategory{
		domain.CategoryTechnology,
		domain.CategoryBusiness,
		domain.CategoryLifestyle,
		domain.CategoryHealth,
		domain.CategoryEducation,
		domain.CategoryOther,
	}

	posts := make([]*domain.Post, 0, count)
	for i := 0; i < count; i++ {
		title := gofakeit.Sentence(gofakeit.Number(3, 8))
		status := domain.StatusPublished
		var publishedAt *time.Time
		if gofakeit.Bool() || i%4 == 0 {
			ts := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
			publishedAt = &ts
		} else {
			status = domain.StatusDraft
		}

		post := &domain.Post{
			Title:       title,
			Slug:        slug.WithSuffix(slug.Make(title), i),
			Content:     gofakeit.Paragraph(3, 5, 40, "\n\n"),
			Excerpt:     gofakeit.Sentence(15),
			AuthorID:    users[gofakeit.Number(0, len(users)-1)].ID,
			Category:    categories[gofakeit.Number(0, len(categories)-1)],
			Tags:        domain.TagList{gofakeit.Word(), gofakeit.Word()},
			Status:      status,
			Views:       int64(gofakeit.Number(0, 5000)),
			PublishedAt: publishedAt,
		}
		if err := db.Create(post).Error; err != nil {
			log.Fatalf("Failed to seed post: %v", err)
		}
		posts = append(posts, post)
	}
	return posts
}

func seedComments(db *gorm.DB, users []*domain.User, posts []*domain.Post, count int) {
	published := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Status == domain.StatusPublished {
			published = append(published, p)
		}
	}
	if len(published) == 0 {
		return
	}

	for i := 0; i < count; i++ {
		comment := &domain.Comment{
			Content:    gofakeit.Sentence(gofakeit.Number(5, 25)),
			AuthorID:   users[gofakeit.Number(0, len(users)-1)].ID,
			PostID:     published[gofakeit.Number(0, len(published)-1)].ID,
			IsApproved: true,
		}
		if err := db.Create(comment).Error; err != nil {
			log.Fatalf("Failed to seed comment: %v", err)
		}
	}
}
