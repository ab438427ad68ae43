package main

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/peihsuan88/craft-shop-backend/internal/catalog"
	"github.com/peihsuan88/craft-shop-backend/internal/config"
	"github.com/peihsuan88/craft-shop-backend/internal/notify"
	"github.com/peihsuan88/craft-shop-backend/internal/order"
	"github.com/peihsuan88/craft-shop-backend/internal/respond"
)

func main() {
	setupLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup configuration failed", "error", err)
		os.Exit(1)
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureOrderSchema(db)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	lineClient := notify.NewClient(cfg.Line.APIBaseURL, cfg.Line.ChannelAccessToken)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalog.NewPostgresRepository(db)))
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), lineClient, cfg.Line.DefaultRecipient))
	notifyHandler := notify.NewHandler(lineClient)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return respond.Error(c, fiber.StatusServiceUnavailable, err, "database unreachable")
		}
		return c.JSON(fiber.Map{"success": true})
	})

	// masked presence/length of configured secrets, never the values
	app.Get("/api/env", func(c *fiber.Ctx) error {
		return c.JSON(cfg.Masked())
	})

	catalogHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	notifyHandler.RegisterPublicRoutes(app)

	// everything below requires an externally issued JWT; only verification
	// happens here
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	catalogHandler.RegisterProtectedRoutes(app)

	slog.Info("starting server", "addr", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	slog.Info("request",
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return err
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// ensureOrderSchema creates the tables this service owns. The five category
// tables are managed out-of-band and are not touched here.
func ensureOrderSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		order_number TEXT NOT NULL,
		created_at TEXT NOT NULL,
		buyer_name TEXT NOT NULL,
		buyer_email TEXT NOT NULL,
		buyer_phone TEXT,
		recipient_name TEXT,
		recipient_phone TEXT,
		recipient_address TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT,
		payment_status TEXT,
		total_amount INT NOT NULL DEFAULT 0,
		shipping_fee INT NOT NULL DEFAULT 0,
		discount_amount INT NOT NULL DEFAULT 0,
		notes TEXT
	)`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id),
		product_id INT NOT NULL,
		product_name TEXT NOT NULL,
		unit_price INT NOT NULL,
		quantity INT NOT NULL,
		subtotal INT NOT NULL
	)`); err != nil {
		panic(err)
	}
}
