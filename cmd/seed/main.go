// seed crea el usuario administrador inicial y una bodega de ejemplo.
//
// Uso: SEED_ADMIN_EMAIL=admin@ivanstamas.ng SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Usa la misma configuración de base de datos que la API y aplica las migraciones pendientes.
// No requiere STOCK_CRITICAL_RATIO ni JWT_SECRET.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/postgres"
	"github.com/astrobsm/ivanstamas-api/pkg/config"
	"github.com/astrobsm/ivanstamas-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	v := viper.New()
	v.AutomaticEnv()
	email := strings.ToLower(strings.TrimSpace(v.GetString("SEED_ADMIN_EMAIL")))
	password := v.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || len(password) < 8 {
		log.Error().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (mínimo 8 caracteres) son obligatorios")
		os.Exit(1)
	}
	name := v.GetString("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrador"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("el admin ya existe, no se modifica")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
			Role:         entity.RoleAdmin,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", email).Str("user_id", admin.ID).Msg("admin creado")
	}

	warehouses := postgres.NewWarehouseRepository(pool)
	list, err := warehouses.List(ctx, 1, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("listar bodegas")
	}
	if len(list) == 0 {
		now := time.Now()
		w := &entity.Warehouse{
			ID:        uuid.New().String(),
			Name:      "Main Warehouse",
			Location:  "Factory",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := warehouses.Create(ctx, w); err != nil {
			log.Fatal().Err(err).Msg("crear bodega")
		}
		log.Info().Str("warehouse_id", w.ID).Msg("bodega de ejemplo creada")
	}
	log.Info().Msg("seed completado")
}
