package main

import (
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-teller/config"
	"go-teller/models"
	"go-teller/store"
	"go-teller/teller"
	"go-teller/tokens"
)

// Store keys of the pre-provisioned staff accounts in the bank variant.
const (
	seedManagerID = "10000000001"
	seedClerkID   = "10000000002"
)

func main() {
	bootLog, _ := zap.NewProduction()
	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Fatal("configuration", zap.Error(err))
	}
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLog.Fatal("logger", zap.Error(err))
	}
	defer logger.Sync()

	st := store.New()
	variant := teller.Variant(cfg.Variant)
	if variant == teller.VariantBank {
		seedStaff(st, cfg)
	}

	srv := &server{
		teller: teller.New(st, nil, variant, logger.Named("teller")),
		tokens: tokens.NewManager(cfg.SessionTTL),
		log:    logger.Named("http"),
	}

	r := gin.Default()
	r.Use(cors.Default())
	srv.routes(r)

	logger.Info("starting go-teller",
		zap.String("addr", cfg.Addr),
		zap.String("variant", cfg.Variant))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

// seedStaff provisions the manager and clerk accounts the bank variant
// ships with. Both start with a zero balance and an empty ledger.
func seedStaff(st *store.Store, cfg *config.Config) {
	st.AddAccount(models.Account{
		ID:   seedManagerID,
		Name: cfg.ManagerName,
		Credential: models.PasswordCredential{
			Email:    cfg.ManagerEmail,
			Password: cfg.ManagerPassword,
		},
		Role:    models.RoleManager,
		Balance: decimal.Zero,
	})
	st.AddAccount(models.Account{
		ID:   seedClerkID,
		Name: cfg.ClerkName,
		Credential: models.PasswordCredential{
			Email:    cfg.ClerkEmail,
			Password: cfg.ClerkPassword,
		},
		Role:    models.RoleClerk,
		Balance: decimal.Zero,
	})
}
