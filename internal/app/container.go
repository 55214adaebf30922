package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/config"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/auth"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/database"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/events"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/notifications"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/repositories"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure. DB also backs casbin policies when users live in Mongo.
	DB          *gorm.DB
	Mongo       *mongo.Client
	RedisClient *redis.Client
	NATS        *nats.Conn

	// Repositories
	UserRepo domain.UserRepository
	OTPGuard domain.OTPGuard

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	ProfileSvc      domain.ProfileService
	PolicySvc       domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	steps := []func(context.Context) error{
		c.initDatabase,
		c.initRedis,
		c.initNATS,
		c.initPolicies,
		c.initServices,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	cfg := c.Config

	if cfg.DBDriver == "mongo" {
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		c.Mongo = client

		repo := repositories.NewMongoUserRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		c.UserRepo = repo
		log.Printf("database: users stored in mongo database %s", cfg.MongoDatabase)

		// Policies still need a SQL store; fall back to memory without one.
		if cfg.DSN == "" {
			return nil
		}
		db, err := database.Open("postgres", cfg.DSN, cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to open policy database: %w", err)
		}
		c.DB = db
		return nil
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	c.UserRepo = repositories.NewUserRepository(db)
	log.Printf("database: users stored via %s", cfg.DBDriver)
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	if c.Config.RedisAddr == "" {
		log.Println("redis: not configured, OTP attempt and resend limits disabled")
		c.OTPGuard = repositories.NoopOTPGuard{}
		return nil
	}

	rc := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	c.RedisClient = rc.Client
	c.OTPGuard = repositories.NewOTPGuardRepository(rc.Client, c.Config.OTP_AttemptWindow, c.Config.OTP_ResendWindow)
	return nil
}

func (c *Container) initNATS(context.Context) error {
	logAudit := events.NewLogAuditLogger(log.New(os.Stdout, "", log.LstdFlags))
	if c.Config.NATSURL == "" {
		c.AuditLogger = logAudit
		return nil
	}

	nc, err := events.ConnectNATS(c.Config.NATSURL)
	if err != nil {
		return err
	}
	c.NATS = nc
	c.AuditLogger = events.MultiAuditLogger{
		logAudit,
		events.NewNATSAuditLogger(nc, c.Config.NATSSubjectPrefix),
	}
	return nil
}

func (c *Container) initPolicies(context.Context) error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	c.PolicySvc = services.NewPolicyService(cas.E, c.DB != nil)
	return services.SeedPolicies(c.PolicySvc, auth.DefaultPolicies)
}

func (c *Container) initServices(ctx context.Context) error {
	cfg := c.Config

	mailer, err := notifications.NewMailer(ctx, notifications.MailOptions{
		Provider:       cfg.MailProvider,
		From:           cfg.MailFrom,
		SendGridAPIKey: cfg.SendGridAPIKey,
		ResendAPIKey:   cfg.ResendAPIKey,
		AWSRegion:      cfg.AWSRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	sms := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	c.NotificationSvc = notifications.NewDispatcher(sms, mailer)

	c.PasswordSvc = auth.NewPasswordService(0)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, auth.TokenTTLs{
		Registration: cfg.RegistrationTTL,
		Login:        cfg.LoginTTL,
		Verified:     cfg.VerifiedTTL,
		Profile:      cfg.ProfileTTL,
	})

	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.UserRepo, c.OTPGuard, services.OTPConfig{
		Length:               cfg.OTP_Length,
		TTL:                  cfg.OTP_TTL,
		MaxAttempts:          cfg.OTP_MaxAttempts,
		SMSOverrideRecipient: cfg.SMSOverrideRecipient,
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.AuditLogger)
	c.ProfileSvc = services.NewProfileService(c.UserRepo, c.TokenSvc, c.AuditLogger)
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.NATS != nil {
		keep(c.NATS.Drain())
	}
	if c.RedisClient != nil {
		keep(c.RedisClient.Close())
	}
	if c.Mongo != nil {
		keep(c.Mongo.Disconnect(context.Background()))
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			keep(err)
		} else {
			keep(sqlDB.Close())
		}
	}
	return firstErr
}
