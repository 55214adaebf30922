package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yml"

type AppConfig struct {
	Port    int    `yaml:"port"`
	Env     string `yaml:"env"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	RegistrationTTL string `yaml:"registration_ttl"`
	LoginTTL        string `yaml:"login_ttl"`
	VerifiedTTL     string `yaml:"verified_ttl"`
	ProfileTTL      string `yaml:"profile_ttl"`
}

type OTPConfig struct {
	Length        int    `yaml:"length"`
	TTL           string `yaml:"ttl"`
	MaxAttempts   int    `yaml:"max_attempts"`
	AttemptWindow string `yaml:"attempt_window"`
	ResendWindow  string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID        string `yaml:"account_sid"`
	AuthToken         string `yaml:"auth_token"`
	FromNumber        string `yaml:"from_number"`
	OverrideRecipient string `yaml:"override_recipient"`
}

type MailConfig struct {
	Provider       string `yaml:"provider"`
	From           string `yaml:"from"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	ResendAPIKey   string `yaml:"resend_api_key"`
	AWSRegion      string `yaml:"aws_region"`
}

type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Mail     MailConfig     `yaml:"mail"`
	NATS     NATSConfig     `yaml:"nats"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// envOverrides mirrors the variables the service honors. Any variable that
// is set wins over the YAML file.
type envOverrides struct {
	ConfigPath string `env:"CONFIG_PATH"`

	Port    int    `env:"PORT"`
	Env     string `env:"APP_ENV"`
	NodeEnv string `env:"NODE_ENV"`
	GinMode string `env:"GIN_MODE"`

	DBDriver      string `env:"DATABASE_DRIVER"`
	DSN           string `env:"DATABASE_DSN"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       *int   `env:"REDIS_DB"`

	JWTSecret       string `env:"JWT_SECRET"`
	JWTIssuer       string `env:"JWT_ISSUER"`
	RegistrationTTL string `env:"JWT_REGISTRATION_TTL"`
	LoginTTL        string `env:"JWT_LOGIN_TTL"`
	VerifiedTTL     string `env:"JWT_VERIFIED_TTL"`
	ProfileTTL      string `env:"JWT_PROFILE_TTL"`

	OTPLength        int    `env:"OTP_LENGTH"`
	OTPTTL           string `env:"OTP_TTL"`
	OTPMaxAttempts   *int   `env:"OTP_MAX_ATTEMPTS"`
	OTPAttemptWindow string `env:"OTP_ATTEMPT_WINDOW"`
	OTPResendWindow  string `env:"OTP_RESEND_WINDOW"`

	TwilioSID         string `env:"TWILIO_ACCOUNT_SID"`
	TwilioToken       string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom        string `env:"TWILIO_PHONE_NUMBER"`
	OverrideRecipient string `env:"SMS_OVERRIDE_RECIPIENT"`

	MailProvider   string `env:"MAIL_PROVIDER"`
	MailFrom       string `env:"EMAIL"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	ResendAPIKey   string `env:"RESEND_API_KEY"`
	AWSRegion      string `env:"AWS_REGION"`

	NATSURL           string `env:"NATS_URL"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT_PREFIX"`

	CasbinModelPath string `env:"CASBIN_MODEL"`
}

type Config struct {
	Port    string
	Env     string
	GinMode string

	DBDriver      string
	DSN           string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	JWTIssuer       string
	RegistrationTTL time.Duration
	LoginTTL        time.Duration
	VerifiedTTL     time.Duration
	ProfileTTL      time.Duration

	OTP_Length        int
	OTP_TTL           time.Duration
	OTP_MaxAttempts   int
	OTP_AttemptWindow time.Duration
	OTP_ResendWindow  time.Duration

	TwilioSID            string
	TwilioToken          string
	TwilioFrom           string
	SMSOverrideRecipient string

	MailProvider   string
	MailFrom       string
	SendGridAPIKey string
	ResendAPIKey   string
	AWSRegion      string

	NATSURL           string
	NATSSubjectPrefix string

	CasbinModelPath string
}

// IsProduction reports whether cookies must be marked Secure
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Defaults returns the configuration file contents used when no file exists
func Defaults() *ConfigFile {
	return &ConfigFile{
		App:      AppConfig{Port: 5000, Env: "development", GinMode: "release"},
		Database: DatabaseConfig{Driver: "postgres", MongoDatabase: "fittrack"},
		Redis:    RedisConfig{},
		JWT: JWTConfig{
			Issuer:          "fittrack",
			RegistrationTTL: "24h",
			LoginTTL:        "168h",
			VerifiedTTL:     "24h",
			ProfileTTL:      "24h",
		},
		OTP: OTPConfig{
			Length:        6,
			TTL:           "0s",
			MaxAttempts:   5,
			AttemptWindow: "15m",
			ResendWindow:  "60s",
		},
		Mail: MailConfig{Provider: "log"},
		NATS: NATSConfig{SubjectPrefix: "fittrack.audit"},
	}
}

// Load reads the YAML file (optional), a .env file (optional) and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	path := ov.ConfigPath
	if path == "" {
		path = defaultConfigPath
	}
	file, err := loadConfigFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || ov.ConfigPath != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		file = Defaults()
	}

	applyOverrides(file, &ov)
	return build(file)
}

func applyOverrides(f *ConfigFile, ov *envOverrides) {
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setInt(&f.App.Port, ov.Port)
	setStr(&f.App.Env, ov.NodeEnv)
	setStr(&f.App.Env, ov.Env)
	setStr(&f.App.GinMode, ov.GinMode)

	setStr(&f.Database.Driver, ov.DBDriver)
	setStr(&f.Database.DSN, ov.DSN)
	setStr(&f.Database.MongoURI, ov.MongoURI)
	setStr(&f.Database.MongoDatabase, ov.MongoDatabase)

	setStr(&f.Redis.Addr, ov.RedisAddr)
	setStr(&f.Redis.Password, ov.RedisPassword)
	if ov.RedisDB != nil {
		f.Redis.DB = *ov.RedisDB
	}

	setStr(&f.JWT.Secret, ov.JWTSecret)
	setStr(&f.JWT.Issuer, ov.JWTIssuer)
	setStr(&f.JWT.RegistrationTTL, ov.RegistrationTTL)
	setStr(&f.JWT.LoginTTL, ov.LoginTTL)
	setStr(&f.JWT.VerifiedTTL, ov.VerifiedTTL)
	setStr(&f.JWT.ProfileTTL, ov.ProfileTTL)

	setInt(&f.OTP.Length, ov.OTPLength)
	setStr(&f.OTP.TTL, ov.OTPTTL)
	if ov.OTPMaxAttempts != nil {
		f.OTP.MaxAttempts = *ov.OTPMaxAttempts
	}
	setStr(&f.OTP.AttemptWindow, ov.OTPAttemptWindow)
	setStr(&f.OTP.ResendWindow, ov.OTPResendWindow)

	setStr(&f.Twilio.AccountSID, ov.TwilioSID)
	setStr(&f.Twilio.AuthToken, ov.TwilioToken)
	setStr(&f.Twilio.FromNumber, ov.TwilioFrom)
	setStr(&f.Twilio.OverrideRecipient, ov.OverrideRecipient)

	setStr(&f.Mail.Provider, ov.MailProvider)
	setStr(&f.Mail.From, ov.MailFrom)
	setStr(&f.Mail.SendGridAPIKey, ov.SendGridAPIKey)
	setStr(&f.Mail.ResendAPIKey, ov.ResendAPIKey)
	setStr(&f.Mail.AWSRegion, ov.AWSRegion)

	setStr(&f.NATS.URL, ov.NATSURL)
	setStr(&f.NATS.SubjectPrefix, ov.NATSSubjectPrefix)

	setStr(&f.Casbin.ModelPath, ov.CasbinModelPath)
}

func build(f *ConfigFile) (*Config, error) {
	if f.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", f.App.Port),
		Env:     f.App.Env,
		GinMode: f.App.GinMode,

		DBDriver:      f.Database.Driver,
		DSN:           f.Database.DSN,
		MongoURI:      f.Database.MongoURI,
		MongoDatabase: f.Database.MongoDatabase,

		RedisAddr:     f.Redis.Addr,
		RedisPassword: f.Redis.Password,
		RedisDB:       f.Redis.DB,

		JWTSecret: f.JWT.Secret,
		JWTIssuer: f.JWT.Issuer,

		OTP_Length:      f.OTP.Length,
		OTP_MaxAttempts: f.OTP.MaxAttempts,

		TwilioSID:            f.Twilio.AccountSID,
		TwilioToken:          f.Twilio.AuthToken,
		TwilioFrom:           f.Twilio.FromNumber,
		SMSOverrideRecipient: f.Twilio.OverrideRecipient,

		MailProvider:   f.Mail.Provider,
		MailFrom:       f.Mail.From,
		SendGridAPIKey: f.Mail.SendGridAPIKey,
		ResendAPIKey:   f.Mail.ResendAPIKey,
		AWSRegion:      f.Mail.AWSRegion,

		NATSURL:           f.NATS.URL,
		NATSSubjectPrefix: f.NATS.SubjectPrefix,

		CasbinModelPath: f.Casbin.ModelPath,
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"JWT registration TTL", f.JWT.RegistrationTTL, &cfg.RegistrationTTL},
		{"JWT login TTL", f.JWT.LoginTTL, &cfg.LoginTTL},
		{"JWT verified TTL", f.JWT.VerifiedTTL, &cfg.VerifiedTTL},
		{"JWT profile TTL", f.JWT.ProfileTTL, &cfg.ProfileTTL},
		{"OTP TTL", f.OTP.TTL, &cfg.OTP_TTL},
		{"OTP attempt window", f.OTP.AttemptWindow, &cfg.OTP_AttemptWindow},
		{"OTP resend window", f.OTP.ResendWindow, &cfg.OTP_ResendWindow},
	}

	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}

	if cfg.OTP_Length <= 0 {
		cfg.OTP_Length = 6
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	config := Defaults()
	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return config, nil
}
