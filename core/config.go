package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName      string
	Env          string // DEV (local; default), TEST, QA, PROD
	Build        string
	Debug        bool
	TestMode     bool
	WorkDir      string
	RollbarToken string

	Server struct {
		Host            string
		Address         string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		BodyLimit       string
		DisableReqLogs  bool
	}

	Database struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		InMemory      bool
	}

	Content struct {
		MaxBytes   int
		Sanitize   bool
		MathMacros map[string]string
	}
}

func (c *Config) setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "SmartJHS")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 5*time.Second)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.bodyLimit", "2M")
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "smartjhs")
	v.SetDefault("database.user", "smartjhs")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.inMemory", false)

	v.SetDefault("content.maxBytes", 256*1024)
	v.SetDefault("content.sanitize", true)
	v.SetDefault("content.mathMacros", map[string]string{})
}

func (c *Config) load(v *viper.Viper) {
	c.AppName = v.GetString("appName")
	c.Build = v.GetString("build")
	c.Debug = v.GetBool("debug")
	c.TestMode = v.GetBool("testMode")
	c.RollbarToken = v.GetString("rollbarToken")

	c.Server.Host = v.GetString("server.host")
	c.Server.Address = v.GetString("server.address")
	c.Server.DebugHost = v.GetString("server.debugHost")
	c.Server.ReadTimeout = v.GetDuration("server.readTimeout")
	c.Server.WriteTimeout = v.GetDuration("server.writeTimeout")
	c.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	c.Server.BodyLimit = v.GetString("server.bodyLimit")
	c.Server.DisableReqLogs = v.GetBool("server.disableReqLogs")

	c.Database.Engine = v.GetString("database.engine")
	c.Database.Host = v.GetString("database.host")
	c.Database.Port = v.GetString("database.port")
	c.Database.Name = v.GetString("database.name")
	c.Database.User = v.GetString("database.user")
	c.Database.Password = v.GetString("database.password")
	c.Database.AdminUser = v.GetString("database.adminUser")
	c.Database.AdminPassword = v.GetString("database.adminPassword")
	c.Database.DisableTLS = v.GetBool("database.disableTLS")
	c.Database.InMemory = v.GetBool("database.inMemory")

	c.Content.MaxBytes = v.GetInt("content.maxBytes")
	c.Content.Sanitize = v.GetBool("content.sanitize")
	c.Content.MathMacros = v.GetStringMapString("content.mathMacros")
}

// DatabaseAddress returns the database "host:port".
func (c *Config) DatabaseAddress() string {
	return net.JoinHostPort(c.Database.Host, c.Database.Port)
}

// NewConfig loads the application config from defaults, the optional `config/.env.<env>` file
// and the environment. Env vars are prefixed with the env name: DEV_SERVER_ADDRESS, PROD_DATABASE_HOST..
func NewConfig() *Config {
	conf := &Config{WorkDir: Getwd()}
	v := viper.New()
	conf.setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("database.inMemory", true)
	case "PROD":
		v.SetDefault("debug", false)
	}
	conf.Env = env

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(conf.WorkDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf.load(v)
	return conf
}
