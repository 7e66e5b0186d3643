// Package config loads the leadform service configuration from YAML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadform/pkg/mailer"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// Mail drivers.
const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Mail   MailConfig   `yaml:"mail"`
	Site   SiteConfig   `yaml:"site"`
	Wizard WizardConfig `yaml:"wizard"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MailConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// SMTP returns the relay settings for mailer.NewSMTPSender.
func (m MailConfig) SMTP() mailer.SMTPConfig {
	return mailer.SMTPConfig{
		Host:     m.Host,
		Port:     m.Port,
		Username: m.Username,
		Password: m.Password,
	}
}

type SiteConfig struct {
	Brand        string `yaml:"brand"`
	WhatsApp     string `yaml:"whatsapp"`
	ThemeVariant string `yaml:"theme_variant"`
	// TemplatesDir holds page templates that replace the embedded ones by
	// file name.
	TemplatesDir string `yaml:"templates_dir"`
}

type WizardConfig struct {
	OpenDelay time.Duration `yaml:"open_delay"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the production defaults: Gmail's submission port and a
// five second wizard delay.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mail: MailConfig{
			Driver: DriverSMTP,
			Host:   "smtp.gmail.com",
			Port:   587,
		},
		Site: SiteConfig{
			Brand:    "Braga Experience",
			WhatsApp: "+4407514996775",
		},
		Wizard: WizardConfig{OpenDelay: wizard.DefaultOpenDelay},
		Log:    LogConfig{Level: "info", Format: FormatJSON},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes raw onto cfg. Unknown keys are rejected; an empty document
// leaves cfg unchanged.
func Parse(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("LEADFORM_ADDR", &cfg.Server.Addr)
	str("SMTP_HOST", &cfg.Mail.Host)
	str("SMTP_USER", &cfg.Mail.Username)
	str("MAIL_TO", &cfg.Mail.To)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LEADFORM_TEMPLATES_DIR", &cfg.Site.TemplatesDir)
	if v, ok := lookup("SMTP_PASSWORD"); ok && v != "" {
		cfg.Mail.Password = v
	}
	if v, ok := lookup("SMTP_PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: SMTP_PORT %q is not a number", ErrInvalid, v)
		}
		cfg.Mail.Port = port
	}
	return nil
}

// fillDefaults points from and to at the SMTP account when unset.
func (c *Config) fillDefaults() {
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	if c.Mail.To == "" {
		c.Mail.To = c.Mail.Username
	}
	c.Mail.Driver = strings.ToLower(strings.TrimSpace(c.Mail.Driver))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Site.TemplatesDir = strings.TrimSpace(c.Site.TemplatesDir)
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	switch c.Mail.Driver {
	case DriverSMTP:
		if err := c.Mail.SMTP().Validate(); err != nil {
			problems = append(problems, "mail: "+err.Error())
		}
		if c.Mail.From == "" || c.Mail.To == "" {
			problems = append(problems, "mail.from and mail.to are required")
		}
	case DriverLog:
	default:
		problems = append(problems, fmt.Sprintf("mail.driver %q must be %q or %q", c.Mail.Driver, DriverSMTP, DriverLog))
	}
	if dir := c.Site.TemplatesDir; dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			problems = append(problems, fmt.Sprintf("site.templates_dir %q is not a directory", dir))
		}
	}
	if c.Wizard.OpenDelay < 0 {
		problems = append(problems, "wizard.open_delay must not be negative")
	}
	switch c.Log.Format {
	case "", FormatJSON, FormatConsole:
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be %q or %q", c.Log.Format, FormatJSON, FormatConsole))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
