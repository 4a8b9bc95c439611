package config

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/verdix/verdix/pkg/conf"
)

const (
	SheetsMode   = "sheets"
	PostgresMode = "postgres"
	MemoryMode   = "memory"
)

const (
	DefaultLeaderboardPassphrase = "admin123"
	DefaultSpreadsheetName       = "Verdix_DB"
	DefaultRubric                = "pitch-5"
)

type Config struct {
	Endpoints struct {
		HostName          string
		Home              string
		Register          string
		Judge             string
		JudgeLogin        string
		JudgeLogout       string
		Score             string
		Leaderboard       string
		LeaderboardLogin  string
		LeaderboardLogout string
		Api               struct {
			Leaderboard string
			Teams       string
			Countdown   string
		}
	}

	Server struct {
		ListenAddress string
		Cookies       struct {
			AuthenticationKey string
			EncryptionKey     string
			Secure            bool
		}
	}

	Store struct {
		Mode   string
		Tables struct {
			Teams  string
			Scores string
			Config string
		}
		Sheets struct {
			SpreadsheetID   string
			SpreadsheetName string
			Credentials     string
			CredentialsFile string
			WritesPerMinute int
		}
		DataBase struct {
			Host string
			Port uint16
			User string
			Pass string
			Name string
		}
		Memory struct {
			Tracks []string
		}
	}

	Access struct {
		LeaderboardPassphrase string
		JudgePassphrase       string
	}

	Registration struct {
		Deadline string
		Timezone string
	}

	Scoring struct {
		Rubric     string
		RubricFile string
	}

	Cache struct {
		TracksTTL time.Duration
	}

	Telegram struct {
		BotToken     string
		ChatID       int64
		AllowedChats []int64
	}

	Log struct {
		Production bool
		File       string
		MaxSizeMB  int
		MaxBackups int
	}

	Branding struct {
		Title    string
		Subtitle string
	}
}

func ParseConfig(path string) (*Config, error) {
	config := &Config{}
	if err := conf.ParseConfig(config, conf.EnvPrefix("VERDIX"), conf.File(path)); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid config")
	}
	return config, nil
}

func setDefault(value *string, def string) {
	if *value == "" {
		*value = def
	}
}

func (c *Config) applyDefaults() {
	e := &c.Endpoints
	setDefault(&e.Home, "/")
	setDefault(&e.Register, "/register")
	setDefault(&e.Judge, "/judge")
	setDefault(&e.JudgeLogin, "/judge/login")
	setDefault(&e.JudgeLogout, "/judge/logout")
	setDefault(&e.Score, "/judge/score")
	setDefault(&e.Leaderboard, "/leaderboard")
	setDefault(&e.LeaderboardLogin, "/leaderboard/login")
	setDefault(&e.LeaderboardLogout, "/leaderboard/logout")
	setDefault(&e.Api.Leaderboard, "/api/leaderboard")
	setDefault(&e.Api.Teams, "/api/teams")
	setDefault(&e.Api.Countdown, "/api/countdown")

	setDefault(&c.Server.ListenAddress, ":8080")

	setDefault(&c.Store.Mode, SheetsMode)
	setDefault(&c.Store.Tables.Teams, "Teams")
	setDefault(&c.Store.Tables.Scores, "Scores")
	setDefault(&c.Store.Tables.Config, "Config")
	if c.Store.Sheets.SpreadsheetID == "" {
		setDefault(&c.Store.Sheets.SpreadsheetName, DefaultSpreadsheetName)
	}
	if c.Store.Sheets.WritesPerMinute == 0 {
		c.Store.Sheets.WritesPerMinute = 60
	}
	if c.Store.DataBase.Port == 0 {
		c.Store.DataBase.Port = 5432
	}

	setDefault(&c.Access.LeaderboardPassphrase, DefaultLeaderboardPassphrase)

	setDefault(&c.Registration.Deadline, "15-03-2026 23:59")
	setDefault(&c.Registration.Timezone, "Local")

	if c.Scoring.RubricFile == "" {
		setDefault(&c.Scoring.Rubric, DefaultRubric)
	}

	if c.Cache.TracksTTL == 0 {
		c.Cache.TracksTTL = 30 * time.Second
	}

	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}

	setDefault(&c.Branding.Title, "Verdix")
	setDefault(&c.Branding.Subtitle, "The Startup Scoring System")
}

func (c *Config) validate() error {
	switch c.Store.Mode {
	case SheetsMode:
		if c.Store.Sheets.Credentials == "" && c.Store.Sheets.CredentialsFile == "" {
			return errors.New("Sheets mode requires Store.Sheets.Credentials or Store.Sheets.CredentialsFile")
		}
	case PostgresMode:
		if c.Store.DataBase.Host == "" || c.Store.DataBase.Name == "" {
			return errors.New("Postgres mode requires Store.DataBase.Host and Store.DataBase.Name")
		}
	case MemoryMode:
	default:
		return errors.Errorf("Unknown store mode %q", c.Store.Mode)
	}
	return nil
}

// Location resolves Registration.Timezone; "Local" and "" mean the process zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Registration.Timezone == "" || c.Registration.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Registration.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load timezone %s", c.Registration.Timezone)
	}
	return loc, nil
}

func (c *Config) DataBaseDSN() string {
	db := c.Store.DataBase
	return "host=" + db.Host +
		" port=" + strconv.FormatUint(uint64(db.Port), 10) +
		" user=" + db.User +
		" password=" + db.Pass +
		" dbname=" + db.Name +
		" sslmode=disable"
}

// Default returns a memory-mode config with every default applied.
func Default() *Config {
	config := &Config{}
	config.Store.Mode = MemoryMode
	config.applyDefaults()
	return config
}
