package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input      InputConfig      `yaml:"input"`
	Network    NetworkConfig    `yaml:"network"`
	Report     ReportConfig     `yaml:"report"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Log        LogConfig        `yaml:"log"`
	Reference  ReferenceConfig  `yaml:"reference"`
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Worker     WorkerConfig     `yaml:"worker"`
}

type InputConfig struct {
	AirportsPath   string `yaml:"airports_path"`
	AircraftPath   string `yaml:"aircraft_path"`
	FlightsPath    string `yaml:"flights_path"`
	Delimiter      string `yaml:"delimiter"`
	StrictCapacity bool   `yaml:"strict_capacity"`
}

// NetworkConfig names the origin whose distances fill the airport table's
// first distance column. A flight from any other origin uses the second.
type NetworkConfig struct {
	OriginA string `yaml:"origin_a"`
}

type ReportConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	// Color is one of auto, always, never.
	Color   string `yaml:"color"`
	Summary bool   `yaml:"summary"`
}

type EvaluationConfig struct {
	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReferenceConfig struct {
	// Source is csv or postgres.
	Source string `yaml:"source"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr              string `yaml:"addr"`
	Password          string `yaml:"password"`
	DB                int    `yaml:"db"`
	EvaluationTTLSecs int    `yaml:"evaluation_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	EvaluationsTopic string   `yaml:"evaluations_topic"`
	FlightsTopic     string   `yaml:"flights_topic"`
	GroupID          string   `yaml:"group_id"`
}

type WorkerConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			AirportsPath: "airports.csv",
			AircraftPath: "aeroplanes.csv",
			FlightsPath:  "flights.csv",
			Delimiter:    ",",
		},
		Network: NetworkConfig{
			OriginA: "MAN",
		},
		Report: ReportConfig{
			CurrencySymbol: "£",
			Color:          "auto",
		},
		Evaluation: EvaluationConfig{
			Workers: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Reference: ReferenceConfig{
			Source: "csv",
		},
		HTTP: HTTPConfig{Address: ":8080"},
		GRPC: GRPCConfig{Address: ":9090"},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			EvaluationTTLSecs: 300,
		},
		Kafka: KafkaConfig{
			EvaluationsTopic: "flight-evaluations",
			FlightsTopic:     "flight-requests",
			GroupID:          "routeprofit-worker",
		},
		Worker: WorkerConfig{
			RatePerSecond: 50,
			Burst:         10,
		},
	}
}

// LoadConfig reads path over the defaults, so a file only needs the keys it
// changes.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOptional behaves like LoadConfig but falls back to Default when path
// does not exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c *Config) Validate() error {
	if len([]rune(c.Input.Delimiter)) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if c.Network.OriginA == "" {
		return fmt.Errorf("network.origin_a is required")
	}
	if c.Evaluation.Workers < 1 {
		return fmt.Errorf("evaluation.workers must be at least 1, got %d", c.Evaluation.Workers)
	}
	if c.Worker.RatePerSecond <= 0 {
		return fmt.Errorf("worker.rate_per_second must be positive, got %g", c.Worker.RatePerSecond)
	}
	if c.Worker.Burst < 1 {
		return fmt.Errorf("worker.burst must be at least 1, got %d", c.Worker.Burst)
	}
	switch c.Reference.Source {
	case "csv", "postgres":
	default:
		return fmt.Errorf("reference.source must be csv or postgres, got %q", c.Reference.Source)
	}
	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("report.color must be auto, always or never, got %q", c.Report.Color)
	}
	return nil
}

// DelimiterRune returns the configured delimiter. Validate guarantees it is
// a single rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Input.Delimiter {
		return r
	}
	return ','
}
