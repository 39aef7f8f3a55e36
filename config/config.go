package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the setup of one game.
type Config struct {
	Title        string          `yaml:"title"`
	Players      []string        `yaml:"players"`
	StartingCash int             `yaml:"starting_cash"`
	BankCash     int             `yaml:"bank_cash"`
	PriceStep    int             `yaml:"price_step"`
	Companies    []CompanyConfig `yaml:"companies"`
	Log          LogConfig       `yaml:"log"`
}

type CompanyConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	ParPrice int    `yaml:"par_price"`
	Shares   int    `yaml:"shares"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a small four-company game for three players.
func Default() Config {
	return Config{
		Title:        "1830 lite",
		Players:      []string{"alice", "bob", "carol"},
		StartingCash: 800,
		BankCash:     12000,
		PriceStep:    10,
		Companies: []CompanyConfig{
			{ID: "PRR", Name: "Pennsylvania", ParPrice: 100, Shares: 10},
			{ID: "NYC", Name: "New York Central", ParPrice: 90, Shares: 10},
			{ID: "B&O", Name: "Baltimore & Ohio", ParPrice: 80, Shares: 10},
			{ID: "C&O", Name: "Chesapeake & Ohio", ParPrice: 70, Shares: 10},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file. Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.Players) < 2 {
		errs = append(errs, errors.New("need at least two players"))
	}
	seen := map[string]bool{}
	for _, p := range c.Players {
		if p == "" {
			errs = append(errs, errors.New("empty player name"))
		} else if seen[p] {
			errs = append(errs, fmt.Errorf("duplicate player %q", p))
		}
		seen[p] = true
	}
	if c.StartingCash <= 0 {
		errs = append(errs, fmt.Errorf("starting_cash must be positive, got %d", c.StartingCash))
	}
	if c.BankCash < 0 {
		errs = append(errs, fmt.Errorf("bank_cash must not be negative, got %d", c.BankCash))
	}
	if c.PriceStep <= 0 {
		errs = append(errs, fmt.Errorf("price_step must be positive, got %d", c.PriceStep))
	}
	if len(c.Companies) == 0 {
		errs = append(errs, errors.New("need at least one company"))
	}
	ids := map[string]bool{}
	for _, co := range c.Companies {
		switch {
		case co.ID == "":
			errs = append(errs, errors.New("company without id"))
		case ids[co.ID]:
			errs = append(errs, fmt.Errorf("duplicate company %q", co.ID))
		case co.ParPrice <= 0:
			errs = append(errs, fmt.Errorf("company %s: par_price must be positive", co.ID))
		case co.Shares <= 0:
			errs = append(errs, fmt.Errorf("company %s: shares must be positive", co.ID))
		}
		ids[co.ID] = true
	}
	return errors.Join(errs...)
}
