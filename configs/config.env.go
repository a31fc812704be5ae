package configs

import (
	"strings"

	"github.com/samber/lo"
)

type Environment struct {
	PORT               string `json:"PORT" env:"PORT" envDefault:"8000"`
	GO_ENV             string `json:"GO_ENV" env:"GO_ENV" envDefault:"development"`
	DSN                string `json:"DSN" env:"DSN" envDefault:"file:database.sqlite?cache=shared"`
	BSN                string `json:"BSN" env:"BSN"`
	KAFKA_TOPIC        string `json:"KAFKA_TOPIC" env:"KAFKA_TOPIC" envDefault:"users.events"`
	GORUTINE_POOL_SIZE string `json:"GORUTINE_POOL_SIZE" env:"GORUTINE_POOL_SIZE" envDefault:"100"`
	LOG_LEVEL          string `json:"LOG_LEVEL" env:"LOG_LEVEL" envDefault:"info"`
}

// Brokers splits BSN into a clean broker address list. An empty BSN yields no brokers.
func (e *Environment) Brokers() []string {
	brokers := lo.Map(strings.Split(e.BSN, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})

	return lo.Filter(brokers, func(item string, _ int) bool {
		return item != ""
	})
}

func (e *Environment) IsProduction() bool {
	return e.GO_ENV == "production"
}
