// Package config loads training defaults from the environment. Every
// value has a built-in default, so an empty environment is fully usable;
// a .env file, when present, is loaded first.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Envs holds the tunables a run starts from. CLI flags override these.
type Envs struct {
	Episodes     int
	MaxSteps     int
	Seed         int64
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64

	PherDecay       float64
	PherDeposit     float64
	PherPenalty     float64
	ObstaclePenalty float64
	WallPenalty     float64
	GoalBonus       float64

	Width    int
	Height   int
	FreeProb float64

	ChartDir string
	DelayMs  int
}

// Load reads the environment (and .env if present) into an Envs.
func Load() Envs {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[ANTRL] [INFO] .env not loaded: %v", err)
	}
	return Envs{
		Episodes:        getEnvInt("ANTRL_EPISODES", 220),
		MaxSteps:        getEnvInt("ANTRL_MAX_STEPS", 300),
		Seed:            int64(getEnvInt("ANTRL_SEED", 1)),
		Alpha:           getEnvFloat("ANTRL_ALPHA", 0.2),
		Gamma:           getEnvFloat("ANTRL_GAMMA", 0.95),
		Epsilon:         getEnvFloat("ANTRL_EPSILON", 0.4),
		EpsilonMin:      getEnvFloat("ANTRL_EPSILON_MIN", 0.01),
		EpsilonDecay:    getEnvFloat("ANTRL_EPSILON_DECAY", 0.995),
		PherDecay:       getEnvFloat("ANTRL_PHER_DECAY", 0.97),
		PherDeposit:     getEnvFloat("ANTRL_PHER_DEPOSIT", 0.6),
		PherPenalty:     getEnvFloat("ANTRL_PHER_PENALTY", 1.0),
		ObstaclePenalty: getEnvFloat("ANTRL_OBSTACLE_PENALTY", -1.0),
		WallPenalty:     getEnvFloat("ANTRL_WALL_PENALTY", -1.0),
		GoalBonus:       getEnvFloat("ANTRL_GOAL_BONUS", 50.0),
		Width:           getEnvInt("ANTRL_WIDTH", 24),
		Height:          getEnvInt("ANTRL_HEIGHT", 16),
		FreeProb:        getEnvFloat("ANTRL_FREE_PROB", 0.72),
		ChartDir:        getEnvWithDefault("ANTRL_CHART_DIR", "charts"),
		DelayMs:         getEnvInt("ANTRL_DELAY_MS", 0),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[ANTRL] [WARN] %s=%q is not an integer, using %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("[ANTRL] [WARN] %s=%q is not a number, using %g", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
