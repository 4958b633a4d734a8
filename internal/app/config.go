package app

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/puzlabu/puzlabu-backend/internal/platform/envutil"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

type Config struct {
	Port string

	JWTSecretKey string
	UnlockTTL    time.Duration
	StoreTimeout time.Duration

	CatalogPath      string
	GameTTL          time.Duration
	CodesPerPurchase int

	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "")
	if jwtSecretKey == "" {
		// Tokens minted with an ephemeral key die with the process. Fine for
		// local runs; production must set JWT_SECRET_KEY.
		log.Warn("JWT_SECRET_KEY not set, unlock tokens will not survive restarts")
		jwtSecretKey = randomKey(32)
	}

	var origins []string
	if raw := envutil.Str("ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:             envutil.Str("PORT", "8080"),
		JWTSecretKey:     jwtSecretKey,
		UnlockTTL:        envutil.Duration("UNLOCK_TOKEN_TTL", 24*time.Hour),
		StoreTimeout:     envutil.Duration("ACTIVATION_STORE_TIMEOUT", 10*time.Second),
		CatalogPath:      envutil.Str("CATALOG_PATH", ""),
		GameTTL:          envutil.Duration("GAME_TTL", 30*time.Minute),
		CodesPerPurchase: envutil.Int("CODES_PER_PURCHASE", 1),
		AllowedOrigins:   origins,
	}
}

func randomKey(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
