package businessflow

import (
	"context"
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// KeyProbe reports whether a candidate key is already in use. It is a read,
// not a reservation.
type KeyProbe func(ctx context.Context, key string) (bool, error)

// DrawFunc returns a random string of length n.
type DrawFunc func(n int) (string, error)

// KeyGenerator produces short keys and stats tokens.
type KeyGenerator struct {
	keyLength   int
	tokenLength int
	draw        DrawFunc
	log         *zap.Logger
}

// KeyGeneratorOption customizes a KeyGenerator.
type KeyGeneratorOption func(*KeyGenerator)

// WithDraw replaces the random source.
func WithDraw(draw DrawFunc) KeyGeneratorOption {
	return func(g *KeyGenerator) {
		g.draw = draw
	}
}

// NewKeyGenerator returns a generator for keys of keyLength and tokens of tokenLength.
func NewKeyGenerator(keyLength, tokenLength int, log *zap.Logger, opts ...KeyGeneratorOption) *KeyGenerator {
	g := &KeyGenerator{
		keyLength:   keyLength,
		tokenLength: tokenLength,
		draw:        RandomAlphanumeric,
		log:         log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws up to maxAttempts candidates and returns the first one the
// probe reports as free. The key is not re-verified after the probe.
func (g *KeyGenerator) Generate(ctx context.Context, exists KeyProbe, maxAttempts int) (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		key, err := g.draw(g.keyLength)
		if err != nil {
			return "", NewBusinessError("KEY_DRAW_FAILED", "Failed to draw random short key", err)
		}

		taken, err := exists(ctx, key)
		if err != nil {
			return "", NewStoreError("KEY_CHECK_FAILED", "Failed to check short key", err)
		}
		if !taken {
			return key, nil
		}

		shortKeyCollisions.WithLabelValues("probe").Inc()
		g.log.Warn("Short key collision",
			zap.String("short_key", key),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
		)
	}

	return "", NewBusinessError("KEY_GENERATION_EXHAUSTED", "All short key candidates collided", ErrKeyGenerationExhausted)
}

// Token mints a stats token. Collisions are harmless so there is no probe.
func (g *KeyGenerator) Token() (string, error) {
	token, err := g.draw(g.tokenLength)
	if err != nil {
		return "", NewBusinessError("TOKEN_DRAW_FAILED", "Failed to draw random stats token", err)
	}
	return token, nil
}

// RandomAlphanumeric returns n characters drawn uniformly from [A-Za-z0-9].
func RandomAlphanumeric(n int) (string, error) {
	max := big.NewInt(int64(len(alphanumeric)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphanumeric[idx.Int64()]
	}
	return string(b), nil
}
