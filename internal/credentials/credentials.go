// Package credentials resolves provider API keys from the environment, the
// config file and the credential table, in that order.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/llm"
	"github.com/promptforge/promptforge/internal/store"
)

var (
	// ErrInvalidKey is returned by Set when a key does not match its
	// provider's known format.
	ErrInvalidKey = errors.New("invalid API key format")

	// ErrNoStore is returned by write operations on a Resolver without a
	// credential store.
	ErrNoStore = errors.New("no credential store configured")
)

// Key sources reported by List.
const (
	SourceEnv    = "env"
	SourceConfig = "config"
	SourceStore  = "store"
)

var keyPatterns = map[string]*regexp.Regexp{
	"openai":    regexp.MustCompile(`^sk-[A-Za-z0-9]{48,}$`),
	"deepseek":  regexp.MustCompile(`^sk-[A-Za-z0-9]{32,}$`),
	"anthropic": regexp.MustCompile(`^sk-ant-[A-Za-z0-9\-]{95,}$`),
	"google":    regexp.MustCompile(`^[A-Za-z0-9\-_]{39}$`),
}

// KnownProviders lists the providers whose key format is checked.
func KnownProviders() []string {
	out := make([]string, 0, len(keyPatterns))
	for p := range keyPatterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Validate checks key against the provider's known format. Keys for
// providers without a known format only need to be non-blank.
func Validate(provider, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	re, ok := keyPatterns[normalize(provider)]
	if !ok {
		return nil
	}
	if !re.MatchString(key) {
		return fmt.Errorf("%w for %s", ErrInvalidKey, provider)
	}
	return nil
}

// Mask hides all but the first and last four characters of key. Keys of
// eight characters or fewer are hidden completely.
func Mask(key string) string {
	r := []rune(key)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-8) + string(r[len(r)-4:])
}

// EnvVar returns the environment variable checked for provider's key.
func EnvVar(provider string) string {
	return strings.ToUpper(strings.ReplaceAll(normalize(provider), "-", "_")) + "_API_KEY"
}

// Entry describes one available key without revealing it.
type Entry struct {
	Provider   string     `json:"provider"`
	Masked     string     `json:"masked"`
	Source     string     `json:"source"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// Resolver looks up provider API keys.
type Resolver struct {
	store       store.CredentialStoreIface
	cfgProvider string
	cfgKey      string
	getenv      func(string) string
}

// New returns a Resolver. st may be nil, in which case only the
// environment and the config are consulted.
func New(cfg *config.Config, st store.CredentialStoreIface) *Resolver {
	r := &Resolver{store: st, getenv: os.Getenv}
	if cfg != nil {
		r.cfgProvider = llm.KeyProvider(normalize(cfg.LLM.Provider))
		r.cfgKey = cfg.LLM.APIKey
	}
	return r
}

// Get returns the key for provider. The boolean is false when no key is
// available, which callers treat as "proceed without a key".
func (r *Resolver) Get(ctx context.Context, provider string) (string, bool) {
	provider = normalize(provider)
	if provider == "" {
		return "", false
	}
	if k := r.getenv(EnvVar(provider)); k != "" {
		return k, true
	}
	if r.cfgKey != "" && r.cfgProvider == provider {
		return r.cfgKey, true
	}
	if r.store == nil {
		return "", false
	}

	c, err := r.store.Get(ctx, provider)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("credentials: lookup %s: %v", provider, err)
		}
		return "", false
	}
	if err := r.store.TouchLastUsed(ctx, provider); err != nil {
		log.Printf("credentials: touch %s: %v", provider, err)
	}
	return c.APIKey, true
}

// Set validates key and stores it for provider.
func (r *Resolver) Set(ctx context.Context, provider, key string) error {
	provider = normalize(provider)
	if provider == "" {
		return errors.New("provider is required")
	}
	key = strings.TrimSpace(key)
	if err := Validate(provider, key); err != nil {
		return err
	}
	if r.store == nil {
		return ErrNoStore
	}
	if err := r.store.Upsert(ctx, provider, key); err != nil {
		return fmt.Errorf("store key for %s: %w", provider, err)
	}
	log.Printf("credentials: stored key for %s (%s)", provider, Mask(key))
	return nil
}

// Remove deletes the stored key for provider. Keys from the environment or
// config are not affected. Returns store.ErrNotFound if nothing is stored.
func (r *Resolver) Remove(ctx context.Context, provider string) error {
	if r.store == nil {
		return ErrNoStore
	}
	return r.store.Delete(ctx, normalize(provider))
}

// List reports every key the resolver can see, masked. A provider appears
// once, under the source Get would use.
func (r *Resolver) List(ctx context.Context) ([]Entry, error) {
	seen := map[string]bool{}
	var out []Entry

	for _, p := range KnownProviders() {
		if k := r.getenv(EnvVar(p)); k != "" {
			out = append(out, Entry{Provider: p, Masked: Mask(k), Source: SourceEnv})
			seen[p] = true
		}
	}
	if r.cfgKey != "" && r.cfgProvider != "" && !seen[r.cfgProvider] {
		out = append(out, Entry{Provider: r.cfgProvider, Masked: Mask(r.cfgKey), Source: SourceConfig})
		seen[r.cfgProvider] = true
	}
	if r.store != nil {
		creds, err := r.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stored keys: %w", err)
		}
		for _, c := range creds {
			if seen[c.Provider] {
				continue
			}
			e := Entry{Provider: c.Provider, Masked: Mask(c.APIKey), Source: SourceStore}
			if c.LastUsedAt.Valid {
				t := c.LastUsedAt.Time
				e.LastUsedAt = &t
			}
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

func normalize(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
