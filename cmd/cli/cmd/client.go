package cmd

import (
	"context"
	"fmt"

	sublight "github.com/angelospk/sublight-go"
	"github.com/angelospk/sublight-go/pkg/core/cache"
	"github.com/angelospk/sublight-go/pkg/core/fileops"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/spf13/viper"
)

// SublightClient is the part of the Sublight client the commands use.
type SublightClient interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SearchMovies(ctx context.Context, query string) ([]provider.Movie, error)
	SubtitleList(ctx context.Context, result provider.SearchResult, languageName string) ([]provider.SubtitleDescriptor, error)
	SubtitleListByFiles(ctx context.Context, files []string, languageName string) (map[string][]provider.SubtitleDescriptor, error)
	PublishSubtitle(ctx context.Context, req sublight.PublishRequest) (string, error)
}

var _ SublightClient = (*sublight.Client)(nil)

// NewSublightClientFunc allows overriding the client creation for testing.
var NewSublightClientFunc = func(config sublight.Config) (SublightClient, error) {
	client, err := sublight.NewClient(config)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewVideoHasherFunc allows overriding the video hasher for testing.
var NewVideoHasherFunc = func() sublight.Hasher {
	return fileops.NewVideoHasher(nil)
}

// clientConfigFromViper builds the client configuration from config file,
// environment and defaults.
func clientConfigFromViper() (sublight.Config, error) {
	clientID := viper.GetString(CfgKeyClientID)
	if clientID == "" {
		return sublight.Config{}, fmt.Errorf("Sublight client id not configured. Set key '%s' or env %s_SUBLIGHT_CLIENTID", CfgKeyClientID, envPrefix)
	}

	return sublight.Config{
		ClientID:      clientID,
		APIKey:        viper.GetString(CfgKeyAPIKey),
		Username:      viper.GetString(CfgKeyUsername),
		Password:      viper.GetString(CfgKeyPassword),
		Endpoint:      viper.GetString(CfgKeyEndpoint),
		IdleTimeout:   viper.GetDuration(CfgKeyIdleTimeout),
		MaxTicketWait: viper.GetDuration(CfgKeyMaxTicketWait),
		RateLimit:     viper.GetInt(CfgKeyRateLimit),
		Hasher:        NewVideoHasherFunc(),
		Logger:        logger,
	}, nil
}

// newCacheFromViper returns the configured cache, or nil when caching is off.
func newCacheFromViper() (cache.Cache, error) {
	name := viper.GetString(CfgKeyCacheProvider)
	if name == "" || name == "none" {
		return nil, nil
	}
	c, err := cache.New(name, cache.ProviderConfig{
		Size:          viper.GetInt(CfgKeyCacheSize),
		TTL:           viper.GetDuration(CfgKeyCacheTTL),
		Logger:        logger,
		RedisAddress:  viper.GetString(CfgKeyRedisAddress),
		RedisPassword: viper.GetString(CfgKeyRedisPassword),
		RedisDB:       viper.GetInt(CfgKeyRedisDB),
		Group:         "sublight",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s cache: %w", name, err)
	}
	return c, nil
}

// newClient creates a client from the configuration. The returned cleanup
// logs the session out and releases the cache.
func newClient() (SublightClient, func(), error) {
	config, err := clientConfigFromViper()
	if err != nil {
		return nil, nil, err
	}

	c, err := newCacheFromViper()
	if err != nil {
		return nil, nil, err
	}
	config.Cache = c

	client, err := NewSublightClientFunc(config)
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		return nil, nil, fmt.Errorf("failed to initialize Sublight client: %w", err)
	}

	cleanup := func() {
		if err := client.Logout(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to log out")
		}
		if c != nil {
			if err := c.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close cache")
			}
		}
	}
	return client, cleanup, nil
}
