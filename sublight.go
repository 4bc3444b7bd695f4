package sublight

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/angelospk/sublight-go/internal/constants"
	"github.com/angelospk/sublight-go/internal/httpclient"
	"github.com/angelospk/sublight-go/pkg/core/cache"
	"github.com/angelospk/sublight-go/pkg/core/fileops"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
)

const (
	// DefaultIdleTimeout is how long a session stays open without use.
	DefaultIdleTimeout = 10 * time.Minute
	// DefaultMaxTicketWait caps the wait demanded by a download ticket.
	DefaultMaxTicketWait = 60 * time.Second

	defaultUserAgent = "sublight-go/1.0"
)

// Hasher computes the content fingerprint of a video file.
type Hasher interface {
	Hash(filePath string) (string, error)
}

// Config holds the configuration for the Sublight client.
type Config struct {
	ClientID  string
	APIKey    string
	Username  string
	Password  string
	Endpoint  string // Optional: Override default endpoint
	UserAgent string

	IdleTimeout   time.Duration
	MaxTicketWait time.Duration
	RateLimit     int // Requests per second, 0 disables limiting

	HTTPClient *http.Client
	Service    Service // Optional: replaces the SOAP web service
	Hasher     Hasher  // Optional: defaults to the ffprobe backed video hasher
	Cache      cache.Cache
	Logger     *log.Logger
}

// Client is a session managing Sublight client.
type Client struct {
	idleTimeout   time.Duration
	maxTicketWait time.Duration
	newService    func() Service
	hasher        Hasher
	cache         cache.Cache
	logger        *log.Logger

	mu           sync.Mutex // Protects everything below
	clientInfo   ClientInfo
	username     string
	passwordHash string
	service      Service
	session      string
	idleTimer    *time.Timer
	timerGen     uint64
	holds        int // Operations that keep the session open, see holdSession

	downloadMu sync.Mutex // Serialises ZipArchive
}

var (
	_ provider.SubtitleProvider         = (*Client)(nil)
	_ provider.VideoHashSubtitleService = (*Client)(nil)
)

// NewClient creates a new Sublight client.
func NewClient(config Config) (*Client, error) {
	endpoint := constants.DefaultEndpoint
	if config.Endpoint != "" {
		if _, err := url.ParseRequestURI(config.Endpoint); err != nil {
			return nil, fmt.Errorf("invalid Endpoint provided: %w", err)
		}
		endpoint = config.Endpoint
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}

	c := &Client{
		idleTimeout:   config.IdleTimeout,
		maxTicketWait: config.MaxTicketWait,
		hasher:        config.Hasher,
		cache:         config.Cache,
		logger:        logger,
	}
	if c.idleTimeout <= 0 {
		c.idleTimeout = DefaultIdleTimeout
	}
	if c.maxTicketWait <= 0 {
		c.maxTicketWait = DefaultMaxTicketWait
	}
	if c.hasher == nil {
		c.hasher = fileops.NewVideoHasher(nil)
	}

	if config.Service != nil {
		svc := config.Service
		c.newService = func() Service { return svc }
	} else {
		opts := []httpclient.Option{httpclient.WithRateLimit(config.RateLimit)}
		if config.HTTPClient != nil {
			opts = append(opts, httpclient.WithHTTPClient(config.HTTPClient))
		}
		userAgent := config.UserAgent
		c.newService = func() Service {
			return newSOAPService(httpclient.New(endpoint, constants.Namespace, userAgent, opts...))
		}
	}

	c.SetClient(config.ClientID, config.APIKey)
	c.SetUser(config.Username, config.Password)
	return c, nil
}

// SetClient sets the client identifier and API key used at login.
func (c *Client) SetClient(clientID, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clientInfo = ClientInfo{ClientID: clientID, APIKey: apiKey}
}

// SetUser sets the account used at login. An empty username logs in anonymously.
func (c *Client) SetUser(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
	c.passwordHash = PasswordHash(password)
}

// PasswordHash returns the MD5 of the UTF-16LE encoded password as 32 hex digits.
// An empty password yields an empty hash.
func PasswordHash(password string) string {
	if password == "" {
		return ""
	}
	// The encoder substitutes U+FFFD for invalid UTF-8, so it does not fail.
	encoded, _ := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(password)
	sum := md5.Sum([]byte(encoded))
	return hex.EncodeToString(sum[:])
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "Sublight"
}

// Link returns the provider home page.
func (c *Client) Link() string {
	return constants.SiteURL
}

// SubtitleListLink returns the public search page. It does not depend on the result.
func (c *Client) SubtitleListLink(result provider.SearchResult, languageName string) string {
	return constants.SearchPageURL
}
