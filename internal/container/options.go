package container

import (
	"strings"
	"time"
)

// Options are the service settings. humacli exposes each field as a flag and
// as a SERVICE_-prefixed environment variable (kv-url is SERVICE_KV_URL).
type Options struct {
	Port      int    `default:"8888"    help:"Port to listen on"            short:"p"`
	LogFormat string `default:"console" help:"Log format: console or json" name:"log-format"`

	KVURL   string `help:"Shared key-value store URL (redis:// URL or host:port)" name:"kv-url"`
	KVToken string `help:"Shared key-value store access token"                    name:"kv-token"`

	DatabaseURL string `help:"Postgres connection string; empty keeps data in memory" name:"database-url"`

	SessionSecret string `help:"HS256 secret shared with the identity provider"        name:"session-secret"`
	SessionIssuer string `default:"wardrobe" help:"Expected issuer of session tokens"  name:"session-issuer"`
	AdminUsers    string `help:"Comma separated user ids allowed to broadcast"         name:"admin-users"`

	BackgroundRemovalURL string `help:"Background removal service base URL" name:"background-removal-url"`
	BackgroundRemovalKey string `help:"Background removal service API key"  name:"background-removal-key"`
	IdentityProviderURL  string `help:"Identity provider base URL"           name:"identity-provider-url"`

	CacheTTLSeconds int `default:"300" help:"Lifetime of cached catalog and analytics entries" name:"cache-ttl-seconds"`
}

// CacheTTL returns the cache entry lifetime.
func (o *Options) CacheTTL() time.Duration {
	return time.Duration(o.CacheTTLSeconds) * time.Second
}

// Admins returns the configured admin user ids.
func (o *Options) Admins() []string {
	var admins []string

	for _, id := range strings.Split(o.AdminUsers, ",") {
		if id = strings.TrimSpace(id); id != "" {
			admins = append(admins, id)
		}
	}

	return admins
}
