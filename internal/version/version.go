// Package version decides whether a declared API version is usable and
// whether the client must be warned that it is retiring.
package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resource-catalog-api/internal/apierr"
)

// Default is the version assumed when a request declares none. Named so it
// can be overridden in configuration and exercised on its own in tests.
const Default = "1.0"

// Header carries the declared version on requests.
const Header = "X-API-Version"

// contextKey is where the resolved Context is stored on the gin context.
const contextKey = "api_version"

// State is the outcome of resolving a declared version.
type State int

const (
	// Rejected means the version is not in the supported set.
	Rejected State = iota
	// AcceptedCurrent means the version is supported and not retiring.
	AcceptedCurrent
	// AcceptedDeprecated means the version is supported but scheduled for
	// retirement; responses carry deprecation metadata.
	AcceptedDeprecated
)

// Context is the resolved version for one exchange. Computed once by the
// middleware, read-only thereafter.
type Context struct {
	Version       string
	State         State
	Deprecated    bool
	Sunset        string // RFC3339 retirement timestamp, deprecated only
	SuccessorLink string // where the deprecated client should migrate
}

// Gate resolves declared versions against a supported set. The oldest
// supported version is the deprecated one.
type Gate struct {
	supported     []string
	defaultVer    string
	sunset        string
	successorLink string
}

// Config controls gate construction. Zero values fall back to the service
// defaults.
type Config struct {
	Supported     []string
	Default       string
	Sunset        string
	SuccessorLink string
}

// NewGate builds a Gate. Supported must be ordered oldest first.
func NewGate(cfg Config) *Gate {
	supported := cfg.Supported
	if len(supported) == 0 {
		supported = []string{"1.0", "1.1", "2.0"}
	}
	def := cfg.Default
	if def == "" {
		def = Default
	}
	return &Gate{
		supported:     supported,
		defaultVer:    def,
		sunset:        cfg.Sunset,
		successorLink: cfg.SuccessorLink,
	}
}

// Supported returns the supported set, oldest first.
func (g *Gate) Supported() []string {
	out := make([]string, len(g.supported))
	copy(out, g.supported)
	return out
}

// Resolve maps a declared version string to a Context. An empty declaration
// takes the configured default.
func (g *Gate) Resolve(declared string) Context {
	if declared == "" {
		declared = g.defaultVer
	}
	member := false
	for _, v := range g.supported {
		if v == declared {
			member = true
			break
		}
	}
	if !member {
		return Context{Version: declared, State: Rejected}
	}
	if declared == g.supported[0] {
		return Context{
			Version:       declared,
			State:         AcceptedDeprecated,
			Deprecated:    true,
			Sunset:        g.sunset,
			SuccessorLink: g.successorLink,
		}
	}
	return Context{Version: declared, State: AcceptedCurrent}
}

// Middleware reads the declared version, rejects unsupported ones with the
// supported set listed, and exposes the resolved Context to handlers. For
// deprecated versions it stamps the Deprecation, Sunset and Link response
// headers up front.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		vctx := g.Resolve(c.GetHeader(Header))
		if vctx.State == Rejected {
			apiErr := apierr.VersionUnsupported(vctx.Version, g.Supported())
			c.JSON(http.StatusBadRequest, gin.H{
				"error":              apiErr.Message,
				"supported_versions": g.Supported(),
			})
			c.Abort()
			return
		}

		if vctx.Deprecated {
			c.Writer.Header().Set("Deprecation", "true")
			if vctx.Sunset != "" {
				c.Writer.Header().Set("Sunset", vctx.Sunset)
			}
			if vctx.SuccessorLink != "" {
				c.Writer.Header().Set("Link", `<`+vctx.SuccessorLink+`>; rel="successor-version"`)
			}
		}

		c.Set(contextKey, vctx)
		c.Next()
	}
}

// FromGin returns the Context resolved by the middleware for this exchange.
func FromGin(c *gin.Context) (Context, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Context{}, false
	}
	vctx, ok := v.(Context)
	return vctx, ok
}
