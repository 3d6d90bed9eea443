package middleware

import (
	"net/http"
	"strings"

	"aniexo/pkg/config"
)

// Directive is one CSP directive and its sources.
type Directive struct {
	Name    string
	Sources []string
}

// Policy is an ordered Content-Security-Policy.
type Policy []Directive

// String renders the policy as a header value. Directives without sources
// are omitted.
func (p Policy) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		if len(d.Sources) == 0 {
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy forbids everything a JSON response never needs.
func APIPolicy() Policy {
	return Policy{
		{"default-src", []string{"'none'"}},
		{"frame-ancestors", []string{"'none'"}},
		{"base-uri", []string{"'none'"}},
		{"form-action", []string{"'none'"}},
	}
}

// SwaggerUIPolicy allows the inline bootstrap script and the assets served by
// http-swagger.
func SwaggerUIPolicy() Policy {
	return Policy{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{"'self'", "'unsafe-inline'"}},
		{"style-src", []string{"'self'", "'unsafe-inline'"}},
		{"img-src", []string{"'self'", "data:"}},
		{"connect-src", []string{"'self'"}},
		{"frame-ancestors", []string{"'none'"}},
		{"object-src", []string{"'none'"}},
	}
}

// SecurityConfig controls SecurityHeaders.
type SecurityConfig struct {
	// CSPEnabled toggles the Content-Security-Policy header (CSP_ENABLED, default true).
	CSPEnabled bool
	// ReportOnly sends Content-Security-Policy-Report-Only instead (CSP_REPORT_ONLY, default false).
	ReportOnly bool
	// PathPolicies override DefaultPolicy for path prefixes; the longest prefix wins.
	PathPolicies  map[string]Policy
	DefaultPolicy Policy
}

// LoadSecurityConfig reads CSP_ENABLED and CSP_REPORT_ONLY and installs the
// API and Swagger UI policies.
func LoadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		CSPEnabled:    config.GetEnvBool("CSP_ENABLED", true),
		ReportOnly:    config.GetEnvBool("CSP_REPORT_ONLY", false),
		DefaultPolicy: APIPolicy(),
		PathPolicies:  map[string]Policy{"/swagger/": SwaggerUIPolicy()},
	}
}

// SecurityHeaders sets nosniff, frame and referrer headers on every response
// and the CSP chosen for the request path.
func SecurityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	header := "Content-Security-Policy"
	if cfg.ReportOnly {
		header = "Content-Security-Policy-Report-Only"
	}
	defaultValue := cfg.DefaultPolicy.String()
	pathValues := make(map[string]string, len(cfg.PathPolicies))
	for prefix, p := range cfg.PathPolicies {
		pathValues[prefix] = p.String()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")

			if cfg.CSPEnabled {
				value, best := defaultValue, -1
				for prefix, v := range pathValues {
					if strings.HasPrefix(r.URL.Path, prefix) && len(prefix) > best {
						value, best = v, len(prefix)
					}
				}
				if value != "" {
					h.Set(header, value)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
