package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// VersionMiddleware resolves and advertises the API version of a request.
type VersionMiddleware struct {
	supportedVersions map[string]string // version -> status
	defaultVersion    string
}

// NewVersionMiddleware creates a new version middleware instance.
func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		supportedVersions: map[string]string{"v1": "active"},
		defaultVersion:    "v1",
	}
}

// APIVersionResolver resolves the API version from the request path and
// rejects unsupported versions.
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version, ok := vm.versionFromPath(c.Request().URL.Path)
			if !ok {
				return c.JSON(http.StatusNotFound, map[string]string{
					"error": "Unsupported API version",
				})
			}
			c.Set("api_version", version)
			return next(c)
		}
	}
}

// VersionHeader tags every response in a route group with its API version.
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			return next(c)
		}
	}
}

func (vm *VersionMiddleware) versionFromPath(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	if len(segment) < 2 || segment[0] != 'v' || segment[1] < '0' || segment[1] > '9' {
		return vm.defaultVersion, true // unversioned path, use default
	}
	if _, supported := vm.supportedVersions[segment]; !supported {
		return "", false
	}
	return segment, true
}
