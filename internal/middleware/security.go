package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// RateLimiter stores rate limiters for each IP
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a per-IP limiter allowing r requests per second with burst b
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old entries every minute
	go rl.cleanupVisitors()

	return rl
}

// GetLimiter returns the rate limiter for the given IP
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.evictIdle(3 * time.Minute)
	}
}

func (rl *RateLimiter) evictIdle(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(rl.visitors, ip)
		}
	}
}

// RateLimitMiddleware rejects clients that exceed their per-IP budget
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)

		if !l.Allow() {
			log.Printf("Rate limit exceeded for %s", ip)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "Please slow down your requests",
			})
			return
		}

		c.Next()
	}
}

// RefreshProtectionMiddleware lets the wrapped endpoint run at most once per cooldown.
// A call answered with a 5xx does not use up the cooldown.
func RefreshProtectionMiddleware(cooldown time.Duration) gin.HandlerFunc {
	var (
		lastRefresh time.Time
		mu          sync.Mutex
	)

	return func(c *gin.Context) {
		mu.Lock()
		if since := time.Since(lastRefresh); !lastRefresh.IsZero() && since < cooldown {
			mu.Unlock()
			remaining := (cooldown - since).Round(time.Second)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Refresh too frequent",
				"message": fmt.Sprintf("Please wait %s before refreshing again", remaining),
			})
			return
		}
		previous := lastRefresh
		started := time.Now()
		lastRefresh = started
		mu.Unlock()

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			mu.Lock()
			if lastRefresh.Equal(started) {
				lastRefresh = previous
			}
			mu.Unlock()
		}
	}
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", buildCSPPolicy(c.Request.URL.Path))
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Server", "")

		// Prevent caching of admin responses
		if strings.HasPrefix(c.Request.URL.Path, "/api/admin/") {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		c.Next()
	}
}

// AdminKeyMiddleware accepts requests whose X-Admin-Key matches the bcrypt hash.
// An empty hash disables the admin endpoints entirely.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)) != nil {
			log.Printf("Rejected admin request from %s: %s", c.ClientIP(), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}

// SecurityScanDetection logs probes for files a catalog API never serves
func SecurityScanDetection() gin.HandlerFunc {
	suspiciousPaths := []string{
		".env", ".git", ".DS_Store", "wp-admin", "phpmyadmin",
		".htaccess", "config.php", "wp-config.php", ".ssh", "id_rsa",
		".bak", ".sql", ".db", "credentials",
	}
	injectionWords := []string{"union", "select", "drop", "insert"}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		ip := c.ClientIP()

		for _, suspicious := range suspiciousPaths {
			if strings.Contains(path, suspicious) {
				log.Printf("Security scan attempt from %s: %s %s", ip, c.Request.Method, path)
				break
			}
		}

		query := strings.ToLower(c.Request.URL.RawQuery)
		for _, word := range injectionWords {
			if strings.Contains(query, word) {
				log.Printf("SQL injection attempt from %s: %s", ip, c.Request.URL.RawQuery)
				break
			}
		}

		c.Next()
	}
}

// HTTPMethodFilter restricts allowed HTTP methods
func HTTPMethodFilter(allowedMethods []string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, method := range allowedMethods {
		allowed[method] = true
	}

	return func(c *gin.Context) {
		if !allowed[c.Request.Method] {
			log.Printf("Blocked HTTP method %s from %s", c.Request.Method, c.ClientIP())
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
				"error": "Method not allowed",
			})
			return
		}
		c.Next()
	}
}

// UserAgentFilter blocks requests from known attack tools
func UserAgentFilter() gin.HandlerFunc {
	suspiciousAgents := []string{
		"sqlmap", "nikto", "nmap", "masscan", "gobuster",
		"dirbuster", "w3af", "havij",
	}

	return func(c *gin.Context) {
		userAgent := strings.ToLower(c.GetHeader("User-Agent"))

		for _, suspicious := range suspiciousAgents {
			if strings.Contains(userAgent, suspicious) {
				log.Printf("Blocked suspicious user agent from %s: %s", c.ClientIP(), userAgent)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
		}

		c.Next()
	}
}

// buildCSPPolicy relaxes the policy for the Swagger UI, which needs inline
// scripts and styles, and outside release mode.
func buildCSPPolicy(path string) string {
	if os.Getenv("GIN_MODE") != "release" || strings.HasPrefix(path, "/swagger/") {
		return "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https:; " +
			"connect-src 'self';"
	}

	return "default-src 'none'; " +
		"base-uri 'none'; " +
		"form-action 'none'; " +
		"frame-ancestors 'none';"
}
