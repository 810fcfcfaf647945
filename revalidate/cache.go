package revalidate

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type cachedPage struct {
	status      int
	contentType string
	body        []byte
	stored      time.Time
}

// PageCache keeps successful GET responses keyed by page path until the path
// is revalidated or the entry outlives the TTL.
type PageCache struct {
	mu      sync.RWMutex
	pages   map[string]cachedPage
	ttl     time.Duration
	prefix  string
	nowFunc func() time.Time
}

// NewPageCache returns a cache whose keys are request paths with prefix
// stripped, so "/api/products/x" is stored as "/products/x". A zero ttl
// keeps entries until purged.
func NewPageCache(prefix string, ttl time.Duration) *PageCache {
	return &PageCache{
		pages:   make(map[string]cachedPage),
		ttl:     ttl,
		prefix:  prefix,
		nowFunc: time.Now,
	}
}

// key copies the path out of the request buffer, which fasthttp reuses.
func (pc *PageCache) key(c *fiber.Ctx) string {
	key := strings.TrimPrefix(utils.CopyString(c.Path()), pc.prefix)
	if key == "" {
		key = "/"
	}
	if q := c.Request().URI().QueryString(); len(q) > 0 {
		key += "?" + string(q)
	}
	return key
}

// Middleware serves GET requests from the cache and stores 200 responses.
func (pc *PageCache) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := pc.key(c)
		if page, ok := pc.get(key); ok {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, page.contentType)
			return c.Status(page.status).Send(page.body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		c.Set("X-Cache", "MISS")
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		pc.mu.Lock()
		pc.pages[key] = cachedPage{
			status:      fiber.StatusOK,
			contentType: string(c.Response().Header.ContentType()),
			body:        append([]byte(nil), c.Response().Body()...),
			stored:      pc.nowFunc(),
		}
		pc.mu.Unlock()
		return nil
	}
}

func (pc *PageCache) get(key string) (cachedPage, bool) {
	pc.mu.RLock()
	page, ok := pc.pages[key]
	pc.mu.RUnlock()
	if !ok {
		return cachedPage{}, false
	}
	if pc.ttl > 0 && pc.nowFunc().Sub(page.stored) > pc.ttl {
		pc.mu.Lock()
		delete(pc.pages, key)
		pc.mu.Unlock()
		return cachedPage{}, false
	}
	return page, true
}

// Purge drops path and everything beneath it, including query variants.
// It returns the number of entries removed.
func (pc *PageCache) Purge(path string) int {
	path = strings.TrimSuffix(path, "/")
	pc.mu.Lock()
	defer pc.mu.Unlock()

	removed := 0
	for key := range pc.pages {
		if underPath(key, path) {
			delete(pc.pages, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached pages.
func (pc *PageCache) Len() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.pages)
}

func underPath(key, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(key, path) {
		return false
	}
	rest := key[len(path):]
	return rest == "" || rest[0] == '/' || rest[0] == '?'
}
