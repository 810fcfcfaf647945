package revalidate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// =============================================================================
// PageCache Tests
// =============================================================================

func newCachedApp(pc *PageCache) (*fiber.App, *int) {
	hits := 0
	app := fiber.New()
	api := app.Group("/api", pc.Middleware())
	api.Get("/products/*", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"path": c.Path(), "hits": hits})
	})
	api.Get("/blogs", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"hits": hits})
	})
	api.Get("/missing", func(c *fiber.Ctx) error {
		hits++
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false})
	})
	api.Post("/blogs", func(c *fiber.Ctx) error {
		hits++
		return c.SendStatus(fiber.StatusCreated)
	})
	return app, &hits
}

func get(t *testing.T, app *fiber.App, target string) (string, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.Header.Get("X-Cache"), string(body)
}

func TestPageCache_HitAfterMiss(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, hits := newCachedApp(pc)

	state, first := get(t, app, "/api/products/category/dyes")
	assert.Equal(t, "MISS", state)

	state, second := get(t, app, "/api/products/category/dyes")
	assert.Equal(t, "HIT", state)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, *hits)
	assert.Equal(t, 1, pc.Len())
}

func TestPageCache_QueryStringIsPartOfKey(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, hits := newCachedApp(pc)

	get(t, app, "/api/blogs?limit=1")
	get(t, app, "/api/blogs?limit=2")
	assert.Equal(t, 2, *hits)
	assert.Equal(t, 2, pc.Len())
}

func TestPageCache_SkipsNonOKAndNonGET(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, hits := newCachedApp(pc)

	get(t, app, "/api/missing")
	get(t, app, "/api/missing")
	assert.Equal(t, 2, *hits)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/blogs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 0, pc.Len())
}

func TestPageCache_TTL(t *testing.T) {
	pc := NewPageCache("/api", time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pc.nowFunc = func() time.Time { return now }
	app, hits := newCachedApp(pc)

	get(t, app, "/api/blogs")
	now = now.Add(30 * time.Second)
	state, _ := get(t, app, "/api/blogs")
	assert.Equal(t, "HIT", state)

	now = now.Add(time.Minute)
	state, _ = get(t, app, "/api/blogs")
	assert.Equal(t, "MISS", state)
	assert.Equal(t, 2, *hits)
}

func TestPageCache_Purge(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, _ := newCachedApp(pc)

	get(t, app, "/api/products/h-acid")
	get(t, app, "/api/products/category/dyes?x=1")
	get(t, app, "/api/blogs")
	get(t, app, "/api/blogs?limit=3")
	require.Equal(t, 4, pc.Len())

	assert.Equal(t, 2, pc.Purge("/products"))
	assert.Equal(t, 0, pc.Purge("/prod"), "prefix must end at a path boundary")
	assert.Equal(t, 2, pc.Purge("/blogs/"))
	assert.Equal(t, 0, pc.Len())
}

func TestPageCache_KeysSurviveLaterRequests(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, _ := newCachedApp(pc)

	_, acid := get(t, app, "/api/products/h-acid")
	get(t, app, "/api/blogs")
	get(t, app, "/api/products/category/dyes")

	pc.mu.RLock()
	keys := make([]string, 0, len(pc.pages))
	for k := range pc.pages {
		keys = append(keys, k)
	}
	acidPage := pc.pages["/products/h-acid"]
	pc.mu.RUnlock()

	assert.ElementsMatch(t, []string{"/products/h-acid", "/blogs", "/products/category/dyes"}, keys)
	assert.Equal(t, acid, string(acidPage.body))

	assert.Equal(t, 2, pc.Purge("/products"))
	assert.Equal(t, 1, pc.Purge("/blogs"))
	assert.Equal(t, 0, pc.Len())
}

func TestUnderPath(t *testing.T) {
	assert.True(t, underPath("/blogs", "/blogs"))
	assert.True(t, underPath("/blogs/x", "/blogs"))
	assert.True(t, underPath("/blogs?limit=1", "/blogs"))
	assert.False(t, underPath("/blogsx", "/blogs"))
	assert.False(t, underPath("/admin/blogs", "/blogs"))
	assert.True(t, underPath("/anything", ""))
}

// =============================================================================
// Hub Tests
// =============================================================================

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return h.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_PublishReachesClients(t *testing.T) {
	h := NewHub(discardLogger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	conn := dialHub(t, h)
	h.Publish([]string{"/blogs", "/admin/blogs"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(message, &ev))
	assert.Equal(t, "revalidate", ev.Type)
	assert.Equal(t, []string{"/blogs", "/admin/blogs"}, ev.Paths)
}

func TestHub_ClientDisconnect(t *testing.T) {
	h := NewHub(discardLogger)
	conn := dialHub(t, h)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub(discardLogger)
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.Publish([]string{"/blogs"})
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}

// =============================================================================
// Revalidator Tests
// =============================================================================

func TestRevalidator_PurgesAndPublishes(t *testing.T) {
	pc := NewPageCache("/api", 0)
	app, _ := newCachedApp(pc)
	get(t, app, "/api/products/h-acid")
	get(t, app, "/api/blogs")

	h := NewHub(discardLogger)
	r := New(pc, h, discardLogger)
	r.Revalidate("/products", "/admin/products")

	assert.Equal(t, 1, pc.Len())
	require.Len(t, h.broadcast, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(<-h.broadcast, &ev))
	assert.Equal(t, []string{"/products", "/admin/products"}, ev.Paths)
}

func TestRevalidator_NilCollaborators(t *testing.T) {
	r := New(nil, nil, nil)
	assert.NotPanics(t, func() { r.Revalidate("/blogs") })
}
