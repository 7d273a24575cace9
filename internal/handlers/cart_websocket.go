package handlers

import (
	"log"
	"net/http"
	"time"

	"chaikada_store_front/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow all origins (tighten in production)
		return true
	},
}

const badgeDebounce = 300 * time.Millisecond

//
// 🔔 GET /api/cart/ws
//
// Live cart-count badge. Subscribes to the cart-changed bus; the signal
// carries no payload, so each push re-fetches the count through the facade.
// Bursts of mutations collapse through a short debounce, and the debounce
// timer is cancelled when the socket goes away.
func (d *Deps) CartWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	signals, cancel := d.Bus.Subscribe()
	defer cancel()

	pushCh := make(chan struct{}, 1)
	debouncer := events.NewDebouncer(badgeDebounce, func() {
		select {
		case pushCh <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	facade := d.facadeFor(c)
	ctx := c.Request.Context()

	// initial count on connect
	count, _ := facade.ItemCount(ctx)
	if err := conn.WriteJSON(gin.H{"type": "cart_count", "count": count}); err != nil {
		return
	}

	for {
		select {
		case <-signals:
			debouncer.Trigger()
		case <-pushCh:
			count, err := facade.ItemCount(ctx)
			if err != nil {
				log.Printf("⚠️ Cart count refresh failed: %v", err)
				continue
			}
			if err := conn.WriteJSON(gin.H{"type": "cart_count", "count": count}); err != nil {
				log.Printf("❌ WebSocket write failed: %v", err)
				return
			}
		case <-ctx.Done():
			return
		case <-time.After(30 * time.Second):
			// keepalive ping
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
