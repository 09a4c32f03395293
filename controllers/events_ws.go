package controller

import (
	"log"

	"github.com/gofiber/websocket/v2"

	"minutemate/utils"
)

// HandleChangeEventsWS streams entity change events to a connected client.
// Every committed insert/update/delete on meetings, tasks, teams and settings
// is pushed as one JSON message.
func HandleChangeEventsWS(notifier *utils.Notifier) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		events, cancel := notifier.Subscribe()
		defer cancel()

		// Drain incoming frames so closes and pings are noticed
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case event := <-events:
				if err := c.WriteJSON(event); err != nil {
					log.Printf("Error writing change event: %v", err)
					return
				}
			}
		}
	}
}
