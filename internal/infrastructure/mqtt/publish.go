package mqtt

// PublishTelemetry sends one telemetry payload at QoS 1, retain false.
//
// Preconditions, checked atomically against the client's state: a client
// exists, the connection is up, and no earlier publish is still awaiting
// its delivery acknowledgment. If any precondition fails the call is a
// silent no-op - the message is dropped, not queued, and the next cycle
// publishes fresh readings instead.
//
// On acceptance by the transport the in-flight token is set before the
// call returns. The token is cleared only by the delivery-acknowledgment
// callback (handlePublishAck), for success and failure alike.
//
// Parameters:
//   - topic: Destination topic (e.g. "Sensores/dados/json")
//   - payload: Encoded telemetry payload
func (c *Client) PublishTelemetry(topic string, payload []byte) {
	c.mu.Lock()
	if c.client == nil || c.state != StateConnected {
		c.mu.Unlock()
		if logger := c.getLogger(); logger != nil {
			logger.Debug("publish skipped: not connected", "topic", topic)
		}
		return
	}
	if c.inFlight {
		c.mu.Unlock()
		if logger := c.getLogger(); logger != nil {
			logger.Debug("publish skipped: previous delivery unacknowledged", "topic", topic)
		}
		return
	}
	client := c.client
	c.inFlight = true
	c.mu.Unlock()

	token := client.Publish(topic, byte(c.cfg.QoS), false, payload)
	go func() {
		<-token.Done()
		c.handlePublishAck(token.Error())
	}()
}

// handlePublishAck is the delivery-acknowledgment callback.
//
// The token is cleared unconditionally; a failed delivery is reported
// and the message is lost - no redelivery.
func (c *Client) handlePublishAck(err error) {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	if logger := c.getLogger(); logger != nil {
		if err != nil {
			logger.Warn("publish delivery failed", "error", err)
		} else {
			logger.Debug("publish acknowledged")
		}
	}
}

// publishInFlight reports whether a delivery acknowledgment is pending.
func (c *Client) publishInFlight() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight
}
