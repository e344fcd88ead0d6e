package mqtt

import (
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// fakeToken implements pahomqtt.Token with a manually completed outcome.
type fakeToken struct {
	mu   sync.Mutex
	done chan struct{}
	err  error
}

func newFakeToken() *fakeToken {
	return &fakeToken{done: make(chan struct{})}
}

func (t *fakeToken) Wait() bool {
	<-t.done
	return true
}

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *fakeToken) Done() <-chan struct{} {
	return t.done
}

func (t *fakeToken) Error() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// complete resolves the token, simulating the transport callback.
func (t *fakeToken) complete(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// completedToken returns an already resolved token.
func completedToken() *fakeToken {
	t := newFakeToken()
	t.complete(nil)
	return t
}

// publishRecord captures one Publish call on the fake transport.
type publishRecord struct {
	topic    string
	payload  any
	qos      byte
	retained bool
	token    *fakeToken
}

// fakeClient implements pahomqtt.Client for tests. Publishes are
// recorded with their tokens so tests control acknowledgment timing.
type fakeClient struct {
	mu           sync.Mutex
	connected    bool
	connectToken *fakeToken
	publishes    []publishRecord
	disconnects  int

	// autoAck resolves publish tokens immediately, for tests that do not
	// care about acknowledgment timing.
	autoAck bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{connectToken: newFakeToken()}
}

func (f *fakeClient) setConnected(v bool) {
	f.mu.Lock()
	f.connected = v
	f.mu.Unlock()
}

func (f *fakeClient) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeClient) IsConnectionOpen() bool {
	return f.IsConnected()
}

func (f *fakeClient) Connect() pahomqtt.Token {
	return f.connectToken
}

func (f *fakeClient) Disconnect(_ uint) {
	f.mu.Lock()
	f.disconnects++
	f.connected = false
	f.mu.Unlock()
}

func (f *fakeClient) setAutoAck(v bool) {
	f.mu.Lock()
	f.autoAck = v
	f.mu.Unlock()
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload any) pahomqtt.Token {
	token := newFakeToken()
	f.mu.Lock()
	if f.autoAck {
		token.complete(nil)
	}
	f.publishes = append(f.publishes, publishRecord{
		topic:    topic,
		payload:  payload,
		qos:      qos,
		retained: retained,
		token:    token,
	})
	f.mu.Unlock()
	return token
}

func (f *fakeClient) Subscribe(_ string, _ byte, _ pahomqtt.MessageHandler) pahomqtt.Token {
	return completedToken()
}

func (f *fakeClient) SubscribeMultiple(_ map[string]byte, _ pahomqtt.MessageHandler) pahomqtt.Token {
	return completedToken()
}

func (f *fakeClient) Unsubscribe(_ ...string) pahomqtt.Token {
	return completedToken()
}

func (f *fakeClient) AddRoute(_ string, _ pahomqtt.MessageHandler) {}

func (f *fakeClient) OptionsReader() pahomqtt.ClientOptionsReader {
	return pahomqtt.ClientOptionsReader{}
}

// published returns the records for one topic.
func (f *fakeClient) published(topic string) []publishRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishRecord
	for _, p := range f.publishes {
		if p.topic == topic {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeClient) disconnectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disconnects
}
