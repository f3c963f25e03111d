package events

import (
	"sync/atomic"
	"testing"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type countingRefresher struct{ n atomic.Int32 }

func (c *countingRefresher) Refresh() { c.n.Add(1) }

func TestHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		topic   string
		payload string
		want    int32
	}{
		{"alert in payload", "bems/events/x", `{"resource": "alert", "action": "created", "id": 4}`, 1},
		{"plural resource", "bems/events/x", `{"resource": "Alerts", "action": "resolved"}`, 1},
		{"resource from topic", "bems/events/alerts", `{"action": "escalated"}`, 1},
		{"equipment ignored", "bems/events/equipment", `{"resource": "equipment"}`, 0},
		{"unreadable payload", "bems/events/alerts", `not json`, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var r countingRefresher
			Handler(&r)(nil, fakeMessage{topic: tc.topic, payload: []byte(tc.payload)})
			if got := r.n.Load(); got != tc.want {
				t.Fatalf("refreshes: want %d, got %d", tc.want, got)
			}
		})
	}
}
