// Package events listens for backend change notifications on MQTT and turns
// them into immediate dashboard refreshes.
package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	ResourceAlert     = "alert"
	ResourceEquipment = "equipment"
)

// ChangeEvent is published by the platform after a record changes.
type ChangeEvent struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	ID       int64     `json:"id,omitempty"`
	At       time.Time `json:"at"`
}

// Refresher is anything that can reload itself on demand.
type Refresher interface {
	Refresh()
}

// Handler refreshes target whenever an alert changes. The resource comes
// from the payload, or from the last topic segment when the payload omits
// it. Unreadable payloads are logged and dropped.
func Handler(target Refresher) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		var ev ChangeEvent
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping unreadable change event")
			return
		}
		resource := normalize(ev.Resource)
		if resource == "" {
			resource = normalize(msg.Topic()[strings.LastIndex(msg.Topic(), "/")+1:])
		}
		if resource != ResourceAlert {
			log.Debug().Str("topic", msg.Topic()).Str("resource", resource).Msg("ignoring change event")
			return
		}
		log.Info().Str("action", ev.Action).Int64("id", ev.ID).Msg("alert changed, refreshing dashboard")
		target.Refresh()
	}
}

// Subscribe connects to broker and routes topic to target. The returned
// function unsubscribes and disconnects.
func Subscribe(broker, topic string, target Refresher) (func(), error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("energy-admin-console").
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	if token := client.Subscribe(topic, 0, Handler(target)); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("mqtt subscribe %s: %w", topic, token.Error())
	}
	log.Info().Str("broker", broker).Str("topic", topic).Msg("listening for change events")
	return func() {
		client.Unsubscribe(topic).Wait()
		client.Disconnect(250)
	}, nil
}

// Publish sends ev on prefix/<resource>.
func Publish(client mqtt.Client, prefix string, ev ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	topic := strings.TrimSuffix(prefix, "/") + "/" + normalize(ev.Resource)
	token := client.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func normalize(resource string) string {
	r := strings.ToLower(strings.TrimSpace(resource))
	return strings.TrimSuffix(r, "s")
}
