package main

import (
	"math/rand"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/config"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/events"
)

// Publishes sample change events so the console's push refresh can be
// exercised without the platform.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("energy-admin-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	prefix := strings.TrimSuffix(config.MQTTEventsTopic(), "#")
	resources := []string{events.ResourceAlert, events.ResourceAlert, events.ResourceEquipment}
	actions := []string{"created", "acknowledged", "resolved", "escalated"}

	for i := 0; i < 100; i++ {
		ev := events.ChangeEvent{
			Resource: resources[rand.Intn(len(resources))],
			Action:   actions[rand.Intn(len(actions))],
			ID:       int64(1 + rand.Intn(50)),
			At:       time.Now().UTC(),
		}
		if err := events.Publish(client, prefix, ev); err != nil {
			log.Error().Err(err).Msg("publish failed")
		}
		time.Sleep(2 * time.Second)
	}
	log.Info().Msg("simulation done")
}
