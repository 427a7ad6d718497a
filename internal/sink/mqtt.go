package sink

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

// MQTTSink publishes each reading as a JSON payload to a single topic.
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

// NewMQTTSink connects to the broker and returns a sink publishing to topic.
func NewMQTTSink(broker, clientID, topic string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTSink{client: client, topic: topic}, nil
}

// Persist publishes every reading at QoS 1 and disconnects when done.
func (s *MQTTSink) Persist(readings []models.Reading) error {
	defer s.client.Disconnect(250)
	for _, r := range readings {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal reading: %w", err)
		}
		if token := s.client.Publish(s.topic, 1, false, payload); token.Wait() && token.Error() != nil {
			return fmt.Errorf("mqtt publish: %w", token.Error())
		}
	}
	log.WithFields(log.Fields{
		"published": len(readings),
		"topic":     s.topic,
	}).Info("MQTT sink completed")
	return nil
}
