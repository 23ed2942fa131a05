package telemetry

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// bufferCapacity bounds how many messages queue while disconnected. At one
// sample per minute this covers several hours of broker outage.
const bufferCapacity = 512

// RealPublisher publishes to an actual MQTT broker, buffering messages
// while the connection is down and replaying them on reconnect.
type RealPublisher struct {
	client    paho.Client
	topicBase string

	mu     sync.Mutex
	buffer *ringBuffer
}

// NewRealPublisher creates a publisher connected to the given broker.
// Topics are published under TopicBase/<device>/.
func NewRealPublisher(broker, clientID, device string) (*RealPublisher, error) {
	p := &RealPublisher{
		topicBase: fmt.Sprintf("%s/%s", TopicBase, device),
		buffer:    newRingBuffer(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c paho.Client) {
			p.replayBuffered(c)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// PublishSample sends a moisture reading at QoS 0.
func (p *RealPublisher) PublishSample(e SampleEvent) error {
	payload, err := FormatSample(e)
	if err != nil {
		return fmt.Errorf("format sample payload: %w", err)
	}
	return p.publish(p.topicBase+"/"+suffixSample, 0, false, payload)
}

// PublishPump sends a pump activation at QoS 1; a missed watering record
// matters more than a missed reading.
func (p *RealPublisher) PublishPump(e PumpEvent) error {
	payload, err := FormatPump(e)
	if err != nil {
		return fmt.Errorf("format pump payload: %w", err)
	}
	return p.publish(p.topicBase+"/"+suffixPump, 1, false, payload)
}

// PublishSystem sends a lifecycle event at QoS 1.
func (p *RealPublisher) PublishSystem(e SystemEvent) error {
	payload, err := FormatSystem(e)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(p.topicBase+"/"+suffixSystem, 1, e.Retained, payload)
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := p.buffer.len()
		p.mu.Unlock()
		log.Printf("telemetry: broker unreachable, buffered message (%d queued)", n)
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) replayBuffered(c paho.Client) {
	p.mu.Lock()
	msgs := p.buffer.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("telemetry: reconnected, replaying %d buffered messages", len(msgs))
	for _, m := range msgs {
		token := c.Publish(m.topic, m.qos, m.retained, m.payload)
		token.WaitTimeout(5 * time.Second)
	}
}
