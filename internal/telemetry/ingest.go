// FilePath: internal/telemetry/ingest.go
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/shredderfleet/fleetcommand/internal/config"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/shredderfleet/fleetcommand/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const storeTimeout = 5 * time.Second

// payload is the JSON body published on machine/{id}/telemetry.
type payload struct {
	Amps        *float64 `json:"amps"`
	Vibration   *float64 `json:"vibration"`
	Temperature *float64 `json:"temperature"`
	JamCount    int      `json:"jamCount"`
	Time        string   `json:"time"` // RFC3339 or Unix seconds
}

// Ingestor subscribes to machine telemetry and forwards readings of known
// machines to the sink. It never touches navigation state.
type Ingestor struct {
	cfg    config.MQTTConfig
	sink   repository.ReadingSink
	dir    Directory
	client mqtt.Client
	now    func() time.Time

	// OnReading, when set, runs after a reading was stored.
	OnReading func(machineID string, r models.Reading)
}

func NewIngestor(cfg config.MQTTConfig, sink repository.ReadingSink, dir Directory) *Ingestor {
	return &Ingestor{cfg: cfg, sink: sink, dir: dir, now: time.Now}
}

// Run connects to the broker, subscribes and blocks until ctx is done.
func (i *Ingestor) Run(ctx context.Context) error {
	if i.cfg.ConnectTimeout <= 0 {
		i.cfg.ConnectTimeout = 10 * time.Second
	}
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.Broker).
		SetClientID(i.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(i.cfg.ConnectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			nuts.L.Warnf("[Ingest] Connection to %s lost: %v", i.cfg.Broker, err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			// subscriptions do not survive a reconnect with a clean session
			if err := i.subscribe(c); err != nil {
				nuts.L.Errorf("[Ingest] %v", err)
			}
		})
	if i.cfg.Username != "" {
		opts.SetUsername(i.cfg.Username).SetPassword(i.cfg.Password)
	}

	i.client = mqtt.NewClient(opts)
	token := i.client.Connect()
	if !token.WaitTimeout(i.cfg.ConnectTimeout) {
		return fmt.Errorf("mqtt connect to %s timed out", i.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", i.cfg.Broker, err)
	}
	nuts.L.Infof("[Ingest] Connected to %s", i.cfg.Broker)

	<-ctx.Done()
	i.client.Disconnect(250)
	nuts.L.Infof("[Ingest] Disconnected from %s", i.cfg.Broker)
	return nil
}

func (i *Ingestor) subscribe(c mqtt.Client) error {
	token := c.Subscribe(i.cfg.Topic, i.cfg.QoS, func(_ mqtt.Client, msg mqtt.Message) {
		i.handleMessage(msg.Topic(), msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", i.cfg.Topic, token.Error())
	}
	nuts.L.Infof("[Ingest] Subscribed to %s QoS=%d", i.cfg.Topic, i.cfg.QoS)
	return nil
}

// handleMessage is the body of the subscription callback. Bad messages are
// logged and dropped.
func (i *Ingestor) handleMessage(topic string, body []byte) bool {
	machineID, ok := MachineIDFromTopic(i.cfg.Topic, topic)
	if !ok {
		nuts.L.Warnf("[Ingest] Invalid topic %q", topic)
		return false
	}
	if _, known := i.dir.Lookup(machineID); !known {
		nuts.L.Warnf("[Ingest] Telemetry for unknown machine %q dropped", machineID)
		return false
	}
	r, err := DecodePayload(body, i.now())
	if err != nil {
		nuts.L.Warnf("[Ingest] Invalid payload topic=%s err=%v", topic, err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := i.sink.StoreReading(ctx, machineID, r); err != nil {
		nuts.L.Errorf("[Ingest] Storing reading of %s failed: %v", machineID, err)
		return false
	}
	if i.OnReading != nil {
		i.OnReading(machineID, r)
	}
	return true
}

// MachineIDFromTopic returns the segment of topic matched by the single "+"
// wildcard of pattern, e.g. "machine/+/telemetry".
func MachineIDFromTopic(pattern, topic string) (string, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return "", false
	}
	id := ""
	for n, seg := range want {
		switch seg {
		case "+":
			if got[n] == "" {
				return "", false
			}
			id = got[n]
		default:
			if got[n] != seg {
				return "", false
			}
		}
	}
	return id, id != ""
}

// DecodePayload validates a telemetry message. A missing or unparsable time
// falls back to now.
func DecodePayload(body []byte, now time.Time) (models.Reading, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.Reading{}, fmt.Errorf("invalid json: %w", err)
	}
	if p.Amps == nil || p.Vibration == nil || p.Temperature == nil {
		return models.Reading{}, fmt.Errorf("amps, vibration and temperature are required")
	}
	if p.JamCount < 0 {
		return models.Reading{}, fmt.Errorf("negative jam count %d", p.JamCount)
	}
	at := now
	if p.Time != "" {
		if parsed, err := parseTime(p.Time); err == nil {
			at = parsed
		} else {
			nuts.L.Warnf("[Ingest] Invalid time %q, using now", p.Time)
		}
	}
	return models.Reading{
		Amps:        *p.Amps,
		Vibration:   *p.Vibration,
		Temperature: *p.Temperature,
		JamCount:    p.JamCount,
		ObservedAt:  at,
	}, nil
}

// parseTime supports RFC3339 or a Unix timestamp in seconds.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q is neither RFC3339 nor unix seconds", s)
	}
	return time.Unix(sec, 0), nil
}
