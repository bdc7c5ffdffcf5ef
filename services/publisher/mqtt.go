package publisher

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"cmueats/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// StatusPublisher pushes location statuses to subscribers.
type StatusPublisher interface {
	PublishStatuses(statuses []models.LocationStatus) (int, error)
	Close()
}

// Config holds the broker settings.
type Config struct {
	Broker      string
	Username    string
	Password    string
	TopicPrefix string
	ClientID    string
}

// publishClient is the part of mqtt.Client the publisher uses.
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// StatePayload is the retained message body for one location.
type StatePayload struct {
	ConceptID   int    `json:"conceptId"`
	Name        string `json:"name"`
	IsOpen      bool   `json:"isOpen"`
	StatusMsg   string `json:"statusMsg"`
	ChangesSoon bool   `json:"changesSoon"`
	UpdatedAt   string `json:"updatedAt"`
}

// MQTTPublisher publishes a location only when its open flag or message changed.
type MQTTPublisher struct {
	client      publishClient
	disconnect  func()
	topicPrefix string
	logger      *zap.Logger
	now         func() time.Time

	mu   sync.Mutex
	last map[int]string
}

// NewMQTTPublisher connects to the broker.
func NewMQTTPublisher(cfg Config, logger *zap.Logger) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker address is required when enabled")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "cmueats"
	}

	broker := cfg.Broker
	if !strings.Contains(broker, "://") {
		broker = "tcp://" + broker
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(15*time.Second) && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	p := newPublisher(client, cfg.TopicPrefix, logger)
	p.disconnect = func() {
		if client.IsConnected() {
			client.Disconnect(250)
		}
	}
	return p, nil
}

func newPublisher(client publishClient, topicPrefix string, logger *zap.Logger) *MQTTPublisher {
	if topicPrefix == "" {
		topicPrefix = "cmueats"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MQTTPublisher{
		client:      client,
		topicPrefix: strings.TrimRight(topicPrefix, "/"),
		logger:      logger,
		now:         time.Now,
		last:        make(map[int]string),
	}
}

// StateTopic is where a location's retained state lives.
func (p *MQTTPublisher) StateTopic(conceptID int) string {
	return p.topicPrefix + "/" + strconv.Itoa(conceptID) + "/state"
}

func fingerprint(st models.LocationStatus) string {
	return strconv.FormatBool(st.IsOpen) + "|" + st.StatusMsg
}

// PublishStatuses sends every changed status and returns how many were published.
func (p *MQTTPublisher) PublishStatuses(statuses []models.LocationStatus) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	published := 0
	var errs []string
	for _, st := range statuses {
		fp := fingerprint(st)
		if p.last[st.ConceptID] == fp {
			continue
		}

		body, err := json.Marshal(StatePayload{
			ConceptID:   st.ConceptID,
			Name:        st.Name,
			IsOpen:      st.IsOpen,
			StatusMsg:   st.StatusMsg,
			ChangesSoon: st.ChangesSoon,
			UpdatedAt:   p.now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return published, fmt.Errorf("encoding payload: %w", err)
		}

		token := p.client.Publish(p.StateTopic(st.ConceptID), 1, true, body)
		if !token.WaitTimeout(5 * time.Second) {
			errs = append(errs, fmt.Sprintf("%d: publish timed out", st.ConceptID))
			continue
		}
		if err := token.Error(); err != nil {
			errs = append(errs, fmt.Sprintf("%d: %v", st.ConceptID, err))
			continue
		}
		p.last[st.ConceptID] = fp
		published++
	}

	if len(errs) > 0 {
		return published, fmt.Errorf("publishing statuses: %s", strings.Join(errs, "; "))
	}
	if published > 0 {
		p.logger.Debug("Published location statuses", zap.Int("count", published))
	}
	return published, nil
}

// Close disconnects from the MQTT broker
func (p *MQTTPublisher) Close() {
	if p.disconnect != nil {
		p.disconnect()
	}
}
