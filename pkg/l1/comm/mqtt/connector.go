package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/comm"
)

// DefaultDiscoverTimeout is how long Discover collects retained metadata.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// Connector implements l1.Connector on MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// parseMeta converts a message on a meta topic into ControllerInfo.
// Empty payload means the controller is offline.
func parseMeta(topic string, payload []byte) (info l1.ControllerInfo, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != "meta" || len(payload) == 0 {
		return
	}
	info.Ref = l1.ControllerRef{Type: items[0], ID: items[1]}
	if err := json.Unmarshal(payload, &info.Meta); err != nil {
		glog.Warningf("bad metadata of %s: %v", info.Ref.Name(), err)
	}
	return info, true
}

// Discover implements l1.Connector.
func (c *Connector) Discover(ctx context.Context) ([]l1.ControllerInfo, error) {
	q := NewQueue(c.options, c.topicPrefix)
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	defer q.Close()

	infoCh := make(chan l1.ControllerInfo, 16)
	stop := make(chan struct{})
	defer close(stop)
	q.Sub("+/+/meta", func(topic string, payload []byte) {
		if info, ok := parseMeta(topic, payload); ok {
			select {
			case infoCh <- info:
			case <-stop:
			}
		}
	})

	dur := c.DiscoverTimeout
	if dur <= 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	var res []l1.ControllerInfo
	for {
		select {
		case info := <-infoCh:
			res = append(res, info)
		case <-timeout:
			return res, nil
		case <-ctx.Done():
			return res, ctx.Err()
		}
	}
}

// Connect implements l1.Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	conn := &ControllerConn{Queue: NewQueue(c.options, c.topicPrefix)}
	conn.Init(NewPacketReadWriter(conn.Queue).ForConnector(ref))
	token := conn.Queue.Connect()
	connected := make(chan struct{})
	go func() {
		token.Wait()
		close(connected)
	}()
	select {
	case <-connected:
	case <-ctx.Done():
		conn.Queue.Close()
		return nil, ctx.Err()
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// ControllerConn is a connection to a controller over MQTT.
type ControllerConn struct {
	comm.ControllerConn
	Queue *Queue
}
