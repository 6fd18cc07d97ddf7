package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/streadway/amqp"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorer/internal/platform/resilience"
)

const defaultExchange = "cricket.match"

type AMQPConfig struct {
	URL            string
	Exchange       string
	CircuitBreaker resilience.CircuitBreakerConfig
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (channel, func() error, error)

// ChangeMessage is the JSON body published for every change.
type ChangeMessage struct {
	MatchID    string `json:"matchId"`
	Version    int64  `json:"version"`
	Sequence   int    `json:"sequence"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurredAt"`
}

func NewChangeMessage(change match.Change) ChangeMessage {
	return ChangeMessage{
		MatchID:    change.MatchID,
		Version:    change.Version,
		Sequence:   change.Sequence,
		Kind:       string(change.Kind),
		Status:     string(change.Status),
		OccurredAt: change.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}

// RoutingKey is "match.<id>.changed" so consumers can bind per match or with "match.*.changed".
func RoutingKey(matchID string) string {
	return "match." + matchID + ".changed"
}

// AMQPPublisher publishes committed changes to a topic exchange. The
// connection is opened lazily and reopened after a publish failure.
type AMQPPublisher struct {
	url      string
	exchange string
	dial     dialFunc
	breaker  *resilience.CircuitBreaker
	logger   *logging.Logger

	mu        sync.Mutex
	ch        channel
	closeConn func() error
}

func NewAMQPPublisher(cfg AMQPConfig, logger *logging.Logger) *AMQPPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	exchange := strings.TrimSpace(cfg.Exchange)
	if exchange == "" {
		exchange = defaultExchange
	}

	p := &AMQPPublisher{
		url:      strings.TrimSpace(cfg.URL),
		exchange: exchange,
		dial:     dialAMQP,
		breaker:  resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:   logger.Named("amqp"),
	}
	p.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		p.logger.Warn("amqp circuit breaker state changed", "from", from, "to", to)
	})
	return p
}

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return ch, conn.Close, nil
}

func (p *AMQPPublisher) NotifyMatchChanged(ctx context.Context, change match.Change) error {
	body, err := sonic.Marshal(NewChangeMessage(change))
	if err != nil {
		return fmt.Errorf("marshal change message: %w", err)
	}

	err = p.breaker.Execute(func() error {
		ch, err := p.channel()
		if err != nil {
			return err
		}
		err = ch.Publish(p.exchange, RoutingKey(change.MatchID), false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    fmt.Sprintf("%s:%d", change.MatchID, change.Version),
			Timestamp:    change.OccurredAt,
			Body:         body,
		})
		if err != nil {
			p.reset()
			return fmt.Errorf("publish change: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "match change published",
		"match_id", change.MatchID,
		"version", change.Version,
		"exchange", p.exchange,
	)
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) channel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		return p.ch, nil
	}
	if p.url == "" {
		return nil, fmt.Errorf("amqp url is not configured")
	}

	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if closeConn != nil {
			_ = closeConn()
		}
		return nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	p.ch = ch
	p.closeConn = closeConn
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
		p.ch = nil
	}
	if p.closeConn != nil {
		if closeErr := p.closeConn(); err == nil {
			err = closeErr
		}
		p.closeConn = nil
	}
	return err
}
