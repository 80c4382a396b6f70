package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/hashicorp/go-hclog"
    amqp "github.com/rabbitmq/amqp091-go"
)

// Invalidator drops cached responses of the given resources, all of them
// when resources is empty.
type Invalidator interface {
    Invalidate(ctx context.Context, resources []string) (int64, error)
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func(ctx context.Context, resources []string) (int64, error)

func (f InvalidatorFunc) Invalidate(ctx context.Context, resources []string) (int64, error) {
    return f(ctx, resources)
}

// Consumer reads CatalogChangedEvents from a durable queue.
type Consumer struct {
    url   string
    queue string
    inv   Invalidator
    log   hclog.Logger
}

// NewConsumer builds a consumer for queue on the broker at url.
func NewConsumer(url, queue string, inv Invalidator, log hclog.Logger) *Consumer {
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &Consumer{url: url, queue: queue, inv: inv, log: log.Named("cache-invalidation")}
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting
// with exponential backoff (capped at 30s) whenever the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.log.Warn("failed to dial broker", "error", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.log.Warn("consume loop ended, reconnecting", "error", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(10, 0, false); err != nil {
        c.log.Warn("set QoS failed", "error", err)
    }
    if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }
    c.log.Info("consuming", "queue", c.queue)

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(ctx, d.Body); err != nil {
                c.log.Error("handle message failed", "error", err)
                // reject without requeue so a bad message cannot loop
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one message body and invalidates the resources it names.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
    var ev CatalogChangedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := ev.Normalize(); err != nil {
        return err
    }
    n, err := c.inv.Invalidate(ctx, ev.Resources)
    if err != nil {
        return fmt.Errorf("invalidate %v: %w", ev.Resources, err)
    }
    c.log.Info("cache invalidated", "resources", ev.Resources, "reason", ev.Reason, "keys", n)
    return nil
}
