// Package mailer 把邮件消息投递到消息队列，实际发送由 cmd/mail 完成。
package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
)

const QueueName = "email_queue"

type Publisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type AMQPPublisher struct {
	cfg *config.Config
	ch  *amqp.Channel
}

func NewAMQPPublisher(cfg *config.Config, ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{
		cfg: cfg,
		ch:  ch,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
}
