package notify

import (
	"time"

	"github.com/civictrack/issue-reporter/internal/config"
)

func rabbitConfig(url, queue string) config.RabbitMQ {
	return config.RabbitMQ{
		URL:            url,
		Queue:          queue,
		QueueDurable:   true,
		PublishTimeout: time.Second,
	}
}
