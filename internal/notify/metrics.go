package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "issue_notifications_total",
		Help: "Total number of user notifications by backend and result",
	},
	[]string{"backend", "result"},
)
