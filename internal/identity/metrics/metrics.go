package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the identity flow.
type Metrics struct {
	LoginsTotal       prometheus.Counter
	UsersCreated      prometheus.Counter
	AuthFailures      prometheus.Counter
	CreateConflicts   prometheus.Counter
	SessionsDiscarded prometheus.Counter
}

// New creates and registers all identity metrics on the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cms_logins_total",
			Help: "Total number of successful logins",
		}),
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cms_users_created_total",
			Help: "Total number of users created in the directory",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "cms_auth_failures_total",
			Help: "Total number of rejected authentication attempts",
		}),
		CreateConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "cms_user_create_conflicts_total",
			Help: "Unique-constraint conflicts recovered during find-or-create",
		}),
		SessionsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "cms_sessions_discarded_total",
			Help: "Handshake sessions discarded on logout",
		}),
	}
}
