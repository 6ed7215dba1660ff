// Package metrics defines and registers all custom Prometheus metrics for
// the Updates auth backend. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "updates"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the role the account was created with
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// TokenVerificationsTotal counts out-of-band token verifications.
// Label:
//   - result: "valid", "invalid", or "user_missing"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of verify-token calls, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password-reset activity.
// Labels:
//   - stage: "requested" or "completed"
//   - result: "ok", "cooldown", "invalid_token", "expired_token", or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset requests and completions, by result.",
	},
	[]string{"stage", "result"},
)

// AssignmentsTotal counts assignment ledger mutations.
// Label:
//   - action: "assign" or "unassign"
var AssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Total number of church-admin assignment changes, by action.",
	},
	[]string{"action"},
)
