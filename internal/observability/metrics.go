package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts new account registrations by outcome.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlife_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// ActivationEmailsTotal counts activation emails dispatched.
	ActivationEmailsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlife_activation_emails_total",
		Help: "Total number of activation emails sent",
	})

	// PostsCreatedTotal counts published posts.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlife_posts_created_total",
		Help: "Total number of posts created",
	})

	// LikeTogglesTotal counts like toggles by resulting action.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlife_like_toggles_total",
		Help: "Total number of like toggles by action (liked/unliked)",
	}, []string{"action"})

	// FollowTogglesTotal counts follow toggles by resulting action.
	FollowTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlife_follow_toggles_total",
		Help: "Total number of follow toggles by action (followed/unfollowed)",
	}, []string{"action"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlife_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
