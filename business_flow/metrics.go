package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shortLinksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkhub_short_links_created_total",
			Help: "Total number of short links created",
		},
	)

	shortLinkRedirects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkhub_short_link_redirects_total",
			Help: "Total number of successful short link redirects",
		},
	)

	// stage is "probe" for existence-check collisions and "insert" for unique constraint conflicts
	shortKeyCollisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_short_key_collisions_total",
			Help: "Total number of generated short keys that were already taken",
		},
		[]string{"stage"},
	)

	landingPageCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_landing_page_cache_total",
			Help: "Landing page cache lookups partitioned by result",
		},
		[]string{"result"},
	)
)
