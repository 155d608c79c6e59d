package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var feedPosts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "signalfilter_feed_posts_total",
	Help: "Posts classified by the feed pipeline, by verdict",
}, []string{"verdict"})
