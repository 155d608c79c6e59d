package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scansTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "signalfilter_document_scans_total",
	Help: "Number of document scans run",
})

var postsScanned = promauto.NewCounter(prometheus.CounterOpts{
	Name: "signalfilter_document_posts_scanned_total",
	Help: "Number of posts evaluated across document scans",
})

var postsHidden = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "signalfilter_document_posts_hidden_total",
	Help: "Number of posts hidden in documents, by matching rule",
}, []string{"reason"})
