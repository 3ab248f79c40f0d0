package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FileStoreLatency is the duration of document writes to disk.
	FileStoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_file_store_latency",
			Help: "Duration of document writes to disk",
		},
		[]string{"document"},
	)

	// FileStoreWrites is the total number of document writes, labelled by result.
	FileStoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_file_store_writes_total",
			Help: "Total number of document writes",
		},
		[]string{"document", "result"},
	)

	// FileStoreOperations is the total number of store operations.
	FileStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_file_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"dal", "operation"},
	)

	// TicketTransitions counts ticket bucket transitions.
	TicketTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_ticket_transitions_total",
			Help: "Total number of ticket bucket transitions",
		},
		[]string{"from", "to"},
	)

	// MongoLatency is the duration of Mongo queries.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_mongo_latency",
			Help: "Duration of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo requests.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_requests",
			Help: "Total number of Mongo requests",
		},
		[]string{"dal", "query", "database", "collection"},
	)
)
