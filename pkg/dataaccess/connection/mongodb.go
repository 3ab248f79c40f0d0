package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbMonitoring "github.com/Jacobbrewer1/ticketeer/pkg/dataaccess/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultTimeout bounds the connect and ping round trip.
const defaultTimeout = 5 * time.Second

type MongoDB struct {
	// ConnectionString is the Mongo URI.
	ConnectionString string

	// Timeout bounds connecting. Defaults to five seconds.
	Timeout time.Duration
}

// Connect opens a client and pings the server before returning it.
func (m *MongoDB) Connect(ctx context.Context) (*mongo.Client, error) {
	if m.ConnectionString == "" {
		return nil, errors.New("mongo connection string is empty")
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(m.ConnectionString).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	t := prometheus.NewTimer(dbMonitoring.MongoLatency.WithLabelValues("connection", "ping", "-", "-"))
	defer t.ObserveDuration()
	dbMonitoring.MongoTotalRequests.WithLabelValues("connection", "ping", "-", "-").Inc()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}
	return client, nil
}
