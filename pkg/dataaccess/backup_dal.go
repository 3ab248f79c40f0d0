package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	backupDalName     = "backup_dal"
	backupsCollection = "backups"
)

// BackupDal stores store snapshots outside of the data directory.
type BackupDal interface {
	// SaveBackup stores a snapshot.
	SaveBackup(ctx context.Context, b *Backup) error

	// LatestBackup returns the most recent snapshot.
	LatestBackup(ctx context.Context) (*Backup, error)

	// Ping checks the connection to the backend.
	Ping(ctx context.Context) error
}

type backupDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewBackupDal creates a backup data access layer over a Mongo client.
func NewBackupDal(logger *slog.Logger, client *mongo.Client) BackupDal {
	return &backupDal{
		l:      logger.With(slog.String(logging.KeyDal, backupDalName)),
		client: client,
	}
}

func (d *backupDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(backupsCollection)
}

func (d *backupDal) SaveBackup(ctx context.Context, b *Backup) error {
	monitoring.MongoTotalRequests.WithLabelValues(backupDalName, "save_backup", mongoDatabase, backupsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(backupDalName, "save_backup", mongoDatabase, backupsCollection))
	defer t.ObserveDuration()

	if _, err := d.collection().InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error inserting backup: %w", err)
	}
	d.l.Info("Backup stored", slog.String("timestamp", b.Timestamp.String()))
	return nil
}

func (d *backupDal) LatestBackup(ctx context.Context) (*Backup, error) {
	monitoring.MongoTotalRequests.WithLabelValues(backupDalName, "latest_backup", mongoDatabase, backupsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(backupDalName, "latest_backup", mongoDatabase, backupsCollection))
	defer t.ObserveDuration()

	opts := options.FindOne().SetSort(bson.M{"timestamp": -1})

	b := new(Backup)
	err := d.collection().FindOne(ctx, bson.M{}, opts).Decode(b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("no backups stored: %w", ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("error getting latest backup: %w", err)
	}
	return b, nil
}

func (d *backupDal) Ping(ctx context.Context) error {
	monitoring.MongoTotalRequests.WithLabelValues(backupDalName, "ping", mongoDatabase, "-").Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(backupDalName, "ping", mongoDatabase, "-"))
	defer t.ObserveDuration()

	if err := d.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}
