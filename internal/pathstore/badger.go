package pathstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/specialistvlad/railpath/internal/pathfinding"
)

var graphKey = []byte("graph/v1")

// Badger stores the graph under a single key of a BadgerDB database.
type Badger struct {
	tracing
	db *badger.DB
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens the database in directory path. An empty path opens an
// in-memory database.
func OpenBadger(path string, logger *slog.Logger, opts ...Option) (*Badger, error) {
	var bopts badger.Options
	if path == "" {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", path, err)
		}
		bopts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	bopts = bopts.WithNumVersionsToKeep(1)
	if logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{tracing: newTracing(opts), db: db}, nil
}

func (b *Badger) Load(ctx context.Context, g *pathfinding.Graph) error {
	return b.traced(ctx, "badger", "load", func(context.Context) error {
		var data []byte
		err := b.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(graphKey)
			if err != nil {
				return err
			}
			data, err = item.ValueCopy(nil)
			return err
		})
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read graph: %w", err)
		}
		return g.Decode(bytes.NewReader(data))
	})
}

func (b *Badger) Save(ctx context.Context, g *pathfinding.Graph) error {
	return b.traced(ctx, "badger", "save", func(context.Context) error {
		var buf bytes.Buffer
		if err := g.Encode(&buf); err != nil {
			return err
		}
		err := b.db.Update(func(txn *badger.Txn) error {
			return txn.Set(graphKey, buf.Bytes())
		})
		if err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
		g.MarkSaved()
		return nil
	})
}

func (b *Badger) Close() error { return b.db.Close() }
