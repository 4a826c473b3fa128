package logger

import (
	"context"
	"fmt"
	"time"

	"go-dashboard/internal/config"
	"go-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from zap to the worker goroutine.
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
}

type logRecord struct {
	AppId        string    `bson:"app_id"`
	Level        string    `bson:"level"`
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the zap hook. Never blocks the request path.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := logRecord{
			AppId:        w.appId,
			Level:        entry.Level.String(),
			Message:      entry.Message,
			Caller:       entry.Caller,
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert errors are swallowed to keep the app running.
		_, _ = w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}
