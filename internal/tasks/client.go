// Package tasks runs background jobs, such as markdown exports, on a
// persistent backlite queue kept in its own SQLite file.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client owns the queue database and the backlite client.
type Client struct {
	client  *backlite.Client
	db      *sql.DB
	workers int

	mu      sync.Mutex
	started bool
}

// QueuePath returns where the queue database for mainDBPath lives: next to
// it, with a "-tasks" suffix.
func QueuePath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

// NewClient opens (or creates) the queue database next to mainDBPath.
func NewClient(mainDBPath string, cfg Config) (*Client, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}

	db, err := sql.Open("sqlite3", QueuePath(mainDBPath)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers + 2)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          taskLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create task client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install task schema: %w", err)
	}

	return &Client{client: client, db: db, workers: cfg.Workers}, nil
}

// Register adds queues; call it before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start launches the workers. It returns immediately.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	log.Printf("Task queue started with %d workers", c.workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires and reports whether they all
// finished.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return true
	}

	ok := c.client.Stop(ctx)
	if ok {
		log.Println("Task queue stopped")
	} else {
		log.Println("Task queue stopped before all tasks finished")
	}
	return ok
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue stores tasks for the workers and returns their ids.
func (c *Client) Enqueue(tasks ...backlite.Task) ([]string, error) {
	return c.client.Add(tasks...).Save()
}

// Status reports where a task is in its lifecycle as one of "pending",
// "running", "success", "failure" or "not_found".
func (c *Client) Status(ctx context.Context, taskID string) (string, error) {
	status, err := c.client.Status(ctx, taskID)
	if err != nil {
		return "", err
	}
	return statusName(status), nil
}

func statusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type taskLogger struct{}

func (taskLogger) Info(message string, params ...any) {
	log.Println(append([]any{"[TASK]", message}, params...)...)
}

func (taskLogger) Error(message string, params ...any) {
	log.Println(append([]any{"[TASK ERROR]", message}, params...)...)
}
