package back

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Back holds the domain logic of the leaderboard: players, the commander
// catalog, recorded games, and the rating engine that ties them together.
type Back struct {
	db     *sqlx.DB
	dbPath string

	notifications chan Notification

	lastBackup time.Time
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	// SQLite takes a single writer, funnel everything through one connection
	// so two games can never interleave their read-modify-write on a player.
	db.SetMaxOpenConns(1)

	// SQLite won't cascade deletes unless asked to, and the single
	// connection above makes the pragma stick.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}

	return &Back{
		db:            db,
		dbPath:        sqlDSN,
		notifications: make(chan Notification, 32),
	}, nil
}

// GetNotificationsChan returns the channel the frontends should consume to
// deliver announcements.
func (b *Back) GetNotificationsChan() <-chan Notification {
	return b.notifications
}

// Run runs the Back daemon, it only takes care of the nightly database
// backup for now.
func (b *Back) Run(wg *sync.WaitGroup, done <-chan struct{}) {
	wg.Add(1)
	defer wg.Done()
	log.Print("info: starting Back dæmon")

	for {
		if err := b.runPeriodicTasks(); err != nil {
			log.Printf("error: runPeriodicTasks: %s", err)
		}

		select {
		case <-time.After(1 * time.Hour):
		case <-done:
			return
		}
	}
}

func (b *Back) runPeriodicTasks() error {
	if time.Since(b.lastBackup) < 24*time.Hour {
		return nil
	}

	path, err := b.BackupDatabase()
	if err != nil {
		return fmt.Errorf("unable to backup database: %w", err)
	}

	b.lastBackup = time.Now()
	log.Printf("info: database backed up to %s", path)

	return nil
}

type transactionCallback func(*sqlx.Tx) error

func (b *Back) transaction(cb transactionCallback) error {
	tx, err := b.db.Beginx()
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %s", err2, err)
		}

		return err
	}

	return tx.Commit()
}
