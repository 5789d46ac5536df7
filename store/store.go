// Package store connects to the data store and manages the session
// log and the application registry
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
)

var pathToDB string

var errTempoRunning = errors.New(
	"is Tempo already running? Only one instance can be active at a time",
)

const (
	sessionsBucket = "sessions"
	appsBucket     = "applications"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) UpdateSession(sess *session.Session) error {
	key := timeutil.ToKey(sess.StartTime)

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).Put(key, value)
	})
}

// SaveApplication records an application's category keyed by its
// lowercased name so that lookups are case-insensitive.
func (c *Client) SaveApplication(
	name string,
	cat session.Category,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(appsBucket)).Put(
			[]byte(strings.ToLower(name)),
			[]byte(cat),
		)
	})
}

func (c *Client) GetApplication(
	name string,
) (session.Category, bool, error) {
	var cat session.Category

	var found bool

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(appsBucket)).Get(
			[]byte(strings.ToLower(name)),
		)
		if v != nil {
			cat = session.Category(v)
			found = true
		}

		return nil
	})

	return cat, found, err
}

func (c *Client) DeleteSessions(sessions []session.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range sessions {
			sess := sessions[i]

			err := tx.Bucket([]byte(sessionsBucket)).
				Delete(timeutil.ToKey(sess.StartTime))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// GetSessionsByDate returns sessions whose start time falls within
// [startTime, endTime], in start-time order. Keys sort
// chronologically because sessions are keyed by their RFC3339
// start time.
func (c *Client) GetSessionsByDate(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionsBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			b = append(b, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]session.Session, 0, len(b))

	for _, v := range b {
		sess := session.Session{}

		err = json.Unmarshal(v, &sess)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, sess)
	}

	return sessions, nil
}

// GetDailyStats sums recorded durations per category for the given
// range. Sessions without a stored category fall back to the app
// registry, then to neutral.
func (c *Client) GetDailyStats(
	startTime, endTime time.Time,
) (DailyStats, error) {
	var stats DailyStats

	sessions, err := c.GetSessionsByDate(startTime, endTime)
	if err != nil {
		return stats, err
	}

	for i := range sessions {
		sess := sessions[i]

		if sess.Duration == 0 {
			continue
		}

		cat := sess.Category
		if cat == "" {
			registered, found, lookupErr := c.GetApplication(sess.AppName)
			if lookupErr != nil {
				return stats, lookupErr
			}

			if found {
				cat = registered
			}
		}

		stats.TotalTime += sess.Duration

		switch cat {
		case session.Productive:
			stats.ProductiveTime += sess.Duration
		case session.Distracting:
			stats.DistractingTime += sess.Duration
		default:
			stats.NeutralTime += sess.Duration
		}
	}

	return stats, nil
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errTempoRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionsBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(appsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
