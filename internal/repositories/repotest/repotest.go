// Package repotest builds a MySQL-dialect gorm handle that renders SQL
// without a server, for asserting what the gorm repositories send.
package repotest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Recorder is a gorm logger that keeps every statement it traces.
type Recorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *Recorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *Recorder) Info(context.Context, string, ...interface{}) {}
func (r *Recorder) Warn(context.Context, string, ...interface{}) {}
func (r *Recorder) Error(context.Context, string, ...interface{}) {}

func (r *Recorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmt = append(r.stmt, sql)
	r.mu.Unlock()
}

// Statements returns the rendered SQL in execution order.
func (r *Recorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmt...)
}

// Find returns the first statement containing fragment, or "".
func (r *Recorder) Find(fragment string) string {
	for _, s := range r.Statements() {
		if strings.Contains(s, fragment) {
			return s
		}
	}
	return ""
}

// DryRun opens gorm in dry-run mode over a lazily connected MySQL pool.
// Nothing reaches the network: no ping, no SELECT VERSION(), no implicit
// transactions.
func DryRun(t *testing.T) (*gorm.DB, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "story:story@tcp(127.0.0.1:3306)/storyshare?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)
	return db, rec
}
