package biz

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vearne/grpcsniff/classifier"
	"github.com/vearne/grpcsniff/model"
)

// ConnTracker remembers the first decisive verdict of each connection so
// that the packets after it, which usually carry DATA frames only, get the
// same answer. Both directions of a connection share one entry.
type ConnTracker struct {
	verdicts *cache.Cache
}

func NewConnTracker(expire time.Duration) *ConnTracker {
	return &ConnTracker{verdicts: cache.New(expire, 2*expire)}
}

func connKey(conn model.DirectConn) string {
	return conn.Canonical().String()
}

func (t *ConnTracker) Get(conn model.DirectConn) (classifier.Verdict, bool) {
	v, ok := t.verdicts.Get(connKey(conn))
	if !ok {
		return classifier.Undetermined, false
	}
	return v.(classifier.Verdict), true
}

// Set records v unless the connection already has a verdict. Undetermined
// is never recorded.
func (t *ConnTracker) Set(conn model.DirectConn, v classifier.Verdict) {
	if !v.Decisive() {
		return
	}
	// Add fails when the key exists
	_ = t.verdicts.Add(connKey(conn), v, cache.DefaultExpiration)
}

func (t *ConnTracker) Evict(conn model.DirectConn) {
	t.verdicts.Delete(connKey(conn))
}

func (t *ConnTracker) Len() int {
	return t.verdicts.ItemCount()
}
