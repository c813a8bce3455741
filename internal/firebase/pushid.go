package firebase

import (
	"math/rand/v2"
	"sync"
	"time"
)

const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// PushIDGenerator produces 20-character keys in the format the database uses
// for POST: 8 characters of millisecond timestamp followed by 12 random
// characters. Keys from one generator sort in creation order.
type PushIDGenerator struct {
	mu       sync.Mutex
	lastTime int64
	lastRand [12]int
}

func (g *PushIDGenerator) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := t.UnixMilli()
	dup := now <= g.lastTime
	if dup {
		now = g.lastTime
	}
	g.lastTime = now

	var id [20]byte
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[now%64]
		now /= 64
	}

	if !dup {
		for i := range g.lastRand {
			g.lastRand[i] = rand.IntN(64)
		}
	} else {
		// same millisecond: increment the random part so order is kept
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == 63; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	}

	for i, r := range g.lastRand {
		id[8+i] = pushChars[r]
	}
	return string(id[:])
}

