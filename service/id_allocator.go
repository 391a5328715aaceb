package service

import (
	"errors"
	"math/rand"
)

const (
	accountIDMin = 1000
	accountIDMax = 9999
)

var ErrAccountIDsExhausted = errors.New("no free 4-digit account IDs remain")

// idAllocator hands out unique 4-digit account ids. It is owned by a single
// AccountService instance and seeded with every id already persisted, so a
// fresh id never collides with an existing row or an earlier allocation in
// the same run.
type idAllocator struct {
	issued map[int64]struct{}
}

func newIDAllocator(existing []int64) *idAllocator {
	issued := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		issued[id] = struct{}{}
	}
	return &idAllocator{issued: issued}
}

// Next draws random candidates until one is unused.
func (a *idAllocator) Next() (int64, error) {
	span := int64(accountIDMax - accountIDMin + 1)
	if int64(len(a.issued)) >= span {
		return 0, ErrAccountIDsExhausted
	}
	for {
		id := accountIDMin + rand.Int63n(span)
		if _, taken := a.issued[id]; !taken {
			a.issued[id] = struct{}{}
			return id, nil
		}
	}
}
