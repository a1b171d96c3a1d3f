package model

import (
	"github.com/teris-io/shortid"
	"golang.org/x/exp/rand"
)

// NewRunID identifies one analysis run.
func NewRunID() string {
	return shortid.MustGenerate()
}

func init() {
	sid := shortid.MustNew(0, "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_.", rand.Uint64())
	shortid.SetDefault(sid)
}
