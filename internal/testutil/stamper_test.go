package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStamper_MonotonicSeq(t *testing.T) {
	s := NewStamper("tok")

	first := s.Stamp()
	second := s.Stamp()

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, "tok", first.Token)
	assert.Equal(t, BaseTime.Add(time.Second), first.Time)
	assert.Equal(t, BaseTime.Add(2*time.Second), second.Time)
}

func TestStamper_Reset(t *testing.T) {
	s := NewStamper("tok")
	s.Stamp()
	s.Stamp()
	assert.Equal(t, int64(2), s.Current())

	s.Reset()
	assert.Equal(t, int64(0), s.Current())
	assert.Equal(t, int64(1), s.Stamp().Seq, "post-reset stamps restart at 1")
}

func TestStamper_SetToken(t *testing.T) {
	s := NewStamper("a")
	assert.Equal(t, "a", s.Stamp().Token)

	s.SetToken("b")
	assert.Equal(t, "b", s.Stamp().Token)
}

func TestFixedTokens_InOrder(t *testing.T) {
	g := NewFixedTokens("t1", "t2")

	assert.Equal(t, "t1", g.Generate())
	assert.Equal(t, "t2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
