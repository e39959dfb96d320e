package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWord(t *testing.T) {
	assert.Equal(t, []string{"1", "1", "0", "1"}, SplitWord("1101"))
	assert.Equal(t, []string{"é", "a"}, SplitWord("éa"))
	assert.Empty(t, SplitWord(""))
	assert.NotNil(t, SplitWord(""))
	assert.Equal(t, "1101", JoinWord(SplitWord("1101")))
}

func TestRun_Snapshot(t *testing.T) {
	r := NewRun("sess", "ends-in-01", "s0", []string{"0", "1"})

	assert.Equal(t, RunActive, r.Status)
	assert.False(t, r.Finished())
	assert.Equal(t, []string{"0", "1"}, r.Remaining())
	assert.Equal(t, []Step{{State: "s0", Remaining: []string{"0", "1"}}}, r.History)

	c := r.Snapshot()
	c.Word[0] = "x"
	c.History[0].Remaining[0] = "x"
	c.Status = RunFailed

	assert.Equal(t, []string{"0", "1"}, r.Word)
	assert.Equal(t, "0", r.History[0].Remaining[0])
	assert.Equal(t, RunActive, r.Status)

	r.Position = 2
	assert.Empty(t, r.Remaining())

	var nilRun *Run
	assert.Nil(t, nilRun.Snapshot())
}
