package tei

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

func runScript(t *testing.T, script string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := NewEngine(strings.NewReader(script), &out)
	err := e.Run(context.Background())
	return out.String(), err
}

func TestEngineHandshake(t *testing.T) {
	out, err := runScript(t, "tei\nisready\nquit\nbogus\n")
	require.NoError(t, err)
	assert.Contains(t, out, "id name Tictactician\n")
	assert.Contains(t, out, "teiok\n")
	assert.Contains(t, out, "readyok\n")
}

func TestEngineGo(t *testing.T) {
	cases := []struct {
		script string
		want   string
	}{
		{"position startpos\ngo\n", "bestmove b2\n"},
		{"position board oo./x../... o\ngo\n", "bestmove c1\n"},
		{"position board xx./.../... o\ngo movetime 1000\n", "bestmove c1\n"},
		{"position startpos moves b2 a1 a2\ngo\n", "bestmove c2\n"},
		{"position board xox/xoo/oxx x\ngo\n", "bestmove none\n"},
		{"go\n", "bestmove none\n"},
	}
	for _, tc := range cases {
		out, err := runScript(t, "teinewgame\n"+tc.script)
		require.NoError(t, err, tc.script)
		assert.True(t, strings.HasSuffix(out, tc.want), "%q: got %q", tc.script, out)
	}

	out, err := runScript(t, "position board xox/xoo/oxx o\ngo\n")
	require.NoError(t, err)
	assert.Contains(t, out, "info error ")

	out, err = runScript(t, "position startpos\ngo\n")
	require.NoError(t, err)
	assert.Contains(t, out, "info value 0 nodes ")
}

func TestEngineErrors(t *testing.T) {
	for _, script := range []string{
		"frobnicate\n",
		"position\n",
		"position tps x\n",
		"position board xxx x\n",
		"position startpos moves b2 b2\n",
		"position startpos b2\n",
	} {
		_, err := runScript(t, script)
		assert.Error(t, err, script)
	}
}

func TestClientAgainstEngine(t *testing.T) {
	toEngine, fromClient := io.Pipe()
	toClient, fromEngine := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := NewEngine(toEngine, fromEngine).Run(context.Background())
		fromEngine.Close()
		done <- err
	}()

	cl, err := Connect(toClient, fromClient)
	require.NoError(t, err)
	pl, err := cl.NewGame()
	require.NoError(t, err)

	mm := ai.NewMinimax(ai.MinimaxConfig{})
	pos := ttt.New(ttt.X)
	for {
		if over, _ := pos.GameOver(); over {
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		got, err := pl.GetMove(ctx, pos)
		cancel()
		require.NoError(t, err)
		want, err := mm.GetMove(context.Background(), pos)
		require.NoError(t, err)
		assert.Equal(t, want, got, notation.FormatPosition(pos))
		pos, err = pos.Move(got)
		require.NoError(t, err)
	}
	_, w := pos.GameOver()
	assert.Equal(t, ttt.Empty, w)

	_, err = pl.GetMove(context.Background(), pos)
	assert.True(t, errors.Is(err, ttt.ErrNoLegalMove), "err=%v", err)

	stale := pl
	_, err = cl.NewGame()
	require.NoError(t, err)
	_, err = stale.GetMove(context.Background(), ttt.New(ttt.X))
	assert.Error(t, err)

	cl.Close()
	fromClient.Close()
	assert.NoError(t, <-done)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "1500", formatTime(1500*time.Millisecond))
	assert.Equal(t, "0", formatTime(-time.Second))
}
