package tei

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/context"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/notation"
	"github.com/nelhage/tictactician/ttt"
)

type Client struct {
	cmd *exec.Cmd

	stdinPipe  io.WriteCloser
	stdoutPipe io.ReadCloser

	read  *bufio.Reader
	write io.Writer

	gameid int
}

// NewClient starts cmdline as a subprocess and performs the handshake.
func NewClient(cmdline []string) (*Client, error) {
	if len(cmdline) == 0 {
		return nil, errors.New("empty command line")
	}
	cmd := &exec.Cmd{
		Args: cmdline,
	}
	if path, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, err
	} else {
		cmd.Path = path
	}

	cl := &Client{
		cmd: cmd,
	}

	if stdin, err := cmd.StdinPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdinPipe = stdin
		cl.write = stdin
	}

	if stdout, err := cmd.StdoutPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdoutPipe = stdout
		cl.read = bufio.NewReader(stdout)
	}

	if err := cl.cmd.Start(); err != nil {
		cl.Close()
		return nil, err
	}

	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

// Connect speaks the protocol over an existing stream pair, such as
// an Engine running in the same process.
func Connect(r io.Reader, w io.Writer) (*Client, error) {
	cl := &Client{
		read:  bufio.NewReader(r),
		write: w,
	}
	if err := cl.handshake(); err != nil {
		return nil, err
	}
	return cl, nil
}

func (c *Client) handshake() error {
	if _, err := c.sendCommand("tei", "teiok"); err != nil {
		return err
	}
	_, err := c.sendCommand("isready", "readyok")
	return err
}

func (c *Client) NewGame() (ai.Player, error) {
	c.gameid += 1
	if _, err := c.sendCommand("teinewgame", ""); err != nil {
		return nil, err
	}
	return &player{
		client: c,
		gameid: c.gameid,
	}, nil
}

func (c *Client) Close() {
	if c.write != nil {
		c.sendCommand("quit", "")
	}
	if c.stdinPipe != nil {
		c.stdinPipe.Close()
	}
	if c.stdoutPipe != nil {
		c.stdoutPipe.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Wait()
	}
}

func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == expect {
			return words, nil
		}
	}
}

type player struct {
	client *Client
	gameid int
}

func (p *player) GetMove(ctx context.Context, pos *ttt.Position) (int, error) {
	if p.gameid != p.client.gameid {
		return 0, errors.New("bad gameid: calling GetMove on a dead player")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd := fmt.Sprintf("position board %s", notation.FormatPosition(pos))
	if _, err := p.client.sendCommand(cmd, ""); err != nil {
		return 0, fmt.Errorf("send position: %w", err)
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		goCmd = fmt.Sprintf("%s movetime %s", goCmd, formatTime(time.Until(deadline)))
	}
	bestmove, err := p.client.sendCommand(goCmd, "bestmove")
	if err != nil {
		return 0, err
	}
	if len(bestmove) != 2 {
		return 0, fmt.Errorf("bad bestmove: %q", strings.Join(bestmove, " "))
	}
	if bestmove[1] == "none" {
		return 0, ttt.ErrNoLegalMove
	}
	m, err := notation.ParseMove(bestmove[1])
	if err != nil {
		return 0, fmt.Errorf("unable to parse move %q: %w", bestmove[1], err)
	}
	return m, nil
}

func formatTime(d time.Duration) string {
	ms := d / time.Millisecond
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatUint(uint64(ms), 10)
}
