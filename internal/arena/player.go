package arena

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/agent"
	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/protocol"
)

var (
	ErrTimeout      = errors.New("player timed out")
	ErrPlayerClosed = errors.New("player is closed")
)

// Player is one seat in a match. Init is called once with the starting map, then Turn once
// per turn with the current map.
type Player interface {
	Init(ctx context.Context, id int, m *core.GameMap) (string, error)
	Turn(ctx context.Context, m *core.GameMap) (core.MoveSet, error)
	Close() error
}

// LocalPlayer runs the built-in agent in process.
type LocalPlayer struct {
	name  string
	id    int
	agent *agent.Agent
}

func NewLocalPlayer(name string, accumulateFactor int, logger zerolog.Logger) *LocalPlayer {
	return &LocalPlayer{name: name, agent: agent.New(accumulateFactor, logger)}
}

func (p *LocalPlayer) Init(ctx context.Context, id int, _ *core.GameMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.id = id
	return p.name, nil
}

func (p *LocalPlayer) Turn(ctx context.Context, m *core.GameMap) (core.MoveSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.agent.Moves(m, p.id), nil
}

func (p *LocalPlayer) Close() error { return nil }

// RemotePlayer talks the line protocol to a bot over a pair of streams. A call that
// outlives its context kills the bot, since a half-read line leaves the stream unusable.
type RemotePlayer struct {
	conn   *protocol.HostConn
	kill   func() error
	logger zerolog.Logger

	mu     sync.Mutex
	closed bool
	width  int
	height int
}

// NewRemotePlayer wraps an already running bot. kill stops the bot and unblocks any pending
// read; it is called at most once.
func NewRemotePlayer(r io.Reader, w io.Writer, kill func() error, logger zerolog.Logger) *RemotePlayer {
	return &RemotePlayer{
		conn:   protocol.NewHostConn(r, w),
		kill:   kill,
		logger: logger.With().Str("component", "RemotePlayer").Logger(),
	}
}

// StartProcess launches command through the shell and connects to its stdin and stdout.
// The bot's stderr is passed through to ours.
func StartProcess(command string, logger zerolog.Logger) (*RemotePlayer, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdin for %q: %w", command, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdout for %q: %w", command, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %q: %w", command, err)
	}

	logger = logger.With().Str("command", command).Int("pid", cmd.Process.Pid).Logger()
	logger.Debug().Msg("Bot process started")

	kill := func() error {
		_ = stdin.Close()
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		_ = cmd.Wait()
		return nil
	}
	return NewRemotePlayer(stdout, stdin, kill, logger), nil
}

func (p *RemotePlayer) Init(ctx context.Context, id int, m *core.GameMap) (string, error) {
	p.mu.Lock()
	p.width, p.height = m.Width, m.Height
	p.mu.Unlock()

	return call(ctx, p, func() (string, error) {
		if err := p.conn.SendInit(id, m); err != nil {
			return "", err
		}
		return p.conn.ReadName()
	})
}

func (p *RemotePlayer) Turn(ctx context.Context, m *core.GameMap) (core.MoveSet, error) {
	p.mu.Lock()
	width, height := p.width, p.height
	p.mu.Unlock()

	return call(ctx, p, func() (core.MoveSet, error) {
		if err := p.conn.SendFrame(m); err != nil {
			return nil, err
		}
		return p.conn.ReadMoves(width, height)
	})
}

type exchangeResult[T any] struct {
	value T
	err   error
}

// call runs one exchange with the bot, bounded by ctx. The result only crosses back over the
// channel, so an exchange abandoned on timeout never touches the caller's state.
func call[T any](ctx context.Context, p *RemotePlayer, exchange func() (T, error)) (T, error) {
	var zero T

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return zero, ErrPlayerClosed
	}

	done := make(chan exchangeResult[T], 1)
	go func() {
		v, err := exchange()
		done <- exchangeResult[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		p.logger.Warn().Err(ctx.Err()).Msg("Bot did not answer in time, killing it")
		_ = p.Close()
		return zero, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}

// Close stops the bot. It is safe to call more than once.
func (p *RemotePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.kill == nil {
		return nil
	}
	return p.kill()
}
