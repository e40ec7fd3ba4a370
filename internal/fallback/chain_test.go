package fallback

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

func tier(name string, fn func(ctx context.Context, in int) (int, error)) Strategy[int, int] {
	return Func[int, int]{Label: name, Fn: fn}
}

func decline(context.Context, int) (int, error) { return 0, ErrDeclined }

func TestRun_FirstAnswerWins(t *testing.T) {
	var calls []string
	record := func(name string, out int, err error) Strategy[int, int] {
		return tier(name, func(context.Context, int) (int, error) {
			calls = append(calls, name)
			return out, err
		})
	}

	c := New(func(int) int { return -1 }, []Strategy[int, int]{
		record("a", 0, ErrDeclined),
		record("b", 7, nil),
		record("c", 9, nil),
	})

	got, name := c.Run(context.Background(), 1)
	if got != 7 || name != "b" {
		t.Fatalf("Run = (%d, %q), want (7, \"b\")", got, name)
	}
	if strings.Join(calls, ",") != "a,b" {
		t.Fatalf("calls = %v, want [a b]", calls)
	}
}

func TestRun_TerminalWhenAllDecline(t *testing.T) {
	c := New(func(in int) int { return in * 2 }, []Strategy[int, int]{
		tier("a", decline),
		tier("b", func(context.Context, int) (int, error) { return 0, errors.New("boom") }),
	})
	got, name := c.Run(context.Background(), 21)
	if got != 42 || name != "" {
		t.Fatalf("Run = (%d, %q), want (42, \"\")", got, name)
	}
}

func TestRun_PanicIsDecline(t *testing.T) {
	var buf bytes.Buffer
	c := New(func(int) int { return 5 }, []Strategy[int, int]{
		tier("explode", func(context.Context, int) (int, error) { panic("kaboom") }),
	}, WithLogger(log.New(&buf, "", 0)))

	got, _ := c.Run(context.Background(), 0)
	if got != 5 {
		t.Fatalf("Run = %d, want terminal 5", got)
	}
	if !strings.Contains(buf.String(), "explode tier declined") {
		t.Fatalf("log = %q, want decline logged", buf.String())
	}
}

func TestRun_TimeoutBoundsSlowTier(t *testing.T) {
	slow := tier("slow", func(ctx context.Context, _ int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 1, nil
		}
	})
	c := New(func(int) int { return 2 }, []Strategy[int, int]{slow}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	got, _ := c.Run(context.Background(), 0)
	if got != 2 {
		t.Fatalf("Run = %d, want terminal 2", got)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("slow tier was not bounded by timeout")
	}
}

func TestRun_CancelledContextSkipsTiers(t *testing.T) {
	called := false
	c := New(func(int) int { return 3 }, []Strategy[int, int]{
		tier("a", func(context.Context, int) (int, error) { called = true; return 1, nil }),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got, _ := c.Run(ctx, 0); got != 3 {
		t.Fatalf("Run = %d, want 3", got)
	}
	if called {
		t.Fatal("strategy attempted after cancellation")
	}
}

type memTier struct{ out int }

func (memTier) Name() string { return "mem" }

func (m memTier) Attempt(context.Context, int) (int, error) { return m.out, nil }

func (memTier) Local() bool { return true }

func TestRun_CancelledContextStillTriesLocalTiers(t *testing.T) {
	remote := false
	c := New(func(int) int { return 3 }, []Strategy[int, int]{
		tier("net", func(context.Context, int) (int, error) { remote = true; return 1, nil }),
		memTier{out: 7},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, name := c.Run(ctx, 0)
	if got != 7 || name != "mem" {
		t.Fatalf("Run = %d from %q, want 7 from mem", got, name)
	}
	if remote {
		t.Fatal("remote strategy attempted after cancellation")
	}
}

func TestNames(t *testing.T) {
	c := New(func(int) int { return 0 }, []Strategy[int, int]{tier("x", decline), tier("y", decline)})
	if got := strings.Join(c.Names(), ","); got != "x,y" {
		t.Fatalf("Names = %q", got)
	}
}
