package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"github.com/runnerr0/wordlens/internal/suggest"
	"github.com/runnerr0/wordlens/internal/view"
)

const prompt = "> "

// Execute implements the go-flags Commander interface for InteractiveCommand.
func (c *InteractiveCommand) Execute(args []string) error {
	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.executeWithApp(ctx, a)
}

// executeWithApp runs the session against a provided app (for testing).
func (c *InteractiveCommand) executeWithApp(ctx context.Context, a *app) error {
	var in io.Reader = os.Stdin
	if c.in != nil {
		in = c.in
	}
	var out io.Writer = os.Stdout
	if c.out != nil {
		out = c.out
	}

	s := newSession(ctx, a, out, time.Duration(a.cfg.Suggest.DebounceMillis)*time.Millisecond)
	return s.run(in)
}

// session is one interactive run. Input is read on one goroutine;
// suggestion fetches run on the debounce timer's goroutine. mu guards the
// screen state and the output.
type session struct {
	ctx      context.Context
	app      *app
	out      io.Writer
	renderer *view.Renderer
	log      *log.Logger
	debounce func(func())

	mu      sync.Mutex
	gen     uint64
	pending func()
	closed  bool
	query   string
	results []string
	fetches sync.WaitGroup
}

func newSession(ctx context.Context, a *app, out io.Writer, delay time.Duration) *session {
	return &session{
		ctx:      ctx,
		app:      a,
		out:      out,
		renderer: view.NewRenderer(out, a.labels),
		log:      a.log.With("component", "interactive"),
		debounce: debounce.New(delay),
	}
}

// run reads commands until :q, EOF or cancellation.
func (s *session) run(in io.Reader) error {
	defer s.close()

	s.mu.Lock()
	s.renderHomeLocked()
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		s.mu.Lock()
		fmt.Fprint(s.out, prompt)
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if quit := s.handle(line); quit {
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether to quit.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)

	switch {
	case line == ":q" || line == ":quit":
		return true
	case line == "":
		s.clear()
	case strings.HasPrefix(line, ":"):
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			fmt.Fprintf(s.out, "unknown command %q (use :N to open a row, :q to quit)\n", line)
			return false
		}
		s.selectRow(n)
	default:
		s.enter(line)
	}
	return false
}

// enter records a new prefix and schedules its suggestion fetch.
func (s *session) enter(prefix string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.query = prefix
	s.pending = func() { s.fetch(gen, prefix) }
	s.mu.Unlock()

	s.debounce(s.flush)
}

// clear drops the query, any pending fetch and the shown results.
func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending = nil
	s.query = ""
	s.results = nil
	s.renderHomeLocked()
}

// selectRow records the word in row n, then shows its detail.
func (s *session) selectRow(n int) {
	s.mu.Lock()
	items := s.app.home(s.query, s.results, s.app.history.Recent(s.ctx, s.app.cfg.History.RecentLimit)).Selectable()
	if n < 1 || n > len(items) {
		fmt.Fprintf(s.out, "no row %d\n", n)
		s.mu.Unlock()
		return
	}
	word := items[n-1].Word
	s.gen++
	s.pending = nil
	s.renderer.Detail(view.Loading(word))
	s.mu.Unlock()

	s.app.history.Record(s.ctx, word)
	detail, err := s.app.service.Lookup(s.ctx, word)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Detail(view.FromLookup(word, detail, err))
	fmt.Fprintln(s.out)
	s.query = ""
	s.results = nil
	s.renderHomeLocked()
}

// flush runs the pending fetch, if any. It is the debounced callback, and is
// also called directly when the session ends.
func (s *session) flush() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	if fn == nil || s.closed {
		s.mu.Unlock()
		return
	}
	s.fetches.Add(1)
	s.mu.Unlock()

	defer s.fetches.Done()
	fn()
}

// fetch loads suggestions for prefix and shows them if gen is still current.
func (s *session) fetch(gen uint64, prefix string) {
	candidates, err := s.app.service.Suggest(s.ctx, prefix)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("dropping stale suggestions", "prefix", prefix)
		return
	}
	if err != nil {
		fmt.Fprintf(s.out, "\nsuggestions unavailable for %q\n", prefix)
		return
	}

	s.results = suggest.Words(candidates)
	fmt.Fprintln(s.out)
	if len(s.results) == 0 {
		fmt.Fprintf(s.out, "No suggestions for %q.\n", prefix)
		return
	}
	s.renderHomeLocked()
}

// close runs the last pending fetch and waits for fetches in flight.
// The debounce timer may still fire later; flush is then a no-op.
func (s *session) close() {
	if s.ctx.Err() == nil {
		s.flush()
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.fetches.Wait()
}

func (s *session) renderHomeLocked() {
	recent := s.app.history.Recent(s.ctx, s.app.cfg.History.RecentLimit)
	s.renderer.Home(s.app.home(s.query, s.results, recent))
}
