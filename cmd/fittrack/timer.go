package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/claude/fittrack/internal/timer"
)

// runTimer runs the interval timer without the UI, printing one line per
// second until the run completes or ctx is cancelled.
func runTimer(ctx context.Context, w io.Writer, cfg timer.Config, args []string) error {
	return runTimerEvery(ctx, w, cfg, args, time.Second)
}

func runTimerEvery(ctx context.Context, w io.Writer, cfg timer.Config, args []string, every time.Duration) error {
	fs := flag.NewFlagSet("timer", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.IntVar(&cfg.WorkSeconds, "work", cfg.WorkSeconds, "work phase in seconds")
	fs.IntVar(&cfg.RestSeconds, "rest", cfg.RestSeconds, "rest phase in seconds")
	fs.IntVar(&cfg.TotalSets, "sets", cfg.TotalSets, "number of sets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := timer.NewInterval(cfg)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	d := timer.NewDriver(t, every, func(st timer.State, res timer.TickResult) {
		switch res.Event {
		case timer.EventRestStarted:
			fmt.Fprintf(w, "set %d done, rest %ds\n", st.CurrentSet, cfg.RestSeconds)
		case timer.EventSetStarted:
			fmt.Fprintf(w, "set %d of %d\n", st.CurrentSet, cfg.TotalSets)
		case timer.EventComplete:
			fmt.Fprintf(w, "%s: %d sets done\n", timer.StatusComplete, cfg.TotalSets)
			close(done)
			return
		}
		fmt.Fprintf(w, "%-8s %s\n", label(st), timer.FormatClock(st.Remaining))
	})
	defer d.Close()

	fmt.Fprintf(w, "%ds work, %ds rest, %d sets\nset 1 of %d\n", cfg.WorkSeconds, cfg.RestSeconds, cfg.TotalSets, cfg.TotalSets)
	d.Start()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.Reset()
		fmt.Fprintln(w, "stopped")
		return nil
	}
}

func label(st timer.State) string {
	if st.Phase == timer.PhaseResting {
		return timer.StatusRest
	}
	return timer.StatusWork
}
