package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/domfx/fx"
	"github.com/npillmayer/domfx/fx/clock"
	"github.com/npillmayer/domfx/fx/preset"
	"github.com/npillmayer/domfx/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
)

func newRunCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run an effect on selected elements",
		Long: fmt.Sprintf(`run parses an HTML document, runs an effect on all elements matching
a selector and writes the document after the effect has completed.

Effects: %v`, preset.Names()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEffect(cmd, conf)
		},
	}
	cmd.Flags().StringP("out", "o", "-", "output HTML file, - for stdout")
	cmd.Flags().StringP("select", "s", "", "CSS selector of the elements to animate")
	cmd.Flags().StringP("effect", "e", preset.NameFadeOut, "effect to run")
	cmd.Flags().Duration("duration", fx.DefaultDuration, "duration of the effect")
	cmd.Flags().String("easing", "", "easing curve")
	cmd.Flags().Duration("frame-interval", clock.DefaultInterval, "interval between frames")
	cmd.Flags().Duration("timeout", 0, "abort if the effect has not completed in time (0: duration + 5s)")
	bind(conf, cmd, keyOut, "out")
	bind(conf, cmd, keySelect, "select")
	bind(conf, cmd, keyEffect, "effect")
	bind(conf, cmd, keyDuration, "duration")
	bind(conf, cmd, keyEasing, "easing")
	bind(conf, cmd, keyFrameInterval, "frame-interval")
	bind(conf, cmd, keyTimeout, "timeout")
	return cmd
}

func runEffect(cmd *cobra.Command, conf *viper.Viper) error {
	selector := conf.GetString(keySelect)
	if selector == "" {
		return fmt.Errorf("no selector given")
	}
	effect, err := preset.Lookup(conf.GetString(keyEffect))
	if err != nil {
		return err
	}
	doc, err := readDocument(cmd, conf)
	if err != nil {
		return err
	}
	engine := fx.New[*html.Node](
		fx.WithClock(clock.NewTicker(conf.GetDuration(keyFrameInterval))),
		fx.WithContext(contextOf(cmd)),
	)
	defer engine.Close()
	q := query.New(doc, engine)
	sel, err := q.Select(selector)
	if err != nil {
		return err
	}
	tracer().Infof("running %s on %d elements", effect.Name, sel.Len())
	duration := conf.GetDuration(keyDuration)
	timeout := conf.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = duration + 5*time.Second
	}
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	batch := sel.Effect(effect, fx.Duration(duration), fx.Easing(conf.GetString(keyEasing)))
	if err := batch.Wait(ctx); err != nil {
		batch.Stop(false)
		return fmt.Errorf("effect %s: %w", effect.Name, err)
	}
	tracer().Infof("effect done after %ss", humanize.FtoaWithDigits(time.Since(start).Seconds(), 3))
	return writeDocument(cmd, conf, q)
}

func writeDocument(cmd *cobra.Command, conf *viper.Viper, q *query.Q) error {
	var out string
	q.Engine().Atomically(func() {
		out = q.Document().String()
	})
	w := cmd.OutOrStdout()
	if file := conf.GetString(keyOut); file != "-" && file != "" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	n, err := fmt.Fprintln(w, out)
	tracer().Debugf("wrote %s", humanize.Bytes(uint64(n)))
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
