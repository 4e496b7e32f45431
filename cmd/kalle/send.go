package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/858277721c/Kalle"
	"github.com/858277721c/Kalle/config"
	"github.com/858277721c/Kalle/request"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	form      formFlags
	headers   []string
	expect    int
	timeout   time.Duration
	envFiles  []string
	userAgent string
	rps       int
	printJSON bool
	verbose   bool
}

func newSendCmd() *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send <method> <url>",
		Short: "Send a request",
		Long: `Send a request built from the KALLE_* defaults and the given flags.
Interrupting the command cancels the in-flight request.

Examples:
  kalle send GET https://httpbin.org/get -d q=kalle
  kalle send POST https://httpbin.org/post -F file=@notes.txt --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd, f, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "header as 'Key: Value' (repeatable)")
	cmd.Flags().IntVar(&f.expect, "expect", 200, "expected response status")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "overall request timeout (0 for none)")
	cmd.Flags().StringArrayVar(&f.envFiles, "env-file", nil, "env file with KALLE_* defaults (default .env)")
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "", "User-Agent header for the request")
	cmd.Flags().IntVar(&f.rps, "rps", 0, "requests per second limit per host (0 for none)")
	cmd.Flags().BoolVar(&f.printJSON, "json", false, "decode and print the JSON response")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logs")
	f.form.register(cmd)

	return cmd
}

func send(cmd *cobra.Command, f sendFlags, rawMethod, rawURL string) error {
	logger := newLogger(cmd, f.verbose)

	method, err := request.ParseMethod(rawMethod)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.envFiles...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if f.form.charset != "" {
		cfg.Charset = f.form.charset
	}

	b, err := request.NewBuilder(cfg, method, rawURL)
	if err != nil {
		return err
	}

	for _, h := range f.headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("invalid header %q: expected 'Key: Value'", h)
		}
		b.AddHeader(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	p, err := f.form.params()
	if err != nil {
		return err
	}
	if p.HasBinary() && !method.AllowBody() {
		return fmt.Errorf("file parts need a request body, %s has none", method)
	}
	for _, key := range p.StringKeys() {
		value, _ := p.GetString(key)
		b.PutString(key, value)
	}
	for _, key := range p.BinaryKeys() {
		for _, bin := range p.GetBinary(key) {
			b.AddBinary(key, bin)
		}
	}

	tag := uuid.NewString()
	req, err := b.Tag(tag).Build()
	if err != nil {
		return err
	}

	opts := []kalle.Option{kalle.WithLogger(logger)}
	if f.userAgent != "" {
		opts = append(opts, kalle.WithUserAgent(f.userAgent))
	}
	if f.rps > 0 {
		opts = append(opts, kalle.WithThrottle(f.rps, f.rps))
	}

	client, err := kalle.New(opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-interrupt:
			logger.Info("interrupted, cancelling request", "tag", tag)
			client.Cancel(tag)
		case <-done:
		}
	}()

	var doOpts []kalle.DoOption
	var out json.RawMessage
	if f.printJSON {
		doOpts = append(doOpts, kalle.WithDestination(&out))
	}

	start := time.Now()
	if err := client.Do(ctx, req, f.expect, doOpts...); err != nil {
		return err
	}
	logger.Debug("request complete", "id", req.ID(), "took", time.Since(start).String())

	if f.printJSON {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d\n", method, req.URL(), f.expect)
	return nil
}
