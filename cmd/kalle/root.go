package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/858277721c/Kalle/body"
	"github.com/858277721c/Kalle/params"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kalle",
		Short: "Build, encode and send HTTP requests",
		Long: `kalle resolves URLs, encodes form bodies and sends requests using
the defaults from KALLE_* environment variables or a .env file.`,
		SilenceUsage: true,
	}

	root.AddCommand(newResolveCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newSendCmd())

	return root
}

// formFlags collects -d and -F values shared by encode and send.
type formFlags struct {
	data    []string
	files   []string
	charset string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.data, "data", "d", nil, "string parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.files, "form", "F", nil, "form part as key=value or key=@path (repeatable)")
	cmd.Flags().StringVar(&f.charset, "charset", "", "charset used to encode the body")
}

// params parses the flags into a parameter collection.
func (f *formFlags) params() (*params.Params, error) {
	b := params.NewBuilder()

	for _, kv := range f.data {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid data %q: expected key=value", kv)
		}
		b.PutString(key, value)
	}

	for _, kv := range f.files {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid form part %q: expected key=value or key=@path", kv)
		}

		path, isFile := strings.CutPrefix(value, "@")
		if !isFile {
			b.PutString(key, value)
			continue
		}

		file, err := body.NewFile(path, "")
		if err != nil {
			return nil, fmt.Errorf("form part %q: %w", key, err)
		}
		b.AddBinary(key, file)
	}

	return b.Build(), nil
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
