package main

import (
	"fmt"

	"github.com/858277721c/Kalle/body"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var form formFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the form body for a set of parameters",
		Long: `Encode parameters the way a POST request would send them. The body is
multipart/form-data when any -F part names a file, otherwise
application/x-www-form-urlencoded.

Examples:
  kalle encode -d name=kalle -d city=Beijing
  kalle encode -d title=holiday -F photo=@photo.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := form.params()
			if err != nil {
				return err
			}

			var rb body.RequestBody
			if p.HasBinary() {
				rb, err = body.NewMultipart(p, body.WithCharset(form.charset))
			} else {
				rb, err = body.NewURLEncoded(p, body.WithCharset(form.charset))
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Content-Type: %s\n", rb.ContentType())
			fmt.Fprintf(out, "Content-Length: %d\n\n", rb.Length())
			if _, err := rb.WriteTo(out); err != nil {
				return fmt.Errorf("writing body: %w", err)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	form.register(cmd)

	return cmd
}
