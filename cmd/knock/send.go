package main

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/spf13/cobra"

	ik "github.com/goliatone/go-knock/internal/knock"
	"github.com/goliatone/go-knock/internal/knockform"
	"github.com/goliatone/go-knock/pkg/message"
	"github.com/goliatone/go-knock/pkg/render"
	"github.com/goliatone/go-knock/pkg/renderers/tui"
)

var errKnockFailed = errors.New("knock failed")

func newSendCmd(a *app) *cobra.Command {
	var (
		yes     bool
		allowIP string
		locale  string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fill the knock form in the terminal and send the knock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			f, err := knockform.Build(a.cfg, allowIP)
			if err != nil {
				return err
			}
			prompts := a.prompter(out)
			values, err := prompts.Fill(ctx, f, render.RenderOptions{Locale: locale})
			if err != nil {
				return err
			}
			fmt.Fprint(out, tui.Summary(f, values))

			if !yes {
				ok, err := prompts.Confirm(ctx, "Send knock?", true)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}
			if !f.Validate() {
				return fmt.Errorf("invalid form: %s", strings.Join(f.Failed(), ", "))
			}
			req, err := knockform.Request(a.cfg, f)
			if err != nil {
				return err
			}
			if err := ensureTmpDir(a.cfg.TmpDir); err != nil {
				return err
			}
			if err := ik.CheckTmpDir(a.cfg.TmpDir); err != nil {
				return err
			}

			client := ik.NewClient(a.cfg.FwknopCLI, a.cfg.TmpDir, ik.WithLogger(a.logger), ik.WithRunner(a.runner))
			results, knockErr := client.Knock(ctx, req)

			msgs := message.New()
			ik.Report(results, msgs, a.cfg.Verbose)
			snapshot := msgs.Get(message.All, true)
			printMessages(out, snapshot)

			if knockErr != nil {
				return knockErr
			}
			if len(snapshot.Errors) > 0 {
				return errKnockFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "send without asking for confirmation")
	cmd.Flags().StringVar(&allowIP, "allow-ip", "", "source IP offered as the default answer")
	cmd.Flags().StringVar(&locale, "locale", "en", "language of validation messages")
	return cmd
}

func newFillCmd(a *app) *cobra.Command {
	var (
		format  string
		allowIP string
		locale  string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the knock form in the terminal and print the answers",
		Long: `Prompts for every form element and prints the answers without knocking.
The "form" format is a request body accepted by the serve command, e.g.

  curl --data "$(knock fill --format form)" https://host/knock`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := knockform.Build(a.cfg, allowIP)
			if err != nil {
				return err
			}
			r := tui.New(a.tuiOptions(cmd.ErrOrStderr(), tui.WithOutputFormat(tui.OutputFormat(format)))...)
			payload, err := r.Render(commandContext(cmd), f, render.RenderOptions{Locale: locale})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(payload); err != nil {
				return err
			}
			if len(payload) > 0 && payload[len(payload)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	cmd.Flags().StringVar(&allowIP, "allow-ip", "", "source IP offered as the default answer")
	cmd.Flags().StringVar(&locale, "locale", "en", "language of validation messages")
	return cmd
}

func (a *app) prompter(out io.Writer) *tui.Renderer {
	return tui.New(a.tuiOptions(out)...)
}

func (a *app) tuiOptions(out io.Writer, extra ...tui.Option) []tui.Option {
	opts := []tui.Option{tui.WithOutput(out)}
	if a.driver != nil {
		opts = append(opts, tui.WithPromptDriver(a.driver))
	}
	return append(opts, extra...)
}

// printMessages writes flash messages as plain text.
func printMessages(out io.Writer, s message.Snapshot) {
	write := func(prefix string, texts []string) {
		for _, text := range texts {
			fmt.Fprintln(out, prefix+plainText(text))
		}
	}
	write("error: ", s.Errors)
	write("warning: ", s.Warnings)
	write("notice: ", s.Notices)
	write("", s.Infos)
}

func plainText(markup string) string {
	text := strings.ReplaceAll(markup, "<br />\n", "\n")
	text = strings.ReplaceAll(text, "<br />", "\n")
	return html.UnescapeString(text)
}
