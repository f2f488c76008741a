package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		data     map[string]string
		showText bool
	)

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a markdown template without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.renderer().Render(args[0], data)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Subject != "" {
				fmt.Fprintf(w, "Subject: %s\n\n", out.Subject)
			}
			if showText {
				fmt.Fprint(w, mailer.PlainText(out.HTML))
				fmt.Fprintln(w)
				return nil
			}
			fmt.Fprint(w, out.HTML)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.Templates, "templates", "", "template directory (default: current directory)")
	f.StringVar(&a.cfg.Layout, "layout", "", "HTML layout within the template directory")
	f.StringToStringVar(&data, "data", nil, "template data as key=value pairs")
	f.BoolVar(&showText, "text", false, "print the plain text alternative instead of HTML")

	return cmd
}

func (a *app) renderer() *mailer.Renderer {
	dir := a.cfg.Templates
	if dir == "" {
		dir = "."
	}
	var opts []mailer.RendererOption
	if a.cfg.Layout != "" {
		opts = append(opts, mailer.WithLayout(a.cfg.Layout))
	}
	return mailer.NewRenderer(os.DirFS(dir), opts...)
}
