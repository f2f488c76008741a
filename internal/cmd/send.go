package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailbridge/mailbridge/pkg/mailer"
	"github.com/mailbridge/mailbridge/pkg/storage"
)

var errNoDSN = errors.New("no transport DSN: set --dsn, MAILER_DSN or dsn in the config file")

type sendOptions struct {
	data     map[string]string
	headers  map[string]string
	subject  string
	text     string
	htmlFile string
	template string
	to       []string
	cc       []string
	tags     []string
	attach   []string
	inline   []string
}

func newSendCommand(a *app) *cobra.Command {
	o := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Long: `Send an email through the transport selected by the DSN.

The HTML part comes from --html-file (use "-" for stdin) or from a markdown
--template. Attachments are local paths, s3://bucket/key or http(s) URLs;
--inline parts are referenced from the HTML as cid:<filename>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.send(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.DSN, "dsn", "", "transport DSN, e.g. acumba+api://TOKEN@default (env MAILER_DSN)")
	f.StringVar(&a.cfg.From, "from", "", "From address")
	f.StringVar(&a.cfg.Sender, "sender", "", "envelope sender, if different from --from")
	f.StringSliceVar(&o.to, "to", nil, "recipient address (repeatable)")
	f.StringSliceVar(&o.cc, "cc", nil, "carbon copy address (repeatable)")
	f.StringSliceVar(&a.cfg.BCC, "bcc", nil, "blind carbon copy address (repeatable)")
	f.StringSliceVar(&a.cfg.ReplyTo, "reply-to", nil, "Reply-To address")
	f.StringVar(&o.subject, "subject", "", "subject line")
	f.StringVar(&o.text, "text", "", "plain text body")
	f.StringVar(&o.htmlFile, "html-file", "", `HTML body file, "-" for stdin`)
	f.StringVar(&o.template, "template", "", "markdown template to render as the body")
	f.StringVar(&a.cfg.Templates, "templates", "", "template directory (default: current directory)")
	f.StringVar(&a.cfg.Layout, "layout", "", "HTML layout within the template directory")
	f.StringToStringVar(&o.data, "data", nil, "template data as key=value pairs")
	f.StringToStringVar(&o.headers, "header", nil, "custom header as name=value")
	f.StringSliceVar(&o.tags, "tag", nil, "tag as name or name=value (repeatable)")
	f.StringArrayVar(&o.attach, "attach", nil, "attachment reference (repeatable)")
	f.StringArrayVar(&o.inline, "inline", nil, "inline attachment reference (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("html-file", "template")

	return cmd
}

func (a *app) send(cmd *cobra.Command, o *sendOptions) error {
	if a.cfg.DSN == "" {
		return errNoDSN
	}
	tr, err := a.registry().FromString(a.cfg.DSN)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	email, cleanup, err := a.buildEmail(ctx, cmd, o)
	if err != nil {
		return err
	}
	defer cleanup()

	m := mailer.New(tr, mailer.Config{
		DefaultFrom:     a.cfg.From,
		FallbackSubject: a.cfg.FallbackSubject,
	}, mailer.WithLogger(a.logger))

	sent, err := m.SendRaw(ctx, email)
	if err != nil {
		return err
	}

	if sent.MessageID != "" {
		fmt.Fprintln(cmd.OutOrStdout(), sent.MessageID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "sent via %s\n", tr)
	}
	return nil
}

func (a *app) buildEmail(ctx context.Context, cmd *cobra.Command, o *sendOptions) (*mailer.Email, func(), error) {
	cleanup := func() {}
	email := &mailer.Email{
		Subject: o.subject,
		Text:    o.text,
		Headers: o.headers,
		Tags:    parseTags(o.tags),
	}

	var err error
	if a.cfg.Sender != "" {
		if email.Sender, err = mailer.ParseAddress(a.cfg.Sender); err != nil {
			return nil, cleanup, err
		}
	}
	lists := []struct {
		dst *[]mailer.Address
		src []string
	}{
		{&email.To, o.to},
		{&email.CC, o.cc},
		{&email.BCC, a.cfg.BCC},
		{&email.ReplyTo, a.cfg.ReplyTo},
	}
	for _, l := range lists {
		if *l.dst, err = mailer.ParseAddresses(l.src...); err != nil {
			return nil, cleanup, err
		}
	}

	switch {
	case o.template != "":
		out, err := a.renderer().Render(o.template, o.data)
		if err != nil {
			return nil, cleanup, err
		}
		if email.Subject == "" {
			email.Subject = out.Subject
		}
		if email.Text == "" {
			email.Text = out.Text
		}
		email.HTML = mailer.BodyString(out.HTML)
	case o.htmlFile == "-":
		email.HTML = mailer.BodyStream(cmd.InOrStdin())
	case o.htmlFile != "":
		f, err := os.Open(o.htmlFile)
		if err != nil {
			return nil, cleanup, fmt.Errorf("html file: %w", err)
		}
		cleanup = func() { _ = f.Close() }
		email.HTML = mailer.BodySeekable(f)
	}
	if email.Subject == "" {
		email.Subject = a.cfg.FallbackSubject
	}

	loader := storage.NewDefaultLoader(a.cfg.Storage)
	for _, ref := range o.attach {
		att, err := loader.Load(ctx, ref)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("attachment %s: %w", ref, err)
		}
		email.Attachments = append(email.Attachments, att)
	}
	for _, ref := range o.inline {
		att, err := loader.Load(ctx, ref)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("inline attachment %s: %w", ref, err)
		}
		email.Attachments = append(email.Attachments, storage.Inline(att, ""))
	}

	return email, cleanup, nil
}

// parseTags turns "name" into a presence tag and "name=value" into a value tag.
func parseTags(list []string) mailer.Tags {
	if len(list) == 0 {
		return nil
	}
	tags := make(mailer.Tags, len(list))
	for _, t := range list {
		if name, value, ok := strings.Cut(t, "="); ok {
			tags[name] = value
			continue
		}
		tags[t] = struct{}{}
	}
	return tags
}
